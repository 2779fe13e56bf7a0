package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken создаёт JWT с типом access или refresh.
func GenerateToken(secret string, userID int, isAdmin bool, duration time.Duration, tokenType string) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    userID,
		"is_admin":   isAdmin,
		"exp":        time.Now().Add(duration).Unix(),
		"iat":        time.Now().Unix(), // issued at — доп. уникальность
		"token_type": tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
