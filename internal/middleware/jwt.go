package middleware

import (
	"context"
	"net/http"
	"strings"

	"scholarhub/internal/logger"
	"scholarhub/internal/reqctx"
	"scholarhub/internal/utils/helpers"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// JWTAuth проверяет bearer access-токен и кладёт принципала в контекст.
// Незащищённые маршруты этим middleware не оборачиваются.
func JWTAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				logger.WithCtx(r.Context()).Warn("JWTAuth: отсутствует access token")
				helpers.Error(w, http.StatusUnauthorized, "Отсутствует access token")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")

			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			})

			if err != nil || !token.Valid {
				logger.WithCtx(r.Context()).Warn("JWTAuth: неверный или просроченный токен",
					zap.Error(err))
				helpers.Error(w, http.StatusUnauthorized, "Неверный или просроченный токен")
				return
			}

			userID, ok1 := claims["user_id"].(float64)
			isAdmin, ok2 := claims["is_admin"].(bool)
			tokenType, ok3 := claims["token_type"].(string)
			if !ok1 || !ok2 || !ok3 || tokenType != "access" {
				logger.WithCtx(r.Context()).Warn("JWTAuth: недопустимый payload",
					zap.Any("claims", claims))
				helpers.Error(w, http.StatusUnauthorized, "Недопустимый payload")
				return
			}

			ctx := context.WithValue(r.Context(), ContextUserID, int(userID))
			ctx = context.WithValue(ctx, ContextIsAdmin, isAdmin)
			ctx = reqctx.WithUserID(ctx, int(userID))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
