package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"scholarhub/internal/config"
	"scholarhub/internal/logger"
	"scholarhub/internal/services"
	"scholarhub/internal/utils"
	"scholarhub/internal/utils/helpers"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

type registerRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

// first_name/last_name принимаются для совместимости, но при входе
// не проверяются: аутентифицирует пара email+пароль.
type loginRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

func (h *AuthHandler) tokenTTLs() (time.Duration, time.Duration) {
	accessTTL, _ := time.ParseDuration(h.cfg.AccessTokenTTL)
	refreshTTL, _ := time.ParseDuration(h.cfg.RefreshTokenTTL)
	return accessTTL, refreshTTL
}

// Register godoc
// @Summary Регистрация нового пользователя
// @Tags auth
// @Accept json
// @Produce json
// @Param input body registerRequest true "Данные регистрации"
// @Success 200 {object} services.TokenPair
// @Failure 400 {string} string "Ошибка валидации"
// @Router /users/auth/token/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.Warn("Ошибка декодирования JSON в Register", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	logger.Log.Info("Регистрация пользователя", zap.String("email", req.Email))

	accessTTL, refreshTTL := h.tokenTTLs()
	pair, _, err := h.authService.Register(
		r.Context(),
		req.Email, req.FirstName, req.LastName, req.Password,
		h.cfg.JWTSecret, accessTTL, refreshTTL,
	)
	if err != nil {
		logger.Log.Warn("Ошибка регистрации пользователя", zap.Error(err))
		writeError(w, err)
		return
	}

	helpers.JSON(w, http.StatusOK, pair)
}

// Login godoc
// @Summary Авторизация пользователя
// @Tags auth
// @Accept json
// @Produce json
// @Param input body loginRequest true "Данные для входа"
// @Success 200 {object} services.TokenPair
// @Failure 401 {string} string "Неверный email или пароль"
// @Router /users/auth/token/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.Warn("Ошибка декодирования JSON в Login", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	logger.Log.Info("Попытка входа", zap.String("email", req.Email))

	accessTTL, refreshTTL := h.tokenTTLs()
	pair, _, err := h.authService.Login(
		r.Context(),
		req.Email, req.Password,
		h.cfg.JWTSecret, accessTTL, refreshTTL,
	)
	if err != nil {
		logger.Log.Warn("Ошибка входа пользователя", zap.String("email", req.Email), zap.Error(err))
		writeError(w, err)
		return
	}

	helpers.JSON(w, http.StatusOK, pair)
}

// Refresh godoc
// @Summary Обновление access-токена по refresh-токену
// @Tags auth
// @Accept json
// @Produce json
// @Param input body refreshRequest true "Refresh-токен"
// @Success 200 {object} map[string]string
// @Failure 401 {string} string "Недействительный refresh токен"
// @Router /users/auth/token/refresh/ [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Refresh == "" {
		logger.Log.Warn("Отсутствует refresh token в Refresh")
		helpers.Error(w, http.StatusUnauthorized, "Отсутствует refresh token")
		return
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(req.Refresh, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		logger.Log.Warn("Неверный или просроченный refresh token", zap.Error(err))
		helpers.Error(w, http.StatusUnauthorized, "Неверный или просроченный refresh token")
		return
	}

	userID, ok1 := claims["user_id"].(float64)
	isAdmin, ok2 := claims["is_admin"].(bool)
	tokenType, ok3 := claims["token_type"].(string)
	if !ok1 || !ok2 || !ok3 || tokenType != "refresh" {
		logger.Log.Error("Неверный payload токена", zap.Any("claims", claims))
		helpers.Error(w, http.StatusUnauthorized, "Неверный payload токена")
		return
	}

	isValid, err := h.authService.ValidateRefreshToken(r.Context(), int(userID), req.Refresh)
	if err != nil || !isValid {
		logger.Log.Warn("Недействительный refresh token", zap.Error(err))
		helpers.Error(w, http.StatusUnauthorized, "Недействительный refresh token")
		return
	}

	accessTTL, _ := h.tokenTTLs()
	accessToken, err := utils.GenerateToken(h.cfg.JWTSecret, int(userID), isAdmin, accessTTL, "access")
	if err != nil {
		logger.Log.Error("Ошибка генерации токена", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка генерации токена")
		return
	}

	logger.Log.Info("Токен обновлён", zap.Int("user_id", int(userID)))
	helpers.JSON(w, http.StatusOK, map[string]string{"access": accessToken})
}
