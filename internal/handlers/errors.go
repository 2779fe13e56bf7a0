package handlers

import (
	"errors"
	"net/http"

	"scholarhub/internal/logger"
	"scholarhub/internal/policy"
	"scholarhub/internal/services"
	"scholarhub/internal/utils/helpers"

	"go.uber.org/zap"
)

// writeError переводит ошибку сервисного слоя или политики доступа в
// HTTP-ответ. Всё, что не распознано, — 500 с общим текстом: детали
// остаются в логах.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		helpers.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		helpers.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		helpers.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrNotFound):
		helpers.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, policy.ErrNotAuthenticated):
		helpers.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, policy.ErrForbidden):
		helpers.Error(w, http.StatusForbidden, err.Error())
	default:
		logger.Log.Error("Необработанная ошибка", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Внутренняя ошибка сервера")
	}
}
