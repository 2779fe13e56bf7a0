package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"scholarhub/internal/listquery"
	"scholarhub/internal/logger"
	"scholarhub/internal/middleware"
	"scholarhub/internal/models"
	"scholarhub/internal/policy"
	"scholarhub/internal/services"
	"scholarhub/internal/utils/helpers"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type UserHandler struct {
	authService *services.AuthService
}

func NewUserHandler(authService *services.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// Me godoc
// @Summary Профиль текущего пользователя
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {string} string "Нет доступа"
// @Router /users/me/ [get]
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromCtx(r.Context())
	if p == nil {
		writeError(w, policy.ErrNotAuthenticated)
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), p.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, user)
}

// List godoc
// @Summary Список пользователей
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Param ordering query string false "Поле сортировки, например -date_joined"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {array} models.User
// @Failure 400 {string} string "Недопустимые параметры"
// @Router /users/ [get]
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	opt, err := listquery.Parse(r.URL.Query(), listquery.Users)
	if err != nil {
		logger.WithCtx(r.Context()).Warn("Невалидные параметры списка пользователей", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if opt.Limit < 1 || opt.Limit > 100 {
		opt.Limit = 50
	}

	users, _, err := h.authService.GetUsersPaginated(r.Context(), opt)
	if err != nil {
		logger.Log.Error("Ошибка получения пользователей", zap.Error(err))
		writeError(w, err)
		return
	}
	if users == nil {
		users = []*models.User{}
	}
	helpers.JSON(w, http.StatusOK, users)
}

// GetByID godoc
// @Summary Получить пользователя по ID
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID пользователя"
// @Success 200 {object} models.User
// @Failure 404 {string} string "Не найдено"
// @Router /users/{id}/ [get]
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	user, err := h.authService.GetUserByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, user)
}

// Update godoc
// @Summary Обновить пользователя (только admin)
// @Tags users
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID пользователя"
// @Param input body models.UpdateUserRequest true "Изменяемые поля"
// @Success 200 {object} models.User
// @Failure 403 {string} string "Доступ запрещён"
// @Router /users/{id}/ [put]
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	p := middleware.PrincipalFromCtx(r.Context())

	// объектная проверка: сначала разрешаем цель, затем политику
	if _, err := h.authService.GetUserByID(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	if err := policy.CanWrite(p, policy.KindUser, policy.Entity{}); err != nil {
		writeError(w, err)
		return
	}

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	user, err := h.authService.UpdateUser(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, user)
}

// Delete godoc
// @Summary Удалить пользователя (только admin)
// @Tags users
// @Security ApiKeyAuth
// @Param id path int true "ID пользователя"
// @Success 204 {string} string "Удалено"
// @Failure 403 {string} string "Доступ запрещён"
// @Router /users/{id}/ [delete]
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	p := middleware.PrincipalFromCtx(r.Context())

	if _, err := h.authService.GetUserByID(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	if err := policy.CanWrite(p, policy.KindUser, policy.Entity{}); err != nil {
		writeError(w, err)
		return
	}

	if err := h.authService.DeleteUser(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
