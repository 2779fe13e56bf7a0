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

type TagHandler struct {
	svc services.TagService
}

func NewTagHandler(svc services.TagService) *TagHandler {
	return &TagHandler{svc: svc}
}

// List godoc
// @Summary Список тегов
// @Tags tags
// @Security ApiKeyAuth
// @Produce json
// @Param name query string false "Точное имя тега"
// @Success 200 {array} models.Tag
// @Failure 400 {string} string "Недопустимые параметры"
// @Router /tags/ [get]
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	opt, err := listquery.Parse(r.URL.Query(), listquery.Tags)
	if err != nil {
		logger.WithCtx(r.Context()).Warn("Невалидные параметры списка тегов", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	list, err := h.svc.List(r.Context(), opt)
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []*models.Tag{}
	}
	helpers.JSON(w, http.StatusOK, list)
}

// Create godoc
// @Summary Создать тег
// @Tags tags
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body models.TagRequest true "Данные тега"
// @Success 201 {object} models.Tag
// @Failure 400 {string} string "Ошибка валидации"
// @Router /tags/ [post]
func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	tag, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	helpers.JSON(w, http.StatusCreated, tag)
}

// GetByID godoc
// @Summary Получить тег по ID
// @Tags tags
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID тега"
// @Success 200 {object} models.Tag
// @Failure 404 {string} string "Не найдено"
// @Router /tags/{id}/ [get]
func (h *TagHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	tag, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, tag)
}

// Update godoc
// @Summary Обновить тег (только admin)
// @Tags tags
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID тега"
// @Param input body models.TagRequest true "Новое имя"
// @Success 200 {object} models.Tag
// @Failure 403 {string} string "Доступ запрещён"
// @Router /tags/{id}/ [put]
func (h *TagHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	p := middleware.PrincipalFromCtx(r.Context())

	if _, err := h.svc.GetByID(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	if err := policy.CanWrite(p, policy.KindTag, policy.Entity{}); err != nil {
		writeError(w, err)
		return
	}

	var req models.TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	tag, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, tag)
}

// Delete godoc
// @Summary Удалить тег (только admin)
// @Tags tags
// @Security ApiKeyAuth
// @Param id path int true "ID тега"
// @Success 204 {string} string "Удалено"
// @Failure 403 {string} string "Доступ запрещён"
// @Router /tags/{id}/ [delete]
func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	p := middleware.PrincipalFromCtx(r.Context())

	if _, err := h.svc.GetByID(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	if err := policy.CanWrite(p, policy.KindTag, policy.Entity{}); err != nil {
		writeError(w, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
