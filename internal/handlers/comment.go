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

type CommentHandler struct {
	svc services.CommentService
}

func NewCommentHandler(svc services.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// List godoc
// @Summary Список комментариев с фильтрами
// @Tags comments
// @Security ApiKeyAuth
// @Produce json
// @Param year query int false "Год публикации"
// @Param month query int false "Месяц публикации"
// @Param author query int false "ID автора"
// @Param article query int false "ID статьи"
// @Success 200 {array} models.Comment
// @Failure 400 {string} string "Недопустимые параметры"
// @Router /comments/ [get]
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	opt, err := listquery.Parse(r.URL.Query(), listquery.Comments)
	if err != nil {
		logger.WithCtx(r.Context()).Warn("Невалидные параметры списка комментариев", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	list, err := h.svc.List(r.Context(), opt)
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []*models.Comment{}
	}
	helpers.JSON(w, http.StatusOK, list)
}

// Create godoc
// @Summary Создать комментарий
// @Description Автором становится текущий пользователь.
// @Tags comments
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body models.CreateCommentRequest true "Данные комментария"
// @Success 201 {object} models.Comment
// @Failure 400 {string} string "Ошибка валидации"
// @Router /comments/ [post]
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromCtx(r.Context())
	if p == nil {
		writeError(w, policy.ErrNotAuthenticated)
		return
	}

	var req models.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	comment, err := h.svc.Create(r.Context(), p.ID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	helpers.JSON(w, http.StatusCreated, comment)
}

// GetByID godoc
// @Summary Получить комментарий по ID
// @Tags comments
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID комментария"
// @Success 200 {object} models.Comment
// @Failure 404 {string} string "Не найдено"
// @Router /comments/{id}/ [get]
func (h *CommentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	comment, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, comment)
}

// Update godoc
// @Summary Обновить комментарий (только автор)
// @Tags comments
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID комментария"
// @Param input body models.UpdateCommentRequest true "Изменяемые поля"
// @Success 200 {object} models.Comment
// @Failure 403 {string} string "Доступ запрещён"
// @Router /comments/{id}/ [put]
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	p := middleware.PrincipalFromCtx(r.Context())

	comment, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	// у комментариев только точное совпадение автора, без админ-обхода
	if err := policy.CanWrite(p, policy.KindComment, policy.Entity{AuthorIDs: []int{comment.AuthorID}}); err != nil {
		writeError(w, err)
		return
	}

	var req models.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	updated, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, updated)
}

// Delete godoc
// @Summary Удалить комментарий (только автор)
// @Tags comments
// @Security ApiKeyAuth
// @Param id path int true "ID комментария"
// @Success 204 {string} string "Удалено"
// @Failure 403 {string} string "Доступ запрещён"
// @Router /comments/{id}/ [delete]
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	p := middleware.PrincipalFromCtx(r.Context())

	comment, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := policy.CanWrite(p, policy.KindComment, policy.Entity{AuthorIDs: []int{comment.AuthorID}}); err != nil {
		writeError(w, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
