package handlers

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

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

type ArticleHandler struct {
	svc services.ArticleService
}

func NewArticleHandler(svc services.ArticleService) *ArticleHandler {
	return &ArticleHandler{svc: svc}
}

// List godoc
// @Summary Список статей с фильтрами, поиском и сортировкой
// @Tags articles
// @Security ApiKeyAuth
// @Produce json
// @Param year query int false "Год публикации"
// @Param month query int false "Месяц публикации"
// @Param authors query string false "Список id авторов через запятую"
// @Param tags query string false "Список имён тегов через запятую"
// @Param keyword query string false "Поиск по заголовку и аннотации"
// @Param ordering query string false "Поле сортировки, например -title"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {array} models.Article
// @Failure 400 {string} string "Недопустимые параметры"
// @Router /articles/ [get]
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	opt, err := listquery.Parse(r.URL.Query(), listquery.Articles)
	if err != nil {
		logger.WithCtx(r.Context()).Warn("Невалидные параметры списка статей", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	list, err := h.svc.List(r.Context(), opt)
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []*models.Article{}
	}
	helpers.JSON(w, http.StatusOK, list)
}

// Create godoc
// @Summary Создать статью
// @Description Создатель всегда попадает в список авторов.
// @Tags articles
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body models.CreateArticleRequest true "Данные статьи"
// @Success 201 {object} models.Article
// @Failure 400 {string} string "Ошибка валидации"
// @Router /articles/ [post]
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromCtx(r.Context())
	if p == nil {
		writeError(w, policy.ErrNotAuthenticated)
		return
	}

	var req models.CreateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Warn("Ошибка декодирования JSON при создании статьи", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	article, err := h.svc.Create(r.Context(), p.ID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	helpers.JSON(w, http.StatusCreated, article)
}

// GetByID godoc
// @Summary Получить статью по ID
// @Tags articles
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID статьи"
// @Success 200 {object} models.Article
// @Failure 404 {string} string "Не найдено"
// @Router /articles/{id}/ [get]
func (h *ArticleHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	article, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, article)
}

// Update godoc
// @Summary Обновить статью (автор или admin)
// @Tags articles
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID статьи"
// @Param input body models.UpdateArticleRequest true "Изменяемые поля"
// @Success 200 {object} models.Article
// @Failure 403 {string} string "Доступ запрещён"
// @Router /articles/{id}/ [put]
func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	p := middleware.PrincipalFromCtx(r.Context())

	article, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := policy.CanWrite(p, policy.KindArticle, articleEntity(article)); err != nil {
		writeError(w, err)
		return
	}

	var req models.UpdateArticleRequest
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
// @Summary Удалить статью (автор или admin)
// @Tags articles
// @Security ApiKeyAuth
// @Param id path int true "ID статьи"
// @Success 204 {string} string "Удалено"
// @Failure 403 {string} string "Доступ запрещён"
// @Router /articles/{id}/ [delete]
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	p := middleware.PrincipalFromCtx(r.Context())

	article, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := policy.CanWrite(p, policy.KindArticle, articleEntity(article)); err != nil {
		writeError(w, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportCSV godoc
// @Summary Экспорт статей в CSV
// @Description Фильтры, поиск и сортировка — как у списка, плюс фильтр id.
// @Tags articles
// @Security ApiKeyAuth
// @Produce text/csv
// @Param id query string false "Список id статей через запятую"
// @Success 200 {string} string "CSV"
// @Failure 400 {string} string "Недопустимые параметры"
// @Router /articles/export/csv/ [get]
func (h *ArticleHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	opt, err := listquery.Parse(r.URL.Query(), listquery.ArticlesCSV)
	if err != nil {
		logger.WithCtx(r.Context()).Warn("Невалидные параметры экспорта", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	list, err := h.svc.List(r.Context(), opt)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="articles.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"ID", "title", "abstract", "authors", "tags", "publication_date"})
	for _, a := range list {
		names := make([]string, 0, len(a.Authors))
		for _, au := range a.Authors {
			names = append(names, au.FullName())
		}
		_ = cw.Write([]string{
			strconv.FormatInt(a.ID, 10),
			a.Title,
			a.Abstract,
			strings.Join(names, ", "),
			strings.Join(a.Tags, ", "),
			a.PublicationDate.Format("2006-01-02"),
		})
	}
	cw.Flush()

	logger.WithCtx(r.Context()).Info("Экспорт статей в CSV", zap.Int("count", len(list)))
}

func articleEntity(a *models.Article) policy.Entity {
	ids := make([]int, 0, len(a.Authors))
	for _, au := range a.Authors {
		ids = append(ids, au.ID)
	}
	return policy.Entity{AuthorIDs: ids}
}
