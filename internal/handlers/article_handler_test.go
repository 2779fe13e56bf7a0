package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"scholarhub/internal/listquery"
	"scholarhub/internal/logger"
	"scholarhub/internal/middleware"
	"scholarhub/internal/models"
	"scholarhub/internal/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

// Мок-сервис статей (заглушка)
type mockArticleService struct {
	articles map[int64]*models.Article
}

func newMockArticleService(articles ...*models.Article) *mockArticleService {
	m := &mockArticleService{articles: make(map[int64]*models.Article)}
	for _, a := range articles {
		m.articles[a.ID] = a
	}
	return m
}

func (m *mockArticleService) Create(_ context.Context, creatorID int, req models.CreateArticleRequest) (*models.Article, error) {
	a := &models.Article{ID: int64(len(m.articles) + 1), Title: req.Title, Abstract: req.Abstract}
	m.articles[a.ID] = a
	return a, nil
}

func (m *mockArticleService) List(_ context.Context, _ *listquery.Options) ([]*models.Article, error) {
	out := make([]*models.Article, 0, len(m.articles))
	for _, a := range m.articles {
		out = append(out, a)
	}
	return out, nil
}

func (m *mockArticleService) GetByID(_ context.Context, id int64) (*models.Article, error) {
	a, ok := m.articles[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	return a, nil
}

func (m *mockArticleService) Update(_ context.Context, id int64, _ models.UpdateArticleRequest) (*models.Article, error) {
	return m.articles[id], nil
}

func (m *mockArticleService) Delete(_ context.Context, id int64) error {
	delete(m.articles, id)
	return nil
}

type envelope struct {
	Data       json.RawMessage `json:"data"`
	Error      string          `json:"error"`
	StatusCode int             `json:"status_code"`
}

func authedRequest(r *http.Request, userID int, isAdmin bool) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.ContextUserID, userID)
	ctx = context.WithValue(ctx, middleware.ContextIsAdmin, isAdmin)
	return r.WithContext(ctx)
}

func sampleArticle() *models.Article {
	return &models.Article{
		ID:       1,
		Title:    "Квантовые вычисления",
		Abstract: "Обзор алгоритмов",
		PublicationDate: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
		Authors: []models.Author{
			{ID: 5, FirstName: "Анна", LastName: "Петрова"},
			{ID: 6, FirstName: "Олег", LastName: "Сидоров"},
		},
		Tags: []string{"quantum", "algorithms"},
	}
}

func TestArticleList_UnknownParamsRejected(t *testing.T) {
	h := NewArticleHandler(newMockArticleService())

	req := httptest.NewRequest(http.MethodGet, "/articles/?year=2024&bogus=1&also_bad=x", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("ожидался 400, получен %d", rec.Code)
	}

	var resp envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("невалидный JSON ответа: %v", err)
	}
	// в ошибке перечислены ВСЕ недопустимые параметры
	if !strings.Contains(resp.Error, "bogus") || !strings.Contains(resp.Error, "also_bad") {
		t.Fatalf("ошибка не перечисляет все недопустимые параметры: %q", resp.Error)
	}
}

func TestArticleList_CSVIDFilterNotAllowed(t *testing.T) {
	h := NewArticleHandler(newMockArticleService())

	// фильтр id доступен только на экспорте
	req := httptest.NewRequest(http.MethodGet, "/articles/?id=1,2", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("ожидался 400, получен %d", rec.Code)
	}
}

func TestArticleExportCSV(t *testing.T) {
	h := NewArticleHandler(newMockArticleService(sampleArticle()))

	req := httptest.NewRequest(http.MethodGet, "/articles/export/csv/?id=1", nil)
	rec := httptest.NewRecorder()
	h.ExportCSV(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("ожидался 200, получен %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("неверный Content-Type: %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Fatalf("нет attachment в Content-Disposition: %q", cd)
	}

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("ожидались заголовок и одна строка, получено %d строк", len(lines))
	}
	if lines[0] != "ID,title,abstract,authors,tags,publication_date" {
		t.Fatalf("неверный заголовок CSV: %q", lines[0])
	}
	// имена авторов и теги склеиваются через запятую с пробелом
	if !strings.Contains(lines[1], "Анна Петрова, Олег Сидоров") {
		t.Fatalf("авторы склеены неверно: %q", lines[1])
	}
	if !strings.Contains(lines[1], "quantum, algorithms") {
		t.Fatalf("теги склеены неверно: %q", lines[1])
	}
	if !strings.Contains(lines[1], "2024-03-15") {
		t.Fatalf("дата публикации отформатирована неверно: %q", lines[1])
	}
}

func TestArticleUpdate_Forbidden(t *testing.T) {
	svc := newMockArticleService(sampleArticle())
	h := NewArticleHandler(svc)

	req := httptest.NewRequest(http.MethodPut, "/articles/1/", strings.NewReader(`{"title":"x"}`))
	req = mux.SetURLVars(req, map[string]string{"id": "1"})
	req = authedRequest(req, 99, false) // не автор и не админ
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("ожидался 403, получен %d", rec.Code)
	}

	// после отказа статья осталась прежней
	after, err := svc.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("статья пропала после отказа: %v", err)
	}
	if after.Title != "Квантовые вычисления" {
		t.Fatalf("статья изменена после 403: %q", after.Title)
	}
}

func TestArticleUpdate_AdminAllowed(t *testing.T) {
	h := NewArticleHandler(newMockArticleService(sampleArticle()))

	req := httptest.NewRequest(http.MethodPut, "/articles/1/", strings.NewReader(`{"title":"x"}`))
	req = mux.SetURLVars(req, map[string]string{"id": "1"})
	req = authedRequest(req, 99, true)
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("ожидался 200, получен %d", rec.Code)
	}
}

func TestArticleUpdate_NotFoundBeforeForbidden(t *testing.T) {
	h := NewArticleHandler(newMockArticleService())

	// несуществующая статья — 404 даже для постороннего
	req := httptest.NewRequest(http.MethodPut, "/articles/777/", strings.NewReader(`{"title":"x"}`))
	req = mux.SetURLVars(req, map[string]string{"id": "777"})
	req = authedRequest(req, 99, false)
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("ожидался 404, получен %d", rec.Code)
	}
}

func TestArticleDelete_AuthorAllowed(t *testing.T) {
	svc := newMockArticleService(sampleArticle())
	h := NewArticleHandler(svc)

	req := httptest.NewRequest(http.MethodDelete, "/articles/1/", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "1"})
	req = authedRequest(req, 5, false) // один из авторов
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("ожидался 204, получен %d", rec.Code)
	}
	if _, ok := svc.articles[1]; ok {
		t.Fatal("статья не удалена")
	}
}
