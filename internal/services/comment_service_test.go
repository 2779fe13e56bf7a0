package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"scholarhub/internal/listquery"
	"scholarhub/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type mockCommentRepo struct {
	comments   map[int64]*models.Comment
	articleIDs map[int64]bool
	nextID     int64
}

func newMockCommentRepo(articleIDs ...int64) *mockCommentRepo {
	m := &mockCommentRepo{
		comments:   make(map[int64]*models.Comment),
		articleIDs: make(map[int64]bool),
		nextID:     1,
	}
	for _, id := range articleIDs {
		m.articleIDs[id] = true
	}
	return m
}

func (m *mockCommentRepo) Create(_ context.Context, c *models.Comment) (*models.Comment, error) {
	if !m.articleIDs[c.ArticleID] {
		return nil, &pgconn.PgError{Code: "23503"}
	}
	c.ID = m.nextID
	m.nextID++
	c.PublicationDate = time.Now()
	m.comments[c.ID] = c
	return c, nil
}

func (m *mockCommentRepo) List(_ context.Context, _ *listquery.Options) ([]*models.Comment, error) {
	out := make([]*models.Comment, 0, len(m.comments))
	for _, c := range m.comments {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockCommentRepo) GetByID(_ context.Context, id int64) (*models.Comment, error) {
	c, ok := m.comments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return c, nil
}

func (m *mockCommentRepo) Update(_ context.Context, c *models.Comment) error {
	m.comments[c.ID] = c
	return nil
}

func (m *mockCommentRepo) Delete(_ context.Context, id int64) error {
	delete(m.comments, id)
	return nil
}

func TestCommentCreate_AuthorIsCaller(t *testing.T) {
	repo := newMockCommentRepo(10)
	service := NewCommentService(repo)

	c, err := service.Create(context.Background(), 7, models.CreateCommentRequest{
		Text:    "Отличная работа",
		Article: 10,
	})
	if err != nil {
		t.Fatalf("ошибка создания комментария: %v", err)
	}
	if c.AuthorID != 7 {
		t.Fatalf("автором должен быть вызывающий (7), получено %d", c.AuthorID)
	}
	if c.PublicationDate.IsZero() {
		t.Fatal("дата публикации не выставлена")
	}
}

func TestCommentCreate_UnknownArticle(t *testing.T) {
	repo := newMockCommentRepo()
	service := NewCommentService(repo)

	_, err := service.Create(context.Background(), 1, models.CreateCommentRequest{
		Text:    "Комментарий в никуда",
		Article: 404,
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("ожидалась ошибка валидации по несуществующей статье, получено: %v", err)
	}
}

func TestCommentCreate_EmptyText(t *testing.T) {
	repo := newMockCommentRepo(10)
	service := NewCommentService(repo)

	_, err := service.Create(context.Background(), 1, models.CreateCommentRequest{
		Text:    "  ",
		Article: 10,
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("ожидалась ошибка валидации по пустому тексту, получено: %v", err)
	}
}

func TestCommentCreate_SanitizesHTML(t *testing.T) {
	repo := newMockCommentRepo(10)
	service := NewCommentService(repo)

	c, err := service.Create(context.Background(), 1, models.CreateCommentRequest{
		Text:    "привет <script>alert(1)</script>",
		Article: 10,
	})
	if err != nil {
		t.Fatalf("ошибка создания комментария: %v", err)
	}
	if strings.Contains(c.Text, "<script>") {
		t.Fatalf("HTML не вычищен: %q", c.Text)
	}
}

func TestCommentUpdate_NotFound(t *testing.T) {
	repo := newMockCommentRepo()
	service := NewCommentService(repo)

	text := "новый текст"
	_, err := service.Update(context.Background(), 404, models.UpdateCommentRequest{Text: &text})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("ожидалась ошибка 'не найдено', получено: %v", err)
	}
}
