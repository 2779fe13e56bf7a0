package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"scholarhub/internal/listquery"
	"scholarhub/internal/models"
	"scholarhub/internal/services"

	"github.com/jackc/pgx/v5"
)

// Мок-репозиторий пользователей (заглушка)
type mockUsersRepo struct {
	users   []*models.User
	lastOpt *listquery.Options
}

func (m *mockUsersRepo) CreateUser(_ context.Context, user *models.User) error { return nil }

func (m *mockUsersRepo) IsEmailTaken(_ context.Context, email string) (bool, error) {
	return false, nil
}

func (m *mockUsersRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return nil, pgx.ErrNoRows
}

func (m *mockUsersRepo) GetUserByID(_ context.Context, id int) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUsersRepo) GetAllUsersPaginated(_ context.Context, opt *listquery.Options) ([]*models.User, int, error) {
	m.lastOpt = opt
	return m.users, len(m.users), nil
}

func (m *mockUsersRepo) ExistingIDs(_ context.Context, ids []int64) ([]int64, error) {
	return nil, nil
}

func (m *mockUsersRepo) UpdateUserFields(_ context.Context, id int, input *models.UpdateUserRequest) error {
	return nil
}

func (m *mockUsersRepo) DeleteUserByID(_ context.Context, id int) error { return nil }

func (m *mockUsersRepo) SaveRefreshToken(_ context.Context, userID int, token string) error {
	return nil
}
func (m *mockUsersRepo) IsRefreshTokenValid(_ context.Context, userID int, token string) (bool, error) {
	return true, nil
}
func (m *mockUsersRepo) DeleteRefreshToken(_ context.Context, userID int, token string) error {
	return nil
}

func newUserHandlerForTest(users ...*models.User) (*UserHandler, *mockUsersRepo) {
	repo := &mockUsersRepo{users: users}
	return NewUserHandler(services.NewAuthService(repo)), repo
}

func TestUserList_UnknownParamsRejected(t *testing.T) {
	h, _ := newUserHandlerForTest()

	req := httptest.NewRequest(http.MethodGet, "/users/?bogus=1&also_bad=x", nil)
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

func TestUserList_NonNumericLimit(t *testing.T) {
	h, _ := newUserHandlerForTest()

	req := httptest.NewRequest(http.MethodGet, "/users/?limit=abc", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("нечисловой limit должен давать 400, получен %d", rec.Code)
	}
}

func TestUserList_ReturnsBareCollection(t *testing.T) {
	h, repo := newUserHandlerForTest(
		&models.User{ID: 1, Email: "a@example.com"},
		&models.User{ID: 2, Email: "b@example.com"},
	)

	req := httptest.NewRequest(http.MethodGet, "/users/?ordering=-date_joined", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("ожидался 200, получен %d", rec.Code)
	}

	var resp envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("невалидный JSON ответа: %v", err)
	}
	// список пользователей — голая коллекция, как у остальных ресурсов
	var list []models.User
	if err := json.Unmarshal(resp.Data, &list); err != nil {
		t.Fatalf("ожидался массив в data: %v (%s)", err, resp.Data)
	}
	if len(list) != 2 {
		t.Fatalf("ожидалось 2 пользователя, получено %d", len(list))
	}

	if repo.lastOpt == nil || repo.lastOpt.Order == nil || repo.lastOpt.Order.Column != "date_joined" || !repo.lastOpt.Order.Desc {
		t.Fatalf("ordering не дошёл до репозитория: %+v", repo.lastOpt)
	}
	if repo.lastOpt.Limit != 50 {
		t.Fatalf("дефолтный limit должен быть 50, получено %d", repo.lastOpt.Limit)
	}
}
