package services

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"scholarhub/internal/listquery"
	"scholarhub/internal/logger"
	"scholarhub/internal/models"
	"scholarhub/internal/utils"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

// Мок-репозиторий (заглушка)
type mockUserRepo struct {
	users    map[string]*models.User
	lastUser *models.User
	nextID   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*models.User), nextID: 1}
}

func (m *mockUserRepo) CreateUser(_ context.Context, user *models.User) error {
	user.ID = m.nextID
	m.nextID++
	user.DateJoined = time.Now()
	m.users[user.Email] = user
	m.lastUser = user
	return nil
}

func (m *mockUserRepo) IsEmailTaken(_ context.Context, email string) (bool, error) {
	_, exists := m.users[email]
	return exists, nil
}

func (m *mockUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return u, nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id int) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepo) GetAllUsersPaginated(_ context.Context, _ *listquery.Options) ([]*models.User, int, error) {
	out := make([]*models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, len(out), nil
}

func (m *mockUserRepo) ExistingIDs(_ context.Context, ids []int64) ([]int64, error) {
	var found []int64
	for _, id := range ids {
		for _, u := range m.users {
			if int64(u.ID) == id {
				found = append(found, id)
				break
			}
		}
	}
	return found, nil
}

func (m *mockUserRepo) UpdateUserFields(_ context.Context, id int, input *models.UpdateUserRequest) error {
	for _, u := range m.users {
		if u.ID == id {
			if input.Password != nil {
				u.PasswordHash = *input.Password
			}
			if input.FirstName != nil {
				u.FirstName = *input.FirstName
			}
			if input.LastName != nil {
				u.LastName = *input.LastName
			}
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *mockUserRepo) DeleteUserByID(_ context.Context, id int) error { return nil }

func (m *mockUserRepo) SaveRefreshToken(_ context.Context, userID int, token string) error {
	return nil
}
func (m *mockUserRepo) IsRefreshTokenValid(_ context.Context, userID int, token string) (bool, error) {
	return true, nil
}
func (m *mockUserRepo) DeleteRefreshToken(_ context.Context, userID int, token string) error {
	return nil
}

func TestRegister(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)

	pair, user, err := service.Register(context.Background(),
		"ivanov@example.com", "Иван", "Иванов", "secret",
		"testsecret", 15*time.Minute, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("ошибка регистрации: %v", err)
	}

	if repo.lastUser == nil || repo.lastUser.PasswordHash == "" {
		t.Fatal("пароль не захеширован или пользователь не сохранён")
	}
	if repo.lastUser.PasswordHash == "secret" {
		t.Fatal("пароль сохранён в открытом виде")
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("токены не сгенерированы")
	}
	if user.Email != "ivanov@example.com" {
		t.Fatalf("неверный email: %s", user.Email)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)

	cases := []struct {
		name      string
		email     string
		firstName string
		lastName  string
		password  string
	}{
		{"без email", "", "Иван", "Иванов", "secret"},
		{"без имени", "a@b.ru", "", "Иванов", "secret"},
		{"без фамилии", "a@b.ru", "Иван", "", "secret"},
		{"без пароля", "a@b.ru", "Иван", "Иванов", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := service.Register(context.Background(),
				tc.email, tc.firstName, tc.lastName, tc.password,
				"testsecret", time.Minute, time.Hour)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("ожидалась ошибка валидации, получено: %v", err)
			}
		})
	}
}

func TestRegister_ExistingEmailActsAsLogin(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)

	hashed, _ := utils.HashPassword("secret")
	repo.users["ivanov@example.com"] = &models.User{
		ID:           1,
		Email:        "ivanov@example.com",
		PasswordHash: hashed,
	}

	// верный пароль — вход вместо повторной регистрации
	pair, user, err := service.Register(context.Background(),
		"ivanov@example.com", "Иван", "Иванов", "secret",
		"testsecret", time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("ожидался вход по существующему email: %v", err)
	}
	if user.ID != 1 {
		t.Fatalf("вернулся не существующий пользователь: id=%d", user.ID)
	}
	if pair.AccessToken == "" {
		t.Fatal("токены не сгенерированы")
	}

	// неверный пароль — ошибка аутентификации, а не дубликат
	_, _, err = service.Register(context.Background(),
		"ivanov@example.com", "Иван", "Иванов", "wrong",
		"testsecret", time.Minute, time.Hour)
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("ожидалась ошибка аутентификации, получено: %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)

	hashed, _ := utils.HashPassword("secret")
	repo.users["ivanov@example.com"] = &models.User{
		ID:           1,
		Email:        "ivanov@example.com",
		PasswordHash: hashed,
	}

	pair, _, err := service.Login(context.Background(),
		"ivanov@example.com", "secret", "testsecret", 15*time.Minute, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("ошибка логина: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("токены не сгенерированы")
	}
}

func TestLogin_Fail(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)

	_, _, err := service.Login(context.Background(),
		"unknown@example.com", "pass", "testsecret", time.Minute, time.Hour)
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("ожидалась ошибка при логине несуществующего пользователя, получено: %v", err)
	}

	hashed, _ := utils.HashPassword("secret")
	repo.users["ivanov@example.com"] = &models.User{ID: 1, Email: "ivanov@example.com", PasswordHash: hashed}

	_, _, err = service.Login(context.Background(),
		"ivanov@example.com", "wrong", "testsecret", time.Minute, time.Hour)
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("ожидалась ошибка при неверном пароле, получено: %v", err)
	}
}

func TestGetUserByID_NotFound(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)

	_, err := service.GetUserByID(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("ожидалась ошибка 'не найдено', получено: %v", err)
	}
}
