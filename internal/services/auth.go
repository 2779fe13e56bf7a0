package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"scholarhub/internal/listquery"
	"scholarhub/internal/logger"
	"scholarhub/internal/models"
	"scholarhub/internal/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type AuthService struct {
	repo UserRepo
}

func NewAuthService(repo UserRepo) *AuthService {
	return &AuthService{repo: repo}
}

type UserRepo interface {
	CreateUser(ctx context.Context, user *models.User) error
	IsEmailTaken(ctx context.Context, email string) (bool, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	GetAllUsersPaginated(ctx context.Context, opt *listquery.Options) ([]*models.User, int, error)
	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
	UpdateUserFields(ctx context.Context, id int, input *models.UpdateUserRequest) error
	DeleteUserByID(ctx context.Context, id int) error
	SaveRefreshToken(ctx context.Context, userID int, token string) error
	IsRefreshTokenValid(ctx context.Context, userID int, token string) (bool, error)
	DeleteRefreshToken(ctx context.Context, userID int, token string) error
}

type TokenPair struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}

// Register создаёт учётную запись по email и возвращает пару токенов.
// Если email уже занят — ведёт себя как Login (парольная проверка, 401 при
// неверном пароле), чтобы повторный вызов не раскрывал занятость адреса.
func (s *AuthService) Register(
	ctx context.Context,
	email, firstName, lastName, plainPassword string,
	jwtSecret string,
	accessTTL, refreshTTL time.Duration,
) (*TokenPair, *models.User, error) {
	logger.Log.Info("Регистрация пользователя (service)", zap.String("email", email))

	email = strings.TrimSpace(email)
	if email == "" {
		return nil, nil, fmt.Errorf("%w: требуется email", ErrValidation)
	}
	if strings.TrimSpace(firstName) == "" {
		return nil, nil, fmt.Errorf("%w: требуется имя", ErrValidation)
	}
	if strings.TrimSpace(lastName) == "" {
		return nil, nil, fmt.Errorf("%w: требуется фамилия", ErrValidation)
	}
	if plainPassword == "" {
		return nil, nil, fmt.Errorf("%w: требуется пароль", ErrValidation)
	}

	taken, err := s.repo.IsEmailTaken(ctx, email)
	if err != nil {
		logger.Log.Error("Ошибка проверки email", zap.Error(err))
		return nil, nil, err
	}
	if taken {
		return s.Login(ctx, email, plainPassword, jwtSecret, accessTTL, refreshTTL)
	}

	hashed, err := utils.HashPassword(plainPassword)
	if err != nil {
		logger.Log.Error("Ошибка хеширования пароля", zap.Error(err))
		return nil, nil, err
	}

	user := &models.User{
		Email:        email,
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		PasswordHash: hashed,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, nil, ErrEmailTaken
		}
		logger.Log.Error("Ошибка создания пользователя", zap.Error(err))
		return nil, nil, err
	}

	pair, err := s.issueTokens(ctx, user, jwtSecret, accessTTL, refreshTTL)
	if err != nil {
		return nil, nil, err
	}

	logger.Log.Info("Пользователь зарегистрирован (service)", zap.Int("user_id", user.ID))
	return pair, user, nil
}

// Login аутентифицирует по паре email+пароль. Имя и фамилия в запросе входа
// не проверяются: историческое требование их совпадения снято.
func (s *AuthService) Login(
	ctx context.Context,
	email, password string,
	jwtSecret string,
	accessTTL, refreshTTL time.Duration,
) (*TokenPair, *models.User, error) {
	logger.Log.Info("Попытка входа (service)", zap.String("email", email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		logger.Log.Warn("Пользователь не найден (service)", zap.String("email", email), zap.Error(err))
		return nil, nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Log.Warn("Неверный пароль (service)", zap.String("email", email))
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user, jwtSecret, accessTTL, refreshTTL)
	if err != nil {
		return nil, nil, err
	}

	logger.Log.Info("Вход выполнен (service)", zap.Int("user_id", user.ID))
	return pair, user, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User, jwtSecret string, accessTTL, refreshTTL time.Duration) (*TokenPair, error) {
	accessToken, err := utils.GenerateToken(jwtSecret, user.ID, user.IsAdmin, accessTTL, "access")
	if err != nil {
		logger.Log.Error("Ошибка генерации access-токена", zap.Error(err))
		return nil, err
	}

	refreshToken, err := utils.GenerateToken(jwtSecret, user.ID, user.IsAdmin, refreshTTL, "refresh")
	if err != nil {
		logger.Log.Error("Ошибка генерации refresh-токена", zap.Error(err))
		return nil, err
	}

	if err := s.repo.SaveRefreshToken(ctx, user.ID, refreshToken); err != nil {
		logger.Log.Error("Ошибка сохранения refresh-токена", zap.Error(err))
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *AuthService) ValidateRefreshToken(ctx context.Context, userID int, token string) (bool, error) {
	logger.Log.Debug("Проверка refresh токена (service)", zap.Int("user_id", userID))
	return s.repo.IsRefreshTokenValid(ctx, userID, token)
}

func (s *AuthService) GetUsersPaginated(ctx context.Context, opt *listquery.Options) ([]*models.User, int, error) {
	return s.repo.GetAllUsersPaginated(ctx, opt)
}

func (s *AuthService) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Log.Error("Ошибка получения пользователя (service)", zap.Int("user_id", id), zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (s *AuthService) UpdateUser(ctx context.Context, id int, input *models.UpdateUserRequest) (*models.User, error) {
	logger.Log.Info("Обновление пользователя (service)", zap.Int("user_id", id))

	if input.Password != nil {
		hashed, err := utils.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		input.Password = &hashed
	}

	if err := s.repo.UpdateUserFields(ctx, id, input); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		logger.Log.Error("Ошибка при обновлении пользователя (service)", zap.Error(err), zap.Int("user_id", id))
		return nil, err
	}

	return s.GetUserByID(ctx, id)
}

func (s *AuthService) DeleteUser(ctx context.Context, id int) error {
	logger.Log.Info("Удаление пользователя (service)", zap.Int("user_id", id))
	return s.repo.DeleteUserByID(ctx, id)
}
