package repository

import (
	"context"
	"fmt"
	"strings"

	"scholarhub/internal/listquery"
	"scholarhub/internal/logger"
	"scholarhub/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	logger.Log.Info("Создание пользователя (repo)", zap.String("email", user.Email))
	query := `
	INSERT INTO users (email, first_name, last_name, password_hash, is_admin)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, date_joined`
	return r.db.QueryRow(ctx, query,
		user.Email,
		user.FirstName,
		user.LastName,
		user.PasswordHash,
		user.IsAdmin,
	).Scan(&user.ID, &user.DateJoined)
}

func (r *UserRepository) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	logger.Log.Debug("Проверка email на уникальность (repo)", zap.String("email", email))
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	var exists bool
	err := r.db.QueryRow(ctx, query, email).Scan(&exists)
	if err != nil {
		logger.Log.Error("Ошибка проверки email (repo)", zap.Error(err))
	}
	return exists, err
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	logger.Log.Debug("Получение пользователя по email (repo)", zap.String("email", email))
	query := `SELECT id, email, first_name, last_name, password_hash, is_admin, date_joined
	FROM users
	WHERE email = $1`

	var user models.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.DateJoined,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	logger.Log.Debug("Получение пользователя по ID (repo)", zap.Int("user_id", id))
	query := `SELECT id, email, first_name, last_name, password_hash, is_admin, date_joined
	FROM users
	WHERE id = $1`

	var user models.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.DateJoined,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetAllUsersPaginated(ctx context.Context, opt *listquery.Options) ([]*models.User, int, error) {
	query := `SELECT id, email, first_name, last_name, password_hash, is_admin, date_joined
	FROM users`

	// колонка уже прошла белый список в listquery
	if opt.Order != nil {
		dir := "ASC"
		if opt.Order.Desc {
			dir = "DESC"
		}
		query += fmt.Sprintf(" ORDER BY %s %s", opt.Order.Column, dir)
	} else {
		query += " ORDER BY id"
	}
	query += " LIMIT $1 OFFSET $2"

	rows, err := r.db.Query(ctx, query, opt.Limit, opt.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.FirstName, &u.LastName,
			&u.PasswordHash, &u.IsAdmin, &u.DateJoined,
		); err != nil {
			return nil, 0, err
		}
		users = append(users, &u)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// ExistingIDs возвращает подмножество ids, реально существующее в users.
func (r *UserRepository) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM users WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

// UpdateUserFields — частичное обновление: SET собирается только из заданных полей.
func (r *UserRepository) UpdateUserFields(ctx context.Context, id int, input *models.UpdateUserRequest) error {
	set := []string{}
	args := []interface{}{}
	i := 1

	add := func(col string, val interface{}) {
		set = append(set, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, val)
		i++
	}

	if input.Email != nil {
		add("email", *input.Email)
	}
	if input.FirstName != nil {
		add("first_name", *input.FirstName)
	}
	if input.LastName != nil {
		add("last_name", *input.LastName)
	}
	if input.IsAdmin != nil {
		add("is_admin", *input.IsAdmin)
	}
	if input.Password != nil {
		add("password_hash", *input.Password) // сюда приходит уже хеш
	}

	if len(set) == 0 {
		return nil
	}

	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d`, strings.Join(set, ", "), i)
	args = append(args, id)

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		logger.Log.Error("Ошибка обновления пользователя (repo)", zap.Int("user_id", id), zap.Error(err))
	}
	return err
}

func (r *UserRepository) DeleteUserByID(ctx context.Context, id int) error {
	logger.Log.Info("Удаление пользователя (repo)", zap.Int("user_id", id))
	_, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

func (r *UserRepository) SaveRefreshToken(ctx context.Context, userID int, token string) error {
	logger.Log.Debug("Сохранение refresh токена (repo)", zap.Int("user_id", userID))
	query := `INSERT INTO refresh_tokens (user_id, token) VALUES ($1, $2)`
	_, err := r.db.Exec(ctx, query, userID, token)
	if err != nil {
		logger.Log.Error("Ошибка сохранения refresh токена (repo)", zap.Error(err))
	}
	return err
}

func (r *UserRepository) IsRefreshTokenValid(ctx context.Context, userID int, token string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM refresh_tokens WHERE user_id = $1 AND token = $2)`
	var valid bool
	err := r.db.QueryRow(ctx, query, userID, token).Scan(&valid)
	return valid, err
}

func (r *UserRepository) DeleteRefreshToken(ctx context.Context, userID int, token string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE user_id = $1 AND token = $2`, userID, token)
	return err
}
