package repository

import (
	"context"
	"fmt"
	"strings"

	"scholarhub/internal/listquery"
	"scholarhub/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TagRepo interface {
	Create(ctx context.Context, t *models.Tag) error
	List(ctx context.Context, opt *listquery.Options) ([]*models.Tag, error)
	GetByID(ctx context.Context, id int) (*models.Tag, error)
	GetByNames(ctx context.Context, names []string) ([]*models.Tag, error)
	Update(ctx context.Context, t *models.Tag) error
	Delete(ctx context.Context, id int) error
}

type tagRepo struct{ db *pgxpool.Pool }

func NewTagRepo(db *pgxpool.Pool) TagRepo { return &tagRepo{db: db} }

func (r *tagRepo) Create(ctx context.Context, t *models.Tag) error {
	const q = `INSERT INTO tags (name) VALUES ($1) RETURNING id`
	return r.db.QueryRow(ctx, q, t.Name).Scan(&t.ID)
}

func (r *tagRepo) List(ctx context.Context, opt *listquery.Options) ([]*models.Tag, error) {
	where := []string{}
	args := []interface{}{}
	i := 1

	if opt.Name != nil {
		where = append(where, fmt.Sprintf("name = $%d", i))
		args = append(args, *opt.Name)
		i++
	}

	sql := `SELECT id, name FROM tags`
	if len(where) > 0 {
		sql += " WHERE " + strings.Join(where, " AND ")
	}

	if opt.Order != nil {
		dir := "ASC"
		if opt.Order.Desc {
			dir = "DESC"
		}
		sql += fmt.Sprintf(" ORDER BY %s %s", opt.Order.Column, dir)
	} else {
		sql += " ORDER BY id ASC"
	}

	if opt.Limit > 0 {
		sql += fmt.Sprintf(" LIMIT $%d", i)
		args = append(args, opt.Limit)
		i++
	}
	if opt.Offset > 0 {
		sql += fmt.Sprintf(" OFFSET $%d", i)
		args = append(args, opt.Offset)
		i++
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

func (r *tagRepo) GetByID(ctx context.Context, id int) (*models.Tag, error) {
	var t models.Tag
	if err := r.db.QueryRow(ctx, `SELECT id, name FROM tags WHERE id = $1`, id).Scan(&t.ID, &t.Name); err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByNames — теги по списку имён; отсутствующие имена в результат не входят.
func (r *tagRepo) GetByNames(ctx context.Context, names []string) ([]*models.Tag, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM tags WHERE name = ANY($1)`, names)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

func (r *tagRepo) Update(ctx context.Context, t *models.Tag) error {
	_, err := r.db.Exec(ctx, `UPDATE tags SET name = $1 WHERE id = $2`, t.Name, t.ID)
	return err
}

func (r *tagRepo) Delete(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	return err
}
