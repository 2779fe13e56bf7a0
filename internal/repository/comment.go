package repository

import (
	"context"
	"fmt"
	"strings"

	"scholarhub/internal/listquery"
	"scholarhub/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CommentRepo interface {
	Create(ctx context.Context, c *models.Comment) (*models.Comment, error)
	List(ctx context.Context, opt *listquery.Options) ([]*models.Comment, error)
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	Update(ctx context.Context, c *models.Comment) error
	Delete(ctx context.Context, id int64) error
}

type commentRepo struct{ db *pgxpool.Pool }

func NewCommentRepo(db *pgxpool.Pool) CommentRepo { return &commentRepo{db: db} }

const commentSelect = `
	SELECT c.id, c.text, c.author_id, u.first_name || ' ' || u.last_name, c.article_id, c.publication_date
	FROM comments c
	JOIN users u ON u.id = c.author_id`

func (r *commentRepo) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	const q = `
		INSERT INTO comments (text, author_id, article_id, publication_date)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, publication_date`
	if err := r.db.QueryRow(ctx, q, c.Text, c.AuthorID, c.ArticleID).Scan(&c.ID, &c.PublicationDate); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, c.ID)
}

func (r *commentRepo) List(ctx context.Context, opt *listquery.Options) ([]*models.Comment, error) {
	where := []string{}
	args := []interface{}{}
	i := 1

	if opt.Year != nil {
		where = append(where, fmt.Sprintf("EXTRACT(YEAR FROM c.publication_date) = $%d", i))
		args = append(args, *opt.Year)
		i++
	}
	if opt.Month != nil {
		where = append(where, fmt.Sprintf("EXTRACT(MONTH FROM c.publication_date) = $%d", i))
		args = append(args, *opt.Month)
		i++
	}
	if opt.AuthorID != nil {
		where = append(where, fmt.Sprintf("c.author_id = $%d", i))
		args = append(args, *opt.AuthorID)
		i++
	}
	if opt.ArticleID != nil {
		where = append(where, fmt.Sprintf("c.article_id = $%d", i))
		args = append(args, *opt.ArticleID)
		i++
	}

	sql := commentSelect
	if len(where) > 0 {
		sql += " WHERE " + strings.Join(where, " AND ")
	}

	if opt.Order != nil {
		dir := "ASC"
		if opt.Order.Desc {
			dir = "DESC"
		}
		sql += fmt.Sprintf(" ORDER BY c.%s %s", opt.Order.Column, dir)
	} else {
		sql += " ORDER BY c.id ASC"
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

	var list []*models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.AuthorID, &c.Author, &c.ArticleID, &c.PublicationDate); err != nil {
			return nil, err
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func (r *commentRepo) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	var c models.Comment
	err := r.db.QueryRow(ctx, commentSelect+` WHERE c.id = $1`, id).Scan(
		&c.ID, &c.Text, &c.AuthorID, &c.Author, &c.ArticleID, &c.PublicationDate,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *commentRepo) Update(ctx context.Context, c *models.Comment) error {
	const q = `UPDATE comments SET text = $1, publication_date = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, q, c.Text, c.ID)
	return err
}

func (r *commentRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	return err
}
