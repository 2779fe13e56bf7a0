package repository

import (
	"context"
	"fmt"
	"strings"

	"scholarhub/internal/listquery"
	"scholarhub/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ArticleRepo interface {
	Create(ctx context.Context, a *models.Article, authorIDs []int64, tagIDs []int) (*models.Article, error)
	List(ctx context.Context, opt *listquery.Options) ([]*models.Article, error)
	GetByID(ctx context.Context, id int64) (*models.Article, error)
	Update(ctx context.Context, a *models.Article, authorIDs []int64, tagIDs []int, replaceAuthors, replaceTags bool) error
	Delete(ctx context.Context, id int64) error
}

type articleRepo struct{ db *pgxpool.Pool }

func NewArticleRepo(db *pgxpool.Pool) ArticleRepo { return &articleRepo{db: db} }

// rankExpr — релевантность keyword против склейки abstract+title.
// Статьи с нулевым рангом исключаются, порядок — по убыванию ранга.
const rankExpr = `ts_rank(to_tsvector('simple', coalesce(a.abstract,'') || ' ' || coalesce(a.title,'')), plainto_tsquery('simple', %s))`

// buildArticleListSQL собирает запрос списка из разобранных опций: фильтры,
// поиск, сортировка, пагинация. Статьи с нулевым рангом исключаются, а при
// заданном keyword порядок по рангу перекрывает запрошенный ordering.
func buildArticleListSQL(opt *listquery.Options) (string, []interface{}) {
	sel := `SELECT a.id, a.title, a.abstract, a.publication_date FROM articles a`
	where := []string{}
	args := []interface{}{}
	i := 1

	if opt.Year != nil {
		where = append(where, fmt.Sprintf("EXTRACT(YEAR FROM a.publication_date) = $%d", i))
		args = append(args, *opt.Year)
		i++
	}
	if opt.Month != nil {
		where = append(where, fmt.Sprintf("EXTRACT(MONTH FROM a.publication_date) = $%d", i))
		args = append(args, *opt.Month)
		i++
	}
	if len(opt.AuthorIDs) > 0 {
		where = append(where, fmt.Sprintf(`
			EXISTS (
				SELECT 1 FROM article_authors aa
				WHERE aa.article_id = a.id AND aa.user_id = ANY($%d)
			)
		`, i))
		args = append(args, opt.AuthorIDs)
		i++
	}
	if len(opt.TagNames) > 0 {
		where = append(where, fmt.Sprintf(`
			EXISTS (
				SELECT 1 FROM article_tags at
				JOIN tags t ON t.id = at.tag_id
				WHERE at.article_id = a.id AND t.name = ANY($%d)
			)
		`, i))
		args = append(args, opt.TagNames)
		i++
	}
	if len(opt.IDs) > 0 {
		where = append(where, fmt.Sprintf("a.id = ANY($%d)", i))
		args = append(args, opt.IDs)
		i++
	}

	orderBy := " ORDER BY a.id ASC"
	if opt.Keyword != "" {
		// поиск включается после фильтров и перекрывает ordering
		rank := fmt.Sprintf(rankExpr, fmt.Sprintf("$%d", i))
		args = append(args, opt.Keyword)
		i++
		sel = `SELECT a.id, a.title, a.abstract, a.publication_date, ` + rank + ` AS rank FROM articles a`
		where = append(where, rank+" > 0")
		orderBy = " ORDER BY rank DESC, a.id ASC"
	} else if opt.Order != nil {
		dir := "ASC"
		if opt.Order.Desc {
			dir = "DESC"
		}
		// колонка уже прошла белый список в listquery
		orderBy = fmt.Sprintf(" ORDER BY a.%s %s", opt.Order.Column, dir)
	}

	sql := sel
	if len(where) > 0 {
		sql += " WHERE " + strings.Join(where, " AND ")
	}
	sql += orderBy
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

	return sql, args
}

func (r *articleRepo) List(ctx context.Context, opt *listquery.Options) ([]*models.Article, error) {
	sql, args := buildArticleListSQL(opt)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*models.Article
	var ids []int64
	for rows.Next() {
		var a models.Article
		dest := []interface{}{&a.ID, &a.Title, &a.Abstract, &a.PublicationDate}
		if opt.Keyword != "" {
			var rank float32
			dest = append(dest, &rank)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		a.Authors = []models.Author{}
		a.Tags = []string{}
		list = append(list, &a)
		ids = append(ids, a.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.hydrate(ctx, list, ids); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *articleRepo) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	const q = `SELECT a.id, a.title, a.abstract, a.publication_date FROM articles a WHERE a.id = $1`

	var a models.Article
	if err := r.db.QueryRow(ctx, q, id).Scan(&a.ID, &a.Title, &a.Abstract, &a.PublicationDate); err != nil {
		return nil, err
	}
	a.Authors = []models.Author{}
	a.Tags = []string{}
	if err := r.hydrate(ctx, []*models.Article{&a}, []int64{a.ID}); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create пишет статью и связи авторов/тегов одной транзакцией.
func (r *articleRepo) Create(ctx context.Context, a *models.Article, authorIDs []int64, tagIDs []int) (*models.Article, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const q = `
		INSERT INTO articles (title, abstract, publication_date)
		VALUES ($1, $2, NOW())
		RETURNING id, publication_date`
	if err := tx.QueryRow(ctx, q, a.Title, a.Abstract).Scan(&a.ID, &a.PublicationDate); err != nil {
		return nil, err
	}

	for _, uid := range authorIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO article_authors (article_id, user_id) VALUES ($1, $2)`, a.ID, uid); err != nil {
			return nil, err
		}
	}
	for _, tid := range tagIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO article_tags (article_id, tag_id) VALUES ($1, $2)`, a.ID, tid); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, a.ID)
}

// Update обновляет статью; наборы авторов/тегов заменяются целиком
// (delete+insert в той же транзакции), а не диффом.
func (r *articleRepo) Update(ctx context.Context, a *models.Article, authorIDs []int64, tagIDs []int, replaceAuthors, replaceTags bool) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const q = `
		UPDATE articles
		SET title = $1, abstract = $2, publication_date = NOW()
		WHERE id = $3`
	if _, err := tx.Exec(ctx, q, a.Title, a.Abstract, a.ID); err != nil {
		return err
	}

	if replaceAuthors {
		if _, err := tx.Exec(ctx, `DELETE FROM article_authors WHERE article_id = $1`, a.ID); err != nil {
			return err
		}
		for _, uid := range authorIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO article_authors (article_id, user_id) VALUES ($1, $2)`, a.ID, uid); err != nil {
				return err
			}
		}
	}
	if replaceTags {
		if _, err := tx.Exec(ctx, `DELETE FROM article_tags WHERE article_id = $1`, a.ID); err != nil {
			return err
		}
		for _, tid := range tagIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO article_tags (article_id, tag_id) VALUES ($1, $2)`, a.ID, tid); err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

func (r *articleRepo) Delete(ctx context.Context, id int64) error {
	// комментарии и связи удаляются каскадом на уровне схемы
	_, err := r.db.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	return err
}

// hydrate дозагружает авторов и теги для набора статей.
func (r *articleRepo) hydrate(ctx context.Context, list []*models.Article, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	byID := make(map[int64]*models.Article, len(list))
	for _, a := range list {
		byID[a.ID] = a
	}

	const qAuthors = `
		SELECT aa.article_id, u.id, u.first_name, u.last_name
		FROM article_authors aa
		JOIN users u ON u.id = aa.user_id
		WHERE aa.article_id = ANY($1)
		ORDER BY aa.article_id, u.id`
	rows, err := r.db.Query(ctx, qAuthors, ids)
	if err != nil {
		return err
	}
	for rows.Next() {
		var articleID int64
		var author models.Author
		if err := rows.Scan(&articleID, &author.ID, &author.FirstName, &author.LastName); err != nil {
			rows.Close()
			return err
		}
		if a, ok := byID[articleID]; ok {
			a.Authors = append(a.Authors, author)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	const qTags = `
		SELECT at.article_id, t.name
		FROM article_tags at
		JOIN tags t ON t.id = at.tag_id
		WHERE at.article_id = ANY($1)
		ORDER BY at.article_id, t.name`
	rows, err = r.db.Query(ctx, qTags, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var articleID int64
		var name string
		if err := rows.Scan(&articleID, &name); err != nil {
			return err
		}
		if a, ok := byID[articleID]; ok {
			a.Tags = append(a.Tags, name)
		}
	}
	return rows.Err()
}
