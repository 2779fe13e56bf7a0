package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"scholarhub/internal/listquery"
	"scholarhub/internal/logger"
	"scholarhub/internal/models"
	"scholarhub/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

type CommentService interface {
	Create(ctx context.Context, authorID int, req models.CreateCommentRequest) (*models.Comment, error)
	List(ctx context.Context, opt *listquery.Options) ([]*models.Comment, error)
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	Update(ctx context.Context, id int64, req models.UpdateCommentRequest) (*models.Comment, error)
	Delete(ctx context.Context, id int64) error
}

type commentService struct {
	repo   repository.CommentRepo
	policy *bluemonday.Policy
}

func NewCommentService(repo repository.CommentRepo) CommentService {
	return &commentService{repo: repo, policy: bluemonday.StrictPolicy()}
}

// Create сохраняет комментарий. Автором всегда становится вызывающий —
// поле автора из полезной нагрузки игнорируется.
func (s *commentService) Create(ctx context.Context, authorID int, req models.CreateCommentRequest) (*models.Comment, error) {
	log := logger.WithCtx(ctx)
	log.Info("Создание комментария", zap.Int64("article_id", req.Article))

	text := s.policy.Sanitize(strings.TrimSpace(req.Text))
	if text == "" {
		return nil, fmt.Errorf("%w: требуется текст комментария", ErrValidation)
	}
	if req.Article == 0 {
		return nil, fmt.Errorf("%w: требуется статья", ErrValidation)
	}

	c := &models.Comment{
		Text:      text,
		AuthorID:  authorID,
		ArticleID: req.Article,
	}

	created, err := s.repo.Create(ctx, c)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, fmt.Errorf("%w: статья %d не существует", ErrValidation, req.Article)
		}
		log.Error("Ошибка создания комментария (repo)", zap.Error(err))
		return nil, err
	}

	log.Info("Комментарий создан", zap.Int64("id", created.ID))
	return created, nil
}

func (s *commentService) List(ctx context.Context, opt *listquery.Options) ([]*models.Comment, error) {
	list, err := s.repo.List(ctx, opt)
	if err != nil {
		logger.WithCtx(ctx).Error("Ошибка получения комментариев (repo)", zap.Error(err))
		return nil, err
	}
	return list, nil
}

func (s *commentService) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.WithCtx(ctx).Error("Ошибка получения комментария (repo)", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return c, nil
}

func (s *commentService) Update(ctx context.Context, id int64, req models.UpdateCommentRequest) (*models.Comment, error) {
	log := logger.WithCtx(ctx)
	log.Info("Обновление комментария", zap.Int64("id", id))

	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Text != nil {
		text := s.policy.Sanitize(strings.TrimSpace(*req.Text))
		if text == "" {
			return nil, fmt.Errorf("%w: текст комментария не может быть пустым", ErrValidation)
		}
		c.Text = text
	}

	if err := s.repo.Update(ctx, c); err != nil {
		log.Error("Ошибка обновления комментария (repo)", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return s.GetByID(ctx, id)
}

func (s *commentService) Delete(ctx context.Context, id int64) error {
	logger.WithCtx(ctx).Info("Удаление комментария", zap.Int64("id", id))
	return s.repo.Delete(ctx, id)
}
