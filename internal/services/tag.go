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

type TagService interface {
	Create(ctx context.Context, req models.TagRequest) (*models.Tag, error)
	List(ctx context.Context, opt *listquery.Options) ([]*models.Tag, error)
	GetByID(ctx context.Context, id int) (*models.Tag, error)
	Update(ctx context.Context, id int, req models.TagRequest) (*models.Tag, error)
	Delete(ctx context.Context, id int) error
}

type tagService struct {
	repo   repository.TagRepo
	policy *bluemonday.Policy
}

func NewTagService(repo repository.TagRepo) TagService {
	return &tagService{repo: repo, policy: bluemonday.StrictPolicy()}
}

func (s *tagService) Create(ctx context.Context, req models.TagRequest) (*models.Tag, error) {
	log := logger.WithCtx(ctx)

	name := s.policy.Sanitize(strings.TrimSpace(req.Name))
	if name == "" {
		return nil, fmt.Errorf("%w: требуется имя тега", ErrValidation)
	}

	t := &models.Tag{Name: name}
	if err := s.repo.Create(ctx, t); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%w: тег %q уже существует", ErrValidation, name)
		}
		log.Error("Ошибка создания тега (repo)", zap.Error(err))
		return nil, err
	}

	log.Info("Тег создан", zap.Int("id", t.ID), zap.String("name", t.Name))
	return t, nil
}

func (s *tagService) List(ctx context.Context, opt *listquery.Options) ([]*models.Tag, error) {
	list, err := s.repo.List(ctx, opt)
	if err != nil {
		logger.WithCtx(ctx).Error("Ошибка получения тегов (repo)", zap.Error(err))
		return nil, err
	}
	return list, nil
}

func (s *tagService) GetByID(ctx context.Context, id int) (*models.Tag, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.WithCtx(ctx).Error("Ошибка получения тега (repo)", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return t, nil
}

func (s *tagService) Update(ctx context.Context, id int, req models.TagRequest) (*models.Tag, error) {
	log := logger.WithCtx(ctx)
	log.Info("Обновление тега", zap.Int("id", id))

	t, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := s.policy.Sanitize(strings.TrimSpace(req.Name))
	if name == "" {
		return nil, fmt.Errorf("%w: требуется имя тега", ErrValidation)
	}
	t.Name = name

	if err := s.repo.Update(ctx, t); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%w: тег %q уже существует", ErrValidation, name)
		}
		log.Error("Ошибка обновления тега (repo)", zap.Int("id", id), zap.Error(err))
		return nil, err
	}

	return t, nil
}

func (s *tagService) Delete(ctx context.Context, id int) error {
	logger.WithCtx(ctx).Info("Удаление тега", zap.Int("id", id))
	return s.repo.Delete(ctx, id)
}
