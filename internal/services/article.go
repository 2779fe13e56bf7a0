package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"scholarhub/internal/listquery"
	"scholarhub/internal/logger"
	"scholarhub/internal/models"
	"scholarhub/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

type ArticleService interface {
	Create(ctx context.Context, creatorID int, req models.CreateArticleRequest) (*models.Article, error)
	List(ctx context.Context, opt *listquery.Options) ([]*models.Article, error)
	GetByID(ctx context.Context, id int64) (*models.Article, error)
	Update(ctx context.Context, id int64, req models.UpdateArticleRequest) (*models.Article, error)
	Delete(ctx context.Context, id int64) error
}

type articleService struct {
	repo   repository.ArticleRepo
	users  UserRepo
	tags   repository.TagRepo
	policy *bluemonday.Policy
}

func NewArticleService(repo repository.ArticleRepo, users UserRepo, tags repository.TagRepo) ArticleService {
	// title/abstract — простой текст, HTML вычищаем целиком
	return &articleService{repo: repo, users: users, tags: tags, policy: bluemonday.StrictPolicy()}
}

// Create сохраняет статью. Создатель всегда добавляется в список авторов,
// даже если в запросе его не было: список авторов не бывает пустым.
func (s *articleService) Create(ctx context.Context, creatorID int, req models.CreateArticleRequest) (*models.Article, error) {
	log := logger.WithCtx(ctx)
	log.Info("Создание статьи",
		zap.String("title", strings.TrimSpace(req.Title)),
		zap.Int("authors_count", len(req.Authors)),
		zap.Int("tags_count", len(req.Tags)),
	)

	title := s.policy.Sanitize(strings.TrimSpace(req.Title))
	if title == "" {
		return nil, fmt.Errorf("%w: требуется заголовок", ErrValidation)
	}
	abstract := s.policy.Sanitize(strings.TrimSpace(req.Abstract))

	authorIDs := appendAuthor(req.Authors, creatorID)
	if err := s.checkAuthors(ctx, authorIDs); err != nil {
		return nil, err
	}

	tagIDs, err := s.resolveTags(ctx, req.Tags)
	if err != nil {
		return nil, err
	}

	a := &models.Article{Title: title, Abstract: abstract}
	created, err := s.repo.Create(ctx, a, authorIDs, tagIDs)
	if err != nil {
		log.Error("Ошибка создания статьи (repo)", zap.Error(err))
		return nil, err
	}

	log.Info("Статья создана", zap.Int64("id", created.ID))
	return created, nil
}

func (s *articleService) List(ctx context.Context, opt *listquery.Options) ([]*models.Article, error) {
	log := logger.WithCtx(ctx)
	log.Debug("Получение списка статей",
		zap.String("keyword", opt.Keyword),
		zap.Int("limit", opt.Limit),
		zap.Int("offset", opt.Offset),
	)

	list, err := s.repo.List(ctx, opt)
	if err != nil {
		log.Error("Ошибка получения списка статей (repo)", zap.Error(err))
		return nil, err
	}

	log.Debug("Список статей получен", zap.Int("count", len(list)))
	return list, nil
}

func (s *articleService) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.WithCtx(ctx).Error("Ошибка получения статьи (repo)", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return a, nil
}

func (s *articleService) Update(ctx context.Context, id int64, req models.UpdateArticleRequest) (*models.Article, error) {
	log := logger.WithCtx(ctx)
	log.Info("Обновление статьи", zap.Int64("id", id))

	a, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := s.policy.Sanitize(strings.TrimSpace(*req.Title))
		if title == "" {
			return nil, fmt.Errorf("%w: заголовок не может быть пустым", ErrValidation)
		}
		a.Title = title
	}
	if req.Abstract != nil {
		a.Abstract = s.policy.Sanitize(strings.TrimSpace(*req.Abstract))
	}

	var authorIDs []int64
	replaceAuthors := req.Authors != nil
	if replaceAuthors {
		if len(*req.Authors) == 0 {
			return nil, fmt.Errorf("%w: список авторов не может быть пустым", ErrValidation)
		}
		authorIDs = toInt64(*req.Authors)
		if err := s.checkAuthors(ctx, authorIDs); err != nil {
			return nil, err
		}
	}

	var tagIDs []int
	replaceTags := req.Tags != nil
	if replaceTags {
		tagIDs, err = s.resolveTags(ctx, *req.Tags)
		if err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, a, authorIDs, tagIDs, replaceAuthors, replaceTags); err != nil {
		log.Error("Ошибка обновления статьи (repo)", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	log.Info("Статья обновлена", zap.Int64("id", id))
	return s.GetByID(ctx, id)
}

func (s *articleService) Delete(ctx context.Context, id int64) error {
	log := logger.WithCtx(ctx)
	log.Info("Удаление статьи", zap.Int64("id", id))

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("Ошибка удаления статьи (repo)", zap.Int64("id", id), zap.Error(err))
		return err
	}

	log.Info("Статья удалена", zap.Int64("id", id))
	return nil
}

func (s *articleService) checkAuthors(ctx context.Context, ids []int64) error {
	found, err := s.users.ExistingIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(found) == len(ids) {
		return nil
	}
	known := make(map[int64]struct{}, len(found))
	for _, id := range found {
		known[id] = struct{}{}
	}
	var missing []string
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			missing = append(missing, fmt.Sprint(id))
		}
	}
	return fmt.Errorf("%w: неизвестные авторы: %s", ErrValidation, strings.Join(missing, ", "))
}

// resolveTags — имена тегов в id; несуществующий тег — ошибка, а не создание.
func (s *articleService) resolveTags(ctx context.Context, names []string) ([]int, error) {
	if len(names) == 0 {
		return nil, nil
	}
	tags, err := s.tags.GetByNames(ctx, names)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]int, len(tags))
	for _, t := range tags {
		byName[t.Name] = t.ID
	}
	var missing []string
	ids := make([]int, 0, len(names))
	for _, n := range names {
		id, ok := byName[n]
		if !ok {
			missing = append(missing, n)
			continue
		}
		ids = append(ids, id)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: неизвестные теги: %s", ErrValidation, strings.Join(missing, ", "))
	}
	return ids, nil
}

// appendAuthor добавляет создателя и убирает дубли, сохраняя порядок по id.
func appendAuthor(authors []int, creatorID int) []int64 {
	seen := map[int]struct{}{}
	out := make([]int64, 0, len(authors)+1)
	for _, id := range append(authors, creatorID) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, int64(id))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func toInt64(in []int) []int64 {
	out := make([]int64, 0, len(in))
	seen := map[int]struct{}{}
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, int64(v))
	}
	return out
}
