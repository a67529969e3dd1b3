package service

import (
	"context"
	"strings"
	"time"

	"github.com/blog-cms-api/internal/apperr"
	"github.com/blog-cms-api/internal/models"
	"github.com/blog-cms-api/internal/repository"
	"github.com/blog-cms-api/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type commentService struct {
	comments repository.CommentRepository
	articles repository.ArticleRepository
	now      func() time.Time
	log      zerolog.Logger
}

func newCommentService(repos *repository.Repositories, now func() time.Time, log zerolog.Logger) *commentService {
	return &commentService{
		comments: repos.Comment,
		articles: repos.Article,
		now:      now,
		log:      log.With().Str("service", "comment").Logger(),
	}
}

func (s *commentService) List(ctx context.Context, filter models.CommentFilter) (*models.Page[*models.Comment], error) {
	if filter.ArticleID != "" {
		if err := validation.ParseID(filter.ArticleID); err != nil {
			return nil, err
		}
	}
	items, total, err := s.comments.List(ctx, filter)
	if err != nil {
		return nil, apperr.Upstream("list comments", err)
	}
	page := models.NewPage(items, total, filter.ListParams)
	return &page, nil
}

func (s *commentService) ListForArticle(ctx context.Context, articleID string, params models.ListParams) (*models.Page[models.PublicComment], error) {
	if err := s.requireArticle(ctx, articleID); err != nil {
		return nil, err
	}

	items, total, err := s.comments.List(ctx, models.CommentFilter{ListParams: params, ArticleID: articleID})
	if err != nil {
		return nil, apperr.Upstream("list comments", err)
	}
	public := make([]models.PublicComment, 0, len(items))
	for _, c := range items {
		public = append(public, c.Public())
	}
	page := models.NewPage(public, total, params)
	return &page, nil
}

func (s *commentService) Get(ctx context.Context, id string) (*models.Comment, error) {
	if err := validation.ParseID(id); err != nil {
		return nil, err
	}
	c, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Upstream("get comment", err)
	}
	if c == nil {
		return nil, apperr.NotFound("comment")
	}
	return c, nil
}

// Create attaches a comment to a live article. The repository re-checks the
// article inside the insert, so a concurrent delete still yields 404.
func (s *commentService) Create(ctx context.Context, articleID string, in *models.CommentCreateInput) (*models.Comment, error) {
	if err := validation.ParseID(articleID); err != nil {
		return nil, err
	}
	if err := requireText(textField{"name", &in.Name}, textField{"content", &in.Content}); err != nil {
		return nil, err
	}

	c := &models.Comment{
		ID:        uuid.New().String(),
		ArticleID: articleID,
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Content:   in.Content,
		CreatedAt: s.now().UTC(),
	}
	created, err := s.comments.Create(ctx, c)
	if err != nil {
		return nil, apperr.Upstream("create comment", err)
	}
	if !created {
		return nil, apperr.NotFound("article")
	}

	s.log.Info().Str("comment_id", c.ID).Str("article_id", articleID).Msg("Comment created")
	return c, nil
}

func (s *commentService) Update(ctx context.Context, id string, in *models.CommentUpdateInput) (*models.Comment, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireText(textField{"name", in.Name}, textField{"content", in.Content}); err != nil {
		return nil, err
	}
	if in.Name != nil {
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Content != nil {
		c.Content = *in.Content
	}
	if err := s.comments.Update(ctx, c); err != nil {
		return nil, apperr.Upstream("update comment", err)
	}
	return c, nil
}

// Delete removes comments physically
func (s *commentService) Delete(ctx context.Context, ids []string) (int64, error) {
	if err := validation.ParseIDs(ids); err != nil {
		return 0, err
	}
	n, err := s.comments.Delete(ctx, dedupe(ids))
	if err != nil {
		return 0, apperr.Upstream("delete comments", err)
	}
	s.log.Info().Int64("deleted", n).Msg("Comments deleted")
	return n, nil
}

func (s *commentService) requireArticle(ctx context.Context, id string) error {
	if err := validation.ParseID(id); err != nil {
		return err
	}
	a, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return apperr.Upstream("get article", err)
	}
	if a == nil {
		return apperr.NotFound("article")
	}
	return nil
}
