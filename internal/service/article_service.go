package service

import (
	"context"
	"strconv"
	"time"

	"github.com/blog-cms-api/internal/apperr"
	"github.com/blog-cms-api/internal/models"
	"github.com/blog-cms-api/internal/repository"
	"github.com/blog-cms-api/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const msgArticleSlugTaken = "an article with this slug already exists"

// articleService is the concrete implementation of ArticleService
type articleService struct {
	articles   repository.ArticleRepository
	categories repository.CategoryRepository
	tags       repository.TagRepository
	now        func() time.Time
	log        zerolog.Logger
}

// newArticleService creates a new ArticleService
func newArticleService(repos *repository.Repositories, now func() time.Time, log zerolog.Logger) *articleService {
	return &articleService{
		articles:   repos.Article,
		categories: repos.Category,
		tags:       repos.Tag,
		now:        now,
		log:        log.With().Str("service", "article").Logger(),
	}
}

// List returns one page of live articles matching filter
func (s *articleService) List(ctx context.Context, filter models.ArticleFilter) (*models.Page[*models.Article], error) {
	if err := checkFilter(filter); err != nil {
		return nil, err
	}
	items, total, err := s.articles.List(ctx, filter)
	if err != nil {
		return nil, apperr.Upstream("list articles", err)
	}
	page := models.NewPage(items, total, filter.ListParams)
	return &page, nil
}

// Get returns a live article in any status
func (s *articleService) Get(ctx context.Context, id string) (*models.Article, error) {
	if err := validation.ParseID(id); err != nil {
		return nil, err
	}
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Upstream("get article", err)
	}
	if article == nil {
		return nil, apperr.NotFound("article")
	}
	return article, nil
}

// GetPublished returns a live, published article
func (s *articleService) GetPublished(ctx context.Context, id string) (*models.Article, error) {
	article, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if article.Status != models.StatusPublished {
		return nil, apperr.NotFound("article")
	}
	return article, nil
}

// GetPublishedBySlug returns a live, published article by slug
func (s *articleService) GetPublishedBySlug(ctx context.Context, slug string) (*models.Article, error) {
	article, err := s.articles.GetBySlug(ctx, slug)
	if err != nil {
		return nil, apperr.Upstream("get article by slug", err)
	}
	if article == nil || article.Status != models.StatusPublished {
		return nil, apperr.NotFound("article")
	}
	return article, nil
}

// Create stores a new article authored by authorID
func (s *articleService) Create(ctx context.Context, authorID string, in *models.ArticleCreateInput) (*models.Article, error) {
	in.ApplyDefaults()

	taken, err := s.articles.SlugExists(ctx, in.Slug, "")
	if err != nil {
		return nil, apperr.Upstream("check article slug", err)
	}
	if taken {
		return nil, apperr.Conflict(msgArticleSlugTaken)
	}

	categoryID, err := s.checkCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	tagIDs := dedupe(in.TagIDs)
	if err := s.checkTags(ctx, tagIDs); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	article := &models.Article{
		ID:           uuid.New().String(),
		Title:        in.Title,
		Slug:         in.Slug,
		Summary:      in.Summary,
		Content:      in.Content,
		ThumbnailURL: in.ThumbnailURL,
		Status:       in.Status,
		AuthorID:     authorID,
		CategoryID:   categoryID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if article.Status == models.StatusPublished {
		article.PublishedAt = &now
	}

	if err := s.articles.Create(ctx, article, tagIDs); err != nil {
		return nil, storeError("create article", err, msgArticleSlugTaken)
	}

	s.log.Info().
		Str("article_id", article.ID).
		Str("slug", article.Slug).
		Str("status", string(article.Status)).
		Msg("Article created")

	return s.reload(ctx, article.ID)
}

// Update applies the provided fields only
func (s *articleService) Update(ctx context.Context, id string, in *models.ArticleUpdateInput) (*models.Article, error) {
	article, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Slug != nil && *in.Slug != article.Slug {
		taken, err := s.articles.SlugExists(ctx, *in.Slug, id)
		if err != nil {
			return nil, apperr.Upstream("check article slug", err)
		}
		if taken {
			return nil, apperr.Conflict(msgArticleSlugTaken)
		}
		article.Slug = *in.Slug
	}
	if in.Title != nil {
		article.Title = *in.Title
	}
	if in.Summary != nil {
		article.Summary = *in.Summary
	}
	if in.Content != nil {
		article.Content = *in.Content
	}
	if in.ThumbnailURL != nil {
		if *in.ThumbnailURL == "" {
			article.ThumbnailURL = nil
		} else {
			article.ThumbnailURL = in.ThumbnailURL
		}
	}
	if in.CategoryID != nil {
		// "" detaches the category
		article.CategoryID, err = s.checkCategory(ctx, in.CategoryID)
		if err != nil {
			return nil, err
		}
	}

	now := s.now().UTC()
	if in.Status != nil {
		article.Status = *in.Status
		if article.Status == models.StatusPublished && article.PublishedAt == nil {
			article.PublishedAt = &now
		}
	}

	var tagIDs []string
	if in.TagIDs != nil {
		tagIDs = dedupe(in.TagIDs)
		if err := s.checkTags(ctx, tagIDs); err != nil {
			return nil, err
		}
	}

	article.UpdatedAt = now
	if err := s.articles.Update(ctx, article, tagIDs); err != nil {
		return nil, storeError("update article", err, msgArticleSlugTaken)
	}

	s.log.Info().Str("article_id", id).Msg("Article updated")
	return s.reload(ctx, id)
}

// Delete soft-deletes articles. Unknown or already deleted ids are ignored.
func (s *articleService) Delete(ctx context.Context, ids []string) (int64, error) {
	if err := validation.ParseIDs(ids); err != nil {
		return 0, err
	}
	n, err := s.articles.SoftDelete(ctx, dedupe(ids))
	if err != nil {
		return 0, apperr.Upstream("delete articles", err)
	}
	s.log.Info().Int("requested", len(ids)).Int64("deleted", n).Msg("Articles deleted")
	return n, nil
}

// RegisterView counts one view of a live article
func (s *articleService) RegisterView(ctx context.Context, id string) (*models.ViewResult, error) {
	if err := validation.ParseID(id); err != nil {
		return nil, err
	}
	count, found, err := s.articles.IncrementViews(ctx, id, s.now().UTC())
	if err != nil {
		return nil, apperr.Upstream("register view", err)
	}
	if !found {
		return nil, apperr.NotFound("article")
	}
	return &models.ViewResult{ViewsCount: count}, nil
}

// Analytics returns the view counter of a live article; zero if never viewed
func (s *articleService) Analytics(ctx context.Context, id string) (*models.Analytics, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	a, err := s.articles.GetAnalytics(ctx, id)
	if err != nil {
		return nil, apperr.Upstream("get analytics", err)
	}
	if a == nil {
		return &models.Analytics{ArticleID: id}, nil
	}
	return a, nil
}

func (s *articleService) reload(ctx context.Context, id string) (*models.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Upstream("get article", err)
	}
	if article == nil {
		return nil, apperr.NotFound("article")
	}
	return article, nil
}

// checkCategory resolves an optional category reference; "" means none
func (s *articleService) checkCategory(ctx context.Context, id *string) (*string, error) {
	if id == nil || *id == "" {
		return nil, nil
	}
	c, err := s.categories.GetByID(ctx, *id)
	if err != nil {
		return nil, apperr.Upstream("get category", err)
	}
	if c == nil {
		return nil, apperr.InvalidField("categoryId", "category does not exist")
	}
	return &c.ID, nil
}

func (s *articleService) checkTags(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := s.tags.GetByIDs(ctx, ids)
	if err != nil {
		return apperr.Upstream("get tags", err)
	}
	if len(found) == len(ids) {
		return nil
	}

	known := make(map[string]bool, len(found))
	for _, t := range found {
		known[t.ID] = true
	}
	var details []apperr.FieldError
	for i, id := range ids {
		if !known[id] {
			details = append(details, apperr.FieldError{
				Path:    []string{"tagIds", strconv.Itoa(i)},
				Message: "tag does not exist",
			})
		}
	}
	return apperr.Validation(details)
}

// checkFilter rejects filter values the store could not compare
func checkFilter(f models.ArticleFilter) error {
	var details []apperr.FieldError
	if f.Status != "" && !models.ValidStatuses[f.Status] {
		details = append(details, apperr.FieldError{Path: []string{"status"}, Message: "must be one of draft, published, archived"})
	}
	if f.CategoryID != "" && validation.ParseID(f.CategoryID) != nil {
		details = append(details, apperr.FieldError{Path: []string{"categoryId"}, Message: "must be a valid UUID"})
	}
	if f.TagID != "" && validation.ParseID(f.TagID) != nil {
		details = append(details, apperr.FieldError{Path: []string{"tagId"}, Message: "must be a valid UUID"})
	}
	if len(details) > 0 {
		return apperr.Validation(details)
	}
	return nil
}
