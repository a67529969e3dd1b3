package service

import (
	"context"
	"time"

	"github.com/blog-cms-api/internal/apperr"
	"github.com/blog-cms-api/internal/models"
	"github.com/blog-cms-api/internal/repository"
	"github.com/blog-cms-api/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const msgCategorySlugTaken = "a category with this slug already exists"

type categoryService struct {
	repo repository.CategoryRepository
	now  func() time.Time
	log  zerolog.Logger
}

func newCategoryService(repo repository.CategoryRepository, now func() time.Time, log zerolog.Logger) *categoryService {
	return &categoryService{
		repo: repo,
		now:  now,
		log:  log.With().Str("service", "category").Logger(),
	}
}

func (s *categoryService) List(ctx context.Context, params models.ListParams) (*models.Page[*models.Category], error) {
	items, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, apperr.Upstream("list categories", err)
	}
	page := models.NewPage(items, total, params)
	return &page, nil
}

func (s *categoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	if err := validation.ParseID(id); err != nil {
		return nil, err
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Upstream("get category", err)
	}
	if c == nil {
		return nil, apperr.NotFound("category")
	}
	return c, nil
}

func (s *categoryService) Create(ctx context.Context, in *models.CategoryCreateInput) (*models.Category, error) {
	taken, err := s.repo.SlugExists(ctx, in.Slug, "")
	if err != nil {
		return nil, apperr.Upstream("check category slug", err)
	}
	if taken {
		return nil, apperr.Conflict(msgCategorySlugTaken)
	}

	now := s.now().UTC()
	c := &models.Category{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, storeError("create category", err, msgCategorySlugTaken)
	}

	s.log.Info().Str("category_id", c.ID).Str("slug", c.Slug).Msg("Category created")
	return c, nil
}

func (s *categoryService) Update(ctx context.Context, id string, in *models.CategoryUpdateInput) (*models.Category, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Slug != nil && *in.Slug != c.Slug {
		taken, err := s.repo.SlugExists(ctx, *in.Slug, id)
		if err != nil {
			return nil, apperr.Upstream("check category slug", err)
		}
		if taken {
			return nil, apperr.Conflict(msgCategorySlugTaken)
		}
		c.Slug = *in.Slug
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Description != nil {
		c.Description = in.Description
	}
	c.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, storeError("update category", err, msgCategorySlugTaken)
	}
	return c, nil
}

// Delete soft-deletes categories; their articles become uncategorised
func (s *categoryService) Delete(ctx context.Context, ids []string) (int64, error) {
	if err := validation.ParseIDs(ids); err != nil {
		return 0, err
	}
	n, err := s.repo.SoftDelete(ctx, dedupe(ids))
	if err != nil {
		return 0, apperr.Upstream("delete categories", err)
	}
	s.log.Info().Int64("deleted", n).Msg("Categories deleted")
	return n, nil
}
