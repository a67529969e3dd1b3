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

const msgTagNameTaken = "a tag with this name already exists"

type tagService struct {
	repo repository.TagRepository
	now  func() time.Time
	log  zerolog.Logger
}

func newTagService(repo repository.TagRepository, now func() time.Time, log zerolog.Logger) *tagService {
	return &tagService{
		repo: repo,
		now:  now,
		log:  log.With().Str("service", "tag").Logger(),
	}
}

func (s *tagService) List(ctx context.Context, params models.ListParams) (*models.Page[*models.Tag], error) {
	items, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, apperr.Upstream("list tags", err)
	}
	page := models.NewPage(items, total, params)
	return &page, nil
}

func (s *tagService) Get(ctx context.Context, id string) (*models.Tag, error) {
	if err := validation.ParseID(id); err != nil {
		return nil, err
	}
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Upstream("get tag", err)
	}
	if t == nil {
		return nil, apperr.NotFound("tag")
	}
	return t, nil
}

func (s *tagService) Create(ctx context.Context, in *models.TagCreateInput) (*models.Tag, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.InvalidField("name", "is required")
	}
	taken, err := s.repo.NameExists(ctx, name, "")
	if err != nil {
		return nil, apperr.Upstream("check tag name", err)
	}
	if taken {
		return nil, apperr.Conflict(msgTagNameTaken)
	}

	now := s.now().UTC()
	t := &models.Tag{ID: uuid.New().String(), Name: name, CreatedAt: now, UpdatedAt: now}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, storeError("create tag", err, msgTagNameTaken)
	}

	s.log.Info().Str("tag_id", t.ID).Str("name", t.Name).Msg("Tag created")
	return t, nil
}

func (s *tagService) Update(ctx context.Context, id string, in *models.TagUpdateInput) (*models.Tag, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name == nil {
		return t, nil
	}

	name := strings.TrimSpace(*in.Name)
	if name == "" {
		return nil, apperr.InvalidField("name", "is required")
	}
	if name != t.Name {
		taken, err := s.repo.NameExists(ctx, name, id)
		if err != nil {
			return nil, apperr.Upstream("check tag name", err)
		}
		if taken {
			return nil, apperr.Conflict(msgTagNameTaken)
		}
	}

	t.Name = name
	t.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, storeError("update tag", err, msgTagNameTaken)
	}
	return t, nil
}

// Delete removes tags physically; article associations go with them
func (s *tagService) Delete(ctx context.Context, ids []string) (int64, error) {
	if err := validation.ParseIDs(ids); err != nil {
		return 0, err
	}
	n, err := s.repo.Delete(ctx, dedupe(ids))
	if err != nil {
		return 0, apperr.Upstream("delete tags", err)
	}
	s.log.Info().Int64("deleted", n).Msg("Tags deleted")
	return n, nil
}
