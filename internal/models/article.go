package models

import (
	"time"
)

// ArticleStatus is the publication state of an article
type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "draft"
	StatusPublished ArticleStatus = "published"
	StatusArchived  ArticleStatus = "archived"
)

// ValidStatuses defines allowed article statuses
var ValidStatuses = map[ArticleStatus]bool{
	StatusDraft:     true,
	StatusPublished: true,
	StatusArchived:  true,
}

// Article represents an article in the system
type Article struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Slug         string        `json:"slug"`
	Summary      string        `json:"summary"`
	Content      string        `json:"content"`
	ThumbnailURL *string       `json:"thumbnailUrl,omitempty"`
	Status       ArticleStatus `json:"status"`
	AuthorID     string        `json:"authorId"`
	CategoryID   *string       `json:"categoryId,omitempty"`
	Tags         []Tag         `json:"tags"`
	ViewsCount   int64         `json:"viewsCount"`
	PublishedAt  *time.Time    `json:"publishedAt,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
	DeletedAt    *time.Time    `json:"-"`
}

// ArticleCreateInput is the payload accepted by POST /api/admin/articles
type ArticleCreateInput struct {
	Title        string        `json:"title" validate:"required,max=200"`
	Slug         string        `json:"slug" validate:"required,max=200,slug"`
	Summary      string        `json:"summary" validate:"max=500"`
	Content      string        `json:"content" validate:"required"`
	ThumbnailURL *string       `json:"thumbnailUrl" validate:"omitempty,max=2048"`
	Status       ArticleStatus `json:"status" validate:"oneof=draft published archived"`
	CategoryID   *string       `json:"categoryId" validate:"omitempty,uuid_or_empty"`
	TagIDs       []string      `json:"tagIds" validate:"omitempty,max=20,dive,uuid"`
}

// ApplyDefaults fills optional fields left empty by the client
func (in *ArticleCreateInput) ApplyDefaults() {
	if in.Status == "" {
		in.Status = StatusDraft
	}
}

// ArticleUpdateInput is a partial update; nil fields are left untouched.
// A non-nil empty TagIDs clears the article's tags.
type ArticleUpdateInput struct {
	Title        *string        `json:"title" validate:"omitempty,min=1,max=200"`
	Slug         *string        `json:"slug" validate:"omitempty,max=200,slug"`
	Summary      *string        `json:"summary" validate:"omitempty,max=500"`
	Content      *string        `json:"content" validate:"omitempty,min=1"`
	ThumbnailURL *string        `json:"thumbnailUrl" validate:"omitempty,max=2048"`
	Status       *ArticleStatus `json:"status" validate:"omitempty,oneof=draft published archived"`
	CategoryID   *string        `json:"categoryId" validate:"omitempty,uuid_or_empty"`
	TagIDs       []string       `json:"tagIds" validate:"omitempty,max=20,dive,uuid"`
}

// ArticleFilter narrows article listings
type ArticleFilter struct {
	ListParams
	Status     ArticleStatus
	CategoryID string
	TagID      string
}

// ViewResult is returned by the view-count endpoint
type ViewResult struct {
	ViewsCount int64 `json:"viewsCount"`
}
