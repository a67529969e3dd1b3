package models

import "time"

// Category groups articles
type Category struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description *string    `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"-"`
}

// CategoryCreateInput is the payload accepted by POST /api/admin/categories
type CategoryCreateInput struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Slug        string  `json:"slug" validate:"required,max=100,slug"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// CategoryUpdateInput is a partial update
type CategoryUpdateInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Slug        *string `json:"slug" validate:"omitempty,max=100,slug"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}
