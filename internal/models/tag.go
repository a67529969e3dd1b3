package models

import "time"

// MaxTagNameLength bounds Tag.Name
const MaxTagNameLength = 100

// Tag labels articles. Tags have no soft delete.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TagCreateInput is the payload accepted by POST /api/admin/tags
type TagCreateInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

// TagUpdateInput is a partial update
type TagUpdateInput struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=100"`
}
