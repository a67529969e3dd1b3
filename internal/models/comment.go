package models

import (
	"time"
)

// Comment represents a comment on an article
type Comment struct {
	ID        string    `json:"id"`
	ArticleID string    `json:"articleId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// PublicComment is a comment as shown to readers; the email is never exposed
type PublicComment struct {
	ID        string    `json:"id"`
	ArticleID string    `json:"articleId"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public strips private fields
func (c *Comment) Public() PublicComment {
	return PublicComment{
		ID:        c.ID,
		ArticleID: c.ArticleID,
		Name:      c.Name,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

// MaxCommentLength is the maximum allowed characters in a comment body
const MaxCommentLength = 2000

// CommentCreateInput is the payload accepted by POST /api/articles/:id/comments
type CommentCreateInput struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,max=255,email"`
	Content string `json:"content" validate:"required,max=2000"`
}

// CommentUpdateInput lets admins edit a comment
type CommentUpdateInput struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=100"`
	Content *string `json:"content" validate:"omitempty,min=1,max=2000"`
}

// CommentFilter narrows comment listings
type CommentFilter struct {
	ListParams
	ArticleID string
}
