package models

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxPage keeps (Page-1)*Limit from overflowing
	MaxPage = math.MaxInt / MaxLimit
)

// ListParams are the common listing parameters
type ListParams struct {
	Page   int
	Limit  int
	Search string
}

// Offset returns the row offset for the page
func (p ListParams) Offset() int {
	page := min(p.Page, MaxPage)
	if page < 1 {
		return 0
	}
	return (page - 1) * p.Limit
}

// Page is one page of a listing
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// NewPage builds a page, never returning a nil Items slice
func NewPage[T any](items []T, total int, p ListParams) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if p.Limit > 0 {
		pages = (total + p.Limit - 1) / p.Limit
	}
	return Page[T]{Items: items, Total: total, Page: p.Page, Limit: p.Limit, TotalPages: pages}
}

// BulkDeleteInput is the body of bulk DELETE requests
type BulkDeleteInput struct {
	IDs []string `json:"ids" validate:"required,min=1,max=100,dive,uuid"`
}

// Upload is the result of an image upload
type Upload struct {
	URL string `json:"url"`
}

// DeleteResult reports how many rows a delete actually changed. Deleting
// already-deleted or unknown ids is not an error, so Deleted may be 0.
type DeleteResult struct {
	Deleted int64 `json:"deleted"`
}
