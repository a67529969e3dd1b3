package models

import "time"

// Analytics is the one-to-one view counter of an article. LastViewedAt is
// nil until the first view.
type Analytics struct {
	ArticleID    string     `json:"articleId"`
	ViewsCount   int64      `json:"viewsCount"`
	LastViewedAt *time.Time `json:"lastViewedAt"`
}
