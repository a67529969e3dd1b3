package service

import (
	"strings"

	"github.com/blog-cms-api/internal/apperr"
)

// textField is a named free-text input checked by requireText
type textField struct {
	name  string
	value *string
}

// requireText rejects provided fields that are blank once surrounding
// whitespace is removed. Nil values are skipped so partial updates pass.
func requireText(fields ...textField) error {
	var details []apperr.FieldError
	for _, f := range fields {
		if f.value != nil && strings.TrimSpace(*f.value) == "" {
			details = append(details, apperr.FieldError{Path: []string{f.name}, Message: "is required"})
		}
	}
	if len(details) > 0 {
		return apperr.Validation(details)
	}
	return nil
}

// dedupe drops repeated ids, keeping first-seen order
func dedupe(ids []string) []string {
	if ids == nil {
		return nil
	}
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
