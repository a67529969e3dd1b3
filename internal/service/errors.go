package service

import (
	"errors"

	"github.com/blog-cms-api/internal/apperr"
	"github.com/blog-cms-api/internal/repository"
)

// storeError maps a repository failure onto the error taxonomy. conflict is
// the client-facing message for a uniqueness violation.
func storeError(op string, err error, conflict string) error {
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return apperr.Conflict(conflict)
	case errors.Is(err, repository.ErrInvalidReference):
		return apperr.InvalidField("id", "references a record that does not exist")
	}
	return apperr.Upstream(op, err)
}
