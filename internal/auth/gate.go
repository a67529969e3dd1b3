package auth

import (
	"context"

	"github.com/blog-cms-api/internal/apperr"
	"github.com/blog-cms-api/internal/models"
)

// UserLookup reads a user row by id; (nil, nil) means absent
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Gate decides whether a session may perform a role-restricted operation.
// The role comes from the store on every call, never from the token, so a
// downgrade takes effect on the next request.
type Gate struct {
	users UserLookup
}

func NewGate(users UserLookup) *Gate {
	return &Gate{users: users}
}

// Authorize returns nil to proceed, or an *apperr.Error carrying the denial reason
func (g *Gate) Authorize(ctx context.Context, session *models.Session, role string) error {
	if session == nil {
		return apperr.Unauthenticated(apperr.ReasonNoSession)
	}

	user, err := g.users.GetByID(ctx, session.UserID)
	if err != nil {
		return apperr.Upstream("load user role", err)
	}
	if user == nil || !user.Active {
		return apperr.Unauthenticated(apperr.ReasonNoSession)
	}
	if user.Role != role {
		return apperr.Forbidden(apperr.ReasonInsufficientRole)
	}
	return nil
}
