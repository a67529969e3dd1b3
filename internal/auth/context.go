package auth

import (
	"context"

	"github.com/blog-cms-api/internal/models"
)

type ctxKey int

const sessionKey ctxKey = 1

func WithSession(ctx context.Context, s *models.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFromContext returns the resolved session, or nil
func SessionFromContext(ctx context.Context) *models.Session {
	s, _ := ctx.Value(sessionKey).(*models.Session)
	return s
}
