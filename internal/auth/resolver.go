package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/blog-cms-api/internal/cache"
	"github.com/blog-cms-api/internal/models"
	"github.com/rs/zerolog"
)

const revokedPrefix = "session:revoked:"

// Resolver turns credential material into a session, or nil when the caller
// has none that is currently valid.
type Resolver struct {
	verifier TokenVerifier
	revoked  cache.Store
	now      func() time.Time
	log      zerolog.Logger
}

// NewResolver creates a resolver. revoked may be nil when logout is not supported.
func NewResolver(verifier TokenVerifier, revoked cache.Store, log zerolog.Logger) *Resolver {
	return &Resolver{
		verifier: verifier,
		revoked:  revoked,
		now:      time.Now,
		log:      log.With().Str("component", "session_resolver").Logger(),
	}
}

// WithClock replaces the time source
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	r.now = now
	return r
}

// Resolve returns the session behind token. Expired, revoked or unverifiable
// tokens resolve to nil.
func (r *Resolver) Resolve(ctx context.Context, token string) *models.Session {
	if token == "" {
		return nil
	}

	session, err := r.verifier.Verify(token)
	if err != nil || session == nil {
		r.log.Debug().Err(err).Msg("Token rejected")
		return nil
	}

	if session.Expired(r.now()) {
		return nil
	}

	if r.revoked != nil && session.TokenID != "" {
		_, found, err := r.revoked.Get(ctx, revokedPrefix+session.TokenID)
		if err != nil {
			// fail closed
			r.log.Error().Err(err).Msg("Revocation lookup failed")
			return nil
		}
		if found {
			return nil
		}
	}

	return session
}

// Revoke invalidates the session's token until it would have expired anyway
func (r *Resolver) Revoke(ctx context.Context, session *models.Session) error {
	if r.revoked == nil || session == nil || session.TokenID == "" {
		return nil
	}
	ttl := session.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	return r.revoked.Set(ctx, revokedPrefix+session.TokenID, []byte(session.UserID), ttl)
}

// TokenFromRequest extracts the credential: a Bearer header wins over the cookie
func TokenFromRequest(req *http.Request, cookieName string) string {
	if tok := bearerToken(req.Header.Get("Authorization")); tok != "" {
		return tok
	}
	if cookieName == "" {
		return ""
	}
	c, err := req.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(c.Value)
}

func bearerToken(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	parts := strings.SplitN(v, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
