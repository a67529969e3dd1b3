package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/blog-cms-api/internal/apperr"
	"github.com/blog-cms-api/internal/auth"
	"github.com/blog-cms-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SessionResolver turns a credential into a session, nil when absent
type SessionResolver interface {
	Resolve(ctx context.Context, token string) *models.Session
}

// Authorizer decides whether a session holds a role
type Authorizer interface {
	Authorize(ctx context.Context, session *models.Session, role string) error
}

const sessionKey = "session"

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Str("path", c.Request.URL.Path).Msg("Panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS. An empty or "*" allow-list admits any origin
// without credentials; otherwise matching origins are echoed back.
func corsMiddleware(allowed []string) gin.HandlerFunc {
	anyOrigin := len(allowed) == 0
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			anyOrigin = true
		}
		set[strings.TrimRight(o, "/")] = true
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		origin := c.GetHeader("Origin")
		switch {
		case anyOrigin:
			h.Set("Access-Control-Allow-Origin", "*")
		case origin != "" && set[origin]:
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")
		}
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// sessionMiddleware resolves the caller's session, if any, for every request.
// It never rejects; gating is RequireRole's job.
func sessionMiddleware(resolver SessionResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.TokenFromRequest(c.Request, cookieName)
		if session := resolver.Resolve(c.Request.Context(), token); session != nil {
			c.Set(sessionKey, session)
			c.Request = c.Request.WithContext(auth.WithSession(c.Request.Context(), session))
		}
		c.Next()
	}
}

// RequireRole runs the authorization gate in front of a route group
func RequireRole(gate Authorizer, role string, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := gate.Authorize(c.Request.Context(), currentSession(c), role); err != nil {
			if apperr.Is(err, apperr.KindForbidden) {
				log.Warn().Str("path", c.Request.URL.Path).Msg("Insufficient role")
			}
			writeError(c, log, err)
			return
		}
		c.Next()
	}
}

// currentSession returns the session resolved for this request, or nil
func currentSession(c *gin.Context) *models.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	s, _ := v.(*models.Session)
	return s
}
