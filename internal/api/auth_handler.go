package api

import (
	"net/http"

	"github.com/blog-cms-api/internal/apperr"
	"github.com/blog-cms-api/internal/config"
	"github.com/blog-cms-api/internal/models"
	"github.com/blog-cms-api/internal/service"
	"github.com/blog-cms-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuthHandler handles login, logout and session endpoints
type AuthHandler struct {
	auth      service.AuthService
	cfg       config.AuthConfig
	validator *validation.Validator
	log       zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(services *service.Services, cfg *config.Config, v *validation.Validator, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:      services.Auth,
		cfg:       cfg.Auth,
		validator: v,
		log:       log.With().Str("handler", "auth").Logger(),
	}
}

// Login godoc
// @Summary Log in
// @Description Returns a bearer token and also sets it as an HttpOnly session cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body models.LoginInput true "credentials"
// @Success 200 {object} models.LoginResult
// @Failure 400 {object} ValidationErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var in models.LoginInput
	if !bind(c, h.validator, h.log, &in) {
		return
	}

	result, err := h.auth.Login(c.Request.Context(), &in)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.CookieName, result.Token, int(h.cfg.SessionTTL.Seconds()), "/", "", h.cfg.CookieSecure, true)
	c.JSON(http.StatusOK, result)
}

// Logout godoc
// @Summary Log out
// @Description Revokes the presented token and clears the session cookie.
// @Tags auth
// @Produce json
// @Security SessionToken
// @Success 200 {object} map[string]bool
// @Failure 401 {object} ErrorResponse
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.CookieName, "", -1, "/", "", h.cfg.CookieSecure, true)

	if err := h.auth.Logout(c.Request.Context(), currentSession(c)); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Session godoc
// @Summary Current session
// @Tags auth
// @Produce json
// @Security SessionToken
// @Success 200 {object} models.Session
// @Failure 401 {object} ErrorResponse
// @Router /api/auth/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	session := currentSession(c)
	if session == nil {
		writeError(c, h.log, apperr.Unauthenticated(apperr.ReasonNoSession))
		return
	}
	c.JSON(http.StatusOK, session)
}
