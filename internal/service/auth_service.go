package service

import (
	"context"
	"strings"
	"time"

	"github.com/blog-cms-api/internal/apperr"
	"github.com/blog-cms-api/internal/auth"
	"github.com/blog-cms-api/internal/models"
	"github.com/blog-cms-api/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const msgInvalidLogin = "invalid email or password"

type authService struct {
	users    repository.UserRepository
	tokens   TokenIssuer
	sessions SessionRevoker
	now      func() time.Time
	log      zerolog.Logger
}

func newAuthService(users repository.UserRepository, tokens TokenIssuer, sessions SessionRevoker, now func() time.Time, log zerolog.Logger) *authService {
	return &authService{
		users:    users,
		tokens:   tokens,
		sessions: sessions,
		now:      now,
		log:      log.With().Str("service", "auth").Logger(),
	}
}

// Login checks credentials and issues a session token
func (s *authService) Login(ctx context.Context, in *models.LoginInput) (*models.LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, apperr.Upstream("get user", err)
	}
	if user == nil || !user.Active {
		return nil, apperr.Unauthenticated(msgInvalidLogin)
	}
	if err := auth.CheckPassword(user.PasswordHash, in.Password); err != nil {
		s.log.Warn().Str("user_id", user.ID).Msg("Failed login attempt")
		return nil, apperr.Unauthenticated(msgInvalidLogin)
	}

	token, session, err := s.tokens.Sign(user)
	if err != nil {
		return nil, apperr.Upstream("sign token", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("User logged in")
	return &models.LoginResult{Token: token, ExpiresAt: session.ExpiresAt, User: user}, nil
}

// Logout revokes the session's token
func (s *authService) Logout(ctx context.Context, session *models.Session) error {
	if session == nil {
		return apperr.Unauthenticated(apperr.ReasonNoSession)
	}
	if s.sessions == nil {
		return nil
	}
	if err := s.sessions.Revoke(ctx, session); err != nil {
		return apperr.Upstream("revoke session", err)
	}
	s.log.Info().Str("user_id", session.UserID).Msg("User logged out")
	return nil
}

// CreateUser provisions an account with a bcrypt-hashed password
func (s *authService) CreateUser(ctx context.Context, in *models.UserCreateInput) (*models.User, error) {
	in.ApplyDefaults()
	email := strings.ToLower(strings.TrimSpace(in.Email))

	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, apperr.Upstream("check email", err)
	}
	if exists {
		return nil, apperr.Conflict("a user with this email already exists")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Upstream("hash password", err)
	}

	now := s.now().UTC()
	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         in.Name,
		Role:         in.Role,
		Active:       true,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, storeError("create user", err, "a user with this email already exists")
	}

	s.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("User created")
	return user, nil
}
