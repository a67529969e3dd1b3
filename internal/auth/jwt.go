package auth

import (
	"errors"
	"time"

	"github.com/blog-cms-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrEmptySecret  = errors.New("empty signing secret")
)

// Claims is the payload of a session token. The role is deliberately absent:
// it is always read from the store.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`

	jwt.RegisteredClaims
}

// TokenVerifier checks a credential and returns the identity it carries.
// It does not decide whether the identity is still current.
type TokenVerifier interface {
	Verify(token string) (*models.Session, error)
}

// JWT issues and verifies HS256 session tokens
type JWT struct {
	Secret   []byte
	TokenTTL time.Duration
	Issuer   string
	Now      func() time.Time
}

var _ TokenVerifier = JWT{}

func (j JWT) now() time.Time {
	if j.Now != nil {
		return j.Now().UTC()
	}
	return time.Now().UTC()
}

// Sign issues a token for user and returns it with its expiry
func (j JWT) Sign(user *models.User) (token string, session *models.Session, err error) {
	if len(j.Secret) == 0 {
		return "", nil, ErrEmptySecret
	}
	now := j.now()
	expiresAt := now.Add(j.TokenTTL)

	claims := Claims{
		Email: user.Email,
		Name:  user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			Issuer:    j.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(j.Secret)
	if err != nil {
		return "", nil, err
	}
	return s, claimsToSession(&claims), nil
}

// Verify checks the signature and issuer only. Expiry is reported in the
// session and judged by the Resolver against its own clock.
func (j JWT) Verify(token string) (*models.Session, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	}
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		return j.Secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	c, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if c.Subject == "" || c.ExpiresAt == nil || c.ID == "" {
		return nil, ErrInvalidToken
	}
	if j.Issuer != "" && c.Issuer != j.Issuer {
		return nil, ErrInvalidToken
	}
	return claimsToSession(c), nil
}

func claimsToSession(c *Claims) *models.Session {
	return &models.Session{
		UserID:    c.Subject,
		Email:     c.Email,
		Name:      c.Name,
		ExpiresAt: c.ExpiresAt.Time,
		TokenID:   c.ID,
	}
}
