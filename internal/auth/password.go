package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidLogin = errors.New("invalid email or password")

// HashPassword hashes a plaintext password with bcrypt's default cost
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a bcrypt hash with a plaintext candidate
func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidLogin
	}
	return nil
}
