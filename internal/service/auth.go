package service

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/smr-site/reviews-api/internal/errors"
)

// to mock service in tests
type AuthService interface {
	Login(password string) error
}

// Auth verifies the single admin password. A bcrypt hash is preferred; a
// plaintext password compared in constant time is accepted for setups that
// predate hashing.
type Auth struct {
	password     string
	passwordHash string
}

func NewAuth(password, passwordHash string) *Auth {
	return &Auth{password: password, passwordHash: passwordHash}
}

var (
	errBadPassword        = &errors.ErrorWithStatusCode{Message: "bad_password", StatusCode: 401}
	errAdminNotConfigured = &errors.ErrorWithStatusCode{Message: "admin_not_configured", StatusCode: 500}
)

func (a *Auth) Login(password string) error {
	if a.passwordHash != "" {
		if bcrypt.CompareHashAndPassword([]byte(a.passwordHash), []byte(password)) != nil {
			return errBadPassword
		}
		return nil
	}

	if a.password == "" {
		return errAdminNotConfigured
	}

	if subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) != 1 {
		return errBadPassword
	}
	return nil
}
