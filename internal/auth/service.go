package auth

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/alexedwards/argon2id"

	"github.com/GyroZepelix/newsboard/internal/apperr"
	"github.com/GyroZepelix/newsboard/internal/users"
	"github.com/GyroZepelix/newsboard/internal/validate"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 64
)

// Sentinel errors for the password policy.
var (
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", minPasswordLength)
	ErrPasswordTooLong  = fmt.Errorf("password must be at most %d characters", maxPasswordLength)
)

// Store is the persistence surface the Service needs.
type Store interface {
	CreateUser(ctx context.Context, reg validate.Registration, passwordHash string) (*users.User, error)
	GetCredentialsByEmail(ctx context.Context, email string) (*Credentials, error)
	GetUser(ctx context.Context, username string) (*users.User, error)
}

// Session is the result of a successful registration or login.
type Session struct {
	User  *users.User `json:"user"`
	Token string      `json:"token"`
}

// Service provides registration and login with Argon2id password hashing and
// JWT session tokens.
type Service struct {
	repo      Store
	jwtSecret string
	tokenTTL  time.Duration
}

// NewService creates a new auth Service.
func NewService(repo Store, jwtSecret string, tokenTTL time.Duration) *Service {
	return &Service{
		repo:      repo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// HashPassword hashes a password using Argon2id with secure default parameters.
func HashPassword(password string) (string, error) {
	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return hash, nil
}

// VerifyPassword checks whether the given plain-text password matches the
// provided Argon2id hash.
func VerifyPassword(hash, password string) (bool, error) {
	match, err := argon2id.ComparePasswordAndHash(password, hash)
	if err != nil {
		return false, fmt.Errorf("verifying password: %w", err)
	}
	return match, nil
}

// Register creates the user described by reg and opens a session for it.
// The password is checked against the length policy and hashed before the
// insert; a duplicate username or email is reported by the store.
func (s *Service) Register(ctx context.Context, reg validate.Registration) (*Session, error) {
	if err := validatePassword(reg.Password); err != nil {
		return nil, apperr.InvalidFormat("password", err)
	}

	hash, err := HashPassword(reg.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.CreateUser(ctx, reg, hash)
	if err != nil {
		return nil, err
	}

	token, err := CreateToken(user.Username, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token}, nil
}

// Login verifies the credentials in l. An unknown email is not found; a
// wrong password is a bad password failure.
func (s *Service) Login(ctx context.Context, l validate.Login) (*Session, error) {
	creds, err := s.repo.GetCredentialsByEmail(ctx, l.Email)
	if err != nil {
		return nil, err
	}

	match, err := VerifyPassword(creds.PasswordHash, l.Password)
	if err != nil {
		return nil, err
	}
	if !match {
		return nil, apperr.BadPassword()
	}

	user, err := s.repo.GetUser(ctx, creds.Username)
	if err != nil {
		return nil, fmt.Errorf("loading user after login: %w", err)
	}

	token, err := CreateToken(user.Username, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token}, nil
}

// isLoginRejection reports whether err is a credential failure rather than a
// server fault.
func isLoginRejection(err error) bool {
	return errors.Is(err, apperr.ErrBadPassword) || errors.Is(err, apperr.ErrNotFound)
}

// validatePassword checks that the password meets the length policy. Uses rune
// count rather than byte length so that multi-byte UTF-8 characters are counted
// correctly.
func validatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n < minPasswordLength {
		return ErrPasswordTooShort
	}
	if n > maxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}
