package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/garnizeh/skillswap/internal/apperr"
	"github.com/garnizeh/skillswap/internal/auth"
	"github.com/garnizeh/skillswap/internal/metrics"
	"github.com/garnizeh/skillswap/internal/models"
	"github.com/garnizeh/skillswap/pkg/repository"
)

type Accounts struct {
	users  repository.UserRepo
	hasher *auth.Hasher
	tokens *auth.Tokens
}

func NewAccounts(users repository.UserRepo, hasher *auth.Hasher, tokens *auth.Tokens) *Accounts {
	return &Accounts{users: users, hasher: hasher, tokens: tokens}
}

type SignupInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthResult is returned by both signup and login.
type AuthResult struct {
	Token     string `json:"token"`
	UserID    int64  `json:"userId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates an account and returns a token for it. First and last name
// are optional.
func (a *Accounts) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, apperr.Validation("email and password are required")
	}
	if len(in.Password) > auth.MaxPasswordBytes {
		return nil, apperr.Validation(fmt.Sprintf("password must be at most %d bytes", auth.MaxPasswordBytes))
	}

	existing, err := a.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("signup: lookup email: %w", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("email already registered")
	}

	hash, err := a.hasher.Hash(in.Password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return nil, apperr.Wrap(apperr.KindValidation, "password is too long", err)
	}
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	u := &models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
	}
	id, err := a.users.CreateUser(ctx, u)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, apperr.Conflict("email already registered")
	}
	if err != nil {
		return nil, fmt.Errorf("signup: create user: %w", err)
	}
	u.ID = id
	metrics.Signups.Inc()

	return a.issue(u)
}

// Login verifies credentials. An unknown email is a not-found error and a
// wrong password an auth error.
func (a *Accounts) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperr.Validation("email and password are required")
	}

	u, err := a.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("login: lookup email: %w", err)
	}
	if u == nil {
		metrics.Logins.WithLabelValues("unknown_user").Inc()
		return nil, apperr.NotFound("user not found")
	}
	if err := a.hasher.Compare(u.PasswordHash, password); err != nil {
		metrics.Logins.WithLabelValues("bad_password").Inc()
		return nil, apperr.Wrap(apperr.KindAuth, "invalid credentials", err)
	}
	metrics.Logins.WithLabelValues("ok").Inc()

	return a.issue(u)
}

// Authenticate resolves a bearer token to a user id.
func (a *Accounts) Authenticate(token string) (int64, error) {
	if token == "" {
		return 0, apperr.Auth("missing token")
	}
	claims, err := a.tokens.Verify(token)
	if err != nil {
		return 0, apperr.Wrap(apperr.KindAuth, "invalid or expired token", err)
	}
	return claims.UserID, nil
}

func (a *Accounts) issue(u *models.User) (*AuthResult, error) {
	token, err := a.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{
		Token:     token,
		UserID:    u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}, nil
}
