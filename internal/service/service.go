// Package service implements the skillswap business operations on top of the
// repository contracts. Errors are classified with apperr.
package service

import (
	"errors"
	"io"
	"log/slog"

	"github.com/garnizeh/skillswap/internal/auth"
	"github.com/garnizeh/skillswap/pkg/assets"
	"github.com/garnizeh/skillswap/pkg/repository"
)

// Deps are the collaborators shared by all services.
type Deps struct {
	Store    repository.Store
	Requests repository.RequestRepo
	Reports  repository.ReportRepo
	Hasher   *auth.Hasher
	Tokens   *auth.Tokens
	Uploader assets.Uploader
	Logger   *slog.Logger
}

// Services groups every operation set the HTTP layer needs.
type Services struct {
	Accounts   *Accounts
	Onboarding *Onboarding
	Exchange   *Exchange
	Catalog    *Catalog
	Profiles   *Profiles
	Chats      *Chats
	Reports    *Reports
}

func New(d Deps) (*Services, error) {
	if d.Store == nil || d.Requests == nil || d.Reports == nil {
		return nil, errors.New("service: store, requests and reports are required")
	}
	if d.Hasher == nil || d.Tokens == nil {
		return nil, errors.New("service: hasher and tokens are required")
	}
	if d.Uploader == nil {
		d.Uploader = assets.Noop{}
	}
	if d.Logger == nil {
		d.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	return &Services{
		Accounts:   NewAccounts(d.Store, d.Hasher, d.Tokens),
		Onboarding: NewOnboarding(d.Store, d.Store, d.Uploader, d.Logger),
		Exchange:   NewExchange(d.Requests, d.Store, d.Store),
		Catalog:    NewCatalog(d.Store, d.Store, d.Store),
		Profiles:   NewProfiles(d.Store, d.Store),
		Chats:      NewChats(d.Store, d.Store),
		Reports:    NewReports(d.Reports),
	}, nil
}
