package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/garnizeh/skillswap/internal/apperr"
	"github.com/garnizeh/skillswap/internal/service"
	"github.com/garnizeh/skillswap/pkg/repository/mock"
)

func TestAccounts_Signup(t *testing.T) {
	tests := []struct {
		name     string
		in       service.SignupInput
		prepare  func(m *mock.Mocks)
		wantKind apperr.Kind
		wantErr  bool
	}{
		{
			name: "ok",
			in:   service.SignupInput{Email: " Ana@Example.com ", Password: "pw", FirstName: "Ana", LastName: "Lima"},
		},
		{
			name: "names optional",
			in:   service.SignupInput{Email: "x@example.com", Password: "pw"},
		},
		{
			name:     "missing email",
			in:       service.SignupInput{Password: "pw"},
			wantErr:  true,
			wantKind: apperr.KindValidation,
		},
		{
			name:     "missing password",
			in:       service.SignupInput{Email: "x@example.com"},
			wantErr:  true,
			wantKind: apperr.KindValidation,
		},
		{
			name:     "password over 72 bytes",
			in:       service.SignupInput{Email: "x@example.com", Password: strings.Repeat("é", 40)},
			wantErr:  true,
			wantKind: apperr.KindValidation,
		},
		{
			name: "multibyte password at the limit",
			in:   service.SignupInput{Email: "x@example.com", Password: strings.Repeat("é", 36)},
		},
		{
			name: "duplicate email",
			in:   service.SignupInput{Email: "dup@example.com", Password: "pw"},
			prepare: func(m *mock.Mocks) {
				m.Store.AddUser(modelsUser("dup@example.com"))
			},
			wantErr:  true,
			wantKind: apperr.KindConflict,
		},
		{
			name: "store failure",
			in:   service.SignupInput{Email: "x@example.com", Password: "pw"},
			prepare: func(m *mock.Mocks) {
				m.Store.CreateUserErr = errors.New("disk full")
			},
			wantErr:  true,
			wantKind: apperr.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mock.NewMocks()
			if tt.prepare != nil {
				tt.prepare(m)
			}
			before := m.Store.UserCount()
			svc := newServices(t, m, nil)

			res, err := svc.Accounts.Signup(context.Background(), tt.in)
			if tt.wantErr {
				wantKind(t, err, tt.wantKind)
				if m.Store.UserCount() != before {
					t.Fatalf("no user must be created on failure")
				}
				return
			}
			if err != nil {
				t.Fatalf("Signup: %v", err)
			}
			if res.Token == "" || res.UserID == 0 {
				t.Fatalf("expected token and id, got %+v", res)
			}
			uid, err := svc.Accounts.Authenticate(res.Token)
			if err != nil || uid != res.UserID {
				t.Fatalf("token does not resolve to user: %d %v", uid, err)
			}
			stored := m.Store.User(res.UserID)
			if stored.PasswordHash == "" || stored.PasswordHash == tt.in.Password {
				t.Fatalf("password must be stored hashed")
			}
		})
	}
}

func TestAccounts_Login(t *testing.T) {
	m := mock.NewMocks()
	svc := newServices(t, m, nil)
	ctx := context.Background()

	signed, err := svc.Accounts.Signup(ctx, service.SignupInput{Email: "ana@example.com", Password: "s3cret", FirstName: "Ana"})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	res, err := svc.Accounts.Login(ctx, "ANA@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.UserID != signed.UserID || res.FirstName != "Ana" || res.Token == "" {
		t.Fatalf("unexpected login result %+v", res)
	}

	_, err = svc.Accounts.Login(ctx, "ana@example.com", "wrong")
	wantKind(t, err, apperr.KindAuth)

	_, err = svc.Accounts.Login(ctx, "nobody@example.com", "s3cret")
	wantKind(t, err, apperr.KindNotFound)

	_, err = svc.Accounts.Login(ctx, "", "")
	wantKind(t, err, apperr.KindValidation)
}

func TestAccounts_Authenticate(t *testing.T) {
	svc := newServices(t, mock.NewMocks(), nil)

	_, err := svc.Accounts.Authenticate("")
	wantKind(t, err, apperr.KindAuth)

	_, err = svc.Accounts.Authenticate("not.a.token")
	wantKind(t, err, apperr.KindAuth)
}
