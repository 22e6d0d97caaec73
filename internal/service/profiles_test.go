package service_test

import (
	"context"
	"testing"

	"github.com/garnizeh/skillswap/internal/apperr"
	"github.com/garnizeh/skillswap/internal/models"
	"github.com/garnizeh/skillswap/pkg/repository/mock"
)

func TestProfiles_CheckUsername(t *testing.T) {
	m := mock.NewMocks()
	u := modelsUser("a@example.com")
	u.Username = strPtr("Alice")
	alice := m.Store.AddUser(u)
	svc := newServices(t, m, nil)
	ctx := context.Background()

	tests := []struct {
		name      string
		username  string
		self      int64
		available bool
	}{
		{name: "taken exact", username: "Alice", available: false},
		{name: "taken other case", username: "ALICE", available: false},
		{name: "own name", username: "alice", self: alice, available: true},
		{name: "free", username: "bobby", available: true},
		{name: "too short", username: "bob", available: false},
		{name: "regex chars", username: "Al.ce", available: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Profiles.CheckUsername(ctx, tt.username, tt.self)
			if err != nil {
				t.Fatalf("CheckUsername: %v", err)
			}
			if res.Available != tt.available {
				t.Fatalf("want available=%v got %+v", tt.available, res)
			}
			if !res.Available && res.Reason == "" {
				t.Fatalf("unavailable names carry a reason")
			}
		})
	}

	_, err := svc.Profiles.CheckUsername(ctx, "  ", 0)
	wantKind(t, err, apperr.KindValidation)
}

func TestProfiles_SavedSkills(t *testing.T) {
	m := mock.NewMocks()
	uid := m.Store.AddUser(modelsUser("a@example.com"))
	s1 := m.Store.AddSkill(models.Skill{Name: "A", Slug: "a"})
	s2 := m.Store.AddSkill(models.Skill{Name: "B", Slug: "b"})
	svc := newServices(t, m, nil)
	ctx := context.Background()

	if _, err := svc.Profiles.AddSaved(ctx, uid, s1); err != nil {
		t.Fatalf("AddSaved: %v", err)
	}
	ids, err := svc.Profiles.AddSaved(ctx, uid, s1)
	if err != nil {
		t.Fatalf("AddSaved twice: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("saving twice must not duplicate, got %v", ids)
	}
	ids, _ = svc.Profiles.AddSaved(ctx, uid, s2)
	if len(ids) != 2 || ids[0] != s1 || ids[1] != s2 {
		t.Fatalf("unexpected saved ids %v", ids)
	}

	ids, err = svc.Profiles.RemoveSaved(ctx, uid, s1)
	if err != nil || len(ids) != 1 || ids[0] != s2 {
		t.Fatalf("unexpected after remove %v %v", ids, err)
	}

	_, err = svc.Profiles.AddSaved(ctx, uid, 9999)
	wantKind(t, err, apperr.KindNotFound)

	_, err = svc.Profiles.AddSaved(ctx, 0, s1)
	wantKind(t, err, apperr.KindAuth)
}

func TestProfiles_GetProfile(t *testing.T) {
	m := mock.NewMocks()
	uid := m.Store.AddUser(modelsUser("a@example.com"))
	svc := newServices(t, m, nil)

	u, err := svc.Profiles.GetProfile(context.Background(), uid)
	if err != nil || u.Email != "a@example.com" {
		t.Fatalf("GetProfile: %+v %v", u, err)
	}
	_, err = svc.Profiles.GetProfile(context.Background(), 77)
	wantKind(t, err, apperr.KindNotFound)
}
