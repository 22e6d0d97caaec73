package api_test

import (
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/garnizeh/skillswap/internal/models"
)

func TestUsers_Me(t *testing.T) {
	e := newTestEnv(t, false, nil)
	uid, token := e.signup(t, "me@example.com")

	res, _ := e.do(t, http.MethodGet, "/api/users/me", nil, "")
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", res.StatusCode)
	}

	res, data := e.do(t, http.MethodGet, "/api/users/me", nil, token)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", res.StatusCode, string(data))
	}
	if strings.Contains(string(data), "password") {
		t.Fatalf("password hash leaked: %s", string(data))
	}
	u := decode[struct {
		User models.User `json:"user"`
	}](t, data).User
	if u.ID != uid || u.Email != "me@example.com" {
		t.Fatalf("unexpected user %s", string(data))
	}
}

func TestUsers_GetPublic(t *testing.T) {
	e := newTestEnv(t, false, nil)
	uid, _ := e.signup(t, "pub@example.com")

	res, data := e.do(t, http.MethodGet, "/api/users/"+strconv.FormatInt(uid, 10), nil, "")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}
	if strings.Contains(string(data), "pub@example.com") {
		t.Fatalf("public profile must not expose the email: %s", string(data))
	}

	res, _ = e.do(t, http.MethodGet, "/api/users/999", nil, "")
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", res.StatusCode)
	}
}

func TestUsers_CheckUsername(t *testing.T) {
	e := newTestEnv(t, false, nil)
	_, token := e.signup(t, "checker@example.com")
	alice := "alice"
	e.mocks.Store.AddUser(models.User{Email: "alice@example.com", PasswordHash: "x", Username: &alice})

	tests := []struct {
		query     string
		available bool
	}{
		{query: "Alice", available: false},
		{query: "ALICE", available: false},
		{query: "alicia", available: true},
		{query: "al", available: false},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			res, data := e.do(t, http.MethodGet, "/api/users/check-username?username="+tt.query, nil, token)
			if res.StatusCode != http.StatusOK {
				t.Fatalf("expected 200 got %d body=%s", res.StatusCode, string(data))
			}
			got := decode[struct {
				Available bool `json:"available"`
			}](t, data)
			if got.Available != tt.available {
				t.Fatalf("want available=%v body=%s", tt.available, string(data))
			}
		})
	}

	res, _ := e.do(t, http.MethodGet, "/api/users/check-username?username=Alice", nil, "")
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", res.StatusCode)
	}
}

func TestUsers_SavedSkills(t *testing.T) {
	e := newTestEnv(t, false, nil)
	_, token := e.signup(t, "saver@example.com")
	skill := e.mocks.Store.AddSkill(models.Skill{Name: "Chess", Slug: "chess", Category: "games"})

	type saved struct {
		SavedSkills []int64 `json:"savedSkills"`
	}

	for i := 0; i < 2; i++ {
		res, data := e.do(t, http.MethodPost, "/api/users/me/saved-skills", map[string]any{"skillId": skill}, token)
		if res.StatusCode != http.StatusOK {
			t.Fatalf("add saved: expected 200 got %d body=%s", res.StatusCode, string(data))
		}
		if got := decode[saved](t, data).SavedSkills; len(got) != 1 || got[0] != skill {
			t.Fatalf("unexpected saved skills %s", string(data))
		}
	}

	res, _ := e.do(t, http.MethodPost, "/api/users/me/saved-skills", map[string]any{"skillId": 999}, token)
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown skill: expected 404 got %d", res.StatusCode)
	}

	_, data := e.do(t, http.MethodGet, "/api/users/me/saved-skills", nil, token)
	if got := decode[saved](t, data).SavedSkills; len(got) != 1 {
		t.Fatalf("unexpected list %s", string(data))
	}

	res, data = e.do(t, http.MethodDelete, "/api/users/me/saved-skills/"+strconv.FormatInt(skill, 10), nil, token)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("remove: expected 200 got %d", res.StatusCode)
	}
	if got := decode[saved](t, data).SavedSkills; len(got) != 0 {
		t.Fatalf("expected empty list after remove, got %s", string(data))
	}
}
