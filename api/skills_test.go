package api_test

import (
	"fmt"
	"net/http"
	"strconv"
	"testing"

	"github.com/garnizeh/skillswap/internal/models"
)

func TestSkills_CreateAndGet(t *testing.T) {
	e := newTestEnv(t, false, nil)
	uid, token := e.signup(t, "mentor@example.com")

	body := map[string]any{"name": "Watercolor Painting", "category": "Art", "offering": map[string]string{"description": "beginner lessons"}}
	res, _ := e.do(t, http.MethodPost, "/api/skills", body, "")
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", res.StatusCode)
	}

	res, data := e.do(t, http.MethodPost, "/api/skills", body, token)
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", res.StatusCode, string(data))
	}
	created := decode[struct {
		Skill    models.Skill          `json:"skill"`
		Offering *models.SkillOffering `json:"offering"`
	}](t, data)
	if created.Skill.Slug != "watercolor-painting" || created.Offering == nil || created.Offering.UserID != uid {
		t.Fatalf("unexpected create body %s", string(data))
	}

	res, data = e.do(t, http.MethodGet, "/api/skills/"+strconv.FormatInt(created.Skill.ID, 10), nil, "")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("get skill: expected 200 got %d body=%s", res.StatusCode, string(data))
	}

	res, _ = e.do(t, http.MethodGet, "/api/offerings/"+created.Offering.Slug, nil, "")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("get offering: expected 200 got %d", res.StatusCode)
	}
	_, data = e.do(t, http.MethodGet, fmt.Sprintf("/api/offerings?userId=%d", uid), nil, "")
	offs := decode[struct {
		Offerings []models.SkillOffering `json:"offerings"`
	}](t, data).Offerings
	if len(offs) != 1 {
		t.Fatalf("unexpected offerings %s", string(data))
	}

	res, _ = e.do(t, http.MethodPost, "/api/skills", map[string]any{"name": "No Category"}, token)
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing category: expected 400 got %d", res.StatusCode)
	}
	res, _ = e.do(t, http.MethodGet, "/api/skills/999", nil, "")
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown skill: expected 404 got %d", res.StatusCode)
	}
}

func TestSkills_List(t *testing.T) {
	e := newTestEnv(t, false, nil)
	for i := 0; i < 30; i++ {
		e.mocks.Store.AddSkill(models.Skill{Name: fmt.Sprintf("S%d", i), Slug: fmt.Sprintf("s%d", i), Category: "misc"})
	}

	type page struct {
		Success bool           `json:"success"`
		Total   int64          `json:"total"`
		Limit   int            `json:"limit"`
		Offset  int            `json:"offset"`
		Items   []models.Skill `json:"items"`
	}

	_, data := e.do(t, http.MethodGet, "/api/skills", nil, "")
	p := decode[page](t, data)
	if !p.Success || p.Total != 30 || p.Limit != 20 || len(p.Items) != 20 {
		t.Fatalf("unexpected default page %s", string(data))
	}

	_, data = e.do(t, http.MethodGet, "/api/skills?limit=10&offset=25", nil, "")
	p = decode[page](t, data)
	if p.Offset != 25 || len(p.Items) != 5 {
		t.Fatalf("unexpected page %s", string(data))
	}

	res, _ := e.do(t, http.MethodGet, "/api/skills?limit=ten", nil, "")
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad limit: expected 400 got %d", res.StatusCode)
	}
}
