package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/garnizeh/skillswap/internal/apperr"
	"github.com/garnizeh/skillswap/internal/models"
	"github.com/garnizeh/skillswap/internal/payload"
	"github.com/garnizeh/skillswap/internal/service"
)

type SkillsHandler struct {
	catalog *service.Catalog
	schemas *payload.Registry
}

func NewSkillsHandler(catalog *service.Catalog, schemas *payload.Registry) *SkillsHandler {
	return &SkillsHandler{catalog: catalog, schemas: schemas}
}

type createSkillRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	VideoURL    string `json:"videoUrl"`
	Offering    *struct {
		Description string `json:"description"`
		ImageURL    string `json:"imageUrl"`
		VideoURL    string `json:"videoUrl"`
	} `json:"offering"`
}

type createSkillResponse struct {
	Success  bool                  `json:"success"`
	Skill    *models.Skill         `json:"skill"`
	Offering *models.SkillOffering `json:"offering,omitempty"`
}

func (h *SkillsHandler) ListSkills(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", service.DefaultPageLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, err := h.catalog.ListSkills(r.Context(), r.URL.Query().Get("category"), limit, offset)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, struct {
		Success bool `json:"success"`
		*service.SkillPage
	}{Success: true, SkillPage: page}, http.StatusOK)
}

func (h *SkillsHandler) CreateSkill(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req createSkillRequest
	if err := decodeBody(r, h.schemas, payload.SkillCreate, &req); err != nil {
		writeError(w, r, err)
		return
	}

	in := service.CreateSkillInput{
		UserID:      userID,
		Category:    req.Category,
		Name:        req.Name,
		Description: req.Description,
		VideoURL:    req.VideoURL,
	}
	if req.Offering != nil {
		in.Offering = &service.OfferingInput{
			Description: req.Offering.Description,
			ImageURL:    req.Offering.ImageURL,
			VideoURL:    req.Offering.VideoURL,
		}
	}

	sk, off, err := h.catalog.CreateSkill(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, createSkillResponse{Success: true, Skill: sk, Offering: off}, http.StatusCreated)
}

func (h *SkillsHandler) GetSkill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	sk, err := h.catalog.GetSkill(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"success": true, "skill": sk}, http.StatusOK)
}

func (h *SkillsHandler) ListOfferings(w http.ResponseWriter, r *http.Request) {
	var userID int64
	if raw := r.URL.Query().Get("userId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			writeError(w, r, apperr.Validation("invalid userId"))
			return
		}
		userID = id
	}
	list, err := h.catalog.ListOfferings(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"success": true, "offerings": list}, http.StatusOK)
}

func (h *SkillsHandler) GetOffering(w http.ResponseWriter, r *http.Request) {
	o, err := h.catalog.GetOffering(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"success": true, "offering": o}, http.StatusOK)
}
