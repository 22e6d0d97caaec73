package api

import (
	"net/http"
	"time"

	"github.com/garnizeh/skillswap/internal/models"
	"github.com/garnizeh/skillswap/internal/payload"
	"github.com/garnizeh/skillswap/internal/service"
)

type UsersHandler struct {
	profiles *service.Profiles
	schemas  *payload.Registry
}

func NewUsersHandler(profiles *service.Profiles, schemas *payload.Registry) *UsersHandler {
	return &UsersHandler{profiles: profiles, schemas: schemas}
}

// publicUser is what other users may see of a profile.
type publicUser struct {
	ID            int64     `json:"id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Username      *string   `json:"username,omitempty"`
	Bio           string    `json:"bio"`
	PhotoURL      string    `json:"photoUrl,omitempty"`
	SkillsOffered []int64   `json:"skillsOffered"`
	SkillsWanted  []int64   `json:"skillsWanted"`
	Onboarded     bool      `json:"onboarded"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toPublic(u *models.User) publicUser {
	return publicUser{
		ID:            u.ID,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Username:      u.Username,
		Bio:           u.Bio,
		PhotoURL:      u.PhotoURL,
		SkillsOffered: u.SkillsOffered,
		SkillsWanted:  u.SkillsWanted,
		Onboarded:     u.Onboarded,
		CreatedAt:     u.CreatedAt,
	}
}

type savedSkillsResponse struct {
	Success     bool    `json:"success"`
	SavedSkills []int64 `json:"savedSkills"`
}

type savedSkillRequest struct {
	SkillID payload.ID `json:"skillId"`
}

func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	u, err := h.profiles.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, userResponse{Success: true, User: u}, http.StatusOK)
}

func (h *UsersHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	u, err := h.profiles.GetProfile(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, userResponse{Success: true, User: toPublic(u)}, http.StatusOK)
}

func (h *UsersHandler) CheckUsername(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.profiles.CheckUsername(r.Context(), r.URL.Query().Get("username"), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, struct {
		Success bool `json:"success"`
		*service.UsernameCheck
	}{Success: true, UsernameCheck: res}, http.StatusOK)
}

func (h *UsersHandler) ListSaved(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ids, err := h.profiles.ListSavedIDs(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, savedSkillsResponse{Success: true, SavedSkills: ids}, http.StatusOK)
}

func (h *UsersHandler) AddSaved(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req savedSkillRequest
	if err := decodeBody(r, h.schemas, payload.SavedSkill, &req); err != nil {
		writeError(w, r, err)
		return
	}
	ids, err := h.profiles.AddSaved(r.Context(), userID, int64(req.SkillID))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, savedSkillsResponse{Success: true, SavedSkills: ids}, http.StatusOK)
}

func (h *UsersHandler) RemoveSaved(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	skillID, err := pathID(r, "skillId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	ids, err := h.profiles.RemoveSaved(r.Context(), userID, skillID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, savedSkillsResponse{Success: true, SavedSkills: ids}, http.StatusOK)
}
