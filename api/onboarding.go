package api

import (
	"encoding/json"
	"errors"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/garnizeh/skillswap/internal/apperr"
	"github.com/garnizeh/skillswap/internal/payload"
	"github.com/garnizeh/skillswap/internal/service"
	"github.com/garnizeh/skillswap/pkg/assets"
)

// Field names the onboarding form has been sent with.
var skillsWantedAliases = []string{"skillsWanted", "skillsWanted[]", "skills_wanted", "skillsNeeded"}

type OnboardingHandler struct {
	onboarding *service.Onboarding
	maxUpload  int64
}

func NewOnboardingHandler(onboarding *service.Onboarding, maxUpload int64) *OnboardingHandler {
	if maxUpload <= 0 {
		maxUpload = 5 << 20
	}
	return &OnboardingHandler{onboarding: onboarding, maxUpload: maxUpload}
}

type onboardingJSON struct {
	Username     string             `json:"username"`
	SkillsWanted payload.StringList `json:"skillsWanted"`
	SkillsNeeded payload.StringList `json:"skillsNeeded"`
	Bio          *string            `json:"bio"`
}

type userResponse struct {
	Success bool `json:"success"`
	User    any  `json:"user"`
}

// Complete accepts either multipart/form-data (with an optional "photo"
// file) or a JSON body.
func (h *OnboardingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var in service.OnboardingInput
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		var closeFile func()
		in, closeFile, err = h.fromMultipart(w, r)
		if closeFile != nil {
			defer closeFile()
		}
	default:
		in, err = fromJSON(w, r)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.onboarding.Complete(r.Context(), userID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, userResponse{Success: true, User: u}, http.StatusOK)
}

func fromJSON(w http.ResponseWriter, r *http.Request) (service.OnboardingInput, error) {
	var req onboardingJSON
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		return service.OnboardingInput{}, apperr.Wrap(apperr.KindValidation, "invalid request", err)
	}
	skills := req.SkillsWanted
	if len(skills) == 0 {
		skills = req.SkillsNeeded
	}
	return service.OnboardingInput{Username: req.Username, SkillsWanted: skills, Bio: req.Bio}, nil
}

func (h *OnboardingHandler) fromMultipart(w http.ResponseWriter, r *http.Request) (service.OnboardingInput, func(), error) {
	var in service.OnboardingInput
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+maxBodyBytes)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		return in, nil, apperr.Wrap(apperr.KindValidation, "invalid multipart form", err)
	}
	form := r.MultipartForm

	in.Username = firstValue(form, "username")
	for _, key := range skillsWantedAliases {
		vals := form.Value[key]
		if len(vals) == 0 {
			continue
		}
		if len(vals) == 1 {
			in.SkillsWanted = payload.ParseList(vals[0])
		} else {
			in.SkillsWanted = payload.NormalizeList(vals)
		}
		break
	}
	if vals, ok := form.Value["bio"]; ok && len(vals) > 0 {
		bio := vals[0]
		in.Bio = &bio
	}

	file, hdr, err := r.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) {
		return in, func() { _ = form.RemoveAll() }, nil
	}
	if err != nil {
		return in, func() { _ = form.RemoveAll() }, apperr.Wrap(apperr.KindValidation, "invalid photo", err)
	}
	in.Photo = &assets.File{Name: hdr.Filename, ContentType: hdr.Header.Get("Content-Type"), Body: file}

	return in, func() {
		_ = file.Close()
		_ = form.RemoveAll()
	}, nil
}

func firstValue(form *multipart.Form, key string) string {
	if vals := form.Value[key]; len(vals) > 0 {
		return strings.TrimSpace(vals[0])
	}
	return ""
}
