package api

import (
	"net/http"

	"github.com/garnizeh/skillswap/internal/payload"
	"github.com/garnizeh/skillswap/internal/service"
)

type ReportsHandler struct {
	reports *service.Reports
	schemas *payload.Registry
}

func NewReportsHandler(reports *service.Reports, schemas *payload.Registry) *ReportsHandler {
	return &ReportsHandler{reports: reports, schemas: schemas}
}

type reportBody struct {
	ReporterID     payload.ID `json:"reporterId"`
	ReportedUserID payload.ID `json:"reportedUserId"`
	Reason         string     `json:"reason"`
}

func (h *ReportsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var body reportBody
	if err := decodeBody(r, h.schemas, payload.ReportCreate, &body); err != nil {
		writeError(w, r, err)
		return
	}
	rep, err := h.reports.Submit(r.Context(), service.ReportInput{
		ReporterID:     int64(body.ReporterID),
		ReportedUserID: int64(body.ReportedUserID),
		Reason:         body.Reason,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"success": true, "reportId": rep.ID}, http.StatusCreated)
}

// List is only routed in debug mode.
func (h *ReportsHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.reports.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"success": true, "reports": list}, http.StatusOK)
}
