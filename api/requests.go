package api

import (
	"net/http"

	"github.com/garnizeh/skillswap/internal/models"
	"github.com/garnizeh/skillswap/internal/payload"
	"github.com/garnizeh/skillswap/internal/service"
)

type RequestsHandler struct {
	exchange *service.Exchange
	schemas  *payload.Registry
}

func NewRequestsHandler(exchange *service.Exchange, schemas *payload.Registry) *RequestsHandler {
	return &RequestsHandler{exchange: exchange, schemas: schemas}
}

type createRequestBody struct {
	SkillID       payload.ID `json:"skillId"`
	OwnerID       payload.ID `json:"ownerId"`
	RequesterID   payload.ID `json:"requesterId"`
	Message       string     `json:"message"`
	SkillName     string     `json:"skillName"`
	OwnerName     string     `json:"ownerName"`
	RequesterName string     `json:"requesterName"`
}

type createRequestResponse struct {
	Success   bool            `json:"success"`
	RequestID int64           `json:"requestId"`
	Status    string          `json:"status"`
	Request   *models.Request `json:"request"`
}

type requestListResponse struct {
	Success  bool             `json:"success"`
	Requests []models.Request `json:"requests"`
}

type statusBody struct {
	Status string `json:"status"`
}

func (h *RequestsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body createRequestBody
	if err := decodeBody(r, h.schemas, payload.RequestCreate, &body); err != nil {
		writeError(w, r, err)
		return
	}

	req, err := h.exchange.Create(r.Context(), service.CreateRequestInput{
		SkillID:       int64(body.SkillID),
		OwnerID:       int64(body.OwnerID),
		RequesterID:   int64(body.RequesterID),
		Message:       body.Message,
		SkillName:     body.SkillName,
		OwnerName:     body.OwnerName,
		RequesterName: body.RequesterName,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, createRequestResponse{Success: true, RequestID: req.ID, Status: req.Status, Request: req}, http.StatusCreated)
}

func (h *RequestsHandler) Incoming(w http.ResponseWriter, r *http.Request) {
	userID, err := queryID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	list, err := h.exchange.ListIncoming(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, requestListResponse{Success: true, Requests: list}, http.StatusOK)
}

func (h *RequestsHandler) Outgoing(w http.ResponseWriter, r *http.Request) {
	userID, err := queryID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	list, err := h.exchange.ListOutgoing(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, requestListResponse{Success: true, Requests: list}, http.StatusOK)
}

func (h *RequestsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var body statusBody
	if err := decodeBody(r, h.schemas, payload.RequestStatus, &body); err != nil {
		writeError(w, r, err)
		return
	}

	req, err := h.exchange.UpdateStatus(r.Context(), id, body.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"success": true, "request": req}, http.StatusOK)
}
