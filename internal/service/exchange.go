package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/garnizeh/skillswap/internal/apperr"
	"github.com/garnizeh/skillswap/internal/metrics"
	"github.com/garnizeh/skillswap/internal/models"
	"github.com/garnizeh/skillswap/pkg/repository"
)

// Exchange runs the request lifecycle: pending, then accepted or declined.
type Exchange struct {
	requests repository.RequestRepo
	users    repository.UserRepo
	skills   repository.SkillRepo
}

// NewExchange wires the request store. users and skills may be nil; they only
// fill in display names the client left out.
func NewExchange(requests repository.RequestRepo, users repository.UserRepo, skills repository.SkillRepo) *Exchange {
	return &Exchange{requests: requests, users: users, skills: skills}
}

type CreateRequestInput struct {
	SkillID       int64
	OwnerID       int64
	RequesterID   int64
	Message       string
	SkillName     string
	OwnerName     string
	RequesterName string
}

func (e *Exchange) Create(ctx context.Context, in CreateRequestInput) (*models.Request, error) {
	msg := strings.TrimSpace(in.Message)
	if in.SkillID <= 0 || in.OwnerID <= 0 || in.RequesterID <= 0 || msg == "" {
		return nil, apperr.Validation("skillId, ownerId, requesterId and message are required")
	}

	r := &models.Request{
		SkillID:       in.SkillID,
		OwnerID:       in.OwnerID,
		RequesterID:   in.RequesterID,
		SkillName:     strings.TrimSpace(in.SkillName),
		OwnerName:     strings.TrimSpace(in.OwnerName),
		RequesterName: strings.TrimSpace(in.RequesterName),
		Message:       msg,
		Status:        models.StatusPending,
	}
	e.fillNames(ctx, r)

	id, err := e.requests.CreateRequest(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	metrics.RequestsCreated.Inc()

	stored, err := e.requests.GetRequest(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload request: %w", err)
	}
	if stored == nil {
		return nil, fmt.Errorf("request %d vanished after create", id)
	}
	return stored, nil
}

// fillNames is best effort: lookup failures leave the names blank.
func (e *Exchange) fillNames(ctx context.Context, r *models.Request) {
	if r.SkillName == "" && e.skills != nil {
		if sk, err := e.skills.GetSkillByID(ctx, r.SkillID); err == nil && sk != nil {
			r.SkillName = sk.Name
		}
	}
	if e.users == nil {
		return
	}
	if r.OwnerName == "" {
		if u, err := e.users.GetUserByID(ctx, r.OwnerID); err == nil && u != nil {
			r.OwnerName = u.DisplayName()
		}
	}
	if r.RequesterName == "" {
		if u, err := e.users.GetUserByID(ctx, r.RequesterID); err == nil && u != nil {
			r.RequesterName = u.DisplayName()
		}
	}
}

// ListIncoming returns the owner's pending requests in submission order.
func (e *Exchange) ListIncoming(ctx context.Context, ownerID int64) ([]models.Request, error) {
	if ownerID <= 0 {
		return nil, apperr.Validation("userId is required")
	}
	out, err := e.requests.ListRequests(ctx, repository.RequestFilter{OwnerID: ownerID, Status: models.StatusPending})
	if err != nil {
		return nil, fmt.Errorf("list incoming: %w", err)
	}
	return out, nil
}

// ListOutgoing returns everything requesterID has sent, whatever its status.
func (e *Exchange) ListOutgoing(ctx context.Context, requesterID int64) ([]models.Request, error) {
	if requesterID <= 0 {
		return nil, apperr.Validation("userId is required")
	}
	out, err := e.requests.ListRequests(ctx, repository.RequestFilter{RequesterID: requesterID})
	if err != nil {
		return nil, fmt.Errorf("list outgoing: %w", err)
	}
	return out, nil
}

// UpdateStatus moves a request to accepted or declined. Setting the same
// status again succeeds; the last write wins.
func (e *Exchange) UpdateStatus(ctx context.Context, id int64, status string) (*models.Request, error) {
	if status != models.StatusAccepted && status != models.StatusDeclined {
		return nil, apperr.Validation("status must be accepted or declined")
	}
	if id <= 0 {
		return nil, apperr.NotFound("request not found")
	}

	r, err := e.requests.UpdateRequestStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("update request status: %w", err)
	}
	if r == nil {
		return nil, apperr.NotFound("request not found")
	}
	metrics.RequestStatusChanges.WithLabelValues(status).Inc()
	return r, nil
}
