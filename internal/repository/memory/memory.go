// Package memory holds the process-local stores for exchange requests and user
// reports. Their contents do not survive a restart.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/garnizeh/skillswap/internal/models"
	"github.com/garnizeh/skillswap/pkg/repository"
)

var (
	_ repository.RequestRepo = (*RequestStore)(nil)
	_ repository.ReportRepo  = (*ReportStore)(nil)
)

// RequestStore keeps requests in insertion order. Ids start at 1 and grow by one.
type RequestStore struct {
	mu       sync.RWMutex
	requests []models.Request
	nextID   int64
	now      func() time.Time
}

func NewRequestStore() *RequestStore {
	return &RequestStore{nextID: 1, now: func() time.Time { return time.Now().UTC() }}
}

func (s *RequestStore) CreateRequest(ctx context.Context, r *models.Request) (int64, error) {
	if r == nil {
		return 0, fmt.Errorf("request is nil")
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *r
	stored.ID = s.nextID
	s.nextID++
	ts := s.now()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = ts
	}
	stored.UpdatedAt = stored.CreatedAt
	s.requests = append(s.requests, stored)
	return stored.ID, nil
}

func (s *RequestStore) GetRequest(ctx context.Context, id int64) (*models.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		r := s.requests[i]
		return &r, nil
	}
	return nil, nil
}

func (s *RequestStore) ListRequests(ctx context.Context, f repository.RequestFilter) ([]models.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Request{}
	for _, r := range s.requests {
		if f.OwnerID != 0 && r.OwnerID != f.OwnerID {
			continue
		}
		if f.RequesterID != 0 && r.RequesterID != f.RequesterID {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// UpdateRequestStatus sets the status and stamps UpdatedAt; last write wins.
func (s *RequestStore) UpdateRequestStatus(ctx context.Context, id int64, status string) (*models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, nil
	}
	s.requests[i].Status = status
	s.requests[i].UpdatedAt = s.now()
	r := s.requests[i]
	return &r, nil
}

// indexOf relies on ids being assigned sequentially from 1 with no deletes.
func (s *RequestStore) indexOf(id int64) int {
	i := int(id - 1)
	if id <= 0 || i >= len(s.requests) {
		return -1
	}
	return i
}

type ReportStore struct {
	mu      sync.RWMutex
	reports []models.Report
}

func NewReportStore() *ReportStore {
	return &ReportStore{}
}

func (s *ReportStore) CreateReport(ctx context.Context, r *models.Report) (int64, error) {
	if r == nil {
		return 0, fmt.Errorf("report is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *r
	stored.ID = int64(len(s.reports) + 1)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	s.reports = append(s.reports, stored)
	return stored.ID, nil
}

func (s *ReportStore) ListReports(ctx context.Context) ([]models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Report, len(s.reports))
	copy(out, s.reports)
	return out, nil
}
