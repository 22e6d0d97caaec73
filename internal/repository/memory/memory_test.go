package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/garnizeh/skillswap/internal/models"
	"github.com/garnizeh/skillswap/internal/repository/memory"
	"github.com/garnizeh/skillswap/pkg/repository"
)

func TestRequestStore_CreateListUpdate(t *testing.T) {
	ctx := context.Background()
	s := memory.NewRequestStore()

	if _, err := s.CreateRequest(ctx, nil); err == nil {
		t.Fatalf("expected error for nil request")
	}

	for i, owner := range []int64{1, 2, 1} {
		id, err := s.CreateRequest(ctx, &models.Request{SkillID: 42, OwnerID: owner, RequesterID: 100, Message: "hi", Status: models.StatusPending})
		if err != nil {
			t.Fatalf("CreateRequest: %v", err)
		}
		if id != int64(i+1) {
			t.Fatalf("expected id %d got %d", i+1, id)
		}
	}

	incoming, err := s.ListRequests(ctx, repository.RequestFilter{OwnerID: 1, Status: models.StatusPending})
	if err != nil {
		t.Fatalf("ListRequests: %v", err)
	}
	if len(incoming) != 2 || incoming[0].ID != 1 || incoming[1].ID != 3 {
		t.Fatalf("unexpected incoming: %#v", incoming)
	}

	updated, err := s.UpdateRequestStatus(ctx, 1, models.StatusAccepted)
	if err != nil || updated == nil {
		t.Fatalf("UpdateRequestStatus: %#v, %v", updated, err)
	}
	if updated.Status != models.StatusAccepted || updated.UpdatedAt.Before(updated.CreatedAt) {
		t.Fatalf("unexpected update result: %#v", updated)
	}

	incoming, _ = s.ListRequests(ctx, repository.RequestFilter{OwnerID: 1, Status: models.StatusPending})
	if len(incoming) != 1 || incoming[0].ID != 3 {
		t.Fatalf("accepted request still listed as pending: %#v", incoming)
	}

	missing, err := s.UpdateRequestStatus(ctx, 99, models.StatusDeclined)
	if err != nil || missing != nil {
		t.Fatalf("expected nil, nil for unknown id")
	}
	if r, _ := s.GetRequest(ctx, 0); r != nil {
		t.Fatalf("expected nil for id 0")
	}

	sent, _ := s.ListRequests(ctx, repository.RequestFilter{RequesterID: 100})
	if len(sent) != 3 {
		t.Fatalf("expected 3 sent requests, got %d", len(sent))
	}
}

func TestRequestStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := memory.NewRequestStore()
	id, _ := s.CreateRequest(ctx, &models.Request{OwnerID: 1, Status: models.StatusPending})

	r, _ := s.GetRequest(ctx, id)
	r.Status = "tampered"

	again, _ := s.GetRequest(ctx, id)
	if again.Status != models.StatusPending {
		t.Fatalf("store mutated through returned pointer")
	}
}

func TestRequestStore_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	s := memory.NewRequestStore()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.CreateRequest(ctx, &models.Request{OwnerID: 7, Status: models.StatusPending}); err != nil {
				t.Errorf("CreateRequest: %v", err)
			}
		}()
	}
	wg.Wait()

	all, _ := s.ListRequests(ctx, repository.RequestFilter{})
	if len(all) != 50 {
		t.Fatalf("expected 50 requests, got %d", len(all))
	}
	seen := map[int64]bool{}
	for _, r := range all {
		if seen[r.ID] {
			t.Fatalf("duplicate id %d", r.ID)
		}
		seen[r.ID] = true
	}
}

func TestReportStore(t *testing.T) {
	ctx := context.Background()
	s := memory.NewReportStore()

	if _, err := s.CreateReport(ctx, nil); err == nil {
		t.Fatalf("expected error for nil report")
	}
	id, err := s.CreateReport(ctx, &models.Report{Reason: "spam"})
	if err != nil || id != 1 {
		t.Fatalf("CreateReport: %d, %v", id, err)
	}
	list, _ := s.ListReports(ctx)
	if len(list) != 1 || list[0].Reason != "spam" || list[0].CreatedAt.IsZero() {
		t.Fatalf("unexpected reports: %#v", list)
	}
}
