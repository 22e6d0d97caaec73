package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/garnizeh/skillswap/internal/apperr"
	"github.com/garnizeh/skillswap/internal/metrics"
	"github.com/garnizeh/skillswap/internal/models"
	"github.com/garnizeh/skillswap/pkg/repository"
)

type Reports struct {
	reports repository.ReportRepo
}

func NewReports(reports repository.ReportRepo) *Reports {
	return &Reports{reports: reports}
}

type ReportInput struct {
	ReporterID     int64
	ReportedUserID int64
	Reason         string
}

func (r *Reports) Submit(ctx context.Context, in ReportInput) (*models.Report, error) {
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, apperr.Validation("reason is required")
	}
	rep := &models.Report{ReporterID: in.ReporterID, ReportedUserID: in.ReportedUserID, Reason: reason, CreatedAt: time.Now().UTC()}
	id, err := r.reports.CreateReport(ctx, rep)
	if err != nil {
		return nil, fmt.Errorf("submit report: %w", err)
	}
	rep.ID = id
	metrics.ReportsSubmitted.Inc()
	return rep, nil
}

func (r *Reports) List(ctx context.Context) ([]models.Report, error) {
	out, err := r.reports.ListReports(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return out, nil
}
