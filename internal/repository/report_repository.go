package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/fadilmartias/founder-assessment/internal/model"
)

var ErrReportNotFound = errors.New("report not found")

type ReportRepository interface {
	Save(ctx context.Context, report *model.Report) error
	FindByID(ctx context.Context, id string) (*model.Report, error)
}

// MemoryReportRepository keeps reports for the lifetime of the process.
// It stores and hands out copies, so stored reports never change.
type MemoryReportRepository struct {
	mu      sync.RWMutex
	reports map[string]*model.Report
}

func NewMemoryReportRepository() *MemoryReportRepository {
	return &MemoryReportRepository{reports: make(map[string]*model.Report)}
}

// Save stores a report, replacing any report already saved under its id.
func (r *MemoryReportRepository) Save(ctx context.Context, report *model.Report) error {
	if report == nil || report.ID == "" {
		return errors.New("report id is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	r.reports[report.ID] = report.Clone()
	r.mu.Unlock()
	return nil
}

func (r *MemoryReportRepository) FindByID(ctx context.Context, id string) (*model.Report, error) {
	r.mu.RLock()
	report, ok := r.reports[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrReportNotFound
	}
	return report.Clone(), nil
}

func (r *MemoryReportRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.reports)
}
