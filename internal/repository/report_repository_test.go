package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/fadilmartias/founder-assessment/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport(id string) *model.Report {
	return &model.Report{
		ID:          id,
		FounderName: "Asha Rao",
		CompanyName: "Tiffin Labs",
		Degraded:    []string{"translation"},
		CreatedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestMemoryReportRepository_SaveAndFind(t *testing.T) {
	repo := NewMemoryReportRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleReport("RPT1")))

	got, err := repo.FindByID(ctx, "RPT1")
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", got.FounderName)
	assert.Equal(t, 1, repo.Count())
}

func TestMemoryReportRepository_NotFound(t *testing.T) {
	repo := NewMemoryReportRepository()

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestMemoryReportRepository_StoresCopies(t *testing.T) {
	repo := NewMemoryReportRepository()
	ctx := context.Background()
	report := sampleReport("RPT1")
	require.NoError(t, repo.Save(ctx, report))

	report.FounderName = "changed"
	report.Degraded[0] = "changed"

	got, err := repo.FindByID(ctx, "RPT1")
	require.NoError(t, err)
	got.CompanyName = "changed too"
	got.Degraded[0] = "changed too"

	again, err := repo.FindByID(ctx, "RPT1")
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", again.FounderName)
	assert.Equal(t, "Tiffin Labs", again.CompanyName)
	assert.Equal(t, []string{"translation"}, again.Degraded)
}

func TestMemoryReportRepository_OverwritesOnCollision(t *testing.T) {
	repo := NewMemoryReportRepository()
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, sampleReport("RPT1")))

	second := sampleReport("RPT1")
	second.FounderName = "Second"
	require.NoError(t, repo.Save(ctx, second))

	got, err := repo.FindByID(ctx, "RPT1")
	require.NoError(t, err)
	assert.Equal(t, "Second", got.FounderName)
	assert.Equal(t, 1, repo.Count())
}

func TestMemoryReportRepository_RejectsEmptyID(t *testing.T) {
	repo := NewMemoryReportRepository()
	assert.Error(t, repo.Save(context.Background(), &model.Report{}))
	assert.Error(t, repo.Save(context.Background(), nil))
}

func TestMemoryReportRepository_ConcurrentAccess(t *testing.T) {
	repo := NewMemoryReportRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("RPT%d", i)
			assert.NoError(t, repo.Save(ctx, sampleReport(id)))
			_, err := repo.FindByID(ctx, id)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, repo.Count())
}
