package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/ratiolens/internal/common"
	"github.com/bobmcallan/ratiolens/internal/models"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	fs, err := NewFileStore(common.NewSilentLogger(), t.TempDir())
	require.NoError(t, err)
	return fs
}

func testEntity() *models.Entity {
	return &models.Entity{
		Ticker: "BHP.AU",
		Role:   models.RolePrimary,
		Info:   models.EntityInfo{Name: "BHP Group"},
		IncomeStatements: []models.StatementRecord{
			{
				Date: time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC),
				Lines: models.StatementLine{
					TotalRevenue: models.M(53817000000),
					NetIncome:    models.Absent(),
				},
			},
		},
		BalanceSheets: []models.StatementRecord{
			{Date: time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC)},
		},
		Prices:    []models.PricePoint{{Date: time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC), Close: 44.9}},
		FetchedAt: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestEntityRoundTrip(t *testing.T) {
	fs := newTestStore(t)
	ctx := context.Background()

	entity := testEntity()
	require.NoError(t, fs.SaveEntity(ctx, entity, "5y"))

	restored, err := fs.GetEntity(ctx, "BHP.AU", "5y")
	require.NoError(t, err)
	assert.Equal(t, entity, restored)

	// Absent values survive the round trip as absent, not zero.
	assert.False(t, restored.IncomeStatements[0].Lines.NetIncome.Valid)
	assert.True(t, restored.IncomeStatements[0].Lines.TotalRevenue.Valid)
}

func TestGetEntity_MissingKey(t *testing.T) {
	fs := newTestStore(t)
	_, err := fs.GetEntity(context.Background(), "NOPE", "5y")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSaveEntity_RequiresTicker(t *testing.T) {
	fs := newTestStore(t)
	err := fs.SaveEntity(context.Background(), &models.Entity{}, "5y")
	assert.Error(t, err)
}

func TestDeleteEntity(t *testing.T) {
	fs := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, fs.SaveEntity(ctx, testEntity(), "5y"))
	require.NoError(t, fs.DeleteEntity(ctx, "BHP.AU", "5y"))

	_, err := fs.GetEntity(ctx, "BHP.AU", "5y")
	assert.Error(t, err)

	// Deleting a missing entry is not an error.
	assert.NoError(t, fs.DeleteEntity(ctx, "BHP.AU", "5y"))
}

func TestListEntities(t *testing.T) {
	fs := newTestStore(t)
	ctx := context.Background()

	keys, err := fs.ListEntities(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)

	require.NoError(t, fs.SaveEntity(ctx, testEntity(), "5y"))
	e2 := testEntity()
	e2.Ticker = "RIO.AU"
	require.NoError(t, fs.SaveEntity(ctx, e2, "10y"))

	keys, err = fs.ListEntities(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"BHP.AU_5y", "RIO.AU_10y"}, keys)
}

func TestReportRoundTrip(t *testing.T) {
	fs := newTestStore(t)
	ctx := context.Background()

	report := &models.AnalysisReport{
		RunID:       "run-1",
		Ticker:      "BHP.AU",
		GeneratedAt: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		PeriodYears: 5,
	}
	require.NoError(t, fs.SaveReport(ctx, report))

	restored, err := fs.GetReport(ctx, "BHP.AU")
	require.NoError(t, err)
	assert.Equal(t, report, restored)
}

func TestSanitizeKey_PathTraversal(t *testing.T) {
	fs := newTestStore(t)

	key := fs.sanitizeKey("../../etc/passwd")
	assert.NotContains(t, key, "..")

	// Ticker-style dots survive.
	assert.Equal(t, "BHP.AU_5y", fs.sanitizeKey("BHP.AU_5y"))

	path := fs.filePath("entities", "../escape")
	assert.Equal(t, filepath.Dir(path), filepath.Join(fs.basePath, "entities"))
}

func TestManager(t *testing.T) {
	cfg := common.NewDefaultConfig()
	cfg.Storage.Path = t.TempDir()

	m, err := NewManager(common.NewSilentLogger(), cfg)
	require.NoError(t, err)
	assert.NotNil(t, m.EntityStorage())
	assert.NotNil(t, m.ReportStorage())
	assert.NoError(t, m.Close())
}
