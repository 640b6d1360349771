package interfaces

import (
	"context"

	"github.com/bobmcallan/ratiolens/internal/models"
)

// EntityStore caches raw provider data keyed by (ticker, period-range).
// Cached entities are a side-store only; ratio series are always recomputed.
type EntityStore interface {
	// GetEntity returns the cached entity for a ticker and range key, or an
	// error if no cache entry exists.
	GetEntity(ctx context.Context, ticker, rangeKey string) (*models.Entity, error)

	// SaveEntity stores raw entity data under (ticker, rangeKey).
	SaveEntity(ctx context.Context, entity *models.Entity, rangeKey string) error

	// DeleteEntity removes a cache entry.
	DeleteEntity(ctx context.Context, ticker, rangeKey string) error

	// ListEntities returns all cached (ticker, rangeKey) keys.
	ListEntities(ctx context.Context) ([]string, error)
}

// ReportStore persists generated analysis reports.
type ReportStore interface {
	SaveReport(ctx context.Context, report *models.AnalysisReport) error
	GetReport(ctx context.Context, ticker string) (*models.AnalysisReport, error)
}

// StorageManager provides access to the storage areas.
type StorageManager interface {
	EntityStorage() EntityStore
	ReportStorage() ReportStore
	Close() error
}
