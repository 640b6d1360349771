// Package interfaces defines service contracts for Ratiolens
package interfaces

import (
	"context"
	"time"

	"github.com/bobmcallan/ratiolens/internal/models"
)

// MarketDataClient provides access to the financial data provider.
// Implementations must tolerate empty or partial data for any section:
// an empty section returns an empty container, not an error, unless the
// ticker itself cannot be resolved.
type MarketDataClient interface {
	// GetEOD retrieves end-of-day closing prices
	GetEOD(ctx context.Context, ticker string, opts ...EODOption) ([]models.PricePoint, error)

	// GetFundamentals retrieves static info plus annual statement sections
	GetFundamentals(ctx context.Context, ticker string) (*models.FundamentalReport, error)

	// GetDividends retrieves per-share dividend history
	GetDividends(ctx context.Context, ticker string, from, to time.Time) ([]models.Dividend, error)
}

// EODOption configures EOD data requests
type EODOption func(*EODParams)

// EODParams holds EOD query parameters
type EODParams struct {
	From   time.Time
	To     time.Time
	Period string // d=daily, w=weekly, m=monthly
	Order  string // a=ascending, d=descending
}

// WithDateRange sets the date range for EOD query
func WithDateRange(from, to time.Time) EODOption {
	return func(p *EODParams) {
		p.From = from
		p.To = to
	}
}

// WithPeriod sets the sampling period for EOD query
func WithPeriod(period string) EODOption {
	return func(p *EODParams) {
		p.Period = period
	}
}
