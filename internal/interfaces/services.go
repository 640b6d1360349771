package interfaces

import (
	"context"

	"github.com/bobmcallan/ratiolens/internal/models"
)

// AnalyzeRequest describes one analysis run.
type AnalyzeRequest struct {
	Ticker       string   // primary entity, required
	Peers        []string // zero or more benchmark entities
	Index        string   // optional market index for market-performance comparison
	Years        int      // statement lookback window; 0 uses the configured default
	ForceRefresh bool     // bypass the raw-data cache
}

// AnalysisService runs the fetch + align + compute pipeline across entities.
type AnalysisService interface {
	// Analyze computes all six ratio categories for the primary entity and
	// every reachable benchmark, assembling the comparison view. Peer and
	// index failures are isolated; a primary failure aborts the run.
	Analyze(ctx context.Context, req AnalyzeRequest) (*models.AnalysisReport, error)
}

// ReportOptions controls report rendering.
type ReportOptions struct {
	Formats     []string // "html", "json", "csv"
	WriteCharts bool
	OutputDir   string // overrides the configured output directory when set
}

// ReportService renders an analysis report to charts and export formats.
type ReportService interface {
	// WriteReport renders the report into the output directory and returns
	// the paths of the files written.
	WriteReport(ctx context.Context, report *models.AnalysisReport, options ReportOptions) ([]string, error)
}
