package models

import "time"

// Trend classifies a ratio's direction between its first and latest defined
// values, with a ±5% threshold.
type Trend string

const (
	TrendImproving Trend = "Improving"
	TrendDeclining Trend = "Declining"
	TrendStable    Trend = "Stable"
	TrendUnknown   Trend = "N/A"
)

// Arrow returns the display arrow for the trend.
func (t Trend) Arrow() string {
	switch t {
	case TrendImproving:
		return "↑"
	case TrendDeclining:
		return "↓"
	case TrendStable:
		return "→"
	}
	return ""
}

// SummaryRow is one line of a category summary table.
type SummaryRow struct {
	Ratio   string `json:"ratio"`
	Latest  Metric `json:"latest"`
	Average Metric `json:"average"` // mean across defined periods
	Trend   Trend  `json:"trend"`
}

// CategorySummary is the summary table for one category.
type CategorySummary struct {
	Category Category     `json:"category"`
	Rows     []SummaryRow `json:"rows"`
}

// ChartRef names a rendered chart file for one ratio.
type ChartRef struct {
	Ratio    string   `json:"ratio"`
	Category Category `json:"category"`
	FileName string   `json:"file_name"`
}

// AnalysisReport is the full output of one analysis run.
type AnalysisReport struct {
	RunID       string            `json:"run_id"`
	Ticker      string            `json:"ticker"`
	Name        string            `json:"name,omitempty"`
	Sector      string            `json:"sector,omitempty"`
	Industry    string            `json:"industry,omitempty"`
	GeneratedAt time.Time         `json:"generated_at"`
	PeriodYears int               `json:"period_years"`
	Summaries   []CategorySummary `json:"summaries"`
	Comparison  *Comparison       `json:"comparison"`
	Charts      []ChartRef        `json:"charts,omitempty"`
}

// PrimarySeries returns the primary entity's series, or nil.
func (r *AnalysisReport) PrimarySeries() *EntitySeries {
	if r.Comparison == nil {
		return nil
	}
	return r.Comparison.Series[r.Ticker]
}
