// Package report renders analysis reports as charts, HTML, JSON and CSV.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bobmcallan/ratiolens/internal/common"
	"github.com/bobmcallan/ratiolens/internal/interfaces"
	"github.com/bobmcallan/ratiolens/internal/models"
)

// Service implements ReportService
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
	cfg     common.ReportConfig
}

// NewService creates a new report service
func NewService(storage interfaces.StorageManager, logger *common.Logger, cfg common.ReportConfig) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
		cfg:     cfg,
	}
}

// trendThreshold is the ±5% band between the first and latest defined
// values that classifies a ratio as Stable.
const trendThreshold = 0.05

// ClassifyTrend compares a ratio's first and latest defined values.
func ClassifyTrend(series *models.RatioSeries, ratio string) models.Trend {
	first := series.First(ratio)
	latest := series.Latest(ratio)
	if !first.Valid || !latest.Valid {
		return models.TrendUnknown
	}

	defined := 0
	for _, v := range series.Column(ratio) {
		if v.Valid {
			defined++
		}
	}
	if defined < 2 {
		return models.TrendUnknown
	}

	switch {
	case latest.Value > first.Value*(1+trendThreshold):
		return models.TrendImproving
	case latest.Value < first.Value*(1-trendThreshold):
		return models.TrendDeclining
	default:
		return models.TrendStable
	}
}

// BuildSummaries derives the per-category summary tables (latest value,
// multi-period average, trend) from the primary entity's series.
func BuildSummaries(report *models.AnalysisReport) []models.CategorySummary {
	primary := report.PrimarySeries()
	if primary == nil {
		return nil
	}

	summaries := make([]models.CategorySummary, 0, len(primary.Categories))
	for _, category := range models.AllCategories() {
		series := primary.Categories[category]
		if series == nil || len(series.Ratios) == 0 {
			continue
		}

		summary := models.CategorySummary{Category: category}
		for _, ratio := range series.Ratios {
			summary.Rows = append(summary.Rows, models.SummaryRow{
				Ratio:   ratio,
				Latest:  series.Latest(ratio),
				Average: series.Average(ratio),
				Trend:   ClassifyTrend(series, ratio),
			})
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// WriteReport renders the report into the output directory: one PNG chart
// per ratio column, the HTML and JSON reports, and the CSV exports. Returns
// the paths written.
func (s *Service) WriteReport(ctx context.Context, report *models.AnalysisReport, options interfaces.ReportOptions) ([]string, error) {
	if report.Summaries == nil {
		report.Summaries = BuildSummaries(report)
	}

	outputDir := options.OutputDir
	if outputDir == "" {
		outputDir = s.cfg.OutputDir
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	formats := options.Formats
	if len(formats) == 0 {
		formats = []string{"html", "json", "csv"}
	}
	wants := make(map[string]bool, len(formats))
	for _, f := range formats {
		wants[strings.ToLower(f)] = true
	}

	var written []string

	if options.WriteCharts {
		charts, err := s.writeCharts(report, outputDir)
		if err != nil {
			return nil, err
		}
		written = append(written, charts...)
	}

	if wants["html"] {
		path := filepath.Join(outputDir, fmt.Sprintf("%s_report.html", sanitizeName(report.Ticker)))
		if err := s.writeHTML(report, path); err != nil {
			return nil, err
		}
		written = append(written, path)
	}

	if wants["json"] {
		path := filepath.Join(outputDir, fmt.Sprintf("%s_report.json", sanitizeName(report.Ticker)))
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal report: %w", err)
		}
		if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
			return nil, fmt.Errorf("failed to write JSON report: %w", err)
		}
		written = append(written, path)
	}

	if wants["csv"] {
		paths, err := s.writeCSVs(report, outputDir)
		if err != nil {
			return nil, err
		}
		written = append(written, paths...)
	}

	if s.storage != nil {
		if err := s.storage.ReportStorage().SaveReport(ctx, report); err != nil {
			s.logger.Warn().Str("ticker", report.Ticker).Err(err).Msg("Failed to store report")
		}
	}

	s.logger.Info().
		Str("ticker", report.Ticker).
		Int("files", len(written)).
		Str("dir", outputDir).
		Msg("Report written")

	return written, nil
}

// writeCharts renders one time-series chart per ratio column of the primary
// entity, overlaying benchmarks and the index where they have data.
func (s *Service) writeCharts(report *models.AnalysisReport, outputDir string) ([]string, error) {
	primary := report.PrimarySeries()
	if primary == nil {
		return nil, nil
	}

	var written []string
	for _, category := range models.AllCategories() {
		series := primary.Categories[category]
		if series == nil {
			continue
		}
		for _, ratio := range series.Ratios {
			png, err := RenderRatioChart(ratio, category, report.Comparison, s.cfg.ChartWidth, s.cfg.ChartHeight)
			if err != nil {
				// Single-point columns cannot chart; skip, don't abort.
				s.logger.Debug().Str("ratio", ratio).Err(err).Msg("Chart skipped")
				continue
			}
			fileName := sanitizeName(ratio) + ".png"
			path := filepath.Join(outputDir, fileName)
			if err := os.WriteFile(path, png, 0644); err != nil {
				return nil, fmt.Errorf("failed to write chart %s: %w", fileName, err)
			}
			report.Charts = append(report.Charts, models.ChartRef{
				Ratio:    ratio,
				Category: category,
				FileName: fileName,
			})
			written = append(written, path)
		}
	}
	return written, nil
}

func (s *Service) writeCSVs(report *models.AnalysisReport, outputDir string) ([]string, error) {
	primary := report.PrimarySeries()
	if primary == nil {
		return nil, nil
	}

	var written []string
	for _, category := range models.AllCategories() {
		series := primary.Categories[category]
		if series == nil || len(series.Ratios) == 0 {
			continue
		}
		path := filepath.Join(outputDir, fmt.Sprintf("%s_%s.csv", sanitizeName(report.Ticker), category))
		data, err := SeriesCSV(series)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("failed to write CSV: %w", err)
		}
		written = append(written, path)
	}

	if report.Comparison != nil && len(report.Comparison.Entities)+len(report.Comparison.Failed) > 1 {
		path := filepath.Join(outputDir, fmt.Sprintf("%s_comparison.csv", sanitizeName(report.Ticker)))
		data, err := ComparisonCSV(report.Comparison)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("failed to write comparison CSV: %w", err)
		}
		written = append(written, path)
	}

	return written, nil
}

// sanitizeName converts a ratio or ticker name to a safe file stem, matching
// the chart naming convention of the rendered reports.
func sanitizeName(name string) string {
	r := strings.NewReplacer(
		" ", "_",
		"(%)", "Pct",
		"%", "Pct",
		"(", "",
		")", "",
		"/", "_",
		"\\", "_",
		":", "_",
		"..", "_",
	)
	return r.Replace(name)
}

// Ensure Service implements ReportService
var _ interfaces.ReportService = (*Service)(nil)
