package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"

	"github.com/bobmcallan/ratiolens/internal/models"
)

// formatMetric renders a metric for tabular output; absent values render as
// the placeholder.
func formatMetric(m models.Metric, placeholder string) string {
	if !m.Valid {
		return placeholder
	}
	return strconv.FormatFloat(m.Value, 'f', 4, 64)
}

// SeriesCSV exports one category series as CSV: one row per fiscal period,
// one column per ratio. Absent values are empty cells.
func SeriesCSV(series *models.RatioSeries) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := append([]string{"Period"}, series.Ratios...)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, p := range series.Periods {
		row := make([]string, 0, len(header))
		row = append(row, p.Key())
		for _, ratio := range series.Ratios {
			row = append(row, formatMetric(series.At(p, ratio), ""))
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ComparisonCSV exports the latest-value benchmark table as CSV: one row per
// ratio, one column per entity. Failed entities get an error row at the
// bottom.
func ComparisonCSV(cmp *models.Comparison) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := append([]string{"Ratio"}, cmp.Entities...)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	names := make([]string, 0, len(cmp.Latest))
	for ratio := range cmp.Latest {
		names = append(names, ratio)
	}
	sort.Strings(names)

	for _, ratio := range names {
		row := make([]string, 0, len(header))
		row = append(row, ratio)
		for _, ticker := range cmp.Entities {
			row = append(row, formatMetric(cmp.Latest[ratio][ticker], "N/A"))
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	failed := make([]string, 0, len(cmp.Failed))
	for ticker := range cmp.Failed {
		failed = append(failed, ticker)
	}
	sort.Strings(failed)
	for _, ticker := range failed {
		if err := w.Write([]string{fmt.Sprintf("FAILED: %s", ticker), cmp.Failed[ticker]}); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
