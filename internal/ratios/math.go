// Package ratios implements the ratio-derivation and time-alignment engine:
// period alignment, the ratio formula catalogue, and per-category
// aggregation. All formulas are pure; missing data propagates as an absent
// Metric, never as zero and never as an error.
package ratios

import "github.com/bobmcallan/ratiolens/internal/models"

// div returns num/den, absent when either input is absent or den is zero.
func div(num, den models.Metric) models.Metric {
	if !num.Valid || !den.Valid || den.Value == 0 {
		return models.Absent()
	}
	return models.M(num.Value / den.Value)
}

// mul returns a*b, absent when either input is absent.
func mul(a, b models.Metric) models.Metric {
	if !a.Valid || !b.Valid {
		return models.Absent()
	}
	return models.M(a.Value * b.Value)
}

// sub returns a-b, absent when either input is absent.
func sub(a, b models.Metric) models.Metric {
	if !a.Valid || !b.Valid {
		return models.Absent()
	}
	return models.M(a.Value - b.Value)
}

// pct scales a ratio to a percentage.
func pct(m models.Metric) models.Metric {
	if !m.Valid {
		return m
	}
	return models.M(m.Value * 100)
}

// twoPeriodAvg averages a balance-sheet line across the current and previous
// periods. Fallback policy (applied uniformly to every rolling-average
// ratio): when no previous period exists at all, the single current value
// stands in as a one-period approximation; when a previous period exists but
// the line is absent in it, the average is undefined.
func twoPeriodAvg(cur models.Metric, prev *models.StatementLine, line func(models.StatementLine) models.Metric) models.Metric {
	if !cur.Valid {
		return models.Absent()
	}
	if prev == nil {
		return cur
	}
	prevVal := line(*prev)
	if !prevVal.Valid {
		return models.Absent()
	}
	return models.M((cur.Value + prevVal.Value) / 2)
}
