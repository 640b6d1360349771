package ratios

import (
	"math"

	"github.com/bobmcallan/ratiolens/internal/models"
)

// debtOf prefers the long-term debt line when present, falling back to total
// debt, matching the provider fallback chain resolved at the formula level
// once instead of per call site.
func debtOf(lines models.StatementLine) models.Metric {
	if lines.LongTermDebt.Valid {
		return lines.LongTermDebt
	}
	return lines.TotalDebt
}

func debtToEquity(in Input) models.Metric {
	return div(debtOf(in.Cur), in.Cur.StockholdersEquity)
}

// interestCoverage divides EBIT by the absolute interest expense; providers
// report interest expense with inconsistent sign.
func interestCoverage(in Input) models.Metric {
	expense := in.Cur.InterestExpense
	if !expense.Valid {
		return models.Absent()
	}
	return div(ebitOf(in.Cur), models.M(math.Abs(expense.Value)))
}

func debtToAsset(in Input) models.Metric {
	return div(debtOf(in.Cur), in.Cur.TotalAssets)
}
