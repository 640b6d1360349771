package ratios

import "github.com/bobmcallan/ratiolens/internal/models"

// dividendYield is the sum of per-share dividends in the period's calendar
// year over the matched price. A year with no payments yields 0; an absent
// price makes the ratio undefined.
func dividendYield(in Input) models.Metric {
	return pct(div(in.AnnualDividends, in.Price))
}

// rollingBeta surfaces the precomputed rolling beta for the period. Absent
// without an index entity or before the window fills.
func rollingBeta(in Input) models.Metric {
	return in.Beta
}

func marketCapitalization(in Input) models.Metric {
	return mul(in.Price, sharesOf(in))
}
