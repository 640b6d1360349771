package ratios

import "github.com/bobmcallan/ratiolens/internal/models"

// ebitOf prefers the reported EBIT line, falling back to operating income,
// which is how EBIT commonly appears in annual filings.
func ebitOf(lines models.StatementLine) models.Metric {
	if lines.EBIT.Valid {
		return lines.EBIT
	}
	return lines.OperatingIncome
}

// sharesOf prefers the period's ordinary shares number over the entity-level
// snapshot, so historical EPS is computed against historical share counts.
func sharesOf(in Input) models.Metric {
	if in.Cur.OrdinarySharesNumber.Valid && in.Cur.OrdinarySharesNumber.Value > 0 {
		return in.Cur.OrdinarySharesNumber
	}
	if in.Info.SharesOutstanding.Valid && in.Info.SharesOutstanding.Value > 0 {
		return in.Info.SharesOutstanding
	}
	return models.Absent()
}

func netProfitMargin(in Input) models.Metric {
	return pct(div(in.Cur.NetIncome, in.Cur.TotalRevenue))
}

func operatingProfitMargin(in Input) models.Metric {
	return pct(div(in.Cur.OperatingIncome, in.Cur.TotalRevenue))
}

func returnOnEquity(in Input) models.Metric {
	return pct(div(in.Cur.NetIncome, in.Cur.StockholdersEquity))
}

func returnOnAssets(in Input) models.Metric {
	return pct(div(in.Cur.NetIncome, in.Cur.TotalAssets))
}

// returnOnCapitalEmployed is EBIT over capital employed (total assets less
// current liabilities). Undefined when capital employed is zero or negative.
func returnOnCapitalEmployed(in Input) models.Metric {
	capitalEmployed := sub(in.Cur.TotalAssets, in.Cur.CurrentLiabilities)
	if !capitalEmployed.Valid || capitalEmployed.Value <= 0 {
		return models.Absent()
	}
	return pct(div(ebitOf(in.Cur), capitalEmployed))
}

func earningsPerShare(in Input) models.Metric {
	return div(in.Cur.NetIncome, sharesOf(in))
}
