package ratios

import "github.com/bobmcallan/ratiolens/internal/models"

// priceToEarnings uses the diluted EPS line when reported, otherwise derives
// EPS from net income and the share count.
func priceToEarnings(in Input) models.Metric {
	eps := in.Cur.DilutedEPS
	if !eps.Valid {
		eps = div(in.Cur.NetIncome, sharesOf(in))
	}
	return div(in.Price, eps)
}

func priceToBook(in Input) models.Metric {
	bookValuePerShare := div(in.Cur.StockholdersEquity, sharesOf(in))
	return div(in.Price, bookValuePerShare)
}

// evToEBITDA approximates enterprise value as market capitalization plus
// total debt less cash.
func evToEBITDA(in Input) models.Metric {
	marketCap := mul(in.Price, sharesOf(in))
	ev := sub(sum(marketCap, debtOf(in.Cur)), in.Cur.CashAndEquivalents)
	return div(ev, in.Cur.EBITDA)
}

// sum returns a+b, absent when either input is absent.
func sum(a, b models.Metric) models.Metric {
	if !a.Valid || !b.Valid {
		return models.Absent()
	}
	return models.M(a.Value + b.Value)
}
