package ratios

import (
	"sort"
	"time"

	"github.com/bobmcallan/ratiolens/internal/models"
)

// AlignedPeriod is one fiscal period with direct access to its own statement
// lines and to the immediately preceding period's lines. Prev is nil for the
// earliest period.
type AlignedPeriod struct {
	Period models.FiscalPeriod
	Lines  models.StatementLine
	Prev   *models.StatementLine
}

// Alignment is an entity's normalized view for ratio computation: fiscal
// periods in ascending chronological order, a price series for
// nearest-at-or-before lookups, and the dividend history.
type Alignment struct {
	Ticker string
	Info   models.EntityInfo

	Periods []AlignedPeriod

	prices    []models.PricePoint // ascending by date
	dividends []models.Dividend
}

// Align normalizes an entity's raw statement records and price series onto a
// common fiscal-period key. Periods present in one statement section but
// absent from another are retained; their missing side stays absent and the
// ratios needing it come out undefined. Ordering is ascending chronological.
func Align(e *models.Entity) *Alignment {
	byDate := make(map[string]models.StatementLine)
	dates := make(map[string]time.Time)

	addSection := func(records []models.StatementRecord) {
		for _, rec := range records {
			key := rec.Date.Format("2006-01-02")
			byDate[key] = mergeLines(byDate[key], rec.Lines)
			dates[key] = rec.Date
		}
	}
	addSection(e.IncomeStatements)
	addSection(e.BalanceSheets)
	addSection(e.CashFlows)

	ordered := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		ordered = append(ordered, d)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Before(ordered[j]) })

	a := &Alignment{
		Ticker:    e.Ticker,
		Info:      e.Info,
		Periods:   make([]AlignedPeriod, 0, len(ordered)),
		prices:    sortedPrices(e.Prices),
		dividends: e.Dividends,
	}

	for i, d := range ordered {
		ap := AlignedPeriod{
			Period: models.FiscalPeriod{Date: d},
			Lines:  byDate[d.Format("2006-01-02")],
		}
		if i > 0 {
			prev := byDate[ordered[i-1].Format("2006-01-02")]
			ap.Prev = &prev
		}
		a.Periods = append(a.Periods, ap)
	}

	return a
}

// NearestPriceAt returns the closing price at or before t, or absent when no
// price exists at or before that date.
func (a *Alignment) NearestPriceAt(t time.Time) models.Metric {
	idx := sort.Search(len(a.prices), func(i int) bool {
		return a.prices[i].Date.After(t)
	})
	if idx == 0 {
		return models.Absent()
	}
	return models.M(a.prices[idx-1].Close)
}

// DividendsInYear sums per-share dividends whose ex-date falls in the given
// calendar year. The period's year is used for bucketing, never the current
// date.
func (a *Alignment) DividendsInYear(year int) float64 {
	sum := 0.0
	for _, d := range a.dividends {
		if d.Date.Year() == year {
			sum += d.Amount
		}
	}
	return sum
}

// Prices returns the ascending price series.
func (a *Alignment) Prices() []models.PricePoint {
	return a.prices
}

func sortedPrices(prices []models.PricePoint) []models.PricePoint {
	sorted := make([]models.PricePoint, len(prices))
	copy(sorted, prices)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })
	return sorted
}

// mergeLines combines two partial statement lines for the same period,
// preferring values from src. Sections contribute disjoint fields, so in
// practice this stitches income, balance and cash-flow lines together.
func mergeLines(dst, src models.StatementLine) models.StatementLine {
	pick := func(a, b models.Metric) models.Metric {
		if b.Valid {
			return b
		}
		return a
	}

	dst.TotalRevenue = pick(dst.TotalRevenue, src.TotalRevenue)
	dst.OperatingIncome = pick(dst.OperatingIncome, src.OperatingIncome)
	dst.NetIncome = pick(dst.NetIncome, src.NetIncome)
	dst.CostOfRevenue = pick(dst.CostOfRevenue, src.CostOfRevenue)
	dst.EBIT = pick(dst.EBIT, src.EBIT)
	dst.EBITDA = pick(dst.EBITDA, src.EBITDA)
	dst.InterestExpense = pick(dst.InterestExpense, src.InterestExpense)
	dst.DilutedEPS = pick(dst.DilutedEPS, src.DilutedEPS)
	dst.TotalAssets = pick(dst.TotalAssets, src.TotalAssets)
	dst.CurrentAssets = pick(dst.CurrentAssets, src.CurrentAssets)
	dst.CurrentLiabilities = pick(dst.CurrentLiabilities, src.CurrentLiabilities)
	dst.Inventory = pick(dst.Inventory, src.Inventory)
	dst.AccountsReceivable = pick(dst.AccountsReceivable, src.AccountsReceivable)
	dst.CashAndEquivalents = pick(dst.CashAndEquivalents, src.CashAndEquivalents)
	dst.TotalDebt = pick(dst.TotalDebt, src.TotalDebt)
	dst.LongTermDebt = pick(dst.LongTermDebt, src.LongTermDebt)
	dst.StockholdersEquity = pick(dst.StockholdersEquity, src.StockholdersEquity)
	dst.OrdinarySharesNumber = pick(dst.OrdinarySharesNumber, src.OrdinarySharesNumber)
	dst.DividendsPaid = pick(dst.DividendsPaid, src.DividendsPaid)

	return dst
}
