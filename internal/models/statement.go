// Package models defines data structures for Ratiolens
package models

import (
	"bytes"
	"encoding/json"
	"math"
	"time"
)

// Metric is a numeric statement value that may be absent. Absent is a
// first-class state distinct from zero: a ratio built on an absent input is
// undefined, never coerced to zero. Serializes to JSON null when absent.
type Metric struct {
	Value float64
	Valid bool
}

// M returns a defined Metric. NaN and infinities normalize to absent.
func M(v float64) Metric {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Metric{}
	}
	return Metric{Value: v, Valid: true}
}

// Absent returns an undefined Metric.
func Absent() Metric {
	return Metric{}
}

var jsonNull = []byte("null")

// MarshalJSON encodes absent values as null.
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return jsonNull, nil
	}
	return json.Marshal(m.Value)
}

// UnmarshalJSON accepts a number, a numeric string, or null.
func (m *Metric) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		*m = Metric{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*m = M(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = Metric{} // non-numeric strings normalize to absent at ingestion
		return nil
	}
	*m = Metric{}
	return nil
}

// FiscalPeriod identifies one reporting year/date of statement data.
type FiscalPeriod struct {
	Date time.Time `json:"date"`
}

// Year returns the period's calendar year.
func (p FiscalPeriod) Year() int {
	return p.Date.Year()
}

// Key returns the canonical period key ("2006-01-02").
func (p FiscalPeriod) Key() string {
	return p.Date.Format("2006-01-02")
}

// Before reports whether p precedes q chronologically.
func (p FiscalPeriod) Before(q FiscalPeriod) bool {
	return p.Date.Before(q.Date)
}

// StatementLine holds the canonical vocabulary of statement line items for
// one fiscal period. Provider-specific field names are mapped onto these
// fields once at ingestion; formulas never see provider naming quirks.
type StatementLine struct {
	// Income statement
	TotalRevenue    Metric `json:"total_revenue"`
	OperatingIncome Metric `json:"operating_income"`
	NetIncome       Metric `json:"net_income"`
	CostOfRevenue   Metric `json:"cost_of_revenue"`
	EBIT            Metric `json:"ebit"`
	EBITDA          Metric `json:"ebitda"`
	InterestExpense Metric `json:"interest_expense"`
	DilutedEPS      Metric `json:"diluted_eps"`

	// Balance sheet
	TotalAssets          Metric `json:"total_assets"`
	CurrentAssets        Metric `json:"current_assets"`
	CurrentLiabilities   Metric `json:"current_liabilities"`
	Inventory            Metric `json:"inventory"`
	AccountsReceivable   Metric `json:"accounts_receivable"`
	CashAndEquivalents   Metric `json:"cash_and_equivalents"`
	TotalDebt            Metric `json:"total_debt"`
	LongTermDebt         Metric `json:"long_term_debt"`
	StockholdersEquity   Metric `json:"stockholders_equity"`
	OrdinarySharesNumber Metric `json:"ordinary_shares_number"`

	// Cash flow
	DividendsPaid Metric `json:"dividends_paid"`
}

// StatementRecord pairs a fiscal period with its statement lines for one
// provider section (income, balance, cash flow).
type StatementRecord struct {
	Date  time.Time     `json:"date"`
	Lines StatementLine `json:"lines"`
}

// PricePoint is one closing price keyed by calendar date.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// Dividend is one per-share dividend payment.
type Dividend struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

// EntityRole distinguishes the company under analysis from its benchmarks.
type EntityRole string

const (
	RolePrimary EntityRole = "primary"
	RolePeer    EntityRole = "peer"
	RoleIndex   EntityRole = "index"
)

// EntityInfo holds entity-level static data from the provider.
type EntityInfo struct {
	Name              string `json:"name"`
	Sector            string `json:"sector,omitempty"`
	Industry          string `json:"industry,omitempty"`
	SharesOutstanding Metric `json:"shares_outstanding"`
	Beta              Metric `json:"beta"`
}

// Entity is one ticker with its full raw data set for an analysis run.
// Immutable once fetched; this is the shape persisted in the raw-data cache.
type Entity struct {
	Ticker           string            `json:"ticker"`
	Role             EntityRole        `json:"role"`
	Info             EntityInfo        `json:"info"`
	IncomeStatements []StatementRecord `json:"income_statements"`
	BalanceSheets    []StatementRecord `json:"balance_sheets"`
	CashFlows        []StatementRecord `json:"cash_flows,omitempty"`
	Prices           []PricePoint      `json:"prices"`
	Dividends        []Dividend        `json:"dividends,omitempty"`
	FetchedAt        time.Time         `json:"fetched_at"`
}

// HasCoreStatements reports whether the entity carries at least one income
// statement and one balance sheet period.
func (e *Entity) HasCoreStatements() bool {
	return len(e.IncomeStatements) > 0 && len(e.BalanceSheets) > 0
}
