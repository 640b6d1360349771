package models

// Category is one of the six ratio categories.
type Category string

const (
	CategoryProfitability Category = "profitability"
	CategoryLiquidity     Category = "liquidity"
	CategorySolvency      Category = "solvency"
	CategoryEfficiency    Category = "efficiency"
	CategoryValuation     Category = "valuation"
	CategoryMarket        Category = "market_performance"
)

// AllCategories returns the six categories in report order.
func AllCategories() []Category {
	return []Category{
		CategoryProfitability,
		CategoryLiquidity,
		CategorySolvency,
		CategoryEfficiency,
		CategoryValuation,
		CategoryMarket,
	}
}

// Title returns the human-readable category name.
func (c Category) Title() string {
	switch c {
	case CategoryProfitability:
		return "Profitability Ratios"
	case CategoryLiquidity:
		return "Liquidity Ratios"
	case CategorySolvency:
		return "Solvency Ratios"
	case CategoryEfficiency:
		return "Efficiency Ratios"
	case CategoryValuation:
		return "Valuation Ratios"
	case CategoryMarket:
		return "Market Performance Ratios"
	}
	return string(c)
}

// RatioSeries is the engine output for one entity and one category: an
// ordered per-period table of ratio values. Periods ascend chronologically.
// Ratios lists the columns that had at least one defined value.
type RatioSeries struct {
	Ticker   string                       `json:"ticker"`
	Category Category                     `json:"category"`
	Periods  []FiscalPeriod               `json:"periods"`
	Ratios   []string                     `json:"ratios"`
	Values   map[string]map[string]Metric `json:"values"` // period key -> ratio -> value
}

// At returns the value of a ratio for a period.
func (s *RatioSeries) At(period FiscalPeriod, ratio string) Metric {
	row, ok := s.Values[period.Key()]
	if !ok {
		return Absent()
	}
	return row[ratio]
}

// Column returns the ratio's values in period order.
func (s *RatioSeries) Column(ratio string) []Metric {
	col := make([]Metric, len(s.Periods))
	for i, p := range s.Periods {
		col[i] = s.At(p, ratio)
	}
	return col
}

// Latest returns the most recent defined value of a ratio.
func (s *RatioSeries) Latest(ratio string) Metric {
	for i := len(s.Periods) - 1; i >= 0; i-- {
		if v := s.At(s.Periods[i], ratio); v.Valid {
			return v
		}
	}
	return Absent()
}

// First returns the earliest defined value of a ratio.
func (s *RatioSeries) First(ratio string) Metric {
	for _, p := range s.Periods {
		if v := s.At(p, ratio); v.Valid {
			return v
		}
	}
	return Absent()
}

// Average returns the mean of the ratio's defined values.
func (s *RatioSeries) Average(ratio string) Metric {
	sum := 0.0
	n := 0
	for _, p := range s.Periods {
		if v := s.At(p, ratio); v.Valid {
			sum += v.Value
			n++
		}
	}
	if n == 0 {
		return Absent()
	}
	return M(sum / float64(n))
}

// EntitySeries groups the six category series for one entity.
type EntitySeries struct {
	Ticker     string                    `json:"ticker"`
	Role       EntityRole                `json:"role"`
	Name       string                    `json:"name,omitempty"`
	Categories map[Category]*RatioSeries `json:"categories"`
}

// Comparison is the benchmark view assembled across entities: the latest
// value of every ratio per entity, plus full series for charting. Entities
// whose fetch or compute failed appear in Failed and nowhere else.
type Comparison struct {
	Primary  string                       `json:"primary"`
	Entities []string                     `json:"entities"` // primary first, then peers, then index
	Failed   map[string]string            `json:"failed,omitempty"`
	Latest   map[string]map[string]Metric `json:"latest"` // ratio -> ticker -> latest value
	Series   map[string]*EntitySeries     `json:"series"` // ticker -> per-category series
}
