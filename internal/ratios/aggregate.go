package ratios

import "github.com/bobmcallan/ratiolens/internal/models"

// AggregateOptions tunes category aggregation.
type AggregateOptions struct {
	// Index is the market index alignment for rolling beta; nil disables
	// the beta column.
	Index *Alignment
	// BetaWindow is the rolling-beta window in trading days; 0 uses the
	// default.
	BetaWindow int
}

// Aggregate runs a category's full ratio set across every aligned period of
// one entity, producing an ordered RatioSeries. A ratio failing in one
// period never blocks other ratios or periods; columns with no defined value
// in any period are omitted.
func Aggregate(a *Alignment, category models.Category, opts AggregateOptions) *models.RatioSeries {
	entries := catalog[category]

	series := &models.RatioSeries{
		Ticker:   a.Ticker,
		Category: category,
		Periods:  make([]models.FiscalPeriod, 0, len(a.Periods)),
		Values:   make(map[string]map[string]models.Metric, len(a.Periods)),
	}

	// Rolling beta is computed once per entity, then resampled per period.
	var betaSeries []BetaPoint
	if category == models.CategoryMarket && opts.Index != nil {
		window := opts.BetaWindow
		if window <= 0 {
			window = DefaultBetaWindow
		}
		betaSeries = RollingBetaSeries(a.Prices(), opts.Index.Prices(), window)
	}

	defined := make(map[string]bool, len(entries))

	for _, ap := range a.Periods {
		in := Input{
			Cur:   ap.Lines,
			Prev:  ap.Prev,
			Price: a.NearestPriceAt(ap.Period.Date),
			Info:  a.Info,
		}
		if category == models.CategoryMarket {
			in.AnnualDividends = models.M(a.DividendsInYear(ap.Period.Year()))
			in.Beta = BetaAt(betaSeries, ap.Period.Date)
		}

		row := make(map[string]models.Metric, len(entries))
		for _, entry := range entries {
			v := entry.Fn(in)
			row[entry.Name] = v
			if v.Valid {
				defined[entry.Name] = true
			}
		}

		series.Periods = append(series.Periods, ap.Period)
		series.Values[ap.Period.Key()] = row
	}

	// Columns that never produced a value are dropped from the table.
	for _, entry := range entries {
		if defined[entry.Name] {
			series.Ratios = append(series.Ratios, entry.Name)
		}
	}

	return series
}

// AggregateAll runs every category for one entity.
func AggregateAll(a *Alignment, opts AggregateOptions) map[models.Category]*models.RatioSeries {
	out := make(map[models.Category]*models.RatioSeries, len(catalog))
	for _, category := range models.AllCategories() {
		out[category] = Aggregate(a, category, opts)
	}
	return out
}
