package ratios

import (
	"sort"
	"time"

	"github.com/bobmcallan/ratiolens/internal/models"
)

// DefaultBetaWindow is the trailing window for rolling beta, roughly one
// year of trading days.
const DefaultBetaWindow = 252

// BetaPoint is one rolling-beta observation.
type BetaPoint struct {
	Date  time.Time
	Value float64
}

// RollingBetaSeries computes rolling beta of the stock against the index:
// covariance(stock returns, index returns) / variance(index returns) over a
// trailing window of daily returns. Only dates present in both series
// contribute. The output starts once the window is filled.
func RollingBetaSeries(stock, index []models.PricePoint, window int) []BetaPoint {
	if window < 2 {
		window = DefaultBetaWindow
	}

	dates, stockReturns, indexReturns := alignedReturns(stock, index)
	n := len(dates)
	if n < window {
		return nil
	}

	// Running sums over the trailing window.
	var sumX, sumY, sumXY, sumYY float64
	out := make([]BetaPoint, 0, n-window+1)

	for i := 0; i < n; i++ {
		x, y := stockReturns[i], indexReturns[i]
		sumX += x
		sumY += y
		sumXY += x * y
		sumYY += y * y

		if i >= window {
			px, py := stockReturns[i-window], indexReturns[i-window]
			sumX -= px
			sumY -= py
			sumXY -= px * py
			sumYY -= py * py
		}

		if i >= window-1 {
			w := float64(window)
			cov := sumXY - sumX*sumY/w
			varIdx := sumYY - sumY*sumY/w
			if varIdx == 0 {
				continue
			}
			out = append(out, BetaPoint{Date: dates[i], Value: cov / varIdx})
		}
	}

	return out
}

// BetaAt returns the last rolling-beta value at or before t, resampling the
// daily series to one value per fiscal period.
func BetaAt(series []BetaPoint, t time.Time) models.Metric {
	idx := sort.Search(len(series), func(i int) bool {
		return series[i].Date.After(t)
	})
	if idx == 0 {
		return models.Absent()
	}
	return models.M(series[idx-1].Value)
}

// alignedReturns intersects the two price series by date and computes daily
// returns for the common dates.
func alignedReturns(stock, index []models.PricePoint) ([]time.Time, []float64, []float64) {
	indexByDate := make(map[string]float64, len(index))
	for _, p := range index {
		indexByDate[p.Date.Format("2006-01-02")] = p.Close
	}

	var dates []time.Time
	var stockCloses, indexCloses []float64
	for _, p := range sortedPrices(stock) {
		idxClose, ok := indexByDate[p.Date.Format("2006-01-02")]
		if !ok || idxClose == 0 || p.Close == 0 {
			continue
		}
		dates = append(dates, p.Date)
		stockCloses = append(stockCloses, p.Close)
		indexCloses = append(indexCloses, idxClose)
	}

	if len(dates) < 2 {
		return nil, nil, nil
	}

	retDates := make([]time.Time, 0, len(dates)-1)
	stockReturns := make([]float64, 0, len(dates)-1)
	indexReturns := make([]float64, 0, len(dates)-1)
	for i := 1; i < len(dates); i++ {
		retDates = append(retDates, dates[i])
		stockReturns = append(stockReturns, dailyReturn(stockCloses[i-1], stockCloses[i]))
		indexReturns = append(indexReturns, dailyReturn(indexCloses[i-1], indexCloses[i]))
	}

	return retDates, stockReturns, indexReturns
}

func dailyReturn(prev, cur float64) float64 {
	return cur/prev - 1
}
