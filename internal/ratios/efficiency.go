package ratios

import "github.com/bobmcallan/ratiolens/internal/models"

func assetTurnover(in Input) models.Metric {
	avg := twoPeriodAvg(in.Cur.TotalAssets, in.Prev, func(l models.StatementLine) models.Metric {
		return l.TotalAssets
	})
	return div(in.Cur.TotalRevenue, avg)
}

func inventoryTurnover(in Input) models.Metric {
	avg := twoPeriodAvg(in.Cur.Inventory, in.Prev, func(l models.StatementLine) models.Metric {
		return l.Inventory
	})
	return div(in.Cur.CostOfRevenue, avg)
}

func receivablesTurnover(in Input) models.Metric {
	avg := twoPeriodAvg(in.Cur.AccountsReceivable, in.Prev, func(l models.StatementLine) models.Metric {
		return l.AccountsReceivable
	})
	return div(in.Cur.TotalRevenue, avg)
}

// daysSalesOutstanding is single-period by design; no averaging.
func daysSalesOutstanding(in Input) models.Metric {
	return mul(div(in.Cur.AccountsReceivable, in.Cur.TotalRevenue), models.M(365))
}
