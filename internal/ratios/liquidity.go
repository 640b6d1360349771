package ratios

import "github.com/bobmcallan/ratiolens/internal/models"

func currentRatio(in Input) models.Metric {
	return div(in.Cur.CurrentAssets, in.Cur.CurrentLiabilities)
}

func quickRatio(in Input) models.Metric {
	return div(sub(in.Cur.CurrentAssets, in.Cur.Inventory), in.Cur.CurrentLiabilities)
}

func cashRatio(in Input) models.Metric {
	return div(in.Cur.CashAndEquivalents, in.Cur.CurrentLiabilities)
}
