package ratios

import "github.com/bobmcallan/ratiolens/internal/models"

// Ratio names. These are the canonical column labels used in series, charts
// and exports.
const (
	RatioNetProfitMargin    = "Net Profit Margin (%)"
	RatioOperatingMargin    = "Operating Profit Margin (%)"
	RatioReturnOnEquity     = "Return on Equity (%)"
	RatioReturnOnAssets     = "Return on Assets (%)"
	RatioReturnOnCapital    = "Return on Capital Employed (%)"
	RatioEarningsPerShare   = "EPS"
	RatioCurrent            = "Current Ratio"
	RatioQuick              = "Quick Ratio"
	RatioCash               = "Cash Ratio"
	RatioDebtToEquity       = "Debt-to-Equity Ratio"
	RatioInterestCoverage   = "Interest Coverage Ratio"
	RatioDebtToAsset        = "Debt-to-Asset Ratio"
	RatioAssetTurnover      = "Asset Turnover Ratio"
	RatioInventoryTurnover  = "Inventory Turnover Ratio"
	RatioReceivablesTurn    = "Receivables Turnover Ratio"
	RatioDaysSalesOutstand  = "Days Sales Outstanding"
	RatioPriceToEarnings    = "P/E Ratio"
	RatioPriceToBook        = "P/B Ratio"
	RatioEVToEBITDA         = "EV/EBITDA"
	RatioDividendYield      = "Dividend Yield (%)"
	RatioBeta               = "Beta"
	RatioMarketCap          = "Market Capitalization"
)

// Input carries everything a formula may consume for one period: the current
// period's lines, the previous period's lines (nil for the earliest period),
// the matched price, entity static info, and precomputed period-level
// market data.
type Input struct {
	Cur   models.StatementLine
	Prev  *models.StatementLine
	Price models.Metric
	Info  models.EntityInfo

	// Market-performance inputs, resolved per period by the aggregator.
	AnnualDividends models.Metric // per-share dividends in the period's calendar year
	Beta            models.Metric // rolling beta resampled to the period
}

// Formula is one ratio: a pure function from period inputs to a value or
// absent.
type Formula func(Input) models.Metric

// catalogEntry binds a ratio name to its formula.
type catalogEntry struct {
	Name string
	Fn   Formula
}

// catalog holds the full ratio set per category, in display order.
var catalog = map[models.Category][]catalogEntry{
	models.CategoryProfitability: {
		{RatioNetProfitMargin, netProfitMargin},
		{RatioOperatingMargin, operatingProfitMargin},
		{RatioReturnOnEquity, returnOnEquity},
		{RatioReturnOnAssets, returnOnAssets},
		{RatioReturnOnCapital, returnOnCapitalEmployed},
		{RatioEarningsPerShare, earningsPerShare},
	},
	models.CategoryLiquidity: {
		{RatioCurrent, currentRatio},
		{RatioQuick, quickRatio},
		{RatioCash, cashRatio},
	},
	models.CategorySolvency: {
		{RatioDebtToEquity, debtToEquity},
		{RatioInterestCoverage, interestCoverage},
		{RatioDebtToAsset, debtToAsset},
	},
	models.CategoryEfficiency: {
		{RatioAssetTurnover, assetTurnover},
		{RatioInventoryTurnover, inventoryTurnover},
		{RatioReceivablesTurn, receivablesTurnover},
		{RatioDaysSalesOutstand, daysSalesOutstanding},
	},
	models.CategoryValuation: {
		{RatioPriceToEarnings, priceToEarnings},
		{RatioPriceToBook, priceToBook},
		{RatioEVToEBITDA, evToEBITDA},
	},
	models.CategoryMarket: {
		{RatioDividendYield, dividendYield},
		{RatioBeta, rollingBeta},
		{RatioMarketCap, marketCapitalization},
	},
}

// CategoryRatios returns the ratio names of a category in display order.
func CategoryRatios(c models.Category) []string {
	entries := catalog[c]
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}
