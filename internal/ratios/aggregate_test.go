package ratios

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/ratiolens/internal/models"
)

func twoYearEntity() *models.Entity {
	return &models.Entity{
		Ticker: "TEST",
		IncomeStatements: []models.StatementRecord{
			{Date: day(2022, 6, 30), Lines: models.StatementLine{
				TotalRevenue: models.M(900),
				NetIncome:    models.M(90),
			}},
			{Date: day(2023, 6, 30), Lines: models.StatementLine{
				TotalRevenue: models.M(1000),
				NetIncome:    models.M(100),
			}},
		},
		BalanceSheets: []models.StatementRecord{
			{Date: day(2022, 6, 30), Lines: models.StatementLine{
				TotalAssets: models.M(2000),
			}},
			{Date: day(2023, 6, 30), Lines: models.StatementLine{
				TotalAssets: models.M(3000),
			}},
		},
		Prices: []models.PricePoint{
			{Date: day(2022, 6, 30), Close: 40},
			{Date: day(2023, 6, 30), Close: 50},
		},
		Dividends: []models.Dividend{
			{Date: day(2023, 2, 1), Amount: 1.0},
			{Date: day(2023, 8, 1), Amount: 1.5},
		},
	}
}

func TestAggregate_ComputesPerPeriod(t *testing.T) {
	series := Aggregate(Align(twoYearEntity()), models.CategoryProfitability, AggregateOptions{})
	require.Len(t, series.Periods, 2)

	npm2022 := series.At(models.FiscalPeriod{Date: day(2022, 6, 30)}, RatioNetProfitMargin)
	require.True(t, npm2022.Valid)
	assert.InDelta(t, 10.0, npm2022.Value, 1e-9)

	npm2023 := series.At(models.FiscalPeriod{Date: day(2023, 6, 30)}, RatioNetProfitMargin)
	require.True(t, npm2023.Valid)
	assert.InDelta(t, 10.0, npm2023.Value, 1e-9)
}

func TestAggregate_PrunesNeverDefinedColumns(t *testing.T) {
	series := Aggregate(Align(twoYearEntity()), models.CategoryProfitability, AggregateOptions{})

	// Net profit margin survives; equity was never reported so ROE must not
	// appear as a column.
	assert.Contains(t, series.Ratios, RatioNetProfitMargin)
	assert.NotContains(t, series.Ratios, RatioReturnOnEquity)
}

func TestAggregate_FailedRatioDoesNotBlockOthers(t *testing.T) {
	series := Aggregate(Align(twoYearEntity()), models.CategoryEfficiency, AggregateOptions{})

	// Asset turnover is defined in both periods even though inventory and
	// receivables ratios never are.
	at := series.Latest(RatioAssetTurnover)
	require.True(t, at.Valid)
	assert.InDelta(t, 0.4, at.Value, 1e-9) // 1000 / ((2000+3000)/2)
	assert.NotContains(t, series.Ratios, RatioInventoryTurnover)
}

func TestAggregate_DividendYieldUsesPeriodYear(t *testing.T) {
	series := Aggregate(Align(twoYearEntity()), models.CategoryMarket, AggregateOptions{})

	// 2023 payments total 2.50 regardless of the fiscal date falling mid-year;
	// 2022 had none, so its yield is 0.
	y2023 := series.At(models.FiscalPeriod{Date: day(2023, 6, 30)}, RatioDividendYield)
	require.True(t, y2023.Valid)
	assert.InDelta(t, 5.0, y2023.Value, 1e-9) // 2.5 / 50 * 100

	y2022 := series.At(models.FiscalPeriod{Date: day(2022, 6, 30)}, RatioDividendYield)
	require.True(t, y2022.Valid)
	assert.Equal(t, 0.0, y2022.Value)
}

func TestAggregate_BetaAbsentWithoutIndex(t *testing.T) {
	series := Aggregate(Align(twoYearEntity()), models.CategoryMarket, AggregateOptions{})
	assert.NotContains(t, series.Ratios, RatioBeta)
}

func TestAggregate_Idempotent(t *testing.T) {
	a := Align(twoYearEntity())
	first := Aggregate(a, models.CategoryProfitability, AggregateOptions{})
	second := Aggregate(a, models.CategoryProfitability, AggregateOptions{})
	assert.Equal(t, first, second)
}

func TestAggregateAll_CoversEveryCategory(t *testing.T) {
	out := AggregateAll(Align(twoYearEntity()), AggregateOptions{})
	require.Len(t, out, len(models.AllCategories()))
	for _, c := range models.AllCategories() {
		require.NotNil(t, out[c])
		assert.Equal(t, c, out[c].Category)
	}
}
