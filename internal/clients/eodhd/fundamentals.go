package eodhd

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/bobmcallan/ratiolens/internal/models"
)

// jsonMetric handles statement values that may be a number, a numeric
// string, "N/A", or null. Anything non-numeric normalizes to absent here,
// at ingestion, so formulas never see provider quirks.
type jsonMetric struct {
	models.Metric
}

func (m *jsonMetric) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		m.Metric = models.Absent()
		return nil
	}
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		m.Metric = models.M(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if num, err := strconv.ParseFloat(s, 64); err == nil {
			m.Metric = models.M(num)
		} else {
			m.Metric = models.Absent()
		}
		return nil
	}
	m.Metric = models.Absent()
	return nil
}

// GetFundamentals retrieves static info plus the annual statement sections,
// normalized to the canonical StatementLine vocabulary. Missing sections
// come back as empty slices.
func (c *Client) GetFundamentals(ctx context.Context, ticker string) (*models.FundamentalReport, error) {
	path := fmt.Sprintf("/fundamentals/%s", ticker)

	var resp fundamentalsResponse
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, err
	}

	report := &models.FundamentalReport{
		Ticker: ticker,
		Info: models.EntityInfo{
			Name:              resp.General.Name,
			Sector:            resp.General.Sector,
			Industry:          resp.General.Industry,
			SharesOutstanding: resp.SharesStats.SharesOutstanding.Metric,
			Beta:              resp.Technicals.Beta.Metric,
		},
	}

	report.IncomeStatements = mapSection(resp.Financials.IncomeStatement.Yearly, mapIncomeLines)
	report.BalanceSheets = mapSection(resp.Financials.BalanceSheet.Yearly, mapBalanceLines)
	report.CashFlows = mapSection(resp.Financials.CashFlow.Yearly, mapCashFlowLines)

	c.logger.Debug().
		Str("ticker", ticker).
		Int("income_periods", len(report.IncomeStatements)).
		Int("balance_periods", len(report.BalanceSheets)).
		Msg("EODHD fundamentals fetched")

	return report, nil
}

// mapSection converts a yearly statement map into records sorted by date
// ascending. Rows with unparsable dates are dropped.
func mapSection[T any](yearly map[string]T, toLines func(T) models.StatementLine) []models.StatementRecord {
	records := make([]models.StatementRecord, 0, len(yearly))
	for dateStr, row := range yearly {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}
		records = append(records, models.StatementRecord{
			Date:  date,
			Lines: toLines(row),
		})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })
	return records
}

func mapIncomeLines(row incomeStatementRow) models.StatementLine {
	return models.StatementLine{
		TotalRevenue:    row.TotalRevenue.Metric,
		OperatingIncome: row.OperatingIncome.Metric,
		NetIncome:       row.NetIncome.Metric,
		CostOfRevenue:   row.CostOfRevenue.Metric,
		EBIT:            row.EBIT.Metric,
		EBITDA:          row.EBITDA.Metric,
		InterestExpense: row.InterestExpense.Metric,
		DilutedEPS:      row.DilutedEPS.Metric,
	}
}

func mapBalanceLines(row balanceSheetRow) models.StatementLine {
	cash := row.CashAndEquivalents.Metric
	if !cash.Valid {
		cash = row.Cash.Metric
	}
	return models.StatementLine{
		TotalAssets:          row.TotalAssets.Metric,
		CurrentAssets:        row.TotalCurrentAssets.Metric,
		CurrentLiabilities:   row.TotalCurrentLiabilities.Metric,
		Inventory:            row.Inventory.Metric,
		AccountsReceivable:   row.NetReceivables.Metric,
		CashAndEquivalents:   cash,
		TotalDebt:            row.ShortLongTermDebtTotal.Metric,
		LongTermDebt:         row.LongTermDebt.Metric,
		StockholdersEquity:   row.TotalStockholderEquity.Metric,
		OrdinarySharesNumber: row.CommonStockSharesOutstanding.Metric,
	}
}

func mapCashFlowLines(row cashFlowRow) models.StatementLine {
	return models.StatementLine{
		DividendsPaid: row.DividendsPaid.Metric,
	}
}

// fundamentalsResponse represents the API response structure
type fundamentalsResponse struct {
	General struct {
		Code     string `json:"Code"`
		Name     string `json:"Name"`
		Sector   string `json:"Sector"`
		Industry string `json:"Industry"`
	} `json:"General"`
	SharesStats struct {
		SharesOutstanding jsonMetric `json:"SharesOutstanding"`
	} `json:"SharesStats"`
	Technicals struct {
		Beta jsonMetric `json:"Beta"`
	} `json:"Technicals"`
	Financials struct {
		IncomeStatement struct {
			Yearly map[string]incomeStatementRow `json:"yearly"`
		} `json:"Income_Statement"`
		BalanceSheet struct {
			Yearly map[string]balanceSheetRow `json:"yearly"`
		} `json:"Balance_Sheet"`
		CashFlow struct {
			Yearly map[string]cashFlowRow `json:"yearly"`
		} `json:"Cash_Flow"`
	} `json:"Financials"`
}

type incomeStatementRow struct {
	TotalRevenue    jsonMetric `json:"totalRevenue"`
	OperatingIncome jsonMetric `json:"operatingIncome"`
	NetIncome       jsonMetric `json:"netIncome"`
	CostOfRevenue   jsonMetric `json:"costOfRevenue"`
	EBIT            jsonMetric `json:"ebit"`
	EBITDA          jsonMetric `json:"ebitda"`
	InterestExpense jsonMetric `json:"interestExpense"`
	DilutedEPS      jsonMetric `json:"epsDiluted"`
}

type balanceSheetRow struct {
	TotalAssets                  jsonMetric `json:"totalAssets"`
	TotalCurrentAssets           jsonMetric `json:"totalCurrentAssets"`
	TotalCurrentLiabilities      jsonMetric `json:"totalCurrentLiabilities"`
	Inventory                    jsonMetric `json:"inventory"`
	NetReceivables               jsonMetric `json:"netReceivables"`
	Cash                         jsonMetric `json:"cash"`
	CashAndEquivalents           jsonMetric `json:"cashAndEquivalents"`
	ShortLongTermDebtTotal       jsonMetric `json:"shortLongTermDebtTotal"`
	LongTermDebt                 jsonMetric `json:"longTermDebt"`
	TotalStockholderEquity       jsonMetric `json:"totalStockholderEquity"`
	CommonStockSharesOutstanding jsonMetric `json:"commonStockSharesOutstanding"`
}

type cashFlowRow struct {
	DividendsPaid jsonMetric `json:"dividendsPaid"`
}
