package analysis

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/ratiolens/internal/common"
	"github.com/bobmcallan/ratiolens/internal/interfaces"
	"github.com/bobmcallan/ratiolens/internal/models"
)

// mockClient serves canned per-ticker data and records fetches. Peer fetches
// run concurrently, so call recording is locked.
type mockClient struct {
	mu           sync.Mutex
	fundamentals map[string]*models.FundamentalReport
	prices       map[string][]models.PricePoint
	dividends    map[string][]models.Dividend
	failEOD      map[string]error
	calls        []string
}

func (m *mockClient) GetEOD(ctx context.Context, ticker string, opts ...interfaces.EODOption) ([]models.PricePoint, error) {
	if err := m.failEOD[ticker]; err != nil {
		return nil, err
	}
	return m.prices[ticker], nil
}

func (m *mockClient) GetFundamentals(ctx context.Context, ticker string) (*models.FundamentalReport, error) {
	m.mu.Lock()
	m.calls = append(m.calls, ticker)
	m.mu.Unlock()
	f, ok := m.fundamentals[ticker]
	if !ok {
		return nil, fmt.Errorf("unknown ticker %s", ticker)
	}
	return f, nil
}

func (m *mockClient) GetDividends(ctx context.Context, ticker string, from, to time.Time) ([]models.Dividend, error) {
	return m.dividends[ticker], nil
}

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func fundamentalsFor(ticker string) *models.FundamentalReport {
	return &models.FundamentalReport{
		Ticker: ticker,
		Info:   models.EntityInfo{Name: ticker + " Corp"},
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
			{Date: day(2022, 6, 30), Lines: models.StatementLine{TotalAssets: models.M(2000)}},
			{Date: day(2023, 6, 30), Lines: models.StatementLine{TotalAssets: models.M(3000)}},
		},
	}
}

func newTestService(client *mockClient) *Service {
	return NewService(client, nil, common.NewSilentLogger(), common.AnalysisConfig{
		PeriodYears:  5,
		FetchTimeout: "5s",
	})
}

func TestAnalyze_PrimaryOnly(t *testing.T) {
	client := &mockClient{
		fundamentals: map[string]*models.FundamentalReport{"AAA": fundamentalsFor("AAA")},
		prices: map[string][]models.PricePoint{
			"AAA": {{Date: day(2023, 6, 30), Close: 50}},
		},
	}

	report, err := newTestService(client).Analyze(context.Background(), interfaces.AnalyzeRequest{Ticker: "AAA"})
	require.NoError(t, err)

	assert.Equal(t, "AAA", report.Ticker)
	assert.Equal(t, "AAA Corp", report.Name)
	assert.NotEmpty(t, report.RunID)
	require.Equal(t, []string{"AAA"}, report.Comparison.Entities)

	series := report.PrimarySeries()
	require.NotNil(t, series)
	npm := series.Categories[models.CategoryProfitability].Latest("Net Profit Margin (%)")
	require.True(t, npm.Valid)
	assert.InDelta(t, 10.0, npm.Value, 1e-9)
}

func TestAnalyze_FailedPeerIsIsolated(t *testing.T) {
	client := &mockClient{
		fundamentals: map[string]*models.FundamentalReport{
			"AAA": fundamentalsFor("AAA"),
			"BBB": fundamentalsFor("BBB"),
		},
		prices: map[string][]models.PricePoint{
			"AAA": {{Date: day(2023, 6, 30), Close: 50}},
			"BBB": {{Date: day(2023, 6, 30), Close: 30}},
		},
	}

	report, err := newTestService(client).Analyze(context.Background(), interfaces.AnalyzeRequest{
		Ticker: "AAA",
		Peers:  []string{"BBB", "GONE"},
	})
	require.NoError(t, err)

	// BBB analyzed, GONE reported as failed, primary untouched.
	assert.Equal(t, []string{"AAA", "BBB"}, report.Comparison.Entities)
	require.Contains(t, report.Comparison.Failed, "GONE")
	assert.Contains(t, report.Comparison.Failed["GONE"], "GONE")
	assert.NotContains(t, report.Comparison.Series, "GONE")
}

func TestAnalyze_PrimaryFailureAborts(t *testing.T) {
	client := &mockClient{fundamentals: map[string]*models.FundamentalReport{}}

	_, err := newTestService(client).Analyze(context.Background(), interfaces.AnalyzeRequest{Ticker: "GONE"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "primary entity GONE")
}

func TestAnalyze_PrimaryMissingStatements(t *testing.T) {
	client := &mockClient{
		fundamentals: map[string]*models.FundamentalReport{
			"AAA": {Ticker: "AAA", Info: models.EntityInfo{Name: "AAA Corp"}},
		},
	}

	_, err := newTestService(client).Analyze(context.Background(), interfaces.AnalyzeRequest{Ticker: "AAA"})
	require.Error(t, err)
	assert.True(t, common.IsDataUnavailable(err))
}

func TestAnalyze_PeerMissingStatementsTolerated(t *testing.T) {
	peer := fundamentalsFor("BBB")
	peer.IncomeStatements = nil
	peer.BalanceSheets = nil

	client := &mockClient{
		fundamentals: map[string]*models.FundamentalReport{
			"AAA": fundamentalsFor("AAA"),
			"BBB": peer,
		},
		prices: map[string][]models.PricePoint{
			"AAA": {{Date: day(2023, 6, 30), Close: 50}},
			"BBB": {{Date: day(2023, 6, 30), Close: 30}},
		},
	}

	report, err := newTestService(client).Analyze(context.Background(), interfaces.AnalyzeRequest{
		Ticker: "AAA",
		Peers:  []string{"BBB"},
	})
	require.NoError(t, err)

	// A statement-less peer still participates; its ratio columns just come
	// out empty rather than failing the run.
	assert.Contains(t, report.Comparison.Entities, "BBB")
	assert.Empty(t, report.Comparison.Failed)
}

func TestAnalyze_LatestComparisonTable(t *testing.T) {
	client := &mockClient{
		fundamentals: map[string]*models.FundamentalReport{
			"AAA": fundamentalsFor("AAA"),
			"BBB": fundamentalsFor("BBB"),
		},
		prices: map[string][]models.PricePoint{
			"AAA": {{Date: day(2023, 6, 30), Close: 50}},
			"BBB": {{Date: day(2023, 6, 30), Close: 30}},
		},
	}

	report, err := newTestService(client).Analyze(context.Background(), interfaces.AnalyzeRequest{
		Ticker: "AAA",
		Peers:  []string{"BBB"},
	})
	require.NoError(t, err)

	latest := report.Comparison.Latest["Net Profit Margin (%)"]
	require.NotNil(t, latest)
	assert.InDelta(t, 10.0, latest["AAA"].Value, 1e-9)
	assert.InDelta(t, 10.0, latest["BBB"].Value, 1e-9)
}

func TestAnalyze_ValidationErrors(t *testing.T) {
	svc := newTestService(&mockClient{})

	_, err := svc.Analyze(context.Background(), interfaces.AnalyzeRequest{})
	assert.ErrorContains(t, err, "ticker is required")

	_, err = svc.Analyze(context.Background(), interfaces.AnalyzeRequest{Ticker: "AAA", Years: 50})
	assert.ErrorContains(t, err, "years must be between")
}

func TestAnalyze_DeduplicatesPeers(t *testing.T) {
	client := &mockClient{
		fundamentals: map[string]*models.FundamentalReport{"AAA": fundamentalsFor("AAA")},
		prices: map[string][]models.PricePoint{
			"AAA": {{Date: day(2023, 6, 30), Close: 50}},
		},
	}

	report, err := newTestService(client).Analyze(context.Background(), interfaces.AnalyzeRequest{
		Ticker: "AAA",
		Peers:  []string{"AAA", " ", "AAA"},
	})
	require.NoError(t, err)

	// The primary is never re-fetched as its own peer.
	assert.Equal(t, []string{"AAA"}, report.Comparison.Entities)
	assert.Len(t, client.calls, 1)
}

func TestTrimToWindow(t *testing.T) {
	records := make([]models.StatementRecord, 8)
	for i := range records {
		records[i] = models.StatementRecord{Date: day(2016+i, 6, 30)}
	}

	trimmed := trimToWindow(records, 5)
	require.Len(t, trimmed, 6) // five years plus the preceding period
	assert.Equal(t, 2018, trimmed[0].Date.Year())
	assert.Equal(t, 2023, trimmed[len(trimmed)-1].Date.Year())

	short := trimToWindow(records[:3], 5)
	assert.Len(t, short, 3)
}
