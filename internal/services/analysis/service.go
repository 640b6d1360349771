// Package analysis runs the fetch + align + compute pipeline across the
// primary entity and its benchmarks.
package analysis

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/ratiolens/internal/common"
	"github.com/bobmcallan/ratiolens/internal/interfaces"
	"github.com/bobmcallan/ratiolens/internal/models"
	"github.com/bobmcallan/ratiolens/internal/ratios"
)

// Service implements AnalysisService
type Service struct {
	client  interfaces.MarketDataClient
	storage interfaces.StorageManager
	logger  *common.Logger
	cfg     common.AnalysisConfig
}

// NewService creates a new analysis service
func NewService(client interfaces.MarketDataClient, storage interfaces.StorageManager, logger *common.Logger, cfg common.AnalysisConfig) *Service {
	return &Service{
		client:  client,
		storage: storage,
		logger:  logger,
		cfg:     cfg,
	}
}

// Analyze computes all six ratio categories for the primary entity and every
// reachable benchmark. Each entity runs its own independent pipeline on its
// own fiscal calendar; peer and index failures are isolated and reported in
// the comparison view, a primary failure aborts the run.
func (s *Service) Analyze(ctx context.Context, req interfaces.AnalyzeRequest) (*models.AnalysisReport, error) {
	if err := s.validate(&req); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("ticker", req.Ticker).
		Strs("peers", req.Peers).
		Str("index", req.Index).
		Int("years", req.Years).
		Msg("Starting analysis")

	// Primary fetch is fatal on failure.
	primary, err := s.fetchEntity(ctx, req.Ticker, models.RolePrimary, req.Years, req.ForceRefresh)
	if err != nil {
		return nil, fmt.Errorf("primary entity %s: %w", req.Ticker, err)
	}

	// Benchmarks and the index fetch in parallel; each pipeline is fully
	// independent and failures stay per-entity.
	type fetchResult struct {
		ticker string
		role   models.EntityRole
		entity *models.Entity
		err    error
	}

	var others []fetchResult
	if len(req.Peers) > 0 || req.Index != "" {
		jobs := make([]fetchResult, 0, len(req.Peers)+1)
		for _, peer := range req.Peers {
			jobs = append(jobs, fetchResult{ticker: peer, role: models.RolePeer})
		}
		if req.Index != "" {
			jobs = append(jobs, fetchResult{ticker: req.Index, role: models.RoleIndex})
		}

		var wg sync.WaitGroup
		for i := range jobs {
			wg.Add(1)
			go func(job *fetchResult) {
				defer wg.Done()
				job.entity, job.err = s.fetchEntity(ctx, job.ticker, job.role, req.Years, req.ForceRefresh)
				if job.err != nil {
					job.err = &common.EntityFetchError{Ticker: job.ticker, Err: job.err}
				}
			}(&jobs[i])
		}
		wg.Wait()
		others = jobs
	}

	// Align and compute per entity. The index alignment feeds rolling beta
	// for every entity, including itself.
	comparison := &models.Comparison{
		Primary: req.Ticker,
		Failed:  make(map[string]string),
		Latest:  make(map[string]map[string]models.Metric),
		Series:  make(map[string]*models.EntitySeries),
	}

	var indexAlignment *ratios.Alignment
	for _, r := range others {
		if r.role == models.RoleIndex && r.err == nil {
			indexAlignment = ratios.Align(r.entity)
		}
	}

	addEntity := func(entity *models.Entity) {
		a := ratios.Align(entity)
		categories := ratios.AggregateAll(a, ratios.AggregateOptions{
			Index:      indexAlignment,
			BetaWindow: s.cfg.BetaWindow,
		})
		es := &models.EntitySeries{
			Ticker:     entity.Ticker,
			Role:       entity.Role,
			Name:       entity.Info.Name,
			Categories: categories,
		}
		comparison.Entities = append(comparison.Entities, entity.Ticker)
		comparison.Series[entity.Ticker] = es

		for _, series := range categories {
			for _, ratio := range series.Ratios {
				if latest := series.Latest(ratio); latest.Valid {
					if comparison.Latest[ratio] == nil {
						comparison.Latest[ratio] = make(map[string]models.Metric)
					}
					comparison.Latest[ratio][entity.Ticker] = latest
				}
			}
		}
	}

	addEntity(primary)
	for _, r := range others {
		if r.err != nil {
			s.logger.Warn().Str("ticker", r.ticker).Err(r.err).Msg("Benchmark entity skipped")
			comparison.Failed[r.ticker] = r.err.Error()
			continue
		}
		addEntity(r.entity)
	}

	report := &models.AnalysisReport{
		RunID:       uuid.NewString(),
		Ticker:      primary.Ticker,
		Name:        primary.Info.Name,
		Sector:      primary.Info.Sector,
		Industry:    primary.Info.Industry,
		GeneratedAt: time.Now(),
		PeriodYears: req.Years,
		Comparison:  comparison,
	}

	s.logger.Info().
		Str("ticker", req.Ticker).
		Int("entities", len(comparison.Entities)).
		Int("failed", len(comparison.Failed)).
		Msg("Analysis complete")

	return report, nil
}

// validate fails fast on malformed input before any fetch begins.
func (s *Service) validate(req *interfaces.AnalyzeRequest) error {
	req.Ticker = strings.TrimSpace(req.Ticker)
	if req.Ticker == "" {
		return fmt.Errorf("ticker is required")
	}
	if req.Years == 0 {
		req.Years = s.cfg.PeriodYears
	}
	if req.Years < 1 || req.Years > 20 {
		return fmt.Errorf("years must be between 1 and 20, got %d", req.Years)
	}

	seen := map[string]bool{req.Ticker: true}
	peers := make([]string, 0, len(req.Peers))
	for _, peer := range req.Peers {
		peer = strings.TrimSpace(peer)
		if peer == "" || seen[peer] {
			continue
		}
		seen[peer] = true
		peers = append(peers, peer)
	}
	req.Peers = peers
	req.Index = strings.TrimSpace(req.Index)

	return nil
}

// rangeKey builds the cache key suffix for a lookback window.
func rangeKey(years int) string {
	return fmt.Sprintf("%dy", years)
}

// fetchEntity returns raw entity data from the cache or the provider. The
// entity is immutable once fetched for the run; the cache is an optional
// side-store keyed by (ticker, period-range).
func (s *Service) fetchEntity(ctx context.Context, ticker string, role models.EntityRole, years int, force bool) (*models.Entity, error) {
	key := rangeKey(years)

	if !force && s.storage != nil {
		if cached, err := s.storage.EntityStorage().GetEntity(ctx, ticker, key); err == nil &&
			common.IsFresh(cached.FetchedAt, common.FreshnessStatements) {
			cached.Role = role
			s.logger.Debug().Str("ticker", ticker).Msg("Using cached entity data")
			return cached, nil
		}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.GetFetchTimeout())
	defer cancel()

	now := time.Now()
	// One extra year of prices so the rolling-beta window fills before the
	// earliest reporting period.
	from := now.AddDate(-(years + 1), 0, 0)

	fundamentals, err := s.client.GetFundamentals(fetchCtx, ticker)
	if err != nil {
		return nil, fmt.Errorf("fundamentals: %w", err)
	}

	prices, err := s.client.GetEOD(fetchCtx, ticker, interfaces.WithDateRange(from, now))
	if err != nil {
		return nil, fmt.Errorf("prices: %w", err)
	}

	dividends, err := s.client.GetDividends(fetchCtx, ticker, from, now)
	if err != nil {
		// Dividend history is optional; market-performance yield degrades
		// to zero-dividend years.
		s.logger.Warn().Str("ticker", ticker).Err(err).Msg("Dividend history unavailable")
		dividends = nil
	}

	entity := &models.Entity{
		Ticker:           ticker,
		Role:             role,
		Info:             fundamentals.Info,
		IncomeStatements: trimToWindow(fundamentals.IncomeStatements, years),
		BalanceSheets:    trimToWindow(fundamentals.BalanceSheets, years),
		CashFlows:        trimToWindow(fundamentals.CashFlows, years),
		Prices:           prices,
		Dividends:        dividends,
		FetchedAt:        now,
	}

	if role == models.RolePrimary {
		if len(entity.IncomeStatements) == 0 {
			return nil, &common.DataUnavailableError{Ticker: ticker, Section: "income statement"}
		}
		if len(entity.BalanceSheets) == 0 {
			return nil, &common.DataUnavailableError{Ticker: ticker, Section: "balance sheet"}
		}
	}

	if s.storage != nil {
		if err := s.storage.EntityStorage().SaveEntity(ctx, entity, key); err != nil {
			s.logger.Warn().Str("ticker", ticker).Err(err).Msg("Failed to cache entity data")
		}
	}

	return entity, nil
}

// trimToWindow keeps the last `years` annual records plus one preceding
// record so two-period rolling averages have their previous period.
func trimToWindow(records []models.StatementRecord, years int) []models.StatementRecord {
	keep := years + 1
	if len(records) <= keep {
		return records
	}
	return records[len(records)-keep:]
}

// Ensure Service implements AnalysisService
var _ interfaces.AnalysisService = (*Service)(nil)
