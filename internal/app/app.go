// Package app wires configuration, storage, the market-data client and the
// services into one shared core used by the server and CLI entrypoints.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/bobmcallan/ratiolens/internal/clients/eodhd"
	"github.com/bobmcallan/ratiolens/internal/common"
	"github.com/bobmcallan/ratiolens/internal/interfaces"
	"github.com/bobmcallan/ratiolens/internal/services/analysis"
	"github.com/bobmcallan/ratiolens/internal/services/report"
	"github.com/bobmcallan/ratiolens/internal/storage"
)

// App holds all initialized services, clients and storage. It is the shared
// core used by cmd/ratiolens and cmd/ratiolens-server.
type App struct {
	Config          *common.Config
	Logger          *common.Logger
	Storage         interfaces.StorageManager
	MarketClient    interfaces.MarketDataClient
	AnalysisService interfaces.AnalysisService
	ReportService   interfaces.ReportService
	StartupTime     time.Time

	scheduler *cron.Cron
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp loads configuration and initializes storage, the provider client
// and the services. configPath may be empty, in which case the default
// resolution logic is used.
func NewApp(configPath string) (*App, error) {
	binDir := getBinaryDir()

	if configPath == "" {
		configPath = os.Getenv("RATIOLENS_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "ratiolens.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/ratiolens.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative paths to the binary directory
	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}
	if config.Report.OutputDir != "" && !filepath.IsAbs(config.Report.OutputDir) {
		config.Report.OutputDir = filepath.Join(binDir, config.Report.OutputDir)
	}

	logger := common.NewLogger(config.Logging.Level)

	storageManager, err := storage.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	if config.Provider.APIKey == "" {
		logger.Warn().Msg("EODHD API key not configured - data fetches will fail")
	}
	client := eodhd.NewClient(config.Provider.APIKey,
		eodhd.WithBaseURL(config.Provider.BaseURL),
		eodhd.WithLogger(logger),
		eodhd.WithRateLimit(config.Provider.RateLimit),
		eodhd.WithTimeout(config.Provider.GetTimeout()),
	)

	analysisService := analysis.NewService(client, storageManager, logger, config.Analysis)
	reportService := report.NewService(storageManager, logger, config.Report)

	return &App{
		Config:          config,
		Logger:          logger,
		Storage:         storageManager,
		MarketClient:    client,
		AnalysisService: analysisService,
		ReportService:   reportService,
		StartupTime:     time.Now(),
	}, nil
}

// StartScheduler starts the cache-refresh cron if configured. Each run
// re-analyzes the configured tickers with ForceRefresh so the entity cache
// stays warm for API requests.
func (a *App) StartScheduler() error {
	cronExpr := a.Config.Schedule.RefreshCron
	tickers := a.Config.Schedule.Tickers
	if cronExpr == "" || len(tickers) == 0 {
		a.Logger.Debug().Msg("Refresh scheduler disabled")
		return nil
	}

	c := cron.New()
	_, err := c.AddFunc(cronExpr, func() {
		for _, ticker := range tickers {
			_, err := a.AnalysisService.Analyze(context.Background(), interfaces.AnalyzeRequest{
				Ticker:       ticker,
				ForceRefresh: true,
			})
			if err != nil {
				a.Logger.Warn().Str("ticker", ticker).Err(err).Msg("Scheduled refresh failed")
			}
		}
	})
	if err != nil {
		return fmt.Errorf("invalid refresh_cron %q: %w", cronExpr, err)
	}

	c.Start()
	a.scheduler = c
	a.Logger.Info().
		Str("cron", cronExpr).
		Strs("tickers", tickers).
		Msg("Refresh scheduler started")
	return nil
}

// Shutdown stops the scheduler and closes storage.
func (a *App) Shutdown() error {
	if a.scheduler != nil {
		ctx := a.scheduler.Stop()
		select {
		case <-ctx.Done():
		case <-time.After(10 * time.Second):
			a.Logger.Warn().Msg("Scheduler jobs still running at shutdown")
		}
	}
	if a.Storage != nil {
		return a.Storage.Close()
	}
	return nil
}
