package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bobmcallan/ratiolens/internal/app"
	"github.com/bobmcallan/ratiolens/internal/interfaces"
)

var (
	analyzeTicker    string
	analyzePeers     []string
	analyzeIndex     string
	analyzeYears     int
	analyzeFormats   []string
	analyzeOutputDir string
	analyzeNoCharts  bool
	analyzeRefresh   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full ratio analysis for a ticker",
	Long: `Fetch statements, prices and dividends for the ticker, compute all ratio
categories across its reporting history and write the report files. Peers
and a market index can be benchmarked alongside; a peer that cannot be
fetched is reported and skipped without failing the run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.NewApp(configFile)
		if err != nil {
			return fmt.Errorf("failed to initialize: %w", err)
		}
		defer a.Shutdown()

		report, err := a.AnalysisService.Analyze(cmd.Context(), interfaces.AnalyzeRequest{
			Ticker:       analyzeTicker,
			Peers:        analyzePeers,
			Index:        analyzeIndex,
			Years:        analyzeYears,
			ForceRefresh: analyzeRefresh,
		})
		if err != nil {
			return err
		}

		for ticker, reason := range report.Comparison.Failed {
			fmt.Printf("warning: benchmark %s excluded: %s\n", ticker, reason)
		}

		files, err := a.ReportService.WriteReport(cmd.Context(), report, interfaces.ReportOptions{
			Formats:     analyzeFormats,
			WriteCharts: !analyzeNoCharts,
			OutputDir:   analyzeOutputDir,
		})
		if err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}

		for _, f := range files {
			fmt.Println(f)
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeTicker, "ticker", "t", "", "primary ticker to analyze (required)")
	analyzeCmd.Flags().StringSliceVarP(&analyzePeers, "benchmark", "b", nil, "peer tickers to benchmark against")
	analyzeCmd.Flags().StringVarP(&analyzeIndex, "index", "i", "", "market index ticker (enables rolling beta)")
	analyzeCmd.Flags().IntVarP(&analyzeYears, "period", "p", 0, "lookback window in years (default from config)")
	analyzeCmd.Flags().StringSliceVarP(&analyzeFormats, "format", "f", nil, "output formats: html, json, csv (default all)")
	analyzeCmd.Flags().StringVarP(&analyzeOutputDir, "output", "o", "", "output directory (default from config)")
	analyzeCmd.Flags().BoolVar(&analyzeNoCharts, "no-charts", false, "skip chart rendering")
	analyzeCmd.Flags().BoolVar(&analyzeRefresh, "refresh", false, "bypass the cache and refetch all data")
	analyzeCmd.MarkFlagRequired("ticker")

	rootCmd.AddCommand(analyzeCmd)
}
