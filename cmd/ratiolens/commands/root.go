// Package commands implements the ratiolens CLI.
package commands

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bobmcallan/ratiolens/internal/common"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "ratiolens",
	Short: "Financial ratio analysis and benchmarking",
	Long: `RatioLens fetches financial statements and market prices for a listed
company, derives profitability, liquidity, solvency, efficiency, valuation
and market-performance ratios across its reporting history, and renders the
results as charts, tables and reports, optionally benchmarked against peer
companies and a market index.

Examples:
  ratiolens analyze --ticker AAPL
  ratiolens analyze --ticker AAPL --benchmark MSFT,GOOGL --index GSPC.INDX
  ratiolens serve`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env is optional; real env vars win either way.
		_ = godotenv.Load()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ratiolens.toml next to the binary)")
	rootCmd.Version = common.VersionString()
}
