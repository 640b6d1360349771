package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bobmcallan/ratiolens/internal/app"
	"github.com/bobmcallan/ratiolens/internal/common"
	"github.com/bobmcallan/ratiolens/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the REST API server",
	Long: `Start the HTTP server exposing the analysis pipeline. If a refresh
schedule is configured, the entity cache for the listed tickers is kept warm
in the background.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.NewApp(configFile)
		if err != nil {
			return fmt.Errorf("failed to initialize: %w", err)
		}

		common.PrintBanner(a.Config, a.Logger)

		if err := a.StartScheduler(); err != nil {
			return err
		}

		srv := server.NewServer(a)
		go func() {
			if err := srv.Start(); err != nil && err != http.ErrServerClosed {
				a.Logger.Fatal().Err(err).Msg("HTTP server failed")
			}
		}()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		common.PrintShutdownBanner(a.Logger)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			a.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
		}
		return a.Shutdown()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
