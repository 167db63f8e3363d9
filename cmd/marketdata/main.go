package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wealthwise/marketdata/internal/config"
	"github.com/wealthwise/marketdata/internal/history"
	"github.com/wealthwise/marketdata/internal/httpx"
	"github.com/wealthwise/marketdata/internal/logger"
	"github.com/wealthwise/marketdata/internal/metrics"
	"github.com/wealthwise/marketdata/internal/quote"
	"github.com/wealthwise/marketdata/internal/search"
	"go.uber.org/zap"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "marketdata",
	Short: "WealthWise market-data fetcher",
	Long: `Fetches normalized quotes, historical series and fuzzy search
results for A-share equities, ETFs and OTC funds from the free public
market-data endpoints.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
}

// services wires the fetch layer for one CLI invocation.
type services struct {
	log     *zap.Logger
	quotes  *quote.Service
	history *history.Service
	search  *search.Service
}

func newServices() (*services, error) {
	log := logger.Must(debug)

	var cfg *config.Config
	var err error
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	var reg *metrics.Registry
	if cfg.Metrics.Enabled {
		reg = metrics.NewRegistry()
	}

	client := httpx.New(cfg.HTTP.Timeout)
	return &services{
		log:     log,
		quotes:  quote.New(client, cfg, log, reg),
		history: history.NewDefault(client, cfg, log, reg),
		search:  search.New(client, cfg, log, reg),
	}, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
