package main

import (
	"fmt"

	"github.com/newthinker/tradestats/internal/app"
	"github.com/newthinker/tradestats/internal/config"
	"github.com/newthinker/tradestats/internal/logger"
	"github.com/newthinker/tradestats/internal/metrics"
	"github.com/newthinker/tradestats/internal/report"
	"github.com/newthinker/tradestats/internal/storage/source"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	reportFormat    string
	reportTitle     string
	metricsTextfile string
)

func init() {
	rootCmd.Flags().StringVarP(&reportFormat, "format", "f", "", "report format: text, yaml or json")
	rootCmd.Flags().StringVar(&reportTitle, "title", "", "report title")
	rootCmd.Flags().StringVar(&metricsTextfile, "metrics-textfile", "", "write run metrics to this Prometheus textfile")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(cmd, log)
	if err != nil {
		return err
	}

	path := cfg.Input.Path
	if len(args) == 1 {
		path = args[0]
	}

	store, err := source.New(cfg.Storage)
	if err != nil {
		return fmt.Errorf("creating trade log source: %w", err)
	}

	var reg *metrics.Registry
	if cfg.Metrics.Enabled {
		reg = metrics.NewRegistry()
		defer func() {
			if err := reg.WriteTextfile(cfg.Metrics.Textfile); err != nil {
				log.Warn("metrics not written", zap.Error(err))
			}
		}()
	}

	res, err := app.New(store, reg, log).Analyze(cmd.Context(), path)
	if err != nil {
		return fmt.Errorf("loading trades: %w", err)
	}

	return report.Render(cmd.OutOrStdout(), cfg.Report.Format, res.Metrics, cfg.Report.Title)
}

// loadConfig reads the config file when given, then applies flag overrides.
func loadConfig(cmd *cobra.Command, log *zap.Logger) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
		log.Debug("no config file specified, using defaults")
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Report.Format = reportFormat
	}
	if flags.Changed("title") {
		cfg.Report.Title = reportTitle
	}
	if flags.Changed("metrics-textfile") {
		cfg.Metrics.Enabled = metricsTextfile != ""
		cfg.Metrics.Textfile = metricsTextfile
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}
