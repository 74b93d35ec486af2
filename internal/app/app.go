package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/newthinker/tradestats/internal/logger"
	"github.com/newthinker/tradestats/internal/metrics"
	"github.com/newthinker/tradestats/internal/stats"
	"github.com/newthinker/tradestats/internal/storage/source"
	"github.com/newthinker/tradestats/internal/tradelog"
	"go.uber.org/zap"
)

// Result is the outcome of one analysis run.
type Result struct {
	RunID   string
	Load    tradelog.LoadStats
	Metrics stats.Metrics
}

// App runs trade log analyses: load, normalize, compute.
type App struct {
	store   source.Storage
	metrics *metrics.Registry
	logger  *zap.Logger
}

// New creates a new App instance. reg may be nil when telemetry is off.
func New(store source.Storage, reg *metrics.Registry, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		store:   store,
		metrics: reg,
		logger:  log,
	}
}

// Analyze loads the trade log at path and computes its metrics. Load
// failures are returned untouched so callers can match them with errors.Is.
func (a *App) Analyze(ctx context.Context, path string) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := logger.ForRun(a.logger, runID)

	log.Info("analyzing trade log", zap.String("path", path))

	trades, load, err := tradelog.NewLoader(a.store, log).Load(ctx, path)
	if err != nil {
		a.recordLoad(metrics.StatusFailed, load)
		log.Warn("loading trade log failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	a.recordLoad(metrics.StatusOK, load)

	m := stats.Calculate(trades)
	elapsed := time.Since(start)
	if a.metrics != nil {
		a.metrics.RecordAnalysis(m.TotalTrades, elapsed.Seconds())
	}

	log.Info("analysis complete",
		zap.Int("trades", m.TotalTrades),
		zap.Int("rows_dropped", load.Dropped()),
		zap.Float64("win_rate", m.WinRate),
		zap.Duration("elapsed", elapsed),
	)

	return &Result{RunID: runID, Load: load, Metrics: m}, nil
}

func (a *App) recordLoad(status string, load tradelog.LoadStats) {
	if a.metrics == nil {
		return
	}
	a.metrics.RecordLoad(status, load.RowsKept, load.Dropped())
}
