package tradelog

import (
	"context"
	"errors"
	"fmt"

	"github.com/newthinker/tradestats/internal/core"
	"github.com/newthinker/tradestats/internal/storage/source"
	"go.uber.org/zap"
)

// Loader reads a trade log from a Storage backend and normalizes it.
type Loader struct {
	store  source.Storage
	logger *zap.Logger
}

// NewLoader creates a Loader over store.
func NewLoader(store source.Storage, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{store: store, logger: logger}
}

// Load returns the trades at path ordered by close time. Failures carry one
// of core.ErrNotFound, core.ErrEmptyInput, core.ErrAllRowsInvalid,
// core.ErrMalformedInput or core.ErrSourceFailed.
func (l *Loader) Load(ctx context.Context, path string) ([]Trade, LoadStats, error) {
	exists, err := l.store.Exists(ctx, path)
	if err != nil {
		return nil, LoadStats{}, core.WrapError(core.ErrSourceFailed, err)
	}
	if !exists {
		return nil, LoadStats{}, core.WrapError(core.ErrNotFound, errors.New(path))
	}

	data, err := l.store.Read(ctx, path)
	if err != nil {
		return nil, LoadStats{}, core.WrapError(core.ErrSourceFailed, fmt.Errorf("reading %s: %w", path, err))
	}

	trades, stats, err := Parse(data)
	l.logger.Debug("trade log parsed",
		zap.String("path", path),
		zap.Int("bytes", len(data)),
		zap.Int("rows_read", stats.RowsRead),
		zap.Int("rows_kept", stats.RowsKept),
		zap.Int("rows_dropped", stats.Dropped()),
	)
	if err != nil {
		return nil, stats, err
	}

	return trades, stats, nil
}
