package source

import (
	"fmt"

	"github.com/newthinker/tradestats/internal/config"
	"github.com/newthinker/tradestats/internal/core"
)

// New returns the Storage backend selected by cfg.
func New(cfg config.StorageConfig) (Storage, error) {
	switch cfg.Type {
	case "", config.StorageLocalFS:
		return NewLocalFS(cfg.Path), nil
	case config.StorageS3:
		return NewS3(S3Config{
			Bucket:    cfg.S3.Bucket,
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Prefix:    cfg.S3.Prefix,
		}), nil
	default:
		return nil, core.WrapError(core.ErrConfigInvalid, fmt.Errorf("unknown storage type %q", cfg.Type))
	}
}
