package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/newthinker/tradestats/internal/core"
	"github.com/spf13/viper"
)

// DefaultInputPath is where the expert advisor writes its closed-trade log.
const DefaultInputPath = "MQL5/Files/eurusd_trades_log.csv"

// DefaultTitle heads the text report.
const DefaultTitle = "EURUSD Trend Breakout – Trade Summary"

// Report formats
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Storage types
const (
	StorageLocalFS = "localfs"
	StorageS3      = "s3"
)

type Config struct {
	Input   InputConfig   `mapstructure:"input"`
	Storage StorageConfig `mapstructure:"storage"`
	Report  ReportConfig  `mapstructure:"report"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type InputConfig struct {
	Path string `mapstructure:"path"`
}

type StorageConfig struct {
	Type string   `mapstructure:"type"` // "localfs" or "s3"
	Path string   `mapstructure:"path"` // Base directory for localfs
	S3   S3Config `mapstructure:"s3"`
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// ReportConfig controls how the computed metrics are rendered.
type ReportConfig struct {
	Title  string `mapstructure:"title"`
	Format string `mapstructure:"format"`
}

// MetricsConfig holds run telemetry configuration.
type MetricsConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Textfile string `mapstructure:"textfile"`
}

// Load reads configuration from file. Keys missing from the file keep
// their Defaults values.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("input.path", d.Input.Path)
	v.SetDefault("storage.type", d.Storage.Type)
	v.SetDefault("storage.path", d.Storage.Path)
	// AutomaticEnv only resolves keys viper already knows about.
	v.SetDefault("storage.s3.bucket", d.Storage.S3.Bucket)
	v.SetDefault("storage.s3.endpoint", d.Storage.S3.Endpoint)
	v.SetDefault("storage.s3.region", d.Storage.S3.Region)
	v.SetDefault("storage.s3.access_key", d.Storage.S3.AccessKey)
	v.SetDefault("storage.s3.secret_key", d.Storage.S3.SecretKey)
	v.SetDefault("storage.s3.prefix", d.Storage.S3.Prefix)
	v.SetDefault("report.title", d.Report.Title)
	v.SetDefault("report.format", d.Report.Format)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.textfile", d.Metrics.Textfile)
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Input: InputConfig{
			Path: DefaultInputPath,
		},
		Storage: StorageConfig{
			Type: StorageLocalFS,
		},
		Report: ReportConfig{
			Title:  DefaultTitle,
			Format: FormatText,
		},
		Metrics: MetricsConfig{
			Enabled: false,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Input.Path == "" {
		return core.WrapError(core.ErrConfigMissing, fmt.Errorf("input path required"))
	}

	switch c.Storage.Type {
	case StorageLocalFS:
	case StorageS3:
		if c.Storage.S3.Bucket == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("s3 bucket required when storage type is s3"))
		}
		if c.Storage.S3.Region == "" && c.Storage.S3.Endpoint == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("s3 region or endpoint required when storage type is s3"))
		}
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("storage type must be localfs or s3, got %q", c.Storage.Type))
	}

	switch c.Report.Format {
	case FormatText, FormatYAML, FormatJSON:
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("report format must be text, yaml or json, got %q", c.Report.Format))
	}

	if c.Metrics.Enabled && c.Metrics.Textfile == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("metrics textfile required when metrics are enabled"))
	}

	return nil
}
