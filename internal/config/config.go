package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"lcexport/internal/lightcurve"
)

// Config represents the complete application configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Convert ConvertConfig `yaml:"convert" envconfig:"CONVERT"`
	Export  ExportConfig  `yaml:"export" envconfig:"EXPORT"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=text json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_if=Output file"`
}

// ConvertConfig names the table columns and header keyword a conversion
// run reads, the additive time offset, and the derived column names it
// writes.
type ConvertConfig struct {
	FluxColumn           string  `yaml:"flux_column" envconfig:"FLUX_COLUMN" validate:"required"`
	FluxErrColumn        string  `yaml:"flux_err_column" envconfig:"FLUX_ERR_COLUMN" validate:"required"`
	TimeColumn           string  `yaml:"time_column" envconfig:"TIME_COLUMN" validate:"required"`
	ZeroPointKeyword     string  `yaml:"zero_point_keyword" envconfig:"ZERO_POINT_KEYWORD" validate:"required"`
	TimeOffset           float64 `yaml:"time_offset" envconfig:"TIME_OFFSET"`
	MagnitudeColumn      string  `yaml:"magnitude_column" envconfig:"MAGNITUDE_COLUMN" validate:"required"`
	MagnitudeErrorColumn string  `yaml:"magnitude_error_column" envconfig:"MAGNITUDE_ERROR_COLUMN" validate:"required"`
	ShiftedTimeColumn    string  `yaml:"shifted_time_column" envconfig:"SHIFTED_TIME_COLUMN" validate:"required"`
	Concurrency          int     `yaml:"concurrency" envconfig:"CONCURRENCY" validate:"min=1"`
}

// ExportConfig contains output serialization configuration
type ExportConfig struct {
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=csv xlsx"`
}

// Default returns the built-in configuration for TESS SAP photometry.
func Default() Config {
	params := lightcurve.DefaultParams()
	return Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "text",
			Output:   "console",
			FilePath: "logs/lc2csv.log",
		},
		Convert: ConvertConfig{
			FluxColumn:           params.FluxColumn,
			FluxErrColumn:        params.FluxErrColumn,
			TimeColumn:           params.TimeColumn,
			ZeroPointKeyword:     params.ZeroPointKeyword,
			TimeOffset:           params.TimeOffset,
			MagnitudeColumn:      params.MagnitudeColumn,
			MagnitudeErrorColumn: params.MagnitudeErrorColumn,
			ShiftedTimeColumn:    params.ShiftedTimeColumn,
			Concurrency:          1,
		},
		Export: ExportConfig{
			Format: "csv",
		},
	}
}

// Params converts the section into engine parameters.
func (c ConvertConfig) Params() lightcurve.Params {
	return lightcurve.Params{
		FluxColumn:           c.FluxColumn,
		FluxErrColumn:        c.FluxErrColumn,
		TimeColumn:           c.TimeColumn,
		ZeroPointKeyword:     c.ZeroPointKeyword,
		TimeOffset:           c.TimeOffset,
		MagnitudeColumn:      c.MagnitudeColumn,
		MagnitudeErrorColumn: c.MagnitudeErrorColumn,
		ShiftedTimeColumn:    c.ShiftedTimeColumn,
	}
}

// Load loads configuration: defaults, then the YAML file if one exists,
// then environment variables, then validation.
func Load() (*Config, error) {
	cfg := Default()

	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		if err := loadFromFile(configFile, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process("LC", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// loadFromFile overlays configuration from a YAML file
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// getConfigFilePath returns the config file location, honoring the
// LC_CONFIG_FILE override.
func getConfigFilePath() string {
	if path := os.Getenv("LC_CONFIG_FILE"); path != "" {
		return path
	}
	return "lc2csv.yml"
}
