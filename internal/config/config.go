// Package config loads application configuration and initializes logging.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Zones  ZonesConfig  `yaml:"zones" mapstructure:"zones"`
	Fetch  FetchConfig  `yaml:"fetch" mapstructure:"fetch"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// ZonesConfig locates the zone layer manifest.
type ZonesConfig struct {
	Manifest string `yaml:"manifest" mapstructure:"manifest"`
}

// FetchConfig configures reference-layer downloads.
type FetchConfig struct {
	DataDir    string   `yaml:"data_dir" mapstructure:"data_dir"`
	URLs       []string `yaml:"urls" mapstructure:"urls"`
	RatePerSec float64  `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
}

// ServerConfig configures the upload/processing server.
type ServerConfig struct {
	Port        int `yaml:"port" mapstructure:"port"`
	MaxUploadMB int `yaml:"max_upload_mb" mapstructure:"max_upload_mb"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("COMMUTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("zones.manifest", "data/zones.yaml")
	v.SetDefault("fetch.data_dir", "data")
	v.SetDefault("fetch.rate_per_sec", 1)
	v.SetDefault("fetch.urls", []string{
		"https://www2.census.gov/geo/tiger/TIGER2020/COUNTY20/tl_2020_13_county20.zip",
		"https://www2.census.gov/geo/tiger/TIGER2020/ZCTA520/tl_2020_13_zcta520.zip",
	})
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.max_upload_mb", 64)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
