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
	Library    LibraryConfig    `yaml:"library" mapstructure:"library"`
	Enrich     EnrichConfig     `yaml:"enrich" mapstructure:"enrich"`
	Salesforce SalesforceConfig `yaml:"salesforce" mapstructure:"salesforce"`
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// LibraryConfig configures the external account/alias directory loader.
type LibraryConfig struct {
	// SourcesPath points at the data_sources.yaml file listing the
	// published CSV URLs and their required columns.
	SourcesPath string `yaml:"sources_path" mapstructure:"sources_path"`
	// Source selects where accounts come from: "csv" (published sheet
	// export) or "salesforce" (live SOQL query).
	Source          string  `yaml:"source" mapstructure:"source"`
	CacheTTLSecs    int     `yaml:"cache_ttl_secs" mapstructure:"cache_ttl_secs"`
	FetchTimeoutSec int     `yaml:"fetch_timeout_secs" mapstructure:"fetch_timeout_secs"`
	FetchRetries    int     `yaml:"fetch_retries" mapstructure:"fetch_retries"`
	FetchRPS        float64 `yaml:"fetch_rps" mapstructure:"fetch_rps"`
}

// EnrichConfig holds the two matching toggles.
type EnrichConfig struct {
	CollapseSubdomains       bool `yaml:"collapse_subdomains" mapstructure:"collapse_subdomains"`
	TreatPersonalAsUnmatched bool `yaml:"treat_personal_as_unmatched" mapstructure:"treat_personal_as_unmatched"`
}

// SalesforceConfig holds Salesforce JWT auth settings.
type SalesforceConfig struct {
	ClientID string `yaml:"client_id" mapstructure:"client_id"`
	Username string `yaml:"username" mapstructure:"username"`
	KeyPath  string `yaml:"key_path" mapstructure:"key_path"`
	LoginURL string `yaml:"login_url" mapstructure:"login_url"`
}

// StoreConfig configures the run-history database.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ServerConfig configures the HTTP enrichment server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
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
	v.SetEnvPrefix("ENRICHER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("library.sources_path", "config/data_sources.yaml")
	v.SetDefault("library.source", "csv")
	v.SetDefault("library.cache_ttl_secs", 600)
	v.SetDefault("library.fetch_timeout_secs", 30)
	v.SetDefault("library.fetch_retries", 3)
	v.SetDefault("library.fetch_rps", 2)
	v.SetDefault("enrich.collapse_subdomains", true)
	v.SetDefault("enrich.treat_personal_as_unmatched", true)
	v.SetDefault("salesforce.login_url", "https://login.salesforce.com")
	v.SetDefault("store.path", "lead-enricher.db")
	v.SetDefault("server.port", 8080)
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
