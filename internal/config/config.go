// Package config loads the keyregistry CLI configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/suparena/keyregistry/export/ddb"
)

// EnvPrefix prefixes every environment variable the CLI reads.
const EnvPrefix = "KEYREGISTRY"

// Config holds all configuration for the CLI.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Export  ExportConfig  `mapstructure:"export"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ExportConfig holds the DynamoDB item layout used by dump.
type ExportConfig struct {
	TableName  string `mapstructure:"table_name"`
	PKTemplate string `mapstructure:"pk_template"`
	SKTemplate string `mapstructure:"sk_template"`
}

// IndexMap returns the configured PK/SK templates as an index map.
func (e ExportConfig) IndexMap() map[string]string {
	return map[string]string{"PK": e.PKTemplate, "SK": e.SKTemplate}
}

// Load reads .env, the optional config file and KEYREGISTRY_* environment
// variables, in increasing order of precedence. An empty configFile searches
// for keyregistry.yaml in the working directory and ~/.keyregistry.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("export.table_name", "keyregistry")
	v.SetDefault("export.pk_template", ddb.DefaultIndexMap["PK"])
	v.SetDefault("export.sk_template", ddb.DefaultIndexMap["SK"])

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("keyregistry")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".keyregistry"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that configuration fields are set and consistent.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json; got %q", c.Logging.Format)
	}
	if c.Export.TableName == "" {
		return fmt.Errorf("export.table_name must not be empty")
	}
	if c.Export.PKTemplate == "" || c.Export.SKTemplate == "" {
		return fmt.Errorf("export.pk_template and export.sk_template must not be empty")
	}
	return nil
}
