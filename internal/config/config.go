// Package config loads and validates the glosso configuration.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Table    TableConfig    `mapstructure:"table"`
	Exports  ExportsConfig  `mapstructure:"exports"`
	Database DatabaseConfig `mapstructure:"database"`
}

// APIConfig points at the remote glossary service. The base URL includes
// the /api/glossary path.
type APIConfig struct {
	BaseURL        string `mapstructure:"base_url" validate:"required,url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=0"`
	RetryAttempts  uint   `mapstructure:"retry_attempts" validate:"lte=10"`
}

type TableConfig struct {
	RowsPerPage int    `mapstructure:"rows_per_page" validate:"pagesize"`
	ColumnOrder string `mapstructure:"column_order" validate:"oneof=en-de de-en"`
}

type ExportsConfig struct {
	Directory string `mapstructure:"directory" validate:"required"`
}

// DatabaseConfig configures the optional local snapshot archive.
type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime"`
}

func Load(configFile string) (*Config, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/glosso")
	}

	v.SetDefault("api.base_url", "http://localhost:3001/api/glossary")
	v.SetDefault("api.timeout_seconds", 30)
	v.SetDefault("api.retry_attempts", 2)
	v.SetDefault("table.rows_per_page", 10)
	v.SetDefault("table.column_order", "en-de")
	v.SetDefault("exports.directory", filepath.Join("exports"))
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "glosso")
	v.SetDefault("database.username", "glosso")

	// Bind deployment-specific values to environment variables only (not
	// from the config file)
	if err := v.BindEnv("api.base_url", "GLOSSO_API_BASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind GLOSSO_API_BASE_URL environment variable: %w", err)
	}
	if err := v.BindEnv("database.password", "GLOSSO_DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind GLOSSO_DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(trans))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
