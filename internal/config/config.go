// Package config loads boardplan settings with viper.
//
// Sources, lowest precedence first:
//
//  1. built-in defaults (SetDefaults)
//  2. a TOML file: the --config path, or boardplan.toml in the working
//     directory when no path is given
//  3. environment variables prefixed BOARDPLAN_ (sort.column -> BOARDPLAN_SORT_COLUMN)
//
// Command-line flags are applied on top by the cli package.
//
// Example boardplan.toml:
//
//	[data]
//	csv = "games/bgg.csv"
//
//	[list]
//	output = "my_games.txt"
//
//	[sort]
//	column = "rating"
//	ascending = false
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/roach88/boardplan/internal/column"
)

// FileName is the config file looked up in the working directory.
const FileName = "boardplan.toml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "BOARDPLAN"

// Config holds all boardplan settings.
type Config struct {
	Data DataConfig `mapstructure:"data"`
	List ListConfig `mapstructure:"list"`
	Sort SortConfig `mapstructure:"sort"`
}

// DataConfig selects the game source. DB wins when both are set.
type DataConfig struct {
	CSV string `mapstructure:"csv"`
	DB  string `mapstructure:"db"`
}

// ListConfig configures the saved game list.
type ListConfig struct {
	Output string `mapstructure:"output"`
}

// SortConfig is the default ordering of filter results.
type SortConfig struct {
	Column    string `mapstructure:"column"`
	Ascending bool   `mapstructure:"ascending"`
}

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("data.csv", "")
	v.SetDefault("data.db", "")
	v.SetDefault("list.output", "games_list.txt")
	v.SetDefault("sort.column", "name")
	v.SetDefault("sort.ascending", true)
}

// Load reads the configuration. An empty path looks for FileName in the
// working directory and tolerates its absence; an explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, ".toml"))
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that viper cannot type-check.
func (c *Config) Validate() error {
	if _, err := column.Parse(c.Sort.Column); err != nil {
		return fmt.Errorf("invalid sort.column: %w", err)
	}
	if strings.TrimSpace(c.List.Output) == "" {
		return fmt.Errorf("list.output must not be empty")
	}
	return nil
}

// SortColumn returns the configured default sort column.
func (c *Config) SortColumn() column.Column {
	col, err := column.Parse(c.Sort.Column)
	if err != nil {
		return column.Default()
	}
	return col
}
