/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/mikeb26/chessvalidate/internal"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

type Config struct {
	// AuthorizationDelayDays is how long an emailed result waits before
	// it is trusted. 0 disables the wait.
	AuthorizationDelayDays int `mapstructure:"authorization_delay_days" validate:"gte=0,lte=366"`
	// TruncateLongNames cuts joined team names over 50 words down to 10
	// words per name instead of rejecting them.
	TruncateLongNames bool `mapstructure:"truncate_long_names"`

	Log     LogConfig     `mapstructure:"log"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Discord DiscordConfig `mapstructure:"discord"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Bucket  string        `mapstructure:"bucket" validate:"required_if=Enabled true"`
	MaxAge  time.Duration `mapstructure:"max_age" validate:"gte=0"`
}

type DiscordConfig struct {
	Token   string `mapstructure:"token"`
	Channel string `mapstructure:"channel" validate:"required_with=Token"`
}

var defaults = map[string]any{
	"authorization_delay_days": 0,
	"truncate_long_names":      true,
	"log.level":                "info",
	"log.format":               "console",
	"cache.enabled":            false,
	"cache.bucket":             internal.DefaultCache,
	"cache.max_age":            "1h",
	"discord.token":            "",
	"discord.channel":          "",
}

// Load reads configuration from path, or from chessvalidate.yaml in the
// working directory or ~/.config/chessvalidate when path is empty. A
// missing default file is not an error. CHESSVALIDATE_* environment
// variables override file values, e.g. CHESSVALIDATE_LOG_LEVEL.
func Load(fs afero.Fs, path string) (*Config, error) {
	v := viper.New()
	v.SetFs(fs)
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(internal.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "config: reading %v", path)
		}
	} else {
		v.SetConfigName(internal.ConfigFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", internal.AppName))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.Wrap(err, "config: reading default config")
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "config: decoding")
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, errors.Wrap(err, "config: invalid")
	}

	return &cfg, nil
}

// AuthorizationDelay returns the delay for emailed reports, nil if none.
func (c *Config) AuthorizationDelay() *time.Duration {
	if c.AuthorizationDelayDays <= 0 {
		return nil
	}
	d := time.Duration(c.AuthorizationDelayDays) * 24 * time.Hour
	return &d
}
