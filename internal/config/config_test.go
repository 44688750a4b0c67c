/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package config

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	yaml := `authorization_delay_days: 5
truncate_long_names: false
log:
  level: debug
  format: json
cache:
  enabled: true
  bucket: results-cache
  max_age: 30m
`
	require.NoError(t, afero.WriteFile(fs, "/etc/cv.yaml", []byte(yaml), 0o644))

	cfg, err := Load(fs, "/etc/cv.yaml")
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.AuthorizationDelayDays)
	assert.False(t, cfg.TruncateLongNames)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "results-cache", cfg.Cache.Bucket)
	assert.Equal(t, 30*time.Minute, cfg.Cache.MaxAge)
	require.NotNil(t, cfg.AuthorizationDelay())
	assert.Equal(t, 5*24*time.Hour, *cfg.AuthorizationDelay())
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(afero.NewMemMapFs(), "")
	require.NoError(t, err)

	assert.Nil(t, cfg.AuthorizationDelay())
	assert.True(t, cfg.TruncateLongNames)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, time.Hour, cfg.Cache.MaxAge)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("CHESSVALIDATE_LOG_LEVEL", "warn")
	t.Setenv("CHESSVALIDATE_AUTHORIZATION_DELAY_DAYS", "2")

	cfg, err := Load(afero.NewMemMapFs(), "")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 2, cfg.AuthorizationDelayDays)
}

func TestLoadInvalid(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"negative delay", "authorization_delay_days: -1\n"},
		{"bad level", "log:\n  level: loud\n"},
		{"discord token without channel", "discord:\n  token: abc\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "/cv.yaml", []byte(tc.yaml), 0o644))
			_, err := Load(fs, "/cv.yaml")
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "/nope.yaml")
	assert.Error(t, err)
}
