package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 8, cfg.Schedule.DayStartHour)
	assert.Equal(t, 18, cfg.Schedule.DayEndHour)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, time.Minute, cfg.Cache.ViewTTL())
	assert.Equal(t, 30*24*time.Hour, cfg.Audit.Retention())
	assert.Equal(t, time.Hour, cfg.Audit.CleanupInterval())

	day, err := cfg.Schedule.Weekday()
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, day)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
schedule:
  timezone: UTC
  week_start: Monday
  slot_minutes: 15
`), 0o600))
	t.Setenv("CLINIC_SERVER_PORT", "7070")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 15, cfg.Schedule.SlotMinutes)

	loc, err := cfg.Schedule.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	day, err := cfg.Schedule.Weekday()
	require.NoError(t, err)
	assert.Equal(t, time.Monday, day)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad weekday", "schedule:\n  week_start: someday\n"},
		{"bad timezone", "schedule:\n  timezone: Mars/Olympus\n"},
		{"inverted hours", "schedule:\n  day_start_hour: 19\n  day_end_hour: 8\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o600))

			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
