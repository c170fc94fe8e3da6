package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every config lookup at a fresh temp dir
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("PLANNER_CONFIG_FILE", "")
	t.Setenv("PLANNER_THEME_FILE", "")
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadConfigWithoutFile(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "to-film", cfg.Workflow.DefaultProductionStatus)
	assert.Equal(t, "09:00", cfg.Workflow.DefaultStartTime)
	assert.Equal(t, time.Hour, cfg.Workflow.Slot())
	assert.Equal(t, 64, cfg.Events.BufferSize)
	assert.Equal(t, 3, cfg.Events.PublishRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.Events.PollInterval())
	assert.NotEmpty(t, cfg.DataDir)
	assert.Equal(t, "default", cfg.ColorScheme.Preset)
}

func TestLoadConfigWithFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "planner", "config.yaml"), `data_dir: /tmp/planner-test
log_level: debug
workflow:
  default_start_time: "07:30"
  slot_minutes: 45
events:
  buffer_size: 8
  poll_interval_ms: 100
`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/planner-test", cfg.DataDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "07:30", cfg.Workflow.DefaultStartTime)
	assert.Equal(t, 45*time.Minute, cfg.Workflow.Slot())
	assert.Equal(t, 8, cfg.Events.BufferSize)
	assert.Equal(t, 100*time.Millisecond, cfg.Events.PollInterval())

	// Unspecified values should use defaults
	assert.Equal(t, "to-film", cfg.Workflow.DefaultProductionStatus)
	assert.Equal(t, 3, cfg.Events.PublishRetries)
}

func TestLoadConfig_FileOverride(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "log_level: warn\n")
	t.Setenv("PLANNER_CONFIG_FILE", path)

	got, err := Path()
	require.NoError(t, err)
	assert.Equal(t, path, got)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad start time", "workflow:\n  default_start_time: \"9am\"\n"},
		{"negative slot", "workflow:\n  slot_minutes: -5\n"},
		{"unknown production status", "workflow:\n  default_production_status: \"lost\"\n"},
		{"negative buffer", "events:\n  buffer_size: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			writeFile(t, path, tt.content)

			_, err := LoadFrom(path)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		writeFile(t, path, "workflow: [unclosed\n")
		_, err := LoadFrom(path)
		assert.Error(t, err)
	})
}

func TestSaveConfig(t *testing.T) {
	dir := isolate(t)

	cfg := Default()
	cfg.LogLevel = "error"
	cfg.Workflow.SlotMinutes = 30
	require.NoError(t, cfg.Save())

	_, err := os.Stat(filepath.Join(dir, "planner", "config.yaml"))
	require.NoError(t, err)

	reloaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "error", reloaded.LogLevel)
	assert.Equal(t, 30*time.Minute, reloaded.Workflow.Slot())
}

func TestThemeFileLoading(t *testing.T) {
	isolate(t)
	themePath := filepath.Join(t.TempDir(), "theme.yaml")
	writeFile(t, themePath, `theme:
  accent: "#FF0000"
  scheduled: "#00FF00"
`)
	t.Setenv("PLANNER_THEME_FILE", themePath)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "#FF0000", cfg.ColorScheme.Accent)
	assert.Equal(t, "#00FF00", cfg.ColorScheme.Scheduled)
	assert.NotEmpty(t, cfg.ColorScheme.ErrorFg, "other colors keep their defaults")
}

func TestThemePreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "theme:\n  preset: monochrome\n  title: \"#123456\"\n")
	t.Setenv("PLANNER_THEME_FILE", "")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, MonochromeColorScheme().Accent, cfg.ColorScheme.Accent)
	assert.Equal(t, "#123456", cfg.ColorScheme.Title)
}
