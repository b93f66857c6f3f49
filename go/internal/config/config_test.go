package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MOCKDRAFT_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, SourcePostgres, cfg.Source)
	assert.False(t, cfg.NATS.Enabled)
	assert.Equal(t, 5.0, cfg.PostgREST.RateLimit)
	assert.Equal(t, DefaultDraft(), cfg.Draft)
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())

	sc := cfg.SessionConfig()
	assert.Equal(t, []int{1, 2, 3, 7}, sc.RoundOptions)
	assert.Equal(t, 800*time.Millisecond, sc.RecapDelay)
	assert.Equal(t, 2025, sc.Ledger.Season)
}

func TestLoad_EnvAndFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "mockdraft.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
draft:
  season: 2026
  round_options: [1, 3]
  recap_delay: 2s
`), 0o644))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("POSTGREST_API_KEY=anon-key\n"), 0o644))
	t.Setenv("POSTGREST_API_KEY", "")
	require.NoError(t, os.Unsetenv("POSTGREST_API_KEY"))
	t.Setenv("MOCKDRAFT_CONFIG", path)
	t.Setenv("MOCKDRAFT_SOURCE", "rest")
	t.Setenv("POSTGREST_URL", "https://example.test")
	t.Setenv("NATS_ENABLED", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "anon-key", cfg.PostgREST.APIKey)
	assert.Equal(t, SourceREST, cfg.Source)
	assert.Equal(t, "https://example.test", cfg.PostgREST.URL)
	assert.True(t, cfg.NATS.Enabled)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())

	assert.Equal(t, 2026, cfg.Draft.Season)
	assert.Equal(t, []int{1, 3}, cfg.Draft.RoundOptions)
	assert.Equal(t, 2*time.Second, cfg.Draft.RecapDelay)
	// keys missing from the file keep their defaults
	assert.Equal(t, DefaultDraft().BoardSizes, cfg.Draft.BoardSizes)
	assert.Equal(t, DefaultDraft().FutureYears, cfg.Draft.FutureYears)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{LogLevel: "info", Source: SourcePostgres, Draft: DefaultDraft()}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"unknown source", func(c *Config) { c.Source = "csv" }},
		{"rest without url", func(c *Config) { c.Source = SourceREST }},
		{"no round options", func(c *Config) { c.Draft.RoundOptions = nil }},
		{"round option too large", func(c *Config) { c.Draft.RoundOptions = []int{8} }},
		{"negative recap delay", func(c *Config) { c.Draft.RecapDelay = -time.Second }},
		{"negative future years", func(c *Config) { c.Draft.FutureYears = -1 }},
		{"zero board size", func(c *Config) { c.Draft.BoardSizes = []int{0} }},
	}

	require.NoError(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MOCKDRAFT_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
