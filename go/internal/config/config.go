// Package config loads process configuration from .env, the environment and
// an optional YAML file of draft tunables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/mcdev12/mockdraft/go/internal/board"
	"github.com/mcdev12/mockdraft/go/internal/draft"
	"github.com/mcdev12/mockdraft/go/internal/draft/ledger"
)

const (
	SourcePostgres = "postgres"
	SourceREST     = "rest"
)

// Config is everything main needs to wire the draft room
type Config struct {
	Port      string `env:"PORT" envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"true"`
	File      string `env:"MOCKDRAFT_CONFIG"`
	StatePath string `env:"MOCKDRAFT_STATE_PATH" envDefault:"data/mockdraft.db"`

	Source    string    `env:"MOCKDRAFT_SOURCE" envDefault:"postgres"`
	PostgREST PostgREST `envPrefix:"POSTGREST_"`
	NATS      NATS      `envPrefix:"NATS_"`

	// Draft comes from the YAML file only
	Draft Draft
}

// PostgREST points at the hosted prospect API
type PostgREST struct {
	URL       string  `env:"URL"`
	APIKey    string  `env:"API_KEY"`
	RateLimit float64 `env:"RATE_LIMIT" envDefault:"5"`
}

// NATS controls the optional JetStream event relay
type NATS struct {
	Enabled bool   `env:"ENABLED" envDefault:"false"`
	URL     string `env:"URL" envDefault:"nats://127.0.0.1:4222"`
}

// Draft holds the simulator tunables read from the YAML file
type Draft struct {
	Season       int           `yaml:"season"`
	FutureYears  int           `yaml:"future_years"`
	RoundOptions []int         `yaml:"round_options"`
	RecapDelay   time.Duration `yaml:"recap_delay"`
	BoardSizes   []int         `yaml:"board_sizes"`
}

// DefaultDraft returns the built-in tunables
func DefaultDraft() Draft {
	return Draft{
		Season:       ledger.DefaultSeason,
		FutureYears:  ledger.DefaultFutureYears,
		RoundOptions: slices.Clone(draft.DefaultRoundOptions),
		RecapDelay:   draft.DefaultRecapDelay,
		BoardSizes:   slices.Clone(board.Sizes),
	}
}

// Load reads .env (if present), the environment and the YAML file named by
// MOCKDRAFT_CONFIG, then validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{Draft: DefaultDraft()}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse env: %w", err)
	}

	if cfg.File != "" {
		if err := cfg.loadFile(cfg.File); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type fileConfig struct {
	Draft Draft `yaml:"draft"`
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	file := fileConfig{Draft: c.Draft}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	c.Draft = file.Draft
	return nil
}

// Validate rejects settings the draft room cannot run with
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}

	switch c.Source {
	case SourcePostgres:
	case SourceREST:
		if c.PostgREST.URL == "" {
			return errors.New("POSTGREST_URL is required when MOCKDRAFT_SOURCE=rest")
		}
	default:
		return fmt.Errorf("unknown MOCKDRAFT_SOURCE %q", c.Source)
	}

	if c.Draft.FutureYears < 0 {
		return fmt.Errorf("future_years must not be negative, got %d", c.Draft.FutureYears)
	}
	if c.Draft.RecapDelay < 0 {
		return fmt.Errorf("recap_delay must not be negative, got %s", c.Draft.RecapDelay)
	}
	if len(c.Draft.RoundOptions) == 0 {
		return errors.New("round_options must not be empty")
	}
	for _, r := range c.Draft.RoundOptions {
		if r < 1 || r > ledger.MaxRounds {
			return fmt.Errorf("round option %d outside 1..%d", r, ledger.MaxRounds)
		}
	}
	for _, s := range c.Draft.BoardSizes {
		if s < 1 {
			return fmt.Errorf("board size %d must be positive", s)
		}
	}
	return nil
}

// Level returns the parsed log level
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// SessionConfig converts the tunables into a draft session config
func (c *Config) SessionConfig() draft.Config {
	cfg := draft.DefaultConfig()
	cfg.RecapDelay = c.Draft.RecapDelay
	cfg.RoundOptions = slices.Clone(c.Draft.RoundOptions)
	if c.Draft.Season != 0 {
		cfg.Ledger.Season = c.Draft.Season
	}
	cfg.Ledger.FutureYears = c.Draft.FutureYears
	return cfg
}
