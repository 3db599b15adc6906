// Package config reads the game's settings from the environment, after
// loading any .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/minaorangina/memory/deck"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	ErrInvalidBoard = errors.New("invalid board size")
	ErrInvalidDelay = errors.New("auto-flip delay must be positive")
)

type Config struct {
	Rows          int           `env:"MEMORY_ROWS,default=4"`
	Columns       int           `env:"MEMORY_COLUMNS,default=6"`
	AutoFlipDelay time.Duration `env:"MEMORY_AUTOFLIP_DELAY,default=1s"`
	Strict        bool          `env:"MEMORY_STRICT_PROTOCOL,default=false"`
	Addr          string        `env:"MEMORY_ADDR,default=:8000"`
	LogLevel      string        `env:"MEMORY_LOG_LEVEL,default=info"`
	Development   bool          `env:"MEMORY_DEVELOPMENT,default=false"`
	// 0 seeds from the clock
	Seed int64 `env:"MEMORY_SEED,default=0"`
}

// Load reads files into the environment without overriding variables
// that are already set, then decodes the environment. Missing files are
// skipped.
func Load(files ...string) (*Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("could not decode environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that a board can be dealt and the timer armed
func (c *Config) Validate() error {
	if c.Rows <= 0 || c.Columns <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidBoard, c.Rows, c.Columns)
	}
	slots := c.Rows * c.Columns
	if slots%2 != 0 {
		return fmt.Errorf("%w: %d slots cannot be paired", ErrInvalidBoard, slots)
	}
	if slots/2 > deck.Size {
		return fmt.Errorf("%w: %d pairs is more than a deck holds", ErrInvalidBoard, slots/2)
	}
	if c.AutoFlipDelay <= 0 {
		return ErrInvalidDelay
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	return nil
}

// NewLogger builds a production logger, or a development one, at the
// configured level
func NewLogger(c *Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	return zc.Build()
}

// Rand returns the source games are dealt from
func (c *Config) Rand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
