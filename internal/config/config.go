package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is read on startup when present.
const DefaultEnvFile = ".env"

type Config struct {
	Environment string     `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    slog.Level `env:"-"`
	LogFile     string     `env:"LOG_FILE"`

	// Content
	OverlayURL   string        `env:"OVERLAY_URL" envDefault:"https://raw.githubusercontent.com/cherrywheel/CN-Tower/main/dialogue.json"`
	OverlayFile  string        `env:"OVERLAY_FILE"`
	BannerURL    string        `env:"BANNER_URL" envDefault:"https://raw.githubusercontent.com/cherrywheel/CN-Tower/main/cn_tower_art.txt"`
	FetchTimeout time.Duration `env:"FETCH_TIMEOUT"`
	SweetMode    bool          `env:"SWEET_MODE"`

	// Geolocation
	GeoProviders []string      `env:"GEO_PROVIDERS" envSeparator:"," envDefault:"https://ipapi.co/json/,https://ipwho.is/,https://freegeoip.app/json/"`
	GeoTimeout   time.Duration `env:"GEO_TIMEOUT" envDefault:"5s"`
	GeoDisabled  bool          `env:"GEO_DISABLED"`

	// Persistence
	SaveBackend string `env:"SAVE_BACKEND" envDefault:"file"`
	SavePath    string `env:"SAVE_PATH" envDefault:"savegame.json"`
	AgePath     string `env:"AGE_PATH" envDefault:"age.json"`
	StorePath   string `env:"STORE_PATH" envDefault:"tower.db"`
	RedisURL    string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`

	// Terminal
	NarrationPacing float64 `env:"NARRATION_PACING" envDefault:"1"`
	TermWidth       int     `env:"TERM_WIDTH" envDefault:"80"`
}

// Load reads DefaultEnvFile if it exists, then the process environment.
func Load() (*Config, error) {
	return LoadFile(DefaultEnvFile)
}

// LoadFile is Load with an explicit env file. Variables already set in the
// environment win over the file.
func LoadFile(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	level, err := env.ParseAs[levelEnv]()
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.LogLevel = parseLogLevel(level.Name)
	cfg.SaveBackend = strings.ToLower(strings.TrimSpace(cfg.SaveBackend))

	if cfg.NarrationPacing < 0 {
		return nil, fmt.Errorf("NARRATION_PACING must not be negative, got %v", cfg.NarrationPacing)
	}
	if cfg.TermWidth < 0 {
		return nil, fmt.Errorf("TERM_WIDTH must not be negative, got %d", cfg.TermWidth)
	}
	return cfg, nil
}

// IsProduction reports whether logs should be JSON.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

type levelEnv struct {
	Name string `env:"LOG_LEVEL" envDefault:"info"`
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
