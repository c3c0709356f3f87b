package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/vladimirvolkov/freethrow/internal/game"
)

// Config is the runtime configuration shared by every front end.
type Config struct {
	Port           string   `toml:"port"`
	StaticDir      string   `toml:"static_dir"` // empty serves the embedded client
	AllowedOrigins []string `toml:"allowed_origins"`
	LogLevel       string   `toml:"log_level"`
	Mode           string   `toml:"mode"`

	MaxConnsPerIP int           `toml:"max_conns_per_ip"`
	MsgRate       int           `toml:"msg_rate"`
	MsgWindow     time.Duration `toml:"msg_window"`
	MaxRooms      int64         `toml:"max_rooms"`

	Tuning game.Tuning `toml:"tuning"`
}

func Default() Config {
	return Config{
		Port:          "8080",
		LogLevel:      "info",
		Mode:          string(game.ModePower),
		MaxConnsPerIP: 4,
		MsgRate:       120,
		MsgWindow:     time.Second,
		MaxRooms:      100,
		Tuning:        game.DefaultTuning(),
	}
}

// Load builds a Config from defaults, an optional .env file, an optional
// TOML file and the environment, in that order. An empty path falls back to
// $CONFIG; a missing file at the default location is not an error.
func Load(path string) (Config, error) {
	c := Default()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return c, fmt.Errorf("load .env: %w", err)
	}

	explicit := path != ""
	if !explicit {
		path = os.Getenv("CONFIG")
		explicit = path != ""
	}
	if path == "" {
		path = "freethrow.toml"
	}
	if _, err := toml.DecodeFile(path, &c); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return c, fmt.Errorf("read config %s: %w", path, err)
		}
		slog.Debug("no config file, using defaults", "path", path)
	}

	if err := c.applyEnv(); err != nil {
		return c, err
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("STATIC_DIR"); v != "" {
		c.StaticDir = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("GAME_MODE"); v != "" {
		c.Mode = v
	}
	if v := os.Getenv("MAX_SHOTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MAX_SHOTS: %w", err)
		}
		c.Tuning.MaxShots = n
	}
	return nil
}

func (c Config) Validate() error {
	if _, err := c.GameMode(); err != nil {
		return err
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.MaxConnsPerIP < 1 || c.MsgRate < 1 || c.MsgWindow <= 0 {
		return fmt.Errorf("rate limits must be positive")
	}
	if err := c.Tuning.Validate(); err != nil {
		return fmt.Errorf("tuning: %w", err)
	}
	return nil
}

func (c Config) GameMode() (game.Mode, error) {
	return game.ParseMode(c.Mode)
}

// SlogLevel parses LogLevel ("debug", "info", "warn", "error").
func (c Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return lvl, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}

// SetupLogging installs the default slog logger at the configured level.
func (c Config) SetupLogging() {
	lvl, err := c.SlogLevel()
	if err != nil {
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})))
}
