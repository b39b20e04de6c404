package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port           int    `envconfig:"PORT" default:"8080"`
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`

	StageWidth  float64 `envconfig:"STAGE_WIDTH" default:"512"`
	StageHeight float64 `envconfig:"STAGE_HEIGHT" default:"512"`
	StageColor  string  `envconfig:"STAGE_COLOR" default:"white"`

	// HistoryLimit caps the undo stack per session; 0 means unlimited.
	HistoryLimit int `envconfig:"HISTORY_LIMIT" default:"0"`
	// StrictCapture makes undo bookkeeping mistakes panic instead of being
	// logged. Meant for development.
	StrictCapture bool `envconfig:"STRICT_CAPTURE" default:"false"`

	MaxUploadBytes int64 `envconfig:"MAX_UPLOAD_BYTES" default:"10485760"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.StageWidth <= 0 || cfg.StageHeight <= 0 {
		return nil, fmt.Errorf("stage size %vx%v must be positive", cfg.StageWidth, cfg.StageHeight)
	}
	if cfg.HistoryLimit < 0 {
		return nil, fmt.Errorf("HISTORY_LIMIT must not be negative, got %d", cfg.HistoryLimit)
	}
	return &cfg, nil
}

// Origins splits AllowedOrigins into a list, dropping blanks.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// OriginPatterns returns the allowed origins without scheme, as expected by
// websocket.AcceptOptions.
func (c *Config) OriginPatterns() []string {
	origins := c.Origins()
	for i, o := range origins {
		if _, host, ok := strings.Cut(o, "://"); ok {
			origins[i] = host
		}
	}
	return origins
}

// SlogLevel maps LogLevel onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
