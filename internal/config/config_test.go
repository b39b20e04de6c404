package config

import (
	"log/slog"
	"slices"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 8080 || cfg.StageWidth != 512 || cfg.StageHeight != 512 || cfg.StageColor != "white" {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.HistoryLimit != 0 || cfg.StrictCapture {
		t.Errorf("history defaults = %d/%v", cfg.HistoryLimit, cfg.StrictCapture)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STAGE_WIDTH", "800")
	t.Setenv("HISTORY_LIMIT", "50")
	t.Setenv("STRICT_CAPTURE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.StageWidth != 800 || cfg.HistoryLimit != 50 || !cfg.StrictCapture {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"zero width", "STAGE_WIDTH", "0"},
		{"negative limit", "HISTORY_LIMIT", "-1"},
		{"not a number", "PORT", "eighty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%s succeeded", tt.key, tt.value)
			}
		})
	}
}

func TestOrigins(t *testing.T) {
	cfg := &Config{AllowedOrigins: "http://localhost:5173, https://stage.example.com ,"}
	if got := cfg.Origins(); !slices.Equal(got, []string{"http://localhost:5173", "https://stage.example.com"}) {
		t.Errorf("Origins() = %v", got)
	}
	if got := cfg.OriginPatterns(); !slices.Equal(got, []string{"localhost:5173", "stage.example.com"}) {
		t.Errorf("OriginPatterns() = %v", got)
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"nonsense", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := (&Config{LogLevel: tt.in}).SlogLevel(); got != tt.want {
			t.Errorf("SlogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
