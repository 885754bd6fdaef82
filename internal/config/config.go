// Package config reads run settings from GROVE_* environment variables and
// sets up logging for the grove commands.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Settings holds everything the commands read from the environment.
type Settings struct {
	Seed      int64   // GROVE_SEED (0 = random)
	Trees     int     // GROVE_TREES
	Width     int     // GROVE_WIDTH
	Height    int     // GROVE_HEIGHT
	TimeScale float64 // GROVE_TIME_SCALE, viewer wall-time multiplier
	Ticks     uint64  // GROVE_TICKS, headless run length
	TickDT    float64 // GROVE_TICK_DT, headless fixed step in seconds
	Out       string  // GROVE_OUT, headless PNG path
	Preset    string  // GROVE_PRESET, plant every tree from this preset
	LogLevel  string  // GROVE_LOG_LEVEL
	LogFile   string  // GROVE_LOG, terminal viewer log destination
}

// Defaults returns the settings used when nothing is set.
func Defaults() Settings {
	return Settings{
		Trees:     2,
		Width:     1024,
		Height:    768,
		TimeScale: 4.0,
		Ticks:     3000,
		TickDT:    1.0 / 60,
		Out:       "grove.png",
		LogLevel:  "info",
	}
}

// Load applies environment overrides to Defaults. Malformed values are
// reported together.
func Load() (Settings, error) {
	return LoadFrom(os.Getenv)
}

// LoadFrom is Load with a custom lookup, for tests.
func LoadFrom(getenv func(string) string) (Settings, error) {
	s := Defaults()
	var errs []error

	envInt64(getenv, "GROVE_SEED", &s.Seed, &errs)
	envInt(getenv, "GROVE_TREES", &s.Trees, &errs)
	envInt(getenv, "GROVE_WIDTH", &s.Width, &errs)
	envInt(getenv, "GROVE_HEIGHT", &s.Height, &errs)
	envFloat(getenv, "GROVE_TIME_SCALE", &s.TimeScale, &errs)
	envUint64(getenv, "GROVE_TICKS", &s.Ticks, &errs)
	envFloat(getenv, "GROVE_TICK_DT", &s.TickDT, &errs)
	s.Out = envOrDefault(getenv, "GROVE_OUT", s.Out)
	s.Preset = envOrDefault(getenv, "GROVE_PRESET", s.Preset)
	s.LogLevel = envOrDefault(getenv, "GROVE_LOG_LEVEL", s.LogLevel)
	s.LogFile = envOrDefault(getenv, "GROVE_LOG", s.LogFile)

	if s.TimeScale < 0 {
		errs = append(errs, fmt.Errorf("GROVE_TIME_SCALE must not be negative, got %v", s.TimeScale))
	}
	if s.Ticks == 0 {
		errs = append(errs, errors.New("GROVE_TICKS must be positive"))
	}
	if s.TickDT <= 0 {
		errs = append(errs, fmt.Errorf("GROVE_TICK_DT must be positive, got %v", s.TickDT))
	}
	if _, err := ParseLevel(s.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return s, errors.Join(errs...)
}

// ParseLevel maps debug/info/warn/error to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("GROVE_LOG_LEVEL: %w", err)
	}
	return level, nil
}

// NewLogger builds the text logger used by every command.
func NewLogger(w io.Writer, level string) *slog.Logger {
	lvl, err := ParseLevel(level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: lvl,
	}))
}

func envOrDefault(getenv func(string) string, key, defaultVal string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(getenv func(string) string, key string, dst *int, errs *[]error) {
	if v := getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
			return
		}
		*dst = n
	}
}

func envInt64(getenv func(string) string, key string, dst *int64, errs *[]error) {
	if v := getenv(key); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
			return
		}
		*dst = n
	}
}

func envUint64(getenv func(string) string, key string, dst *uint64, errs *[]error) {
	if v := getenv(key); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
			return
		}
		*dst = n
	}
}

func envFloat(getenv func(string) string, key string, dst *float64, errs *[]error) {
	if v := getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
			return
		}
		*dst = f
	}
}
