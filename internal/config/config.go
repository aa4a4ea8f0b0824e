// Package config loads and validates the notifyd configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/averen/notifyd/internal/notification"
)

// Duration is a time.Duration that can be unmarshaled from human-readable
// strings. Supports formats like "5s", "1m30s", or integer milliseconds.
// A value of "0" or 0 means never expire; negative values disable the
// setting they configure.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	// Integer values are milliseconds, matching the wire protocol's
	// expire_timeout unit.
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '5s', '1m30s' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config is the daemon configuration.
// Loaded from ~/.config/notifyd/notifyd.toml.
type Config struct {
	Display  DisplayConfig  `toml:"display"`
	Timeouts TimeoutConfig  `toml:"timeouts"`
	Behavior BehaviorConfig `toml:"behavior"`
}

// DisplayConfig contains settings for the displayed queue.
type DisplayConfig struct {
	// DisplayedLimit bounds how many notifications are visible at
	// once. 0 means unlimited.
	DisplayedLimit uint `toml:"displayed_limit"`
	// ShowAgeThreshold is the visible age after which the rendering
	// layer starts printing "Nm ago" stamps; the engine schedules a
	// wakeup for every age tick past it. Negative disables age display.
	ShowAgeThreshold Duration `toml:"show_age_threshold"`
}

// TimeoutConfig contains default display durations per urgency level.
// "0" means never expire.
type TimeoutConfig struct {
	Low      Duration `toml:"low"`      // e.g. "5s", "1m", or 5000
	Normal   Duration `toml:"normal"`   // e.g. "10s"
	Critical Duration `toml:"critical"` // e.g. "0" for never expire
	// TransientFullscreen overrides a transient notification's own
	// duration while a fullscreen window has focus. 0 disables the
	// override.
	TransientFullscreen Duration `toml:"transient_fullscreen"`
}

// BehaviorConfig contains queue behavior settings.
type BehaviorConfig struct {
	// StackDuplicates collapses identical notifications into one
	// record with a running counter.
	StackDuplicates bool `toml:"stack_duplicates"`
	// StickyHistory clears the timeout of notifications recalled from
	// history so they stay until dismissed.
	StickyHistory bool `toml:"sticky_history"`
	// HistoryLength caps the history queue. 0 means unlimited.
	HistoryLength int `toml:"history_length"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			DisplayedLimit:   5,
			ShowAgeThreshold: Duration(60 * time.Second),
		},
		Timeouts: TimeoutConfig{
			Low:                 Duration(5 * time.Second),
			Normal:              Duration(10 * time.Second),
			Critical:            Duration(0), // never expires
			TransientFullscreen: Duration(3 * time.Second),
		},
		Behavior: BehaviorConfig{
			StackDuplicates: true,
			StickyHistory:   true,
			HistoryLength:   100,
		},
	}
}

// Path returns the path to the daemon config file.
func Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "notifyd", "notifyd.toml"), nil
}

// Load loads the configuration from path. An empty path uses the default
// location; a missing file yields the default configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = Path()
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then overlay with file contents.
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to its default location.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Behavior.HistoryLength < 0 {
		return fmt.Errorf("history_length must not be negative, got %d", c.Behavior.HistoryLength)
	}
	for name, d := range map[string]Duration{
		"timeouts.low":                  c.Timeouts.Low,
		"timeouts.normal":               c.Timeouts.Normal,
		"timeouts.critical":             c.Timeouts.Critical,
		"timeouts.transient_fullscreen": c.Timeouts.TransientFullscreen,
	} {
		if d < 0 {
			return fmt.Errorf("%s must not be negative, got %s", name, d.Duration())
		}
	}
	return nil
}

// TimeoutForUrgency returns the default display duration for the given
// urgency level. Used when a notification requests the server default.
func (c *Config) TimeoutForUrgency(urgency int) time.Duration {
	switch urgency {
	case notification.UrgencyLow:
		return c.Timeouts.Low.Duration()
	case notification.UrgencyCritical:
		return c.Timeouts.Critical.Duration()
	default:
		return c.Timeouts.Normal.Duration()
	}
}
