// Package config loads keyclock settings from file and environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jask/keyclock/internal/input"
)

// Config holds application configuration.
type Config struct {
	Clock ClockConfig
	Input InputConfig
	Reset ResetConfig
	Term  TermConfig
}

// ClockConfig tunes the tick producer.
type ClockConfig struct {
	Period        time.Duration
	QueueCapacity int `mapstructure:"queue_capacity"`
	Mode          string
}

// InputConfig tunes the key poller.
type InputConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
	QuitKey      string        `mapstructure:"quit_key"`
}

// ResetConfig tunes the no-activity notice.
type ResetConfig struct {
	Delay time.Duration
}

// TermConfig tunes the terminal driver.
type TermConfig struct {
	EscDelay time.Duration `mapstructure:"esc_delay"`
}

const (
	// ModeDirect renders ticks in the clock task itself.
	ModeDirect = "direct"
	// ModeDecoupled routes ticks through the bounded channel.
	ModeDecoupled = "decoupled"
)

// Load reads configuration from file and env. Env var overrides use prefix
// KEYCLOCK_; the config file path can be forced with KEYCLOCK_CONFIG.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("clock.period", "1s")
	v.SetDefault("clock.queue_capacity", 100)
	v.SetDefault("clock.mode", ModeDecoupled)
	v.SetDefault("input.poll_interval", "10ms")
	v.SetDefault("input.quit_key", "q")
	v.SetDefault("reset.delay", "1s")
	v.SetDefault("term.esc_delay", "25ms")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("KEYCLOCK_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "keyclock"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("KEYCLOCK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	if c.Clock.Mode != ModeDirect && c.Clock.Mode != ModeDecoupled {
		return fmt.Errorf("clock.mode %q: want %q or %q", c.Clock.Mode, ModeDirect, ModeDecoupled)
	}
	if c.Clock.QueueCapacity <= 0 {
		return fmt.Errorf("clock.queue_capacity %d: want > 0", c.Clock.QueueCapacity)
	}
	if c.Input.QuitKey == "" {
		return fmt.Errorf("input.quit_key must not be empty")
	}
	return nil
}

// QuitCode maps the configured quit key to its key code. "esc" names the
// escape key; anything else contributes its first rune.
func (c Config) QuitCode() input.Code {
	if strings.EqualFold(c.Input.QuitKey, "esc") {
		return input.Esc
	}
	return input.Code([]rune(c.Input.QuitKey)[0])
}

// Decoupled reports whether ticks go through the bounded channel.
func (c Config) Decoupled() bool {
	return c.Clock.Mode == ModeDecoupled
}
