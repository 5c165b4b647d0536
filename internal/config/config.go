// Package config provides YAML-based configuration loading and difficulty
// presets for the dodgeball node.
package config

import (
	"fmt"
	"strings"
)

// DodgeballConfig contains all configuration for one dodgeball node.
type DodgeballConfig struct {
	Timing   TimingConfig   `yaml:"timing"`
	Gameplay GameplayConfig `yaml:"gameplay"`
	Link     LinkConfig     `yaml:"link"`
	Log      LogConfig      `yaml:"log"`
	History  HistoryConfig  `yaml:"history"`
}

// TimingConfig defines the master tick and the rate of every task.
// Every task rate must divide the tick rate evenly.
type TimingConfig struct {
	TickRate        int `yaml:"tick_rate"`        // Master ticks per second
	DurationRate    int `yaml:"duration_rate"`    // Survival counter
	InputRate       int `yaml:"input_rate"`       // Input polling
	DisplayRate     int `yaml:"display_rate"`     // Frames pushed to the presenter
	RampRate        int `yaml:"ramp_rate"`        // Fire cooldown ramp
	BallRate        int `yaml:"ball_rate"`        // Ball movement
	LinkRate        int `yaml:"link_rate"`        // Link polling
	CountdownFrames int `yaml:"countdown_frames"` // Display frames the round countdown stays up
}

// Period converts a task rate to a period in master ticks.
func (t TimingConfig) Period(rate int) uint64 {
	if rate <= 0 {
		return 0
	}
	return uint64(t.TickRate / rate)
}

// GameplayConfig defines the attacker fire limits.
type GameplayConfig struct {
	FireCooldown    int `yaml:"fire_cooldown"`     // Input ticks between shots at round start
	RampLength      int `yaml:"ramp_length"`       // Ramp ticks before the cooldown shrinks by one
	MinFireCooldown int `yaml:"min_fire_cooldown"` // Floor the ramp never goes below
}

// LinkConfig defines how the node reaches its peer.
type LinkConfig struct {
	Transport string `yaml:"transport"` // "tcp" or "ws"
	Path      string `yaml:"path"`      // WebSocket path
}

// LogConfig defines the rolling event log of a node.
type LogConfig struct {
	File       string `yaml:"file"`
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// HistoryConfig defines where finished matches are recorded.
type HistoryConfig struct {
	DBPath string `yaml:"db_path"`
}

// Validate checks the configuration for values the scheduler or game
// cannot run with.
func (c DodgeballConfig) Validate() error {
	t := c.Timing
	if t.TickRate <= 0 {
		return fmt.Errorf("config: tick_rate must be positive, got %d", t.TickRate)
	}

	rates := []struct {
		name string
		rate int
	}{
		{"duration_rate", t.DurationRate},
		{"input_rate", t.InputRate},
		{"display_rate", t.DisplayRate},
		{"ramp_rate", t.RampRate},
		{"ball_rate", t.BallRate},
		{"link_rate", t.LinkRate},
	}
	for _, r := range rates {
		if r.rate <= 0 || r.rate > t.TickRate {
			return fmt.Errorf("config: %s must be in 1..%d, got %d", r.name, t.TickRate, r.rate)
		}
		if t.TickRate%r.rate != 0 {
			return fmt.Errorf("config: %s %d does not divide tick_rate %d", r.name, r.rate, t.TickRate)
		}
	}
	if t.CountdownFrames < 0 {
		return fmt.Errorf("config: countdown_frames must not be negative, got %d", t.CountdownFrames)
	}

	g := c.Gameplay
	if g.FireCooldown < 0 || g.MinFireCooldown < 0 {
		return fmt.Errorf("config: fire cooldowns must not be negative")
	}
	if g.MinFireCooldown > g.FireCooldown {
		return fmt.Errorf("config: min_fire_cooldown %d exceeds fire_cooldown %d", g.MinFireCooldown, g.FireCooldown)
	}
	if g.RampLength <= 0 {
		return fmt.Errorf("config: ramp_length must be positive, got %d", g.RampLength)
	}

	switch strings.ToLower(c.Link.Transport) {
	case "", "tcp", "ws":
	default:
		return fmt.Errorf("config: unknown link transport %q", c.Link.Transport)
	}
	return nil
}
