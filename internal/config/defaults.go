package config

import (
	_ "embed"
)

//go:embed defaults/dodgeball.yaml
var defaultDodgeballYAML []byte

// DefaultDodgeballConfig returns the default dodgeball configuration.
func DefaultDodgeballConfig() DodgeballConfig {
	return DodgeballConfig{
		Timing: TimingConfig{
			TickRate:        500,
			DurationRate:    500,
			InputRate:       100,
			DisplayRate:     50,
			RampRate:        250,
			BallRate:        2,
			LinkRate:        100,
			CountdownFrames: 150,
		},
		Gameplay: GameplayConfig{
			FireCooldown:    100,
			RampLength:      100,
			MinFireCooldown: 0,
		},
		Link: LinkConfig{
			Transport: "tcp",
			Path:      "/link",
		},
		Log: LogConfig{
			File:       "~/.dodgeball/logs/dodgeball.log",
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
		History: HistoryConfig{
			DBPath: "~/.dodgeball/history.db",
		},
	}
}
