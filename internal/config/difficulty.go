package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the known presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// ParsePreset converts a flag value into a preset.
// An empty string keeps whatever the loaded file says.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return "", nil
	}
	for _, p := range Presets {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
}

// GameplayForPreset returns the fire limits for a preset.
func GameplayForPreset(preset DifficultyPreset) GameplayConfig {
	switch preset {
	case DifficultyEasy:
		return GameplayConfig{FireCooldown: 150, RampLength: 150, MinFireCooldown: 40}
	case DifficultyHard:
		return GameplayConfig{FireCooldown: 60, RampLength: 60, MinFireCooldown: 0}
	default:
		return DefaultDodgeballConfig().Gameplay
	}
}

// ApplyPreset overwrites the gameplay section with the preset's values.
// An empty preset leaves cfg untouched.
func ApplyPreset(cfg *DodgeballConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	cfg.Gameplay = GameplayForPreset(preset)
}
