package config

import (
	_ "embed"

	"github.com/vovakirdan/carrace/internal/core"
)

//go:embed defaults/carrace.yaml
var defaultRaceYAML []byte

// DefaultRaceConfig returns the built-in configuration.
// It mirrors defaults/carrace.yaml and is used when the embedded file cannot be parsed.
func DefaultRaceConfig() RaceConfig {
	return RaceConfig{
		UITitle:       "Car Race",
		LeftArrowKey:  core.KeyLeft,
		RightArrowKey: core.KeyRight,
		QuitKey:       core.KeyQuit,

		ObstacleMoveMS:                 120,
		ObstacleSpeedIncreaseIntervalS: 10,
		ObstacleStepIncrement:          0.25,

		ArenaWidth:  40,
		ArenaHeight: 30,

		ObstacleColor:    "red",
		MaxObstacles:     8,
		ObstacleWidth:    6,
		ObstacleHeight:   3,
		ObstacleStepSize: 1,
		ObstacleMinDist:  6,
		ObstacleMaxDist:  16,

		PlayerColor:    "bright_cyan",
		PlayerStepSize: 2,
		PlayerWidth:    6,
		PlayerHeight:   3,
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultRaceYAML
}
