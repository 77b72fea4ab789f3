// Package config provides YAML/JSON game configuration loading, validation
// and difficulty presets for the race game.
package config

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/vovakirdan/carrace/internal/core"
)

// NoLimit disables the cap on simultaneously active obstacles.
const NoLimit = -1

// RaceConfig is the flat game configuration.
// Keys match the historical config.json layout so existing files keep working.
type RaceConfig struct {
	UITitle       string `yaml:"ui_title" json:"ui_title" jsonschema:"title=Window title,minLength=1,required"`
	LeftArrowKey  int    `yaml:"left_arrow_key" json:"left_arrow_key" jsonschema:"description=Key code that steps the player left,required"`
	RightArrowKey int    `yaml:"right_arrow_key" json:"right_arrow_key" jsonschema:"description=Key code that steps the player right,required"`
	QuitKey       int    `yaml:"quit_key,omitempty" json:"quit_key,omitempty" jsonschema:"description=Key code that ends the game (default 'q')"`

	ObstacleMoveMS                 int     `yaml:"obstacle_move_ms" json:"obstacle_move_ms" jsonschema:"description=Milliseconds between obstacle steps,exclusiveMinimum=0,required"`
	ObstacleSpeedIncreaseIntervalS float64 `yaml:"obstacle_speed_increase_interval_s" json:"obstacle_speed_increase_interval_s" jsonschema:"description=Seconds between speed increases,exclusiveMinimum=0,required"`
	ObstacleStepIncrement          float64 `yaml:"obstacle_step_increment" json:"obstacle_step_increment" jsonschema:"description=Step size added at every speed increase,minimum=0,required"`

	ArenaWidth  int `yaml:"arena_width" json:"arena_width" jsonschema:"exclusiveMinimum=0,required"`
	ArenaHeight int `yaml:"arena_height" json:"arena_height" jsonschema:"exclusiveMinimum=0,required"`

	ObstacleColor    string  `yaml:"obstacle_color" json:"obstacle_color" jsonschema:"description=Color name such as red or bright_cyan,required"`
	MaxObstacles     int     `yaml:"max_obstacles" json:"max_obstacles" jsonschema:"description=Cap on active obstacles; -1 or null for no cap"`
	ObstacleWidth    int     `yaml:"obstacle_width" json:"obstacle_width" jsonschema:"exclusiveMinimum=0,required"`
	ObstacleHeight   int     `yaml:"obstacle_height" json:"obstacle_height" jsonschema:"exclusiveMinimum=0,required"`
	ObstacleStepSize float64 `yaml:"obstacle_step_size" json:"obstacle_step_size" jsonschema:"exclusiveMinimum=0,required"`
	ObstacleMinDist  int     `yaml:"obstacle_min_dist" json:"obstacle_min_dist" jsonschema:"minimum=0,required"`
	ObstacleMaxDist  int     `yaml:"obstacle_max_dist" json:"obstacle_max_dist" jsonschema:"minimum=0,required"`

	PlayerColor    string  `yaml:"player_color" json:"player_color" jsonschema:"required"`
	PlayerStepSize float64 `yaml:"player_step_size" json:"player_step_size" jsonschema:"exclusiveMinimum=0,required"`
	PlayerWidth    int     `yaml:"player_width,omitempty" json:"player_width,omitempty" jsonschema:"description=Defaults to obstacle_width"`
	PlayerHeight   int     `yaml:"player_height,omitempty" json:"player_height,omitempty" jsonschema:"description=Defaults to obstacle_height"`
}

// requiredKeys lists the keys a configuration file must define.
var requiredKeys = []string{
	"ui_title",
	"left_arrow_key",
	"right_arrow_key",
	"obstacle_move_ms",
	"obstacle_speed_increase_interval_s",
	"obstacle_step_increment",
	"arena_width",
	"arena_height",
	"obstacle_color",
	"obstacle_width",
	"obstacle_height",
	"obstacle_step_size",
	"obstacle_min_dist",
	"obstacle_max_dist",
	"player_color",
	"player_step_size",
}

// WithDefaults fills the optional fields left at their zero value:
// quit_key falls back to 'q' and the player takes the obstacle size.
func (c RaceConfig) WithDefaults() RaceConfig {
	if c.QuitKey == 0 {
		c.QuitKey = core.KeyQuit
	}
	if c.PlayerWidth == 0 {
		c.PlayerWidth = c.ObstacleWidth
	}
	if c.PlayerHeight == 0 {
		c.PlayerHeight = c.ObstacleHeight
	}
	return c
}

// TickInterval returns the obstacle step period.
func (c RaceConfig) TickInterval() time.Duration {
	return time.Duration(c.ObstacleMoveMS) * time.Millisecond
}

// SpeedIncreaseInterval returns the wall time between speed increases.
func (c RaceConfig) SpeedIncreaseInterval() time.Duration {
	return time.Duration(c.ObstacleSpeedIncreaseIntervalS * float64(time.Second))
}

// KeyBindings returns the configured key codes.
func (c RaceConfig) KeyBindings() core.KeyBindings {
	return core.KeyBindings{Left: c.LeftArrowKey, Right: c.RightArrowKey, Quit: c.QuitKey}
}

// ObstacleColorValue resolves obstacle_color. Call Validate first.
func (c RaceConfig) ObstacleColorValue() core.Color {
	col, _ := core.ParseColor(c.ObstacleColor)
	return col
}

// PlayerColorValue resolves player_color. Call Validate first.
func (c RaceConfig) PlayerColorValue() core.Color {
	col, _ := core.ParseColor(c.PlayerColor)
	return col
}

// Validate checks every numeric constraint and color name.
// The first violation is returned as a *ConfigurationError.
func (c RaceConfig) Validate() error {
	if strings.TrimSpace(c.UITitle) == "" {
		return invalid("ui_title", "must not be empty")
	}
	positiveInts := []struct {
		field string
		value int
	}{
		{"obstacle_move_ms", c.ObstacleMoveMS},
		{"arena_width", c.ArenaWidth},
		{"arena_height", c.ArenaHeight},
		{"obstacle_width", c.ObstacleWidth},
		{"obstacle_height", c.ObstacleHeight},
		{"player_width", c.PlayerWidth},
		{"player_height", c.PlayerHeight},
	}
	for _, p := range positiveInts {
		if p.value <= 0 {
			return invalid(p.field, fmt.Sprintf("must be > 0, got %d", p.value))
		}
	}
	positiveFloats := []struct {
		field string
		value float64
	}{
		{"obstacle_speed_increase_interval_s", c.ObstacleSpeedIncreaseIntervalS},
		{"obstacle_step_size", c.ObstacleStepSize},
		{"player_step_size", c.PlayerStepSize},
	}
	for _, p := range positiveFloats {
		if !(p.value > 0) || math.IsInf(p.value, 0) {
			return invalid(p.field, fmt.Sprintf("must be > 0, got %v", p.value))
		}
	}
	if !(c.ObstacleStepIncrement >= 0) {
		return invalid("obstacle_step_increment", fmt.Sprintf("must be >= 0, got %v", c.ObstacleStepIncrement))
	}
	if c.ObstacleMinDist < 0 {
		return invalid("obstacle_min_dist", fmt.Sprintf("must be >= 0, got %d", c.ObstacleMinDist))
	}
	if c.ObstacleMaxDist < c.ObstacleMinDist {
		return invalid("obstacle_max_dist", fmt.Sprintf("must be >= obstacle_min_dist (%d), got %d", c.ObstacleMinDist, c.ObstacleMaxDist))
	}
	if c.ObstacleWidth > c.ArenaWidth {
		return invalid("obstacle_width", fmt.Sprintf("must fit in arena_width (%d), got %d", c.ArenaWidth, c.ObstacleWidth))
	}
	if c.PlayerWidth > c.ArenaWidth || c.PlayerHeight > c.ArenaHeight {
		return invalid("player_width", "player must fit in the arena")
	}
	if c.MaxObstacles != NoLimit && c.MaxObstacles <= 0 {
		return invalid("max_obstacles", fmt.Sprintf("must be > 0 or -1, got %d", c.MaxObstacles))
	}
	if c.LeftArrowKey == c.RightArrowKey {
		return invalid("right_arrow_key", "must differ from left_arrow_key")
	}
	if c.QuitKey == c.LeftArrowKey || c.QuitKey == c.RightArrowKey {
		return invalid("quit_key", "must differ from the movement keys")
	}
	if _, err := core.ParseColor(c.ObstacleColor); err != nil {
		return &ConfigurationError{Field: "obstacle_color", Reason: "unknown color", Err: err}
	}
	if _, err := core.ParseColor(c.PlayerColor); err != nil {
		return &ConfigurationError{Field: "player_color", Reason: "unknown color", Err: err}
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficultyPreset resolves a preset name. The empty string means
// "keep the configuration file's values" and is returned as "".
func ParseDifficultyPreset(name string) (DifficultyPreset, error) {
	switch DifficultyPreset(strings.ToLower(name)) {
	case "":
		return "", nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyHard:
		return DifficultyHard, nil
	case DifficultyFixed:
		return DifficultyFixed, nil
	}
	return "", invalid("difficulty", fmt.Sprintf("unknown preset %q (want easy, normal, hard or fixed)", name))
}

// ApplyRacePreset modifies the escalation settings based on a difficulty preset.
func ApplyRacePreset(cfg *RaceConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.ObstacleStepIncrement /= 2
		cfg.ObstacleSpeedIncreaseIntervalS *= 1.5
	case DifficultyHard:
		cfg.ObstacleStepSize *= 1.5
		cfg.ObstacleStepIncrement *= 2
		cfg.ObstacleSpeedIncreaseIntervalS /= 2
	case DifficultyFixed:
		cfg.ObstacleStepIncrement = 0
	}
}
