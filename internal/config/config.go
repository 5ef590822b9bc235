// Package config provides YAML-based configuration loading for rotamaze:
// game rules, heuristic and search tuning, play speed and storage paths.
package config

import (
	"fmt"

	"github.com/vovakirdan/rotamaze/internal/heuristic"
	"github.com/vovakirdan/rotamaze/internal/maze"
	"github.com/vovakirdan/rotamaze/internal/problem"
)

// Config is the full application configuration.
type Config struct {
	Rules     RulesConfig     `yaml:"rules"`
	Heuristic HeuristicConfig `yaml:"heuristic"`
	Search    SearchConfig    `yaml:"search"`
	Play      PlayConfig      `yaml:"play"`
	Storage   StorageConfig   `yaml:"storage"`
	Layouts   LayoutsConfig   `yaml:"layouts"`
	Log       LogConfig       `yaml:"log"`
}

// RulesConfig defines the game rules.
type RulesConfig struct {
	RotationPeriod  int  `yaml:"rotation_period"` // <= 0 disables rotation
	PieDuration     int  `yaml:"pie_duration"`
	CornerTeleports bool `yaml:"corner_teleports"`
}

// HeuristicConfig tunes the heuristic engine.
type HeuristicConfig struct {
	Lookahead bool   `yaml:"lookahead"`
	PieBound  string `yaml:"pie_bound"` // relaxed | zero
}

// SearchConfig selects and bounds the solver.
type SearchConfig struct {
	Strategy      string `yaml:"strategy"`
	ProgressEvery int    `yaml:"progress_every"`
	MaxExpansions int    `yaml:"max_expansions"`
}

// PlayConfig defines interactive play timing.
type PlayConfig struct {
	TickRate         int `yaml:"tick_rate"`
	AnimationDelayMS int `yaml:"animation_delay_ms"`
}

// StorageConfig locates the run history database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// LayoutsConfig locates user layout files.
type LayoutsConfig struct {
	Dir string `yaml:"dir"`
}

// LogConfig sets the log level.
type LogConfig struct {
	Level string `yaml:"level"`
}

// ProblemRules converts the rules section for the transition engine.
func (c Config) ProblemRules() problem.Rules {
	return problem.Rules{
		RotationPeriod: c.Rules.RotationPeriod,
		PieDuration:    c.Rules.PieDuration,
	}
}

// MazeOptions converts the rules section for the layout parser.
func (c Config) MazeOptions() maze.Options {
	return maze.Options{CornerTeleports: c.Rules.CornerTeleports}
}

// HeuristicOptions converts the heuristic section. Validate reports an
// unknown pie bound; here it falls back to the default.
func (c Config) HeuristicOptions() heuristic.Options {
	bound, err := heuristic.ParsePieBound(c.Heuristic.PieBound)
	if err != nil {
		bound = heuristic.PieBoundRelaxed
	}
	return heuristic.Options{Lookahead: c.Heuristic.Lookahead, PieBound: bound}
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Rules.PieDuration < 0 {
		return fmt.Errorf("config: rules.pie_duration must be >= 0, got %d", c.Rules.PieDuration)
	}
	if _, err := heuristic.ParsePieBound(c.Heuristic.PieBound); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Play.TickRate <= 0 {
		return fmt.Errorf("config: play.tick_rate must be > 0, got %d", c.Play.TickRate)
	}
	if c.Play.AnimationDelayMS < 0 {
		return fmt.Errorf("config: play.animation_delay_ms must be >= 0, got %d", c.Play.AnimationDelayMS)
	}
	if c.Search.MaxExpansions < 0 {
		return fmt.Errorf("config: search.max_expansions must be >= 0, got %d", c.Search.MaxExpansions)
	}
	return nil
}
