package core

import "time"

// RuntimeConfig contains the settings the platform hands to the executor.
type RuntimeConfig struct {
	ScreenW        int           // Screen width in characters
	ScreenH        int           // Screen height in characters
	TickRate       int           // Frames per second
	AnimationDelay time.Duration // Pause between replayed moves
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:        80,
		ScreenH:        24,
		TickRate:       30,
		AnimationDelay: 100 * time.Millisecond,
	}
}

// TickInterval is the wall-clock length of one frame.
func (c RuntimeConfig) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(c.TickRate)
}

// GameState is the executor status reported to the platform.
type GameState struct {
	Mode      string // menu, manual, searching, animating
	Steps     int
	FoodLeft  int
	PieTimer  int
	Won       bool // the last run reached the goal
	Searching bool // a background search is in flight
	Message   string
}
