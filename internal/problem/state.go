// Package problem is the transition engine of the rotating maze: the search
// state, the goal test and the successor function. It is the only package
// that knows the full rule set.
package problem

import (
	"fmt"

	"github.com/vovakirdan/rotamaze/internal/maze"
)

// Rules are the tunable constants of the game.
type Rules struct {
	// RotationPeriod is the number of steps between quarter turns.
	// Values <= 0 disable rotation.
	RotationPeriod int
	// PieDuration is the wall-breaking budget granted by a pie.
	PieDuration int
}

// DefaultRules returns the standard game rules.
func DefaultRules() Rules {
	return Rules{RotationPeriod: 30, PieDuration: 5}
}

// Rotates reports whether the maze turns at all.
func (r Rules) Rotates() bool {
	return r.RotationPeriod > 0
}

// Cycle is the modulus of State.Step: four rotation windows, or 1 when the
// maze never turns.
func (r Rules) Cycle() int {
	if !r.Rotates() {
		return 1
	}
	return maze.Rotations * r.RotationPeriod
}

// State is one search node's configuration. It is a plain comparable value:
// two states are equal iff every field is equal, so it can key maps.
//
// Pos, Food and Pies are expressed in the orientation given by Step;
// Broken is always in base-orientation indices.
type State struct {
	Pos      maze.Coord
	Food     maze.Bitset
	Pies     maze.Bitset
	PieTimer int
	Step     int
	Broken   maze.Bitset
}

// Rotation returns the orientation the state's coordinates are expressed in.
func (s State) Rotation(r Rules) int {
	if !r.Rotates() {
		return 0
	}
	return s.Step / r.RotationPeriod % maze.Rotations
}

// Phase returns the number of steps since the last quarter turn.
func (s State) Phase(r Rules) int {
	if !r.Rotates() {
		return 0
	}
	return s.Step % r.RotationPeriod
}

func (s State) String() string {
	return fmt.Sprintf("pos=%v food=%d pies=%d timer=%d step=%d broken=%d",
		s.Pos, s.Food.Len(), s.Pies.Len(), s.PieTimer, s.Step, s.Broken.Len())
}

// Successor pairs an action label with the state it leads to.
type Successor struct {
	Action string
	State  State
}

// TeleportLabel is the action label of a jump to target.
func TeleportLabel(target maze.Coord) string {
	return "Teleport to " + target.String()
}
