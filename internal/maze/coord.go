// Package maze holds the static geometry of a rotating maze: walls, food,
// pies, teleports, the exit and ghost spawns, precomputed for all four
// orientations. It has no knowledge of time, ghosts in motion, or search.
package maze

import "fmt"

// Coord is a tile position. X grows to the right, Y grows downward.
type Coord struct {
	X, Y int
}

// Add returns the coordinate offset by d.
func (c Coord) Add(d Coord) Coord {
	return Coord{X: c.X + d.X, Y: c.Y + d.Y}
}

// String formats the coordinate the way action labels print it.
func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Direction is one of the four grid moves.
type Direction int

const (
	North Direction = iota
	South
	West
	East
)

// Directions lists moves in their canonical enumeration order.
var Directions = [4]Direction{North, South, West, East}

// Delta returns the unit offset of the move.
func (d Direction) Delta() Coord {
	switch d {
	case North:
		return Coord{0, -1}
	case South:
		return Coord{0, 1}
	case West:
		return Coord{-1, 0}
	case East:
		return Coord{1, 0}
	}
	return Coord{}
}

// String returns the action label of the move.
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case South:
		return "South"
	case West:
		return "West"
	case East:
		return "East"
	default:
		return "Unknown"
	}
}
