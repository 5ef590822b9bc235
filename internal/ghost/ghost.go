// Package ghost computes where ghosts are at a given elapsed step.
//
// A ghost bounces inside the horizontal corridor that contains it. The
// corridor is fixed for one rotation window (rotation period steps) and is
// recomputed when the maze turns: the ghost's last tile of the previous
// window is carried into the new orientation and becomes the seed of the
// new corridor. Destroyed walls widen corridors, so the whole timeline is a
// function of the broken wall set.
package ghost

import (
	"github.com/vovakirdan/rotamaze/internal/maze"
)

// Model evaluates ghost positions lazily and caches one corridor per
// (ghost, window, broken walls). It is not safe for concurrent use.
type Model struct {
	geo    *maze.Geometry
	period int
	cache  map[windowKey]corridor
}

type windowKey struct {
	ghost  int
	window int
	broken maze.Bitset
}

// corridor is the bounce range of one window, in the window's orientation.
type corridor struct {
	rotation    int
	row         int
	left, right int
}

func (c corridor) at(phase int) maze.Coord {
	return maze.Coord{X: c.left + triangle(phase, c.right-c.left), Y: c.row}
}

// New creates a model. A rotation period <= 0 means the maze never turns
// and every ghost keeps its first corridor forever.
func New(geo *maze.Geometry, period int) *Model {
	return &Model{
		geo:    geo,
		period: period,
		cache:  make(map[windowKey]corridor),
	}
}

// Count returns the number of ghosts.
func (m *Model) Count() int {
	return len(m.geo.Ghosts)
}

// Position returns ghost idx's tile after elapsed steps, expressed in
// orientation rotation, given the destroyed walls (base indices).
func (m *Model) Position(idx, elapsed, rotation int, broken maze.Bitset) maze.Coord {
	if elapsed < 0 {
		elapsed = 0
	}
	window, phase := 0, elapsed
	if m.period > 0 {
		window, phase = elapsed/m.period, elapsed%m.period
	}
	c := m.corridor(idx, window, broken)
	return m.geo.Reframe(c.at(phase), c.rotation, rotation)
}

// Positions returns every ghost's tile, in spawn order.
func (m *Model) Positions(elapsed, rotation int, broken maze.Bitset) []maze.Coord {
	out := make([]maze.Coord, m.Count())
	for i := range out {
		out[i] = m.Position(i, elapsed, rotation, broken)
	}
	return out
}

// Occupied reports whether any ghost stands on p (orientation rotation)
// after elapsed steps.
func (m *Model) Occupied(p maze.Coord, elapsed, rotation int, broken maze.Bitset) bool {
	for i := 0; i < m.Count(); i++ {
		if m.Position(i, elapsed, rotation, broken) == p {
			return true
		}
	}
	return false
}

// CacheSize returns the number of cached corridors.
func (m *Model) CacheSize() int {
	return len(m.cache)
}

// corridor returns the corridor of a window, building any missing
// predecessors first since each seed depends on the previous window.
func (m *Model) corridor(idx, window int, broken maze.Bitset) corridor {
	key := windowKey{ghost: idx, window: window, broken: broken}
	if c, ok := m.cache[key]; ok {
		return c
	}

	// Walk back to the nearest cached window (or window 0).
	first := window
	var prev corridor
	havePrev := false
	for first > 0 {
		if c, ok := m.cache[windowKey{ghost: idx, window: first - 1, broken: broken}]; ok {
			prev, havePrev = c, true
			break
		}
		first--
	}

	var c corridor
	for w := first; w <= window; w++ {
		rot := w % maze.Rotations
		var seed maze.Coord
		if w == 0 || !havePrev {
			seed = m.geo.Rotate(m.geo.Ghosts[idx], rot)
		} else {
			seed = m.geo.Reframe(prev.at(m.period-1), prev.rotation, rot)
		}
		c = m.scan(seed, rot, broken)
		m.cache[windowKey{ghost: idx, window: w, broken: broken}] = c
		prev, havePrev = c, true
	}
	return c
}

// scan walks left and right from the seed along its row until a wall or
// the grid edge.
func (m *Model) scan(seed maze.Coord, rot int, broken maze.Bitset) corridor {
	f := m.geo.Frame(rot)
	left, right := seed.X, seed.X
	for left > 0 && !m.geo.IsWall(maze.Coord{X: left - 1, Y: seed.Y}, rot, broken) {
		left--
	}
	for right < f.Width-1 && !m.geo.IsWall(maze.Coord{X: right + 1, Y: seed.Y}, rot, broken) {
		right++
	}
	return corridor{rotation: rot, row: seed.Y, left: left, right: right}
}

// triangle is the bounce offset after phase steps in a span of m tiles
// beyond the left end: 0, 1, ..., m, m-1, ..., 1, 0, 1, ...
func triangle(phase, m int) int {
	if m <= 0 {
		return 0
	}
	t := phase % (2 * m)
	if t <= m {
		return t
	}
	return 2*m - t
}
