// Package heuristic computes admissible lower bounds on the remaining cost
// of a rotating-maze state.
//
// The bound is pac_to_food + mst(food) + exit_tail, each term a true
// breadth-first distance over the effective walls plus teleport edges. All
// intermediate results are memoized for the lifetime of one Engine, which
// should therefore be scoped to a single search.
package heuristic

import (
	"fmt"

	"github.com/vovakirdan/rotamaze/internal/maze"
	"github.com/vovakirdan/rotamaze/internal/problem"
)

// PieBound selects the estimate used when walls may still be broken, that
// is while a pie is active or pies remain on the board.
type PieBound int

const (
	// PieBoundRelaxed evaluates the same terms on the wall-free grid.
	PieBoundRelaxed PieBound = iota
	// PieBoundZero returns 0.
	PieBoundZero
)

func (b PieBound) String() string {
	switch b {
	case PieBoundRelaxed:
		return "relaxed"
	case PieBoundZero:
		return "zero"
	default:
		return "unknown"
	}
}

// ParsePieBound converts a configuration value to a PieBound.
func ParsePieBound(s string) (PieBound, error) {
	switch s {
	case "", "relaxed":
		return PieBoundRelaxed, nil
	case "zero":
		return PieBoundZero, nil
	}
	return 0, fmt.Errorf("heuristic: unknown pie bound %q", s)
}

// Options tunes the engine.
type Options struct {
	// Lookahead also evaluates the bound in the next orientation, offset by
	// the steps left until the turn, and keeps the smaller value.
	Lookahead bool
	PieBound  PieBound
}

// DefaultOptions returns the options used by the astar strategy.
func DefaultOptions() Options {
	return Options{Lookahead: true, PieBound: PieBoundRelaxed}
}

// Engine evaluates the heuristic for one problem.
type Engine struct {
	geo   *maze.Geometry
	rules problem.Rules
	opts  Options

	dists map[distKey][]int
	goals map[goalKey]goalCost
	memo  map[problem.State]int
}

type goalKey struct {
	rot     int
	food    maze.Bitset
	broken  maze.Bitset
	relaxed bool
}

// goalCost holds the position-independent terms for a food set.
type goalCost struct {
	mst  int
	tail int
}

// New creates an engine with empty caches.
func New(p *problem.Problem, opts Options) *Engine {
	return &Engine{
		geo:   p.Geometry(),
		rules: p.Rules(),
		opts:  opts,
		dists: make(map[distKey][]int),
		goals: make(map[goalKey]goalCost),
		memo:  make(map[problem.State]int),
	}
}

// Estimate returns a lower bound on the number of steps from s to a goal.
func (e *Engine) Estimate(s problem.State) int {
	if h, ok := e.memo[s]; ok {
		return h
	}
	h := e.estimate(s)
	e.memo[s] = h
	return h
}

func (e *Engine) estimate(s problem.State) int {
	relaxed := s.PieTimer > 0 || !s.Pies.Empty()
	if relaxed && e.opts.PieBound == PieBoundZero {
		return 0
	}

	rot := s.Rotation(e.rules)
	same := e.Same(rot, s.Pos, s.Food, s.Broken, relaxed)
	if !e.opts.Lookahead || !e.rules.Rotates() {
		return same
	}

	next := (rot + 1) % maze.Rotations
	k := e.rules.RotationPeriod - s.Phase(e.rules)
	ahead := k + e.Same(next,
		e.geo.Reframe(s.Pos, rot, next),
		e.geo.Remap(s.Food, rot, next),
		s.Broken, relaxed)
	return min(same, ahead)
}

// Same is the three-term bound evaluated entirely in orientation rot.
func (e *Engine) Same(rot int, pos maze.Coord, food, broken maze.Bitset, relaxed bool) int {
	f := e.geo.Frame(rot)
	if food.Empty() {
		if !f.HasExit {
			return 0
		}
		return orZero(e.between(rot, pos, f.Exit, broken, relaxed))
	}

	fromPos := e.distances(rot, pos, broken, relaxed)
	nearest := unreachable
	food.Each(func(i int) {
		if d := fromPos[i]; d != unreachable && (nearest == unreachable || d < nearest) {
			nearest = d
		}
	})

	g := e.goalCost(rot, food, broken, relaxed)
	return orZero(nearest) + g.mst + g.tail
}

func (e *Engine) goalCost(rot int, food, broken maze.Bitset, relaxed bool) goalCost {
	if relaxed {
		broken = maze.Bitset{}
	}
	key := goalKey{rot: rot, food: food, broken: broken, relaxed: relaxed}
	if g, ok := e.goals[key]; ok {
		return g
	}

	f := e.geo.Frame(rot)
	points := e.geo.Coords(food, rot)
	g := goalCost{mst: e.mst(rot, points, broken, relaxed)}
	if f.HasExit {
		fromExit := e.distances(rot, f.Exit, broken, relaxed)
		best := unreachable
		for _, p := range points {
			if d := fromExit[f.Index(p)]; d != unreachable && (best == unreachable || d < best) {
				best = d
			}
		}
		g.tail = orZero(best)
	}
	e.goals[key] = g
	return g
}

// mst is Prim's algorithm over the complete graph of points with true
// distances as weights. Unreachable pairs weigh 0.
func (e *Engine) mst(rot int, points []maze.Coord, broken maze.Bitset, relaxed bool) int {
	n := len(points)
	if n <= 1 {
		return 0
	}
	f := e.geo.Frame(rot)

	const inf = int(^uint(0) >> 1)
	inTree := make([]bool, n)
	best := make([]int, n)
	for i := range best {
		best[i] = inf
	}
	best[0] = 0

	total := 0
	for range n {
		u := -1
		for i := 0; i < n; i++ {
			if !inTree[i] && (u == -1 || best[i] < best[u]) {
				u = i
			}
		}
		inTree[u] = true
		total += best[u]

		from := e.distances(rot, points[u], broken, relaxed)
		for v := 0; v < n; v++ {
			if inTree[v] {
				continue
			}
			if w := orZero(from[f.Index(points[v])]); w < best[v] {
				best[v] = w
			}
		}
	}
	return total
}

// Stats reports cache sizes.
type Stats struct {
	DistanceMaps int
	GoalSets     int
	States       int
}

// Stats returns the current cache sizes.
func (e *Engine) Stats() Stats {
	return Stats{DistanceMaps: len(e.dists), GoalSets: len(e.goals), States: len(e.memo)}
}

func orZero(d int) int {
	if d == unreachable {
		return 0
	}
	return d
}
