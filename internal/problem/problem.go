package problem

import (
	"github.com/vovakirdan/rotamaze/internal/ghost"
	"github.com/vovakirdan/rotamaze/internal/maze"
)

// Problem binds a maze to the rules and the ghost timeline.
type Problem struct {
	geo    *maze.Geometry
	rules  Rules
	ghosts *ghost.Model
}

// New creates a problem over geo.
func New(geo *maze.Geometry, rules Rules) *Problem {
	return &Problem{
		geo:    geo,
		rules:  rules,
		ghosts: ghost.New(geo, rules.RotationPeriod),
	}
}

// Geometry returns the parsed maze.
func (p *Problem) Geometry() *maze.Geometry { return p.geo }

// Rules returns the active rules.
func (p *Problem) Rules() Rules { return p.rules }

// Ghosts returns the ghost timeline shared by every caller of this problem.
func (p *Problem) Ghosts() *ghost.Model { return p.ghosts }

// Initial returns the start configuration.
func (p *Problem) Initial() State {
	empty := maze.NewBitset(p.geo.Area())
	return State{
		Pos:    p.geo.Start,
		Food:   p.geo.Food,
		Pies:   p.geo.Pies,
		Step:   0,
		Broken: empty,
	}
}

// IsGoal reports whether all food is eaten and the agent stands on the
// exit, if the maze has one.
func (p *Problem) IsGoal(s State) bool {
	if !s.Food.Empty() {
		return false
	}
	f := p.geo.Frame(s.Rotation(p.rules))
	return !f.HasExit || s.Pos == f.Exit
}

// Successors lists the legal moves from s after elapsed steps, in the
// order North, South, West, East, then teleports in row-major order.
// Moves that end on a ghost or pass through one are omitted.
func (p *Problem) Successors(s State, elapsed int) []Successor {
	rot := s.Rotation(p.rules)
	f := p.geo.Frame(rot)
	out := make([]Successor, 0, 4)

	for _, d := range maze.Directions {
		target := s.Pos.Add(d.Delta())
		if !f.InBounds(target) {
			continue
		}
		broken := s.Broken
		if p.geo.IsWall(target, rot, s.Broken) {
			if s.PieTimer <= 0 {
				continue
			}
			broken = broken.With(p.geo.BaseIndex(target, rot))
		}
		if next, ok := p.advance(s, target, broken, rot, elapsed); ok {
			out = append(out, Successor{Action: d.String(), State: next})
		}
	}

	if f.IsTeleport(s.Pos) {
		for _, target := range f.Teleports {
			if target == s.Pos {
				continue
			}
			if next, ok := p.advance(s, target, s.Broken, rot, elapsed); ok {
				out = append(out, Successor{Action: TeleportLabel(target), State: next})
			}
		}
	}
	return out
}

// Apply performs a single named action. It reports false when the action
// is not among the legal successors of s.
func (p *Problem) Apply(s State, elapsed int, action string) (State, bool) {
	for _, succ := range p.Successors(s, elapsed) {
		if succ.Action == action {
			return succ.State, true
		}
	}
	return State{}, false
}

// advance moves the agent from s onto target (orientation rot) and applies
// the bookkeeping shared by walking and teleporting.
func (p *Problem) advance(s State, target maze.Coord, broken maze.Bitset, rot, elapsed int) (State, bool) {
	// A ghost on the target now means a swap through it; one there next
	// step means walking into it.
	if p.ghosts.Occupied(target, elapsed, rot, s.Broken) ||
		p.ghosts.Occupied(target, elapsed+1, rot, s.Broken) {
		return State{}, false
	}

	f := p.geo.Frame(rot)
	idx := f.Index(target)

	timer := s.PieTimer - 1
	if timer < 0 {
		timer = 0
	}
	pies := s.Pies
	if pies.Has(idx) {
		timer = p.rules.PieDuration
		pies = pies.Without(idx)
	}

	next := State{
		Pos:      target,
		Food:     s.Food.Without(idx),
		Pies:     pies,
		PieTimer: timer,
		Step:     (s.Step + 1) % p.rules.Cycle(),
		Broken:   broken,
	}

	nextRot := next.Rotation(p.rules)
	if nextRot != rot {
		next.Pos = p.geo.Reframe(next.Pos, rot, nextRot)
		next.Food = p.geo.Remap(next.Food, rot, nextRot)
		next.Pies = p.geo.Remap(next.Pies, rot, nextRot)
	}

	// A broken wall can reshape a corridor, and a turn changes every
	// corridor, so re-check against the child's own view.
	if p.ghosts.Occupied(next.Pos, elapsed+1, nextRot, next.Broken) {
		return State{}, false
	}
	return next, true
}
