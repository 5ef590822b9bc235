// Package game is the interactive executor. It lets a player walk the maze
// by hand, or runs the solver in the background and replays the plan one
// action at a time through the transition engine.
package game

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/rotamaze/internal/core"
	"github.com/vovakirdan/rotamaze/internal/layout"
	"github.com/vovakirdan/rotamaze/internal/maze"
	"github.com/vovakirdan/rotamaze/internal/problem"
	"github.com/vovakirdan/rotamaze/internal/search"
	"github.com/vovakirdan/rotamaze/internal/solver"
)

// ErrDesync is reported when a planned action is not a legal successor of
// the replayed state.
var ErrDesync = errors.New("game: replay desynchronized")

// Mode is the executor state.
type Mode int

const (
	ModeMenu Mode = iota
	ModeManual
	ModeSearching
	ModeAnimating
)

func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModeManual:
		return "manual"
	case ModeSearching:
		return "searching"
	case ModeAnimating:
		return "animating"
	default:
		return "unknown"
	}
}

// Outcome is a finished background search.
type Outcome struct {
	LayoutID string
	Strategy string
	Result   search.Result
	Err      error
}

// Options configures a Game.
type Options struct {
	Runtime core.RuntimeConfig
	Solver  solver.Options
	// OnSolved is called on the frame loop once per finished search,
	// including searches abandoned by going back to the menu.
	OnSolved func(Outcome)
}

// Game runs one layout.
type Game struct {
	level layout.Level
	p     *problem.Problem
	opts  Options

	mode    Mode
	state   problem.State
	steps   int
	won     bool
	message string
	err     error

	task      *search.Task[Outcome]
	plan      []string
	cursor    int
	cost      int
	sinceMove time.Duration
	teleports int // manual teleport picks so far
}

// New creates a game in menu mode.
func New(level layout.Level, p *problem.Problem, opts Options) *Game {
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime = core.DefaultConfig()
	}
	g := &Game{level: level, p: p, opts: opts}
	g.Reset()
	return g
}

// Reset puts the board back to the start and returns to the menu. A search
// in flight keeps running; its result is dropped when it arrives.
func (g *Game) Reset() {
	g.mode = ModeMenu
	g.state = g.p.Initial()
	g.steps = 0
	g.won = false
	g.message = ""
	g.plan = nil
	g.cursor = 0
	g.cost = 0
	g.sinceMove = 0
	g.teleports = 0
}

// Mode returns the current mode.
func (g *Game) Mode() Mode { return g.mode }

// Level returns the layout being played.
func (g *Game) Level() layout.Level { return g.level }

// Err returns the last replay error, if any.
func (g *Game) Err() error { return g.err }

// Step advances the executor by one frame.
func (g *Game) Step(in core.InputFrame) core.GameState {
	g.pollSearch()

	if in.Has(core.ActionRestart) {
		g.Reset()
		return g.State()
	}

	switch g.mode {
	case ModeMenu:
		g.stepMenu(in)
	case ModeManual:
		g.stepManual(in)
	case ModeSearching:
		switch {
		case in.Has(core.ActionBack):
			g.toMenu("Search abandoned")
		case in.Has(core.ActionSolve):
			g.message = "A search is already running"
		}
	case ModeAnimating:
		g.stepAnimating(in)
	}
	return g.State()
}

// State reports the executor status.
func (g *Game) State() core.GameState {
	return core.GameState{
		Mode:      g.mode.String(),
		Steps:     g.steps,
		FoodLeft:  g.state.Food.Len(),
		PieTimer:  g.state.PieTimer,
		Won:       g.won,
		Searching: g.task != nil,
		Message:   g.message,
	}
}

func (g *Game) stepMenu(in core.InputFrame) {
	switch {
	case in.Has(core.ActionManual), in.Has(core.ActionConfirm):
		g.mode = ModeManual
		g.message = ""
	case in.Has(core.ActionSolve):
		g.startSearch()
	}
}

func (g *Game) startSearch() {
	if g.task != nil {
		g.message = "A search is already running"
		return
	}

	// The search gets its own problem: the ghost window cache is not safe
	// for concurrent use and Render reads it on the frame loop.
	p := problem.New(g.p.Geometry(), g.p.Rules())
	opts := g.opts.Solver
	strategy := opts.Strategy
	if strategy == "" {
		strategy = solver.DefaultStrategy
	}
	layoutID := g.level.ID

	g.task = search.Start(func() Outcome {
		res, err := solver.Run(p, opts)
		return Outcome{LayoutID: layoutID, Strategy: strategy, Result: res, Err: err}
	})
	g.mode = ModeSearching
	g.message = "Finding optimal path..."
}

func (g *Game) pollSearch() {
	if g.task == nil {
		return
	}
	out, ok := g.task.Poll()
	if !ok {
		return
	}
	g.task = nil
	if g.opts.OnSolved != nil {
		g.opts.OnSolved(out)
	}
	if g.mode != ModeSearching {
		return
	}

	switch {
	case out.Err != nil:
		g.toMenu("Search failed: " + out.Err.Error())
	case !out.Result.Found:
		g.toMenu("Could not find a solution")
	default:
		g.mode = ModeAnimating
		g.plan = out.Result.Actions
		g.cost = out.Result.Cost
		g.cursor = 0
		g.sinceMove = 0
		g.message = fmt.Sprintf("Solution: %d moves, %d nodes expanded", out.Result.Cost, out.Result.Expanded)
	}
}

func (g *Game) stepManual(in core.InputFrame) {
	if in.Has(core.ActionBack) {
		g.toMenu("")
		return
	}

	if in.Has(core.ActionTeleport) {
		g.teleport()
		return
	}

	var dir maze.Direction
	switch {
	case in.Has(core.ActionUp):
		dir = maze.North
	case in.Has(core.ActionDown):
		dir = maze.South
	case in.Has(core.ActionLeft):
		dir = maze.West
	case in.Has(core.ActionRight):
		dir = maze.East
	default:
		return
	}

	next, ok := g.p.Apply(g.state, g.steps, dir.String())
	if !ok {
		g.message = g.blocked(dir)
		return
	}
	g.advance(next)
}

func (g *Game) teleport() {
	rot := g.state.Rotation(g.p.Rules())
	if !g.p.Geometry().Frame(rot).IsTeleport(g.state.Pos) {
		g.message = "Not on a teleport"
		return
	}

	var jumps []problem.Successor
	for _, succ := range g.p.Successors(g.state, g.steps) {
		if strings.HasPrefix(succ.Action, "Teleport") {
			jumps = append(jumps, succ)
		}
	}
	if len(jumps) == 0 {
		g.message = "Every teleport is guarded"
		return
	}
	pick := jumps[g.teleports%len(jumps)]
	g.teleports++
	g.advance(pick.State)
}

// blocked explains why a manual move was refused.
func (g *Game) blocked(dir maze.Direction) string {
	rot := g.state.Rotation(g.p.Rules())
	target := g.state.Pos.Add(dir.Delta())
	if g.p.Geometry().IsWall(target, rot, g.state.Broken) && g.state.PieTimer <= 0 {
		return "Blocked by a wall"
	}
	return "A ghost blocks the way"
}

// advance commits a manual move and checks for the end of the game.
func (g *Game) advance(next problem.State) {
	g.state = next
	g.steps++
	g.message = ""

	if g.p.IsGoal(g.state) {
		g.finish(true, fmt.Sprintf("You win in %d steps!", g.steps))
		return
	}
	if len(g.p.Successors(g.state, g.steps)) == 0 {
		g.message = "Trapped! Press R to restart"
	}
}

func (g *Game) stepAnimating(in core.InputFrame) {
	if in.Has(core.ActionBack) {
		g.toMenu("Replay stopped")
		return
	}

	g.sinceMove += g.opts.Runtime.TickInterval()
	if g.sinceMove < g.opts.Runtime.AnimationDelay {
		return
	}
	g.sinceMove = 0

	if g.cursor >= len(g.plan) {
		if g.p.IsGoal(g.state) {
			g.finish(true, fmt.Sprintf("Solved in %d moves", g.steps))
		} else {
			g.finish(false, "Replay ended short of the goal")
		}
		return
	}

	action := g.plan[g.cursor]
	next, ok := g.p.Apply(g.state, g.steps, action)
	if !ok {
		g.err = fmt.Errorf("%w: %q rejected at step %d", ErrDesync, action, g.steps)
		g.toMenu(g.err.Error())
		return
	}
	g.state = next
	g.steps++
	g.cursor++
}

func (g *Game) finish(won bool, msg string) {
	g.toMenu(msg)
	g.won = won
}

func (g *Game) toMenu(msg string) {
	g.Reset()
	g.message = msg
}
