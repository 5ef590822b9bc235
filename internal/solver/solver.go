// Package solver wires the transition engine, the heuristic engine and the
// generic search into the strategies offered to users, and exposes the
// one-call Solve entry point.
package solver

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/rotamaze/internal/heuristic"
	"github.com/vovakirdan/rotamaze/internal/problem"
	"github.com/vovakirdan/rotamaze/internal/registry"
	"github.com/vovakirdan/rotamaze/internal/search"
)

// DefaultStrategy is used when none is configured.
const DefaultStrategy = "astar"

func init() {
	registry.Register("astar", func() registry.Strategy {
		return &aStar{id: "astar", title: "A* with rotation look-ahead", opts: heuristic.DefaultOptions()}
	})
	registry.Register("astar-static", func() registry.Strategy {
		return &aStar{id: "astar-static", title: "A* without look-ahead", static: true, opts: heuristic.Options{PieBound: heuristic.PieBoundRelaxed}}
	})
	registry.Register("ucs", func() registry.Strategy {
		return &uniformCost{}
	})
}

// space adapts a problem to the generic search.
type space struct {
	p *problem.Problem
}

func (s space) Initial() problem.State       { return s.p.Initial() }
func (s space) IsGoal(st problem.State) bool { return s.p.IsGoal(st) }
func (s space) Successors(st problem.State, g int) []search.Edge[problem.State] {
	succs := s.p.Successors(st, g)
	out := make([]search.Edge[problem.State], len(succs))
	for i, succ := range succs {
		out[i] = search.Edge[problem.State]{Action: succ.Action, State: succ.State}
	}
	return out
}

type aStar struct {
	id     string
	title  string
	static bool // never looks past the next turn
	opts   heuristic.Options
}

func (a *aStar) ID() string    { return a.id }
func (a *aStar) Title() string { return a.title }
func (a *aStar) Optimal() bool { return true }

// WithHeuristic returns a copy of the strategy using different heuristic
// options.
func (a *aStar) WithHeuristic(opts heuristic.Options) registry.Strategy {
	c := *a
	c.opts = opts
	if c.static {
		c.opts.Lookahead = false
	}
	return &c
}

func (a *aStar) Solve(p *problem.Problem, opts search.Options) search.Result {
	h := heuristic.New(p, a.opts)
	res := search.AStar[problem.State](space{p}, h.Estimate, opts)
	if opts.Logger != nil {
		st := h.Stats()
		opts.Logger.Debug("heuristic caches", "distance_maps", st.DistanceMaps, "goal_sets", st.GoalSets, "states", st.States)
	}
	return res
}

type uniformCost struct{}

func (uniformCost) ID() string    { return "ucs" }
func (uniformCost) Title() string { return "Uniform-cost search" }
func (uniformCost) Optimal() bool { return true }

func (uniformCost) Solve(p *problem.Problem, opts search.Options) search.Result {
	return search.AStar[problem.State](space{p}, nil, opts)
}

// Options configures Run.
type Options struct {
	Strategy      string
	Heuristic     *heuristic.Options // nil keeps the strategy's own
	ProgressEvery int
	MaxExpansions int
	Logger        *log.Logger
}

// DefaultOptions returns the options Solve uses.
func DefaultOptions() Options {
	return Options{Strategy: DefaultStrategy, ProgressEvery: 10000}
}

// Run solves p with the configured strategy and logs the outcome.
func Run(p *problem.Problem, opts Options) (search.Result, error) {
	id := opts.Strategy
	if id == "" {
		id = DefaultStrategy
	}
	strat, err := registry.Create(id)
	if err != nil {
		return search.Result{}, fmt.Errorf("solver: %w", err)
	}
	if opts.Heuristic != nil {
		if hs, ok := strat.(interface {
			WithHeuristic(heuristic.Options) registry.Strategy
		}); ok {
			strat = hs.WithHeuristic(*opts.Heuristic)
		}
	}

	logger := opts.Logger
	if logger != nil {
		logger = logger.With("strategy", strat.ID())
		logger.Info("search started", "ghosts", p.Ghosts().Count(), "food", p.Initial().Food.Len())
	}

	res := strat.Solve(p, search.Options{
		ProgressEvery: opts.ProgressEvery,
		MaxExpansions: opts.MaxExpansions,
		Logger:        logger,
	})

	if logger != nil {
		if res.Found {
			logger.Info("solution found", "cost", res.Cost, "expanded", res.Expanded, "elapsed", res.Elapsed)
		} else {
			logger.Warn("no solution", "expanded", res.Expanded, "elapsed", res.Elapsed, "truncated", res.Truncated)
		}
	}
	return res, nil
}

// Solve returns an optimal action sequence and its cost, or (nil, 0) when
// no goal is reachable.
func Solve(p *problem.Problem) ([]string, int) {
	res, err := Run(p, DefaultOptions())
	if err != nil || !res.Found {
		return nil, 0
	}
	return res.Actions, res.Cost
}
