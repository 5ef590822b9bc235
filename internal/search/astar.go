// Package search implements best-first search over any state space whose
// states are comparable values.
package search

import (
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/zyedidia/generic/heap"
	"github.com/zyedidia/generic/mapset"
)

// Edge is one labelled transition.
type Edge[S comparable] struct {
	Action string
	State  S
}

// Space is a state space explored with unit step costs. Successors receives
// the path cost of s, which time-dependent spaces use as elapsed time.
type Space[S comparable] interface {
	Initial() S
	IsGoal(s S) bool
	Successors(s S, g int) []Edge[S]
}

// Heuristic estimates the remaining cost from a state.
type Heuristic[S comparable] func(s S) int

// Zero is the heuristic of uniform-cost search.
func Zero[S comparable](S) int { return 0 }

// Options tunes a search run.
type Options struct {
	// ProgressEvery logs a progress line every that many expansions; 0
	// disables progress logging.
	ProgressEvery int
	// MaxExpansions stops the search unsuccessfully after that many
	// expansions; 0 means no limit.
	MaxExpansions int
	// Logger receives progress lines. Nil means silent.
	Logger *log.Logger
}

// Result is the outcome of a search.
type Result struct {
	Found    bool
	Actions  []string
	Cost     int
	Expanded int
	Elapsed  time.Duration
	// Truncated is set when MaxExpansions ended the search.
	Truncated bool
}

type node[S comparable] struct {
	state  S
	g      int
	action string
	parent *node[S]
}

type entry[S comparable] struct {
	f    int
	tie  uint64
	node *node[S]
}

// AStar runs A* from the space's initial state. Among equal priorities,
// earlier insertions pop first, so results are reproducible.
func AStar[S comparable](space Space[S], h Heuristic[S], opts Options) Result {
	start := time.Now()
	if h == nil {
		h = Zero[S]
	}

	frontier := heap.New[entry[S]](func(a, b entry[S]) bool {
		if a.f != b.f {
			return a.f < b.f
		}
		return a.tie < b.tie
	})
	explored := mapset.New[S]()

	var counter uint64
	push := func(n *node[S]) {
		frontier.Push(entry[S]{f: n.g + h(n.state), tie: counter, node: n})
		counter++
	}
	push(&node[S]{state: space.Initial()})

	res := Result{}
	for frontier.Size() > 0 {
		e, _ := frontier.Pop()
		n := e.node
		if explored.Has(n.state) {
			continue
		}

		if space.IsGoal(n.state) {
			res.Found = true
			res.Actions = path(n)
			res.Cost = n.g
			break
		}

		explored.Put(n.state)
		res.Expanded++
		if opts.Logger != nil && opts.ProgressEvery > 0 && res.Expanded%opts.ProgressEvery == 0 {
			opts.Logger.Info("searching", "expanded", res.Expanded, "frontier", frontier.Size(), "g", n.g, "f", e.f)
		}
		if opts.MaxExpansions > 0 && res.Expanded >= opts.MaxExpansions {
			res.Truncated = true
			break
		}

		for _, edge := range space.Successors(n.state, n.g) {
			if explored.Has(edge.State) {
				continue
			}
			push(&node[S]{state: edge.State, g: n.g + 1, action: edge.Action, parent: n})
		}
	}

	res.Elapsed = time.Since(start)
	return res
}

// path walks parent pointers back to the root.
func path[S comparable](n *node[S]) []string {
	actions := make([]string, 0, n.g)
	for ; n.parent != nil; n = n.parent {
		actions = append(actions, n.action)
	}
	slices.Reverse(actions)
	return actions
}
