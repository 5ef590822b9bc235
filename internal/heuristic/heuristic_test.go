package heuristic

import (
	"testing"

	"github.com/vovakirdan/rotamaze/internal/maze"
	"github.com/vovakirdan/rotamaze/internal/problem"
)

func newProblem(t *testing.T, rules problem.Rules, rows ...string) *problem.Problem {
	t.Helper()
	g, err := maze.Parse(rows, maze.Options{CornerTeleports: true})
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return problem.New(g, rules)
}

var static = problem.Rules{RotationPeriod: 0, PieDuration: 5}

func TestEstimateCorridor(t *testing.T) {
	p := newProblem(t, static, "P..E")
	e := New(p, DefaultOptions())

	s := p.Initial()
	if got := e.Estimate(s); got != 3 {
		t.Errorf("Estimate() = %d, want 3", got)
	}
	for elapsed, want := range []int{2, 1, 0} {
		s, _ = p.Apply(s, elapsed, "East")
		if got := e.Estimate(s); got != want {
			t.Errorf("after %d moves Estimate() = %d, want %d", elapsed+1, got, want)
		}
	}
	if !p.IsGoal(s) {
		t.Fatal("expected goal")
	}
}

func TestEstimateNoExit(t *testing.T) {
	p := newProblem(t, static, ".P..")
	e := New(p, DefaultOptions())
	// Nearest food is 1 away; the tree over x=0,2,3 weighs 3.
	if got := e.Estimate(p.Initial()); got != 4 {
		t.Errorf("Estimate() = %d, want 4", got)
	}
}

func TestUnreachableContributesZero(t *testing.T) {
	p := newProblem(t, static, "P%.")
	e := New(p, DefaultOptions())
	if got := e.Estimate(p.Initial()); got != 0 {
		t.Errorf("Estimate() = %d, want 0 for unreachable food", got)
	}
}

func TestPieBounds(t *testing.T) {
	rows := []string{
		"%%%%%%%",
		"%PO%..%",
		"%%%%%%%",
	}
	p := newProblem(t, static, rows...)
	s, ok := p.Apply(p.Initial(), 0, "East")
	if !ok || s.PieTimer == 0 {
		t.Fatalf("pie not picked up: %v", s)
	}

	zero := New(p, Options{PieBound: PieBoundZero})
	if got := zero.Estimate(s); got != 0 {
		t.Errorf("zero bound while powered = %d, want 0", got)
	}

	relaxed := New(p, Options{PieBound: PieBoundRelaxed})
	// Wall-free distance to (4,1) is 2, then 1 to (5,1).
	if got := relaxed.Estimate(s); got != 3 {
		t.Errorf("relaxed bound while powered = %d, want 3", got)
	}

	// With a pie left the bound uses the wall-free grid; the corner
	// teleport under the agent reaches (5,1) in one step.
	if got := relaxed.Estimate(p.Initial()); got != 2 {
		t.Errorf("relaxed bound with pies left = %d, want 2", got)
	}
}

func TestLookaheadNeverAboveSame(t *testing.T) {
	rules := problem.Rules{RotationPeriod: 4, PieDuration: 5}
	p := newProblem(t, rules,
		"%%%%%%%",
		"%P..%.%",
		"%.%...%",
		"%...%E%",
		"%%%%%%%",
	)
	with := New(p, Options{Lookahead: true})
	without := New(p, Options{Lookahead: false})

	states := reachable(p, 2000)
	for s := range states {
		if with.Estimate(s) > without.Estimate(s) {
			t.Fatalf("lookahead raised the bound for %v: %d > %d", s, with.Estimate(s), without.Estimate(s))
		}
	}
}

func TestMemoization(t *testing.T) {
	p := newProblem(t, static, "P..E")
	e := New(p, DefaultOptions())
	e.Estimate(p.Initial())
	before := e.Stats()
	e.Estimate(p.Initial())
	if after := e.Stats(); after != before {
		t.Errorf("second call grew caches: %+v -> %+v", before, after)
	}
	if before.States != 1 || before.DistanceMaps == 0 || before.GoalSets != 1 {
		t.Errorf("unexpected cache stats %+v", before)
	}
}

// TestAdmissibleBruteForce compares the bound with exact remaining costs
// obtained by a backward breadth-first search over the full state graph.
func TestAdmissibleBruteForce(t *testing.T) {
	layouts := []struct {
		name string
		rows []string
	}{
		{"open room", []string{
			"%%%%%%",
			"%P..%%",
			"%.%.E%",
			"%....%",
			"%%%%%%",
		}},
		{"pie and wall", []string{
			"%%%%%%",
			"%PO%.%",
			"%.%%.%",
			"%%%%%%",
		}},
		{"teleports", []string{
			"%%%%%%%%",
			"%T.%%..%",
			"%P.%%.T%",
			"%%%%%%%%",
		}},
		{"corners and exit", []string{
			"%%%%%%",
			"%..%%%",
			"%P%%E%",
			"%.O..%",
			"%%%%%%",
		}},
	}

	for _, tt := range layouts {
		t.Run(tt.name, func(t *testing.T) {
			p := newProblem(t, static, tt.rows...)
			cost := exactCosts(p, 50000)
			if _, ok := cost[p.Initial()]; !ok {
				t.Fatal("layout should be solvable")
			}
			for _, opts := range []Options{DefaultOptions(), {PieBound: PieBoundZero}} {
				e := New(p, opts)
				for s, c := range cost {
					if h := e.Estimate(s); h > c {
						t.Fatalf("%s: h=%d exceeds true cost %d at %v", opts.PieBound, h, c, s)
					}
				}
			}
		})
	}
}

func reachable(p *problem.Problem, limit int) map[problem.State]int {
	seen := map[problem.State]int{p.Initial(): 0}
	queue := []problem.State{p.Initial()}
	for len(queue) > 0 && len(seen) < limit {
		s := queue[0]
		queue = queue[1:]
		for _, succ := range p.Successors(s, seen[s]) {
			if _, ok := seen[succ.State]; !ok {
				seen[succ.State] = seen[s] + 1
				queue = append(queue, succ.State)
			}
		}
	}
	return seen
}

// exactCosts returns the true cost-to-goal of every state that can reach
// a goal. Without ghosts and rotation successors do not depend on time.
func exactCosts(p *problem.Problem, limit int) map[problem.State]int {
	states := reachable(p, limit)
	reverse := make(map[problem.State][]problem.State)
	var goals []problem.State
	for s := range states {
		if p.IsGoal(s) {
			goals = append(goals, s)
		}
		for _, succ := range p.Successors(s, 0) {
			reverse[succ.State] = append(reverse[succ.State], s)
		}
	}

	cost := make(map[problem.State]int, len(states))
	queue := make([]problem.State, 0, len(goals))
	for _, g := range goals {
		cost[g] = 0
		queue = append(queue, g)
	}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, prev := range reverse[s] {
			if _, ok := cost[prev]; !ok {
				cost[prev] = cost[s] + 1
				queue = append(queue, prev)
			}
		}
	}
	return cost
}
