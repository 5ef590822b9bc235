package solver

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/rotamaze/internal/maze"
	"github.com/vovakirdan/rotamaze/internal/problem"
	"github.com/vovakirdan/rotamaze/internal/registry"
)

func build(t *testing.T, rules problem.Rules, corners bool, rows ...string) *problem.Problem {
	t.Helper()
	g, err := maze.Parse(rows, maze.Options{CornerTeleports: corners})
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return problem.New(g, rules)
}

// replay applies actions through the transition engine and returns the
// final state.
func replay(t *testing.T, p *problem.Problem, actions []string) problem.State {
	t.Helper()
	s := p.Initial()
	for i, a := range actions {
		next, ok := p.Apply(s, i, a)
		if !ok {
			t.Fatalf("action %d %q rejected at %v", i, a, s)
		}
		s = next
	}
	return s
}

func TestSolveStraightCorridor(t *testing.T) {
	p := build(t, problem.DefaultRules(), false,
		"%%%%%",
		"%P.E%",
		"%%%%%",
	)
	actions, cost := Solve(p)
	if cost != 2 || strings.Join(actions, ",") != "East,East" {
		t.Errorf("Solve() = %v, %d; want [East East], 2", actions, cost)
	}
}

func TestSolveWalledIn(t *testing.T) {
	p := build(t, problem.DefaultRules(), false,
		"%%%%%",
		"%P%.%",
		"%%%%%",
	)
	actions, cost := Solve(p)
	if actions != nil || cost != 0 {
		t.Errorf("Solve() = %v, %d; want nil, 0", actions, cost)
	}
}

func TestSolveUsesTeleport(t *testing.T) {
	p := build(t, problem.DefaultRules(), true,
		"%%%%%%%",
		"%P%%%.%",
		"%%%%%%%",
	)
	actions, cost := Solve(p)
	if cost != 1 || len(actions) != 1 || actions[0] != "Teleport to (5, 1)" {
		t.Errorf("Solve() = %v, %d; want [Teleport to (5, 1)], 1", actions, cost)
	}
}

func TestSolvePieThroughWall(t *testing.T) {
	p := build(t, problem.DefaultRules(), false,
		"%%%%%%",
		"%PO%.%",
		"%%%%%%",
	)
	actions, cost := Solve(p)
	if cost != 3 || strings.Join(actions, ",") != "East,East,East" {
		t.Fatalf("Solve() = %v, %d; want [East East East], 3", actions, cost)
	}

	afterBreak := replay(t, p, actions[:2])
	if !afterBreak.Broken.Has(1*p.Geometry().Width + 3) {
		t.Errorf("broken walls %v missing base tile (3, 1)", afterBreak.Broken.Members())
	}
	if !p.IsGoal(replay(t, p, actions)) {
		t.Error("replayed path does not end in a goal")
	}
}

var scenarios = []struct {
	name  string
	rules problem.Rules
	rows  []string
}{
	{"ghost corridor", problem.Rules{RotationPeriod: 0, PieDuration: 5}, []string{
		"%%%%%%%",
		"%P..G.%",
		"%.%%%.%",
		"%..E..%",
		"%%%%%%%",
	}},
	{"rotating with pie", problem.Rules{RotationPeriod: 3, PieDuration: 2}, []string{
		"%%%%%%%",
		"%P %. %",
		"%O%%G %",
		"%.  %E%",
		"%%%%%%%",
	}},
	{"two ghosts", problem.Rules{RotationPeriod: 5, PieDuration: 5}, []string{
		"%%%%%%%%",
		"%G   . %",
		"% %% % %",
		"%P  .G %",
		"%%%%%%%%",
	}},
}

func TestStrategiesAgreeOnCost(t *testing.T) {
	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			p := build(t, sc.rules, true, sc.rows...)
			var costs []int
			for _, info := range registry.List() {
				res, err := Run(p, Options{Strategy: info.ID})
				if err != nil {
					t.Fatalf("Run(%s) error: %v", info.ID, err)
				}
				if !res.Found {
					t.Fatalf("%s found no solution", info.ID)
				}
				if !p.IsGoal(replay(t, p, res.Actions)) {
					t.Errorf("%s path does not reach a goal", info.ID)
				}
				costs = append(costs, res.Cost)
			}
			for i := 1; i < len(costs); i++ {
				if costs[i] != costs[0] {
					t.Errorf("strategies disagree on cost: %v", costs)
				}
			}
		})
	}
}

func TestReplayNeverMeetsGhost(t *testing.T) {
	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			p := build(t, sc.rules, true, sc.rows...)
			actions, _ := Solve(p)
			s := p.Initial()
			for i, a := range actions {
				next, ok := p.Apply(s, i, a)
				if !ok {
					t.Fatalf("step %d rejected", i)
				}
				rot := next.Rotation(p.Rules())
				if p.Ghosts().Occupied(next.Pos, i+1, rot, next.Broken) {
					t.Fatalf("step %d lands on a ghost at %v", i, next.Pos)
				}
				s = next
			}
		})
	}
}

func TestSolveDeterministic(t *testing.T) {
	sc := scenarios[2]
	first, cost := Solve(build(t, sc.rules, true, sc.rows...))
	for i := 0; i < 3; i++ {
		again, c := Solve(build(t, sc.rules, true, sc.rows...))
		if c != cost || strings.Join(again, ",") != strings.Join(first, ",") {
			t.Fatalf("run %d: %v (%d) vs %v (%d)", i, again, c, first, cost)
		}
	}
}

func TestRunUnknownStrategy(t *testing.T) {
	p := build(t, problem.DefaultRules(), false, "P.")
	if _, err := Run(p, Options{Strategy: "dfs"}); err == nil {
		t.Error("expected an error for an unknown strategy")
	}
}

func TestRunLogsOutcome(t *testing.T) {
	var buf bytes.Buffer
	p := build(t, problem.DefaultRules(), false, "P..E")
	res, err := Run(p, Options{Strategy: "astar", Logger: log.New(&buf)})
	if err != nil || !res.Found {
		t.Fatalf("Run() = %+v, %v", res, err)
	}
	if !strings.Contains(buf.String(), "solution found") {
		t.Errorf("log missing outcome: %q", buf.String())
	}
}

func TestRegisteredStrategies(t *testing.T) {
	for _, id := range []string{"astar", "astar-static", "ucs"} {
		if !registry.Exists(id) {
			t.Errorf("strategy %q not registered", id)
		}
	}
}
