package search

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

// line is a toy space: walk from 0 to goal on the integers, one step left
// or right, with an optional blocked value.
type line struct {
	goal    int
	blocked int
	limit   int
}

func (l line) Initial() int      { return 0 }
func (l line) IsGoal(s int) bool { return s == l.goal }

func (l line) Successors(s, _ int) []Edge[int] {
	var out []Edge[int]
	for _, e := range []Edge[int]{{"Left", s - 1}, {"Right", s + 1}} {
		if e.State == l.blocked || e.State < -l.limit || e.State > l.limit {
			continue
		}
		out = append(out, e)
	}
	return out
}

func TestAStarFindsShortestPath(t *testing.T) {
	sp := line{goal: 3, blocked: -100, limit: 10}
	h := func(s int) int {
		if d := sp.goal - s; d > 0 {
			return d
		}
		return s - sp.goal
	}

	res := AStar[int](sp, h, Options{})
	if !res.Found {
		t.Fatal("expected a solution")
	}
	if res.Cost != 3 || strings.Join(res.Actions, ",") != "Right,Right,Right" {
		t.Errorf("got cost %d actions %v", res.Cost, res.Actions)
	}
	if res.Expanded != 3 {
		t.Errorf("Expanded = %d, want 3 with a perfect heuristic", res.Expanded)
	}
}

func TestAStarMatchesUniformCost(t *testing.T) {
	sp := line{goal: -4, blocked: 1, limit: 6}
	a := AStar[int](sp, func(s int) int {
		if s > sp.goal {
			return s - sp.goal
		}
		return sp.goal - s
	}, Options{})
	u := AStar[int](sp, nil, Options{})
	if !a.Found || !u.Found || a.Cost != u.Cost {
		t.Fatalf("astar %+v vs ucs %+v", a, u)
	}
	if u.Expanded < a.Expanded {
		t.Errorf("uniform cost expanded fewer nodes (%d) than A* (%d)", u.Expanded, a.Expanded)
	}
}

func TestAStarGoalAtStart(t *testing.T) {
	res := AStar[int](line{goal: 0, limit: 1}, nil, Options{})
	if !res.Found || res.Cost != 0 || len(res.Actions) != 0 {
		t.Errorf("got %+v", res)
	}
}

func TestAStarFailure(t *testing.T) {
	// The goal lies beyond the blocked value.
	res := AStar[int](line{goal: 5, blocked: 2, limit: 8}, nil, Options{})
	if res.Found {
		t.Fatalf("unexpected solution %v", res.Actions)
	}
	if res.Actions != nil || res.Cost != 0 {
		t.Errorf("failure should carry no path: %+v", res)
	}
}

func TestAStarMaxExpansions(t *testing.T) {
	res := AStar[int](line{goal: 8, blocked: -100, limit: 10}, nil, Options{MaxExpansions: 2})
	if res.Found || !res.Truncated {
		t.Errorf("got %+v, want truncated failure", res)
	}
}

func TestAStarDeterministic(t *testing.T) {
	sp := line{goal: 2, blocked: -100, limit: 4}
	first := AStar[int](sp, nil, Options{})
	for i := 0; i < 5; i++ {
		again := AStar[int](sp, nil, Options{})
		if strings.Join(again.Actions, ",") != strings.Join(first.Actions, ",") || again.Expanded != first.Expanded {
			t.Fatalf("run %d differs: %+v vs %+v", i, again, first)
		}
	}
}

func TestAStarProgressLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	AStar[int](line{goal: 6, blocked: -100, limit: 10}, nil, Options{ProgressEvery: 2, Logger: logger})
	if !strings.Contains(buf.String(), "expanded") {
		t.Errorf("expected progress lines, got %q", buf.String())
	}
}

func TestTask(t *testing.T) {
	release := make(chan struct{})
	task := Start(func() int {
		<-release
		return 42
	})

	if _, ok := task.Poll(); ok {
		t.Fatal("Poll() reported a result before completion")
	}
	if !task.Running() {
		t.Error("Running() = false while blocked")
	}

	close(release)
	select {
	case <-task.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("task did not finish")
	}

	v, ok := task.Poll()
	if !ok || v != 42 {
		t.Errorf("Poll() = %d, %v", v, ok)
	}
	if task.Wait() != 42 {
		t.Error("Wait() returned a different value")
	}
}
