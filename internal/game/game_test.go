package game

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/rotamaze/internal/core"
	"github.com/vovakirdan/rotamaze/internal/layout"
	"github.com/vovakirdan/rotamaze/internal/maze"
	"github.com/vovakirdan/rotamaze/internal/problem"
	"github.com/vovakirdan/rotamaze/internal/search"
)

const (
	corridor = "%%%%%\n%P.E%\n%%%%%"
	walledIn = "%%%%%\n%P%.%\n%%%%%"
	jumpPad  = "%%%%%%%\n%PT%T.%\n%%%%%%%"
	pieWall  = "%%%%%%%\n%PO%..%\n%%%%%%%"
)

var fastRuntime = core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 30}

func newGame(t *testing.T, rows string, opts Options) *Game {
	t.Helper()
	geo, err := maze.ParseString(rows, maze.Options{})
	if err != nil {
		t.Fatalf("ParseString() error: %v", err)
	}
	p := problem.New(geo, problem.Rules{RotationPeriod: 0, PieDuration: 5})
	if opts.Runtime.TickRate == 0 {
		opts.Runtime = fastRuntime
	}
	return New(layout.Level{ID: "test", Name: "Corridor"}, p, opts)
}

func press(g *Game, actions ...core.Action) core.GameState {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

// waitFor steps the game with empty input until cond holds.
func waitFor(t *testing.T, g *Game, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out in mode %s (message %q)", g.Mode(), g.State().Message)
		}
		press(g)
		time.Sleep(time.Millisecond)
	}
}

func TestManualWin(t *testing.T) {
	g := newGame(t, corridor, Options{})

	press(g, core.ActionManual)
	if g.Mode() != ModeManual {
		t.Fatalf("mode = %s, want manual", g.Mode())
	}

	st := press(g, core.ActionRight)
	if st.Steps != 1 || st.FoodLeft != 0 {
		t.Errorf("after one move: %+v", st)
	}

	st = press(g, core.ActionRight)
	if g.Mode() != ModeMenu || !st.Won {
		t.Fatalf("expected a win back at the menu, got %+v", st)
	}
	if st.Message != "You win in 2 steps!" {
		t.Errorf("message = %q", st.Message)
	}
	if st.Steps != 0 || st.FoodLeft != 1 {
		t.Errorf("board not reset after win: %+v", st)
	}
}

func TestManualBlockedAndBack(t *testing.T) {
	g := newGame(t, corridor, Options{})
	press(g, core.ActionConfirm)

	st := press(g, core.ActionUp)
	if st.Steps != 0 || st.Message != "Blocked by a wall" {
		t.Errorf("move into wall: %+v", st)
	}

	st = press(g, core.ActionTeleport)
	if st.Message != "Not on a teleport" {
		t.Errorf("teleport off pad: %q", st.Message)
	}

	press(g, core.ActionBack)
	if g.Mode() != ModeMenu {
		t.Errorf("mode = %s, want menu", g.Mode())
	}
}

func TestManualTeleport(t *testing.T) {
	g := newGame(t, jumpPad, Options{})
	press(g, core.ActionManual)

	press(g, core.ActionRight)
	st := press(g, core.ActionTeleport)
	if st.Steps != 2 || g.state.Pos != (maze.Coord{X: 4, Y: 1}) {
		t.Fatalf("teleport landed at %v after %d steps", g.state.Pos, st.Steps)
	}

	st = press(g, core.ActionRight)
	if !st.Won || st.Message != "You win in 3 steps!" {
		t.Errorf("expected win, got %+v", st)
	}
}

func TestManualPieBreaksWall(t *testing.T) {
	g := newGame(t, pieWall, Options{})
	press(g, core.ActionManual)

	press(g, core.ActionRight) // pie
	press(g, core.ActionRight) // through the wall
	st := press(g, core.ActionRight)
	if st.Steps != 3 || st.FoodLeft != 1 || st.Won {
		t.Fatalf("after breaking through: %+v", st)
	}

	s := core.NewScreen(40, 10)
	g.Render(s)
	// board is 7 wide, centered at x=16, y=3
	if r := s.Get(16+3, 3+1); r != glyphBroken {
		t.Errorf("broken wall rendered as %q", r)
	}
	if r := s.Get(16+4, 3+1); r != glyphAgent {
		t.Errorf("agent rendered as %q", r)
	}
}

func TestAutoSolveAndReplay(t *testing.T) {
	var outcomes []Outcome
	g := newGame(t, corridor, Options{
		OnSolved: func(o Outcome) { outcomes = append(outcomes, o) },
	})

	st := press(g, core.ActionSolve)
	if !st.Searching {
		t.Fatal("search not started")
	}

	waitFor(t, g, func() bool { return g.Mode() != ModeSearching })
	if g.Mode() != ModeAnimating {
		t.Fatalf("mode = %s (message %q), want animating", g.Mode(), g.State().Message)
	}
	if len(outcomes) != 1 {
		t.Fatalf("OnSolved called %d times, want 1", len(outcomes))
	}
	out := outcomes[0]
	if out.LayoutID != "test" || out.Strategy != "astar" || !out.Result.Found || out.Result.Cost != 2 {
		t.Errorf("outcome = %+v", out)
	}

	waitFor(t, g, func() bool { return g.Mode() == ModeMenu })
	st = g.State()
	if !st.Won || st.Message != "Solved in 2 moves" {
		t.Errorf("replay end state = %+v", st)
	}
	if g.Err() != nil {
		t.Errorf("unexpected replay error: %v", g.Err())
	}
}

func TestAnimationDelay(t *testing.T) {
	rt := fastRuntime
	rt.TickRate = 10 // 100ms per tick
	rt.AnimationDelay = 250 * time.Millisecond
	g := newGame(t, corridor, Options{Runtime: rt})
	g.mode = ModeAnimating
	g.plan = []string{"East", "East"}

	for i := 0; i < 2; i++ {
		if st := press(g); st.Steps != 0 {
			t.Fatalf("tick %d moved early", i+1)
		}
	}
	if st := press(g); st.Steps != 1 {
		t.Errorf("third tick should move once, steps = %d", st.Steps)
	}
}

func TestNoSolution(t *testing.T) {
	g := newGame(t, walledIn, Options{})
	press(g, core.ActionSolve)
	waitFor(t, g, func() bool { return g.Mode() != ModeSearching })

	st := g.State()
	if g.Mode() != ModeMenu || st.Message != "Could not find a solution" || st.Won {
		t.Errorf("state = %+v", st)
	}
}

func TestReplayDesync(t *testing.T) {
	g := newGame(t, corridor, Options{})
	g.mode = ModeAnimating
	g.plan = []string{"East", "North"}

	press(g)
	if g.Err() != nil {
		t.Fatalf("legal move rejected: %v", g.Err())
	}
	press(g)
	if !errors.Is(g.Err(), ErrDesync) {
		t.Fatalf("Err() = %v, want ErrDesync", g.Err())
	}
	st := g.State()
	if g.Mode() != ModeMenu || st.Steps != 0 || !strings.Contains(st.Message, `"North"`) {
		t.Errorf("desync did not reset: %+v", st)
	}
}

func TestSecondSearchRefused(t *testing.T) {
	solved := 0
	g := newGame(t, corridor, Options{OnSolved: func(Outcome) { solved++ }})

	release := make(chan struct{})
	g.task = search.Start(func() Outcome {
		<-release
		return Outcome{Result: search.Result{Found: true, Actions: []string{"East", "East"}, Cost: 2}}
	})
	g.mode = ModeSearching

	st := press(g, core.ActionSolve)
	if st.Message != "A search is already running" {
		t.Errorf("message = %q", st.Message)
	}

	press(g, core.ActionBack)
	if g.Mode() != ModeMenu || g.State().Message != "Search abandoned" {
		t.Fatalf("back did not abandon: %+v", g.State())
	}

	st = press(g, core.ActionSolve)
	if g.Mode() != ModeMenu || st.Message != "A search is already running" {
		t.Errorf("second search started while the first runs: %+v", st)
	}

	close(release)
	waitFor(t, g, func() bool { return !g.State().Searching })
	if solved != 1 {
		t.Errorf("OnSolved called %d times, want 1", solved)
	}
	if g.Mode() != ModeMenu {
		t.Errorf("abandoned result should be dropped, mode = %s", g.Mode())
	}
}

func TestRestartResets(t *testing.T) {
	g := newGame(t, corridor, Options{})
	press(g, core.ActionManual)
	press(g, core.ActionRight)

	st := press(g, core.ActionRestart)
	if g.Mode() != ModeMenu || st.Steps != 0 || st.FoodLeft != 1 {
		t.Errorf("restart state = %+v", st)
	}
}

func TestRender(t *testing.T) {
	g := newGame(t, corridor, Options{})
	s := core.NewScreen(100, 12)
	g.Render(s)

	if !strings.Contains(s.Row(0), "rotamaze · Corridor") {
		t.Errorf("title row = %q", s.Row(0))
	}
	if !strings.Contains(s.Row(1), "Press M") {
		t.Errorf("status row = %q", s.Row(1))
	}
	// board is 5x3, centered at x=47, y=4
	if row := s.Row(5); !strings.Contains(row, "█C·E█") {
		t.Errorf("board row = %q", row)
	}
	if r := s.Get(46, 3); r != '┌' {
		t.Errorf("board frame corner = %q", r)
	}
	if c := s.GetCell(48, 5); c.Color != core.ColorBrightYellow {
		t.Errorf("agent color = %v", c.Color)
	}
	if c := s.GetCell(50, 5); c.Color != core.ColorBrightGreen {
		t.Errorf("exit color = %v", c.Color)
	}
	if !strings.Contains(s.Row(11), "space solve") {
		t.Errorf("help row = %q", s.Row(11))
	}
}

func TestModeString(t *testing.T) {
	tests := map[Mode]string{
		ModeMenu:      "menu",
		ModeManual:    "manual",
		ModeSearching: "searching",
		ModeAnimating: "animating",
		Mode(42):      "unknown",
	}
	for m, want := range tests {
		if got := m.String(); got != want {
			t.Errorf("Mode(%d).String() = %q, want %q", int(m), got, want)
		}
	}
}
