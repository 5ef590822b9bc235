package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/rotamaze/internal/core"
	"github.com/vovakirdan/rotamaze/internal/game"
	"github.com/vovakirdan/rotamaze/internal/layout"
	"github.com/vovakirdan/rotamaze/internal/maze"
	"github.com/vovakirdan/rotamaze/internal/problem"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		want   core.Action
		isQuit bool
	}{
		{"arrow up", keyType(tea.KeyUp), core.ActionUp, false},
		{"wasd down", keyRunes("s"), core.ActionDown, false},
		{"vim left", keyRunes("h"), core.ActionLeft, false},
		{"arrow right", keyType(tea.KeyRight), core.ActionRight, false},
		{"teleport", keyRunes("t"), core.ActionTeleport, false},
		{"manual", keyRunes("m"), core.ActionManual, false},
		{"solve", keyType(tea.KeySpace), core.ActionSolve, false},
		{"confirm", keyType(tea.KeyEnter), core.ActionConfirm, false},
		{"back", keyType(tea.KeyEsc), core.ActionBack, false},
		{"restart", keyRunes("r"), core.ActionRestart, false},
		{"quit", keyRunes("q"), core.ActionQuit, true},
		{"ctrl+c", keyType(tea.KeyCtrlC), core.ActionQuit, true},
		{"unbound", keyRunes("z"), core.ActionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, isQuit := km.MapKey(tt.msg)
			if got != tt.want || isQuit != tt.isQuit {
				t.Errorf("MapKey(%q) = (%v, %v), want (%v, %v)", tt.msg.String(), got, isQuit, tt.want, tt.isQuit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := map[string]struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		"up":      {keyType(tea.KeyUp), MenuActionUp},
		"down":    {keyRunes("j"), MenuActionDown},
		"enter":   {keyType(tea.KeyEnter), MenuActionSelect},
		"esc":     {keyType(tea.KeyEsc), MenuActionBack},
		"tab":     {keyType(tea.KeyTab), MenuActionHistory},
		"quit":    {keyRunes("q"), MenuActionQuit},
		"nothing": {keyRunes("x"), MenuActionNone},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
				t.Errorf("MapKeyToMenuAction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderScreenPlain(t *testing.T) {
	s := core.NewScreen(3, 2)
	s.DrawText(0, 0, "ab")
	s.DrawText(0, 1, "xyz")
	if got := RenderScreen(s); got != "ab \nxyz" {
		t.Errorf("RenderScreen() = %q", got)
	}
}

func testLauncher(lvl layout.Level, rt core.RuntimeConfig) (*game.Game, error) {
	p, err := lvl.Build(problem.Rules{PieDuration: 5}, maze.DefaultOptions())
	if err != nil {
		return nil, err
	}
	return game.New(lvl, p, game.Options{Runtime: rt}), nil
}

func send(m tea.Model, msgs ...tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		m, cmd = m.Update(msg)
	}
	return m, cmd
}

func TestMenuNavigation(t *testing.T) {
	levels := layout.Builtins()
	m := NewMenuModel(levels, nil, core.DefaultConfig())

	next, _ := send(m, keyType(tea.KeyUp), keyType(tea.KeyDown), keyType(tea.KeyEnter))
	m = next.(MenuModel)
	sel := m.Selected()
	if sel == nil || sel.ID != levels[1].ID {
		t.Fatalf("Selected() = %v, want %s", sel, levels[1].ID)
	}
	if !strings.Contains(m.View(), levels[0].Name) {
		t.Error("view does not list layouts")
	}
}

func TestSessionFlow(t *testing.T) {
	cfg := core.DefaultConfig()
	m := NewSessionModel(layout.Builtins(), nil, cfg, testLauncher)

	next, _ := send(m, keyType(tea.KeyEnter))
	m = next.(SessionModel)
	if m.screen != screenPlay {
		t.Fatalf("screen = %d after enter, want play", m.screen)
	}

	next, _ = send(m, keyType(tea.KeyEsc))
	m = next.(SessionModel)
	if m.screen != screenPicker {
		t.Fatalf("screen = %d after esc, want picker", m.screen)
	}

	next, _ = send(m, keyType(tea.KeyTab))
	m = next.(SessionModel)
	if m.screen != screenHistory {
		t.Fatalf("screen = %d after tab, want history", m.screen)
	}
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Error("history view should be empty without a store")
	}

	next, _ = send(m, keyType(tea.KeyEsc))
	m = next.(SessionModel)
	if m.screen != screenPicker {
		t.Fatalf("screen = %d after leaving history, want picker", m.screen)
	}

	if _, cmd := send(m, keyRunes("q")); cmd == nil {
		t.Error("quit should return a command")
	}
}

func TestSessionLaunchFailure(t *testing.T) {
	fail := func(layout.Level, core.RuntimeConfig) (*game.Game, error) {
		return nil, errors.New("layout broken")
	}
	m := NewSessionModel(layout.Builtins(), nil, core.DefaultConfig(), fail)

	next, _ := send(m, keyType(tea.KeyEnter))
	m = next.(SessionModel)
	if m.screen != screenPicker {
		t.Fatalf("screen = %d, want picker", m.screen)
	}
	if !strings.Contains(m.View(), "layout broken") {
		t.Error("launch error not shown")
	}
}
