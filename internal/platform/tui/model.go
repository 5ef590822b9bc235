package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/rotamaze/internal/core"
	"github.com/vovakirdan/rotamaze/internal/game"
)

// Model is the Bubble Tea model that drives one executor.
type Model struct {
	game       *game.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	quitting   bool
	backToMenu bool // Esc pressed while the executor sat at its own menu
}

// NewModel creates a new Bubble Tea model for the given executor.
func NewModel(g *game.Game, cfg core.RuntimeConfig) Model {
	return Model{
		game:       g,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickInterval())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) && m.game.Mode() == game.ModeMenu {
		m.backToMenu = true
		m.inputFrame.Clear()
	}
	return m, nil
}

// handleTick runs one executor frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.game.Step(m.inputFrame)
	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickInterval())
}

// saveScreenshot saves the current screen as plain text.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".rotamaze", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.Level().ID, timestamp)

	//nolint:errcheck // Best-effort save, play continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user asked to leave this layout.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single layout in the terminal until the user quits. Esc at
// the executor's own menu also exits.
func Run(g *game.Game, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		exitOnBack{NewModel(g, cfg)},
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

// exitOnBack ends a standalone program when the model asks to go back.
type exitOnBack struct {
	Model
}

func (e exitOnBack) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := e.Model.Update(msg)
	m := next.(Model)
	if m.BackToMenu() {
		return exitOnBack{m}, tea.Quit
	}
	return exitOnBack{m}, cmd
}
