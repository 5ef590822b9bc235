package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/rotamaze/internal/core"
	"github.com/vovakirdan/rotamaze/internal/game"
	"github.com/vovakirdan/rotamaze/internal/layout"
	"github.com/vovakirdan/rotamaze/internal/storage"
)

// Launcher builds a ready-to-play executor for a picked layout.
type Launcher func(lvl layout.Level, rt core.RuntimeConfig) (*game.Game, error)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.rotamaze/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Runtime is the base play config; the screen size comes from each PTY.
	Runtime core.RuntimeConfig
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		Runtime:     core.DefaultConfig(),
	}
}

// SSHServer serves the picker and play screens over SSH.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	levels []layout.Level
	launch Launcher
	logger *log.Logger
}

// NewSSHServer creates a new SSH server. The store may be nil, in which
// case no history is shown or recorded.
func NewSSHServer(cfg SSHServerConfig, store *storage.Store, levels []layout.Level, launch Launcher, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "rotamaze"})
	}
	if cfg.Runtime.TickRate <= 0 {
		cfg.Runtime = core.DefaultConfig()
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		levels: levels,
		launch: launch,
		logger: logger.With("component", "ssh"),
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".rotamaze", "host_key")
	}

	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	rt := s.config.Runtime
	rt.ScreenW = pty.Window.Width
	rt.ScreenH = pty.Window.Height

	model := NewSessionModel(s.levels, s.store, rt, s.launch)
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until an interrupt.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "layouts", len(s.levels))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-done:
		s.logger.Info("shutting down...")
		return s.Shutdown()
	case err := <-errc:
		return fmt.Errorf("ssh server: %w", err)
	}
}

// Shutdown gracefully stops the server. The store belongs to the caller.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

type sessionScreen int

const (
	screenPicker sessionScreen = iota
	screenPlay
	screenHistory
)

// SessionModel manages the full session flow: picker -> play -> picker,
// with the run history one key away from the picker.
type SessionModel struct {
	levels  []layout.Level
	store   *storage.Store
	config  core.RuntimeConfig
	launch  Launcher
	screen  sessionScreen
	menu    MenuModel
	play    Model
	history HistoryModel
	notice  string // shown above the picker after a failed launch
}

// NewSessionModel creates a new session model.
func NewSessionModel(levels []layout.Level, store *storage.Store, cfg core.RuntimeConfig, launch Launcher) SessionModel {
	return SessionModel{
		levels: levels,
		store:  store,
		config: cfg,
		launch: launch,
		menu:   NewMenuModel(levels, store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenPlay:
		return m.updatePlay(msg)
	case screenHistory:
		return m.updateHistory(msg)
	default:
		return m.updatePicker(msg)
	}
}

func (m SessionModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	if m.menu.IsQuitting() {
		return m, tea.Quit
	}

	if m.menu.WantsHistory() {
		m.history = NewHistoryModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenHistory
		return m, m.history.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		g, err := m.launch(*selected, m.config)
		if err != nil {
			m.notice = err.Error()
			m.menu = NewMenuModel(m.levels, m.store, m.config)
			return m, nil
		}
		m.notice = ""
		m.play = NewModel(g, m.config)
		m.screen = screenPlay
		return m, m.play.Init()
	}

	return m, cmd
}

func (m SessionModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.play.Update(msg)
	m.play = next.(Model)

	if m.play.IsQuitting() {
		return m, tea.Quit
	}

	// Pending ticks for the old model arrive at the picker and are ignored.
	if m.play.BackToMenu() {
		m.screen = screenPicker
		m.menu = NewMenuModel(m.levels, m.store, m.config)
		return m, m.menu.Init()
	}

	return m, cmd
}

func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.history.Update(msg)
	m.history = next.(HistoryModel)

	if m.history.IsQuitting() {
		return m, tea.Quit
	}

	if m.history.IsGoingBack() {
		m.screen = screenPicker
		m.menu = NewMenuModel(m.levels, m.store, m.config)
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current screen.
func (m SessionModel) View() string {
	switch m.screen {
	case screenPlay:
		return m.play.View()
	case screenHistory:
		return m.history.View()
	}
	if m.notice != "" {
		return "\n" + centerText(m.notice, m.config.ScreenW) + "\n" + m.menu.View()
	}
	return m.menu.View()
}

// RunSession runs the picker flow in the local terminal.
func RunSession(levels []layout.Level, store *storage.Store, cfg core.RuntimeConfig, launch Launcher) error {
	p := tea.NewProgram(
		NewSessionModel(levels, store, cfg, launch),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
