package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rotamaze/internal/layout"
	"github.com/vovakirdan/rotamaze/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the rotamaze SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with a layout picker. Runs are
stored per-server, so every user shares the same history.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.rotamaze/host_key

Examples:
  rotamaze serve                           # Listen on :23234 with auto-generated key
  rotamaze serve --ssh :2222               # Listen on port 2222
  rotamaze serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagStrategy, "strategy", "", "Solving strategy for auto play")
}

func runServe(_ *cobra.Command, _ []string) error {
	levels, err := layout.All(appConfig.Layouts.Dir)
	if err != nil {
		return err
	}

	store := openStore()
	defer closeStore(store)

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Runtime:     runtimeConfig(80, 24),
	}

	server, err := tui.NewSSHServer(cfg, store, levels, newLauncher(store, flagStrategy), logger)
	if err != nil {
		return err
	}

	fmt.Printf("Starting rotamaze SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
