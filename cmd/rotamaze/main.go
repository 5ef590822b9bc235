// rotamaze solves and plays rotating-maze Pac-Man layouts in the terminal.
//
// Usage:
//
//	rotamaze list               - List layouts and solving strategies
//	rotamaze solve <layout>     - Find an optimal plan for a layout
//	rotamaze play [layout]      - Play a layout, or pick one interactively
//	rotamaze history [layout]   - Show recorded runs
//	rotamaze serve              - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.rotamaze/config.yaml)
//	--db <path>         - Run history database (default: ~/.rotamaze/runs.db)
//	--layouts <dir>     - Directory of user layouts (default: ./layouts)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/rotamaze/internal/config"

	// Register solving strategies
	_ "github.com/vovakirdan/rotamaze/internal/solver"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLayouts  string
	flagLogLevel string

	// Set by the root command before any subcommand runs.
	appConfig config.Config
	logger    *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rotamaze",
	Short: "Rotamaze - solve and play rotating Pac-Man mazes",
	Long: `Rotamaze is a search engine for Pac-Man mazes that turn a quarter
turn every few steps. Ghosts patrol their corridors, teleports jump across
the board and a power pie lets Pac-Man break through walls.

Available commands:
  list     - Show layouts and strategies
  solve    - Run the solver on a layout
  play     - Play manually or watch the solver's plan
  history  - View recorded runs
  serve    - Start SSH server for remote play

Examples:
  rotamaze list
  rotamaze solve classic
  rotamaze solve ./layouts/mine.txt --strategy ucs
  rotamaze play spin
  rotamaze serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLayouts, "layouts", "", "Directory of user layouts")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads configuration and builds the logger. Flags beat environment
// variables, which beat config files.
func setup(_ *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	path := flagConfig
	if path == "" {
		path = config.ConfigPathFromEnv()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg.ApplyEnv()

	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLayouts != "" {
		cfg.Layouts.Dir = flagLayouts
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}

	appConfig = cfg
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "rotamaze",
		Level:           level,
	})
	return nil
}
