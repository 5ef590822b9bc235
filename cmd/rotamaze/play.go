package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/rotamaze/internal/layout"
	"github.com/vovakirdan/rotamaze/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [layout]",
	Short: "Play a layout",
	Long: `Play a layout in the terminal. Without an argument a picker lists
every layout.

Controls:
  M/Enter        - Manual play
  Space          - Let the solver find and replay a plan
  Arrows/WASD    - Move
  T              - Teleport (repeat to cycle targets)
  R              - Reset
  Esc/B          - Back to the menu
  Q/Ctrl+C       - Quit

Every solver search is recorded in the run history.

Examples:
  rotamaze play
  rotamaze play pie-wall
  rotamaze play ./layouts/mine.yaml --strategy ucs`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagStrategy, "strategy", "", "Solving strategy for auto play")
}

func runPlay(_ *cobra.Command, args []string) error {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	rt := runtimeConfig(width, height)

	store := openStore()
	defer closeStore(store)
	launch := newLauncher(store, flagStrategy)

	if len(args) == 0 {
		levels, err := layout.All(appConfig.Layouts.Dir)
		if err != nil {
			return err
		}
		return tui.RunSession(levels, store, rt, launch)
	}

	lvl, err := layout.Resolve(args[0], appConfig.Layouts.Dir)
	if err != nil {
		return err
	}
	g, err := launch(lvl, rt)
	if err != nil {
		return err
	}
	return tui.Run(g, rt)
}
