package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/rotamaze/internal/layout"
	"github.com/vovakirdan/rotamaze/internal/solver"
	"github.com/vovakirdan/rotamaze/internal/storage"
)

var (
	flagStrategy      string
	flagMaxExpansions int
	flagNoSave        bool
)

var solveCmd = &cobra.Command{
	Use:   "solve <layout>",
	Short: "Find an optimal plan for a layout",
	Long: `Run the solver on a layout given by ID or file path and print the
action sequence. Progress is logged every search.progress_every expansions.

The run is recorded in the history unless --no-save is set.

Examples:
  rotamaze solve classic
  rotamaze solve spin --strategy astar-static
  rotamaze solve ./layouts/mine.txt --max-expansions 500000`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().StringVar(&flagStrategy, "strategy", "", "Solving strategy (see 'rotamaze list')")
	solveCmd.Flags().IntVar(&flagMaxExpansions, "max-expansions", -1, "Give up after this many expansions (0 = unbounded)")
	solveCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the run")
}

func runSolve(_ *cobra.Command, args []string) error {
	lvl, err := layout.Resolve(args[0], appConfig.Layouts.Dir)
	if err != nil {
		return err
	}
	p, err := lvl.Build(appConfig.ProblemRules(), appConfig.MazeOptions())
	if err != nil {
		return err
	}

	opts := solverOptions(flagStrategy)
	if flagMaxExpansions >= 0 {
		opts.MaxExpansions = flagMaxExpansions
	}
	opts.Logger = logger.With("layout", lvl.ID)

	res, err := solver.Run(p, opts)
	if err != nil {
		return err
	}

	fmt.Printf("Layout:   %s (%s)\n", lvl.Name, lvl.ID)
	fmt.Printf("Strategy: %s\n", opts.Strategy)
	fmt.Printf("Expanded: %s nodes in %s\n", humanize.Comma(int64(res.Expanded)), res.Elapsed.Round(time.Millisecond))
	fmt.Println()

	switch {
	case res.Found:
		fmt.Printf("Solution: %d moves\n", res.Cost)
		fmt.Println(wrapActions(res.Actions, 72))
	case res.Truncated:
		fmt.Println("Search stopped at the expansion limit.")
	default:
		fmt.Println("No solution: every exit is unreachable.")
	}

	if flagNoSave {
		return nil
	}
	store := openStore()
	defer closeStore(store)
	if store == nil {
		return nil
	}
	run, err := store.SaveRun(storage.Run{
		LayoutID:  lvl.ID,
		Strategy:  opts.Strategy,
		Source:    storage.SourceSolve,
		Found:     res.Found,
		Cost:      res.Cost,
		Expanded:  res.Expanded,
		Truncated: res.Truncated,
		Duration:  res.Elapsed,
		Actions:   res.Actions,
	})
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	fmt.Println()
	fmt.Printf("Recorded as run %s\n", run.RunID)
	return nil
}

// wrapActions joins actions with spaces, breaking lines at width.
func wrapActions(actions []string, width int) string {
	var b strings.Builder
	line := 0
	for i, a := range actions {
		if i > 0 {
			if line+1+len(a) > width {
				b.WriteString("\n")
				line = 0
			} else {
				b.WriteString(" ")
				line++
			}
		}
		b.WriteString(a)
		line += len(a)
	}
	return b.String()
}
