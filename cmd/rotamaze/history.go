package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/rotamaze/internal/platform/tui"
	"github.com/vovakirdan/rotamaze/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryTUI   bool
	flagHistoryClear bool
	flagHistoryRun   string
)

var historyCmd = &cobra.Command{
	Use:   "history [layout]",
	Short: "Show recorded runs",
	Long: `Display recent solver runs, for all layouts or one layout.

Examples:
  rotamaze history
  rotamaze history classic --limit 5
  rotamaze history --run 5f0c...      # one run with its actions
  rotamaze history --tui              # browse in a table
  rotamaze history classic --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of runs to show")
	historyCmd.Flags().BoolVar(&flagHistoryTUI, "tui", false, "Browse runs in an interactive table")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the recorded runs")
	historyCmd.Flags().StringVar(&flagHistoryRun, "run", "", "Show a single run by ID")
}

func runHistory(_ *cobra.Command, args []string) error {
	store, err := storage.Open(appConfig.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer closeStore(store)

	layoutID := ""
	if len(args) == 1 {
		layoutID = args[0]
	}

	switch {
	case flagHistoryClear:
		if err := store.ClearRuns(layoutID); err != nil {
			return err
		}
		if layoutID == "" {
			fmt.Println("Cleared all runs.")
		} else {
			fmt.Printf("Cleared runs for %s.\n", layoutID)
		}
		return nil

	case flagHistoryRun != "":
		return showRun(store, flagHistoryRun)

	case flagHistoryTUI:
		width, height := 80, 24
		if w, h, sizeErr := term.GetSize(int(os.Stdout.Fd())); sizeErr == nil {
			width, height = w, h
		}
		return tui.RunHistory(store, width, height)
	}

	var runs []storage.Run
	if layoutID == "" {
		runs, err = store.RecentRuns(flagHistoryLimit)
	} else {
		runs, err = store.RunsForLayout(layoutID, flagHistoryLimit)
	}
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'rotamaze solve <layout>' to record the first one.")
		return nil
	}

	fmt.Printf("  %-8s  %-14s  %-12s  %-12s  %-5s  %-8s  %10s\n",
		"Run", "When", "Layout", "Strategy", "Src", "Result", "Expanded")
	fmt.Printf("  %-8s  %-14s  %-12s  %-12s  %-5s  %-8s  %10s\n",
		"---", "----", "------", "--------", "---", "------", "--------")
	for _, r := range runs {
		fmt.Printf("  %-8s  %-14s  %-12s  %-12s  %-5s  %-8s  %10s\n",
			r.RunID[:min(8, len(r.RunID))],
			humanize.Time(r.CreatedAt),
			r.LayoutID,
			r.Strategy,
			r.Source,
			result(r),
			humanize.Comma(int64(r.Expanded)),
		)
	}

	if layoutID != "" {
		if best, bestErr := store.BestRun(layoutID); bestErr == nil && best != nil {
			fmt.Println()
			fmt.Printf("Best: %d moves with %s\n", best.Cost, best.Strategy)
		}
	}
	return nil
}

func showRun(store *storage.Store, id string) error {
	run, err := store.RunByID(id)
	if err != nil {
		return err
	}
	if run == nil {
		return errors.New("no run with that ID")
	}

	fmt.Printf("Run:      %s\n", run.RunID)
	fmt.Printf("Layout:   %s\n", run.LayoutID)
	fmt.Printf("Strategy: %s (%s)\n", run.Strategy, run.Source)
	fmt.Printf("When:     %s (%s)\n", run.CreatedAt.Local().Format("2006-01-02 15:04"), humanize.Time(run.CreatedAt))
	fmt.Printf("Result:   %s, %s nodes in %s\n", result(*run), humanize.Comma(int64(run.Expanded)), run.Duration)
	if len(run.Actions) > 0 {
		fmt.Println()
		fmt.Println(wrapActions(run.Actions, 72))
	}
	return nil
}

func result(r storage.Run) string {
	switch {
	case r.Found:
		return fmt.Sprintf("%d moves", r.Cost)
	case r.Truncated:
		return "cut off"
	default:
		return "no path"
	}
}
