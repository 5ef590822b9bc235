package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rotamaze/internal/layout"
	"github.com/vovakirdan/rotamaze/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List layouts and solving strategies",
	Long: `Shows the built-in layouts, layouts found in the layouts directory
and the registered solving strategies. Layouts with a solved run in the
history show their best cost.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(_ *cobra.Command, _ []string) error {
	levels, err := layout.All(appConfig.Layouts.Dir)
	if err != nil {
		return err
	}

	store := openStore()
	defer closeStore(store)

	best := make(map[string]int)
	if store != nil {
		if stats, statsErr := store.GetAllLayoutStats(); statsErr == nil {
			for id, st := range stats {
				if st.Solved > 0 {
					best[id] = st.BestCost
				}
			}
		}
	}

	fmt.Println("Layouts:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, l := range levels {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Printf("  %-*s  %-6s  %-5s  %s\n", maxIDLen, "ID", "Source", "Best", "Name")
	fmt.Printf("  %-*s  %-6s  %-5s  %s\n", maxIDLen, "--", "------", "----", "----")
	for _, l := range levels {
		source := "file"
		if l.Builtin() {
			source = "embed"
		}
		cost := "-"
		if c, ok := best[l.ID]; ok {
			cost = fmt.Sprintf("%d", c)
		}
		fmt.Printf("  %-*s  %-6s  %-5s  %s\n", maxIDLen, l.ID, source, cost, l.Name)
	}

	fmt.Println()
	fmt.Println("Strategies:")
	fmt.Println()
	for _, s := range registry.List() {
		optimal := ""
		if s.Optimal {
			optimal = " (optimal)"
		}
		fmt.Printf("  %-14s %s%s\n", s.ID, s.Title, optimal)
	}

	fmt.Println()
	fmt.Println("Run 'rotamaze solve <id>' or 'rotamaze play <id>'.")
	return nil
}
