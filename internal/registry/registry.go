// Package registry provides a global registry of solving strategies.
// Strategies register themselves in init() functions, allowing the CLI and
// the TUI to discover them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/rotamaze/internal/problem"
	"github.com/vovakirdan/rotamaze/internal/search"
)

// Strategy finds an action sequence for a problem.
type Strategy interface {
	// ID returns a unique identifier (e.g., "astar", "ucs").
	// Used for CLI flags, configuration and run history.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Optimal reports whether the strategy guarantees minimum cost.
	Optimal() bool

	// Solve runs the search. Strategies own their heuristic caches, so a
	// fresh call never sees state from a previous run.
	Solve(p *problem.Problem, opts search.Options) search.Result
}

// StrategyInfo contains metadata about a registered strategy.
type StrategyInfo struct {
	ID      string
	Title   string
	Optimal bool
}

// Factory creates a new strategy instance.
type Factory func() Strategy

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]StrategyInfo)
	mu        sync.RWMutex
)

// Register adds a strategy factory to the registry.
// Panics if a strategy with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: strategy %q already registered", id))
	}

	factories[id] = f

	s := f()
	infos[id] = StrategyInfo{ID: id, Title: s.Title(), Optimal: s.Optimal()}
}

// List returns information about all registered strategies, sorted by ID.
func List() []StrategyInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]StrategyInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a strategy by its ID.
func Create(id string) (Strategy, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown strategy %q", id)
	}

	return f(), nil
}

// Exists checks if a strategy with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
