package main

import (
	"time"

	"github.com/vovakirdan/rotamaze/internal/core"
	"github.com/vovakirdan/rotamaze/internal/game"
	"github.com/vovakirdan/rotamaze/internal/layout"
	"github.com/vovakirdan/rotamaze/internal/platform/tui"
	"github.com/vovakirdan/rotamaze/internal/solver"
	"github.com/vovakirdan/rotamaze/internal/storage"
)

// openStore opens the run history. Callers treat a nil store as "history
// off" and keep going.
func openStore() *storage.Store {
	store, err := storage.Open(appConfig.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open run history", "path", appConfig.Storage.DBPath, "error", err)
		return nil
	}
	return store
}

func closeStore(store *storage.Store) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Warn("closing run history", "error", err)
	}
}

// solverOptions builds the solver settings from config. strategy overrides
// the configured one when set.
func solverOptions(strategy string) solver.Options {
	h := appConfig.HeuristicOptions()
	opts := solver.Options{
		Strategy:      appConfig.Search.Strategy,
		Heuristic:     &h,
		ProgressEvery: appConfig.Search.ProgressEvery,
		MaxExpansions: appConfig.Search.MaxExpansions,
	}
	if strategy != "" {
		opts.Strategy = strategy
	}
	return opts
}

// runtimeConfig returns play timing from config at the given screen size.
func runtimeConfig(width, height int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:        width,
		ScreenH:        height,
		TickRate:       appConfig.Play.TickRate,
		AnimationDelay: time.Duration(appConfig.Play.AnimationDelayMS) * time.Millisecond,
	}
}

// newLauncher builds executors that record finished searches in store.
func newLauncher(store *storage.Store, strategy string) tui.Launcher {
	return func(lvl layout.Level, rt core.RuntimeConfig) (*game.Game, error) {
		p, err := lvl.Build(appConfig.ProblemRules(), appConfig.MazeOptions())
		if err != nil {
			return nil, err
		}
		return game.New(lvl, p, game.Options{
			Runtime:  rt,
			Solver:   solverOptions(strategy),
			OnSolved: recordOutcome(store),
		}), nil
	}
}

// recordOutcome saves each finished in-game search as a play run.
func recordOutcome(store *storage.Store) func(game.Outcome) {
	return func(o game.Outcome) {
		if o.Err != nil {
			logger.Warn("search failed", "layout", o.LayoutID, "error", o.Err)
			return
		}
		if store == nil {
			return
		}
		_, err := store.SaveRun(storage.Run{
			LayoutID:  o.LayoutID,
			Strategy:  o.Strategy,
			Source:    storage.SourcePlay,
			Found:     o.Result.Found,
			Cost:      o.Result.Cost,
			Expanded:  o.Result.Expanded,
			Truncated: o.Result.Truncated,
			Duration:  o.Result.Elapsed,
			Actions:   o.Result.Actions,
		})
		if err != nil {
			logger.Warn("could not record run", "layout", o.LayoutID, "error", err)
		}
	}
}
