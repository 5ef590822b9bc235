package config

import (
	_ "embed"
)

//go:embed defaults/rotamaze.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration, used when even the embedded
// YAML cannot be parsed.
func Default() Config {
	return Config{
		Rules: RulesConfig{
			RotationPeriod:  30,
			PieDuration:     5,
			CornerTeleports: true,
		},
		Heuristic: HeuristicConfig{
			Lookahead: true,
			PieBound:  "relaxed",
		},
		Search: SearchConfig{
			Strategy:      "astar",
			ProgressEvery: 10000,
		},
		Play: PlayConfig{
			TickRate:         30,
			AnimationDelayMS: 100,
		},
		Storage: StorageConfig{
			DBPath: "~/.rotamaze/runs.db",
		},
		Layouts: LayoutsConfig{
			Dir: "layouts",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
