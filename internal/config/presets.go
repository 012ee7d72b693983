package config

import "sort"

var Presets = map[string]*Config{
	// The worked textbook scenario: steady state 0.5, turnover 0.02.
	"textbook": {
		FlowRate: 2, Volume: 100, InputRate: 1,
		Tmax: 400, Samples: 200, Dt: 0.1,
	},
	// Fast turnover: the lake flushes quickly and saturates early.
	"flush": {
		FlowRate: 50, Volume: 100, InputRate: 1,
		Tmax: 10, Samples: 200, Dt: 0.01,
	},
	// Slow turnover: a large lake with a trickle of throughflow.
	"stagnant": {
		FlowRate: 0.5, Volume: 10000, InputRate: 2,
		Tmax: 100000, Samples: 400, Dt: 50,
	},
	// No solute input: the concentration stays at zero.
	"pristine": {
		FlowRate: 2, Volume: 100, InputRate: 0,
		Tmax: 400, Samples: 200, Dt: 0.1,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
