package config

import "sort"

// Presets are ready-made comparison setups for common growth-curve work.
var presets = map[string]*Config{
	"growth-pair": {
		Models: []ModelConfig{
			{Name: "logistic", Model: "logistic"},
			{Name: "gompertz", Model: "gompertz"},
		},
		Solver:        DefaultSolver,
		MaxIter:       DefaultMaxIter,
		BudgetSeconds: DefaultBudgetSeconds,
		Seed:          DefaultSeed,
		DensePoints:   DefaultDensePoints,
	},
	"growth-all": {
		Models: []ModelConfig{
			{Name: "exponential", Model: "exponential"},
			{Name: "logistic", Model: "logistic"},
			{Name: "gompertz", Model: "gompertz"},
			{Name: "richards", Model: "richards"},
			{Name: "vonbertalanffy", Model: "vonbertalanffy"},
		},
		Solver:        DefaultSolver,
		MaxIter:       DefaultMaxIter,
		BudgetSeconds: DefaultBudgetSeconds,
		Seed:          DefaultSeed,
		DensePoints:   DefaultDensePoints,
	},
}

// GetPreset returns a copy of a named preset, or nil if absent.
func GetPreset(name string) *Config {
	p, ok := presets[name]
	if !ok {
		return nil
	}
	cp := *p
	cp.Models = append([]ModelConfig(nil), p.Models...)
	return &cp
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
