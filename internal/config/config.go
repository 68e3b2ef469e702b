package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/odefit/internal/fit"
	"github.com/san-kum/odefit/internal/integrators"
	"github.com/san-kum/odefit/internal/models"
	"github.com/san-kum/odefit/internal/optim"
)

const (
	DefaultMaxIter       = 300
	DefaultBudgetSeconds = 30
	DefaultSeed          = 1
	DefaultDensePoints   = 1000
	DefaultSolver        = "rk45"
)

type Config struct {
	Models        []ModelConfig `yaml:"models"`
	Data          string        `yaml:"data"`
	Data2         string        `yaml:"data2,omitempty"`
	Output        string        `yaml:"output,omitempty"`
	Solver        string        `yaml:"solver"`
	MaxIter       int           `yaml:"max_iter"`
	BudgetSeconds int           `yaml:"budget_seconds"`
	Seed          int64         `yaml:"seed"`
	DensePoints   int           `yaml:"dense_points"`
}

type ModelConfig struct {
	Name   string          `yaml:"name"`
	Model  string          `yaml:"model"`
	Guess  []float64       `yaml:"guess,omitempty"`
	Bounds [][2]float64    `yaml:"bounds,omitempty"`
	Fixed  map[int]float64 `yaml:"fixed,omitempty"`
	Solver string          `yaml:"solver,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Solver:        DefaultSolver,
		MaxIter:       DefaultMaxIter,
		BudgetSeconds: DefaultBudgetSeconds,
		Seed:          DefaultSeed,
		DensePoints:   DefaultDensePoints,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ResolveSolver maps a solver name to an instance, defaulting to the
// process-wide choice when the name is empty.
func (c *Config) ResolveSolver(name string) (integrators.Solver, error) {
	if name == "" {
		name = c.Solver
	}
	switch name {
	case "", "rk45":
		return integrators.NewRK45(), nil
	case "rk4":
		return integrators.NewRK4(), nil
	default:
		return nil, fmt.Errorf("unknown solver: %s", name)
	}
}

// Spec builds a fit spec from one model entry, filling the guess and bounds
// from the model's defaults where the entry leaves them out. The entry's
// solver override is resolved here; an entry without one gets the config's
// process-level solver.
func (c *Config) Spec(mc ModelConfig, reg *models.Registry) (fit.Spec, error) {
	m, err := reg.Get(mc.Model)
	if err != nil {
		return fit.Spec{}, err
	}

	guess := mc.Guess
	if guess == nil {
		guess = m.DefaultGuess()
	}

	raw := mc.Bounds
	if raw == nil {
		raw = m.DefaultBounds()
	}
	bounds := make([]optim.Bound, len(raw))
	for i, b := range raw {
		bounds[i] = optim.Bound{Low: b[0], High: b[1]}
	}

	solver, err := c.ResolveSolver(mc.Solver)
	if err != nil {
		return fit.Spec{}, err
	}

	return fit.Spec{
		Model:  m,
		Guess:  guess,
		Bounds: bounds,
		Fixed:  mc.Fixed,
		Solver: solver,
	}, nil
}
