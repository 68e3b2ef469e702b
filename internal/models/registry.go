package models

import (
	"fmt"
	"sort"

	"github.com/san-kum/odefit/internal/dynamo"
)

// Growth is a fittable model: a dynamo.System plus a default starting
// point for the parameter search.
type Growth interface {
	dynamo.System
	DefaultGuess() []float64
	DefaultBounds() [][2]float64
}

type Registry struct {
	models map[string]func() Growth
}

func NewRegistry() *Registry {
	r := &Registry{models: make(map[string]func() Growth)}

	r.models["exponential"] = func() Growth { return NewExponential() }
	r.models["logistic"] = func() Growth { return NewLogistic() }
	r.models["gompertz"] = func() Growth { return NewGompertz() }
	r.models["richards"] = func() Growth { return NewRichards() }
	r.models["vonbertalanffy"] = func() Growth { return NewVonBertalanffy() }

	return r
}

func (r *Registry) Get(name string) (Growth, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return fn(), nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
