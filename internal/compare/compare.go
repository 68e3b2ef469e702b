package compare

import (
	"context"
	"fmt"
	"sort"

	"github.com/san-kum/odefit/internal/dataset"
	"github.com/san-kum/odefit/internal/fit"
)

// Unit is one labeled fit outcome inside a comparison.
type Unit struct {
	Label  string
	Result *fit.Result
	Err    error
}

func (u Unit) OK() bool { return u.Err == nil && u.Result != nil }

// Comparison maps labels to fit results, in the order they will be
// reported, with the winning entry (minimum BIC) marked.
type Comparison struct {
	Units []Unit
	// Best indexes into Units; -1 when no unit succeeded or no winner is
	// defined for the comparison kind.
	Best int
}

func (c *Comparison) BestUnit() *Unit {
	if c.Best < 0 || c.Best >= len(c.Units) {
		return nil
	}
	return &c.Units[c.Best]
}

// Orchestrator runs fits over models and datasets under a shared engine.
type Orchestrator struct {
	engine *fit.Engine
}

func NewOrchestrator(engine *fit.Engine) *Orchestrator {
	return &Orchestrator{engine: engine}
}

// NamedSpec pairs a fit spec with its report label.
type NamedSpec struct {
	Name string
	Spec fit.Spec
}

// Models fits two specs against the same dataset and picks the winner by
// lower BIC; a tie goes to the first argument. Any failure is surfaced to
// the caller rather than partially reported.
func (o *Orchestrator) Models(ctx context.Context, a, b NamedSpec, ds dataset.Dataset) (*Comparison, error) {
	resA, err := o.engine.Fit(ctx, a.Spec, ds)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.Name, err)
	}
	resB, err := o.engine.Fit(ctx, b.Spec, ds)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name, err)
	}

	c := &Comparison{
		Units: []Unit{
			{Label: a.Name, Result: resA},
			{Label: b.Name, Result: resB},
		},
		Best: 0,
	}
	if resB.BIC < resA.BIC {
		c.Best = 1
	}
	return c, nil
}

// Datasets fits specs independently against two datasets for side-by-side
// reporting; no cross-dataset winner is defined. With a single spec the
// same model is fitted to both datasets; with two, each dataset gets its
// own spec. Units are labeled by dataset name.
func (o *Orchestrator) Datasets(ctx context.Context, specs []NamedSpec, dsA, dsB dataset.Dataset) (*Comparison, error) {
	if len(specs) < 1 || len(specs) > 2 {
		return nil, fmt.Errorf("compare: need one or two specs, got %d", len(specs))
	}

	specB := specs[0]
	if len(specs) == 2 {
		specB = specs[1]
	}

	resA, err := o.engine.Fit(ctx, specs[0].Spec, dsA)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dsA.Name, err)
	}
	resB, err := o.engine.Fit(ctx, specB.Spec, dsB)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dsB.Name, err)
	}

	return &Comparison{
		Units: []Unit{
			{Label: dsA.Name, Result: resA},
			{Label: dsB.Name, Result: resB},
		},
		Best: -1,
	}, nil
}

// Collection fits every entry of a label→spec mapping against one dataset.
// Map iteration order is not meaningful, so units are sorted by ascending
// BIC (failed units last), ties broken by label, before reporting. Per-unit
// failures are isolated, not fatal.
func (o *Orchestrator) Collection(ctx context.Context, specs map[string]fit.Spec, ds dataset.Dataset) (*Comparison, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("compare: empty spec collection")
	}

	units := make([]Unit, 0, len(specs))
	for label, spec := range specs {
		res, err := o.engine.Fit(ctx, spec, ds)
		units = append(units, Unit{Label: label, Result: res, Err: err})
	}

	sort.Slice(units, func(i, j int) bool {
		ui, uj := units[i], units[j]
		switch {
		case ui.OK() && !uj.OK():
			return true
		case !ui.OK() && uj.OK():
			return false
		case ui.OK() && uj.OK() && ui.Result.BIC != uj.Result.BIC:
			return ui.Result.BIC < uj.Result.BIC
		default:
			return ui.Label < uj.Label
		}
	})

	best := -1
	if units[0].OK() {
		best = 0
	}
	return &Comparison{Units: units, Best: best}, nil
}

// AcrossDatasets fits one spec to every dataset in order; failures are
// isolated per dataset and the remaining units are aggregated into a
// cross-dataset summary.
func (o *Orchestrator) AcrossDatasets(ctx context.Context, spec NamedSpec, sets []dataset.Dataset) (*Comparison, *Summary, error) {
	if len(sets) == 0 {
		return nil, nil, fmt.Errorf("compare: no datasets")
	}

	outcomes := make([]Outcome, len(sets))
	units := make([]Unit, len(sets))
	for i, ds := range sets {
		label := ds.Name
		if label == "" {
			label = fmt.Sprintf("dataset-%d", i+1)
		}
		res, err := o.engine.Fit(ctx, spec.Spec, ds)
		outcomes[i] = Outcome{Index: i, Result: res, Err: err}
		units[i] = Unit{Label: label, Result: res, Err: err}
	}

	best := -1
	for i, u := range units {
		if !u.OK() {
			continue
		}
		if best < 0 || u.Result.BIC < units[best].Result.BIC {
			best = i
		}
	}

	return &Comparison{Units: units, Best: best}, Aggregate(outcomes), nil
}
