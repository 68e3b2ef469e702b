package fit

import (
	"math"

	"github.com/san-kum/odefit/internal/dynamo"
)

// Adapter exposes a full-parameter system as a free-parameter system,
// expanding through the mask on every derivative call. Expansion is linear
// in the total parameter count, so it stays cheap inside the integrator
// loop.
type Adapter struct {
	sys  dynamo.System
	mask *Mask
}

func NewAdapter(sys dynamo.System, mask *Mask) *Adapter {
	return &Adapter{sys: sys, mask: mask}
}

func (a *Adapter) StateDim() int { return a.sys.StateDim() }
func (a *Adapter) NParams() int  { return a.mask.FreeCount() }

func (a *Adapter) ParamNames() []string {
	all := a.sys.ParamNames()
	names := make([]string, 0, a.mask.FreeCount())
	for _, idx := range a.mask.FreeIndices() {
		names = append(names, all[idx-1])
	}
	return names
}

func (a *Adapter) Derive(x dynamo.State, free dynamo.Params, t float64) dynamo.State {
	full, err := a.mask.Expand(free)
	if err != nil {
		// A malformed free vector cannot surface an error from here; return
		// an invalid state so the integrator reports the failure.
		bad := make(dynamo.State, a.sys.StateDim())
		for i := range bad {
			bad[i] = math.NaN()
		}
		return bad
	}
	return a.sys.Derive(x, dynamo.Params(full), t)
}
