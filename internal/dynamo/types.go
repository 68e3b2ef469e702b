package dynamo

import (
	"fmt"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

type Params []float64

func (p Params) Clone() Params {
	c := make(Params, len(p))
	copy(c, p)
	return c
}

func (p Params) IsValid() bool {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// System is a parameterized ODE right-hand side: dx/dt = Derive(x, p, t).
type System interface {
	Derive(x State, p Params, t float64) State
	StateDim() int
	NParams() int
	ParamNames() []string
}

// Func adapts a plain function to System.
type Func struct {
	Fn    func(x State, p Params, t float64) State
	Dim   int
	Count int
	Names []string
}

func (f Func) Derive(x State, p Params, t float64) State { return f.Fn(x, p, t) }
func (f Func) StateDim() int                             { return f.Dim }
func (f Func) NParams() int                              { return f.Count }

func (f Func) ParamNames() []string {
	if f.Names != nil {
		return f.Names
	}
	names := make([]string, f.Count)
	for i := range names {
		names[i] = fmt.Sprintf("p%d", i+1)
	}
	return names
}

// Point is one sample of the fitted observable over time.
type Point struct {
	T float64
	Y float64
}
