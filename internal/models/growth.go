package models

import (
	"math"

	"github.com/san-kum/odefit/internal/dynamo"
)

// Exponential implements unbounded exponential growth.
// State: [u]
// Equation: du/dt = r·u
// Params: [r]
type Exponential struct{}

func NewExponential() *Exponential { return &Exponential{} }

func (e *Exponential) StateDim() int        { return 1 }
func (e *Exponential) NParams() int         { return 1 }
func (e *Exponential) ParamNames() []string { return []string{"r"} }

func (e *Exponential) Derive(x dynamo.State, p dynamo.Params, _ float64) dynamo.State {
	return dynamo.State{p[0] * x[0]}
}

func (e *Exponential) DefaultGuess() []float64 {
	return []float64{0.1}
}

func (e *Exponential) DefaultBounds() [][2]float64 {
	return [][2]float64{{1e-6, 5.0}}
}

// Logistic implements logistic growth toward a carrying capacity.
// State: [u]
// Equation: du/dt = r·u·(1 - u/K)
// Params: [r, K]
type Logistic struct{}

func NewLogistic() *Logistic { return &Logistic{} }

func (l *Logistic) StateDim() int        { return 1 }
func (l *Logistic) NParams() int         { return 2 }
func (l *Logistic) ParamNames() []string { return []string{"r", "K"} }

func (l *Logistic) Derive(x dynamo.State, p dynamo.Params, _ float64) dynamo.State {
	r, k := p[0], p[1]
	u := x[0]
	return dynamo.State{r * u * (1 - u/k)}
}

func (l *Logistic) DefaultGuess() []float64 {
	return []float64{0.5, 10.0}
}

func (l *Logistic) DefaultBounds() [][2]float64 {
	return [][2]float64{{1e-6, 5.0}, {1e-3, 1e3}}
}

// Gompertz implements Gompertz growth.
// State: [u]
// Equation: du/dt = r·u·ln(K/u), with u clamped away from zero
// Params: [r, K]
type Gompertz struct{}

func NewGompertz() *Gompertz { return &Gompertz{} }

func (g *Gompertz) StateDim() int        { return 1 }
func (g *Gompertz) NParams() int         { return 2 }
func (g *Gompertz) ParamNames() []string { return []string{"r", "K"} }

func (g *Gompertz) Derive(x dynamo.State, p dynamo.Params, _ float64) dynamo.State {
	r, k := p[0], p[1]
	u := x[0]
	if u < 1e-12 {
		u = 1e-12
	}
	return dynamo.State{r * u * math.Log(k/u)}
}

func (g *Gompertz) DefaultGuess() []float64 {
	return []float64{0.5, 10.0}
}

func (g *Gompertz) DefaultBounds() [][2]float64 {
	return [][2]float64{{1e-6, 5.0}, {1e-3, 1e3}}
}

// Richards implements generalized logistic (Richards) growth.
// State: [u]
// Equation: du/dt = r·u·(1 - (u/K)^nu)
// Params: [r, K, nu]
type Richards struct{}

func NewRichards() *Richards { return &Richards{} }

func (r *Richards) StateDim() int        { return 1 }
func (r *Richards) NParams() int         { return 3 }
func (r *Richards) ParamNames() []string { return []string{"r", "K", "nu"} }

func (r *Richards) Derive(x dynamo.State, p dynamo.Params, _ float64) dynamo.State {
	rate, k, nu := p[0], p[1], p[2]
	u := x[0]
	return dynamo.State{rate * u * (1 - math.Pow(u/k, nu))}
}

func (r *Richards) DefaultGuess() []float64 {
	return []float64{0.5, 10.0, 1.0}
}

func (r *Richards) DefaultBounds() [][2]float64 {
	return [][2]float64{{1e-6, 5.0}, {1e-3, 1e3}, {1e-2, 10.0}}
}

// VonBertalanffy implements von Bertalanffy growth.
// State: [u]
// Equation: du/dt = a·u^(2/3) - b·u, with u clamped non-negative
// Params: [a, b]
type VonBertalanffy struct{}

func NewVonBertalanffy() *VonBertalanffy { return &VonBertalanffy{} }

func (v *VonBertalanffy) StateDim() int        { return 1 }
func (v *VonBertalanffy) NParams() int         { return 2 }
func (v *VonBertalanffy) ParamNames() []string { return []string{"a", "b"} }

func (v *VonBertalanffy) Derive(x dynamo.State, p dynamo.Params, _ float64) dynamo.State {
	a, b := p[0], p[1]
	u := x[0]
	if u < 0 {
		u = 0
	}
	return dynamo.State{a*math.Pow(u, 2.0/3.0) - b*u}
}

func (v *VonBertalanffy) DefaultGuess() []float64 {
	return []float64{1.0, 0.5}
}

func (v *VonBertalanffy) DefaultBounds() [][2]float64 {
	return [][2]float64{{1e-6, 10.0}, {1e-6, 10.0}}
}
