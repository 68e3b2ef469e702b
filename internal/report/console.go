package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/odefit/internal/compare"
	"github.com/san-kum/odefit/internal/fit"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	bestStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
)

// Console prints comparison results unit by unit. Each unit is written only
// after its fit has fully completed, so output never interleaves.
type Console struct {
	out  io.Writer
	plot bool
}

func NewConsole(out io.Writer, plot bool) *Console {
	return &Console{out: out, plot: plot}
}

// Comparison prints every unit in report order, then the winner if one is
// defined. Per unit the order is: fitted parameters, SSR, BIC.
func (c *Console) Comparison(title string, cmp *compare.Comparison) {
	fmt.Fprintln(c.out, headerStyle.Render(title))

	for _, u := range cmp.Units {
		c.unit(u)
	}

	if best := cmp.BestUnit(); best != nil {
		fmt.Fprintln(c.out, bestStyle.Render(fmt.Sprintf("best: %s (BIC %.4f)", best.Label, best.Result.BIC)))
	}

	if c.plot {
		if best := cmp.BestUnit(); best != nil && len(best.Result.Curve) > 0 {
			c.curve(best.Label, best.Result)
		}
	}
}

func (c *Console) unit(u compare.Unit) {
	if !u.OK() {
		fmt.Fprintf(c.out, "%s\t%s\n", labelStyle.Render(u.Label), failStyle.Render("failed: "+u.Err.Error()))
		return
	}

	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "%s\n", labelStyle.Render(u.Label))
	for i, name := range u.Result.Names {
		fmt.Fprintf(w, "  %s\t%.6g\n", name, u.Result.Params[i])
	}
	fmt.Fprintf(w, "  SSR\t%.6g\n", u.Result.SSR)
	fmt.Fprintf(w, "  BIC\t%.6g\n", u.Result.BIC)
	w.Flush()
}

// Summary prints cross-dataset aggregate statistics.
func (c *Console) Summary(s *compare.Summary, names []string) {
	fmt.Fprintln(c.out, headerStyle.Render(fmt.Sprintf("aggregate over %d/%d successful fits", s.NSuccess, s.NTotal)))

	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	for i := range s.MeanParams {
		name := fmt.Sprintf("p%d", i+1)
		if i < len(names) {
			name = names[i]
		}
		fmt.Fprintf(w, "  %s\t%.6g ± %.6g\n", name, s.MeanParams[i], s.StdParams[i])
	}
	fmt.Fprintf(w, "  mean SSR\t%.6g\n", s.MeanSSR)
	w.Flush()
}

// curve renders the predicted trajectory of a unit as an ascii plot.
func (c *Console) curve(label string, res *fit.Result) {
	ys := make([]float64, len(res.Curve))
	for i, pt := range res.Curve {
		ys[i] = pt.Y
	}

	graph := asciigraph.Plot(ys,
		asciigraph.Height(12),
		asciigraph.Width(64),
		asciigraph.Caption(label+" predicted"),
	)
	fmt.Fprintln(c.out, graphStyle.Render(graph))
}
