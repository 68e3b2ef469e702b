package tui

import (
	"strings"
	"testing"

	"github.com/san-kum/odefit/internal/compare"
	"github.com/san-kum/odefit/internal/fit"
)

func TestProgressTracksDuplicateLabels(t *testing.T) {
	m := NewModel("batch", []string{"growth", "growth"})

	res := &fit.Result{Params: []float64{1}, Names: []string{"r"}, BIC: -3.5, SSR: 0.1}
	next, _ := m.Update(UnitDoneMsg{Index: 0, Unit: compare.Unit{Label: "growth", Result: res}})
	m = next.(Model)

	view := m.View()
	if got := strings.Count(view, "✓"); got != 1 {
		t.Errorf("expected 1 completed line, got %d", got)
	}
	if got := strings.Count(view, "…"); got != 1 {
		t.Errorf("expected 1 pending line, got %d", got)
	}

	next, _ = m.Update(UnitDoneMsg{Index: 1, Unit: compare.Unit{Label: "growth", Result: res}})
	m = next.(Model)

	if got := strings.Count(m.View(), "✓"); got != 2 {
		t.Errorf("expected 2 completed lines, got %d", got)
	}
}
