package export

import (
	"strings"
	"testing"

	"github.com/san-kum/odefit/internal/dataset"
	"github.com/san-kum/odefit/internal/dynamo"
	"github.com/san-kum/odefit/internal/fit"
)

func TestFitSVG(t *testing.T) {
	ds, err := dataset.New("d", []float64{0, 1, 2}, []float64{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	res := &fit.Result{
		Curve: []dynamo.Point{{T: 0, Y: 1}, {T: 1, Y: 2}, {T: 2, Y: 3}},
	}

	svg := FitSVG(ds, res, 400, 300)
	if !strings.HasPrefix(svg, `<?xml`) {
		t.Error("expected xml header")
	}
	if !strings.Contains(svg, "<path") {
		t.Error("expected fitted curve path")
	}
	if strings.Count(svg, "<circle") != 3 {
		t.Errorf("expected one circle per sample, got %d", strings.Count(svg, "<circle"))
	}
}

func TestFitSVGEmptyCurve(t *testing.T) {
	ds, err := dataset.New("d", []float64{0, 1}, []float64{1, 2})
	if err != nil {
		t.Fatal(err)
	}
	if svg := FitSVG(ds, &fit.Result{}, 400, 300); svg != "" {
		t.Error("expected empty string for missing curve")
	}
}
