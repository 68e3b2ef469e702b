package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/odefit/internal/dataset"
	"github.com/san-kum/odefit/internal/fit"
)

// FitSVG renders observed samples (dots) and the fitted curve (polyline)
// into a standalone SVG.
func FitSVG(ds dataset.Dataset, res *fit.Result, width, height int) string {
	if res == nil || len(res.Curve) < 2 {
		return ""
	}

	minX, maxX := ds.X[0], ds.X[len(ds.X)-1]
	minY, maxY := ds.Y[0], ds.Y[0]
	for _, y := range ds.Y {
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	for _, pt := range res.Curve {
		if pt.Y < minY {
			minY = pt.Y
		}
		if pt.Y > maxY {
			maxY = pt.Y
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.05
	maxX += rangeX * 0.05
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	px := func(x float64) float64 { return (x - minX) / rangeX * float64(width) }
	py := func(y float64) float64 { return float64(height) - (y-minY)/rangeY*float64(height) }

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="#00ff88" stroke-width="1.5" d="M`,
		width, height, width, height))

	for i, pt := range res.Curve {
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", px(pt.T), py(pt.Y)))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px(pt.T), py(pt.Y)))
		}
	}
	sb.WriteString("\"/>\n")

	for i := range ds.X {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="2.5" fill="#ffaa00"/>
`, px(ds.X[i]), py(ds.Y[i])))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// WriteFitSVG writes the plot to a file.
func WriteFitSVG(path string, ds dataset.Dataset, res *fit.Result, width, height int) error {
	svg := FitSVG(ds, res, width, height)
	if svg == "" {
		return fmt.Errorf("export: nothing to plot")
	}
	return os.WriteFile(path, []byte(svg), 0644)
}
