package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/odefit/internal/compare"
)

// PredictionsPath derives the prediction file name from the summary file
// name: a trailing ".csv" becomes "_predictions.csv".
func PredictionsPath(summaryPath string) string {
	if strings.HasSuffix(summaryPath, ".csv") {
		return strings.TrimSuffix(summaryPath, ".csv") + "_predictions.csv"
	}
	return summaryPath + "_predictions.csv"
}

// WriteSummary writes one row per unit with the fixed schema
// (label column, Params, BIC, SSR). labelColumn is "Model" for model
// comparisons and "Dataset" for dataset comparisons. Failed units are
// skipped; a comparison output only covers completed fits.
func WriteSummary(path, labelColumn string, c *compare.Comparison) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{labelColumn, "Params", "BIC", "SSR"}); err != nil {
		return err
	}
	for _, u := range c.Units {
		if !u.OK() {
			continue
		}
		row := []string{
			u.Label,
			fmt.Sprintf("%v", []float64(u.Result.Params)),
			strconv.FormatFloat(u.Result.BIC, 'g', -1, 64),
			strconv.FormatFloat(u.Result.SSR, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WritePredictions writes one row per curve point per unit with the fixed
// schema Model, Time, Prediction.
func WritePredictions(path string, c *compare.Comparison) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Model", "Time", "Prediction"}); err != nil {
		return err
	}
	for _, u := range c.Units {
		if !u.OK() {
			continue
		}
		for _, pt := range u.Result.Curve {
			row := []string{
				u.Label,
				strconv.FormatFloat(pt.T, 'g', -1, 64),
				strconv.FormatFloat(pt.Y, 'g', -1, 64),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

// Export writes the summary CSV and its derived predictions CSV.
func Export(summaryPath, labelColumn string, c *compare.Comparison) error {
	if err := WriteSummary(summaryPath, labelColumn, c); err != nil {
		return err
	}
	return WritePredictions(PredictionsPath(summaryPath), c)
}
