package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// FromCSV loads a two-column (x, y) CSV file. A single header row is
// skipped if its first field does not parse as a number. The dataset name
// is the file basename without extension.
func FromCSV(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return Dataset{}, fmt.Errorf("read %s: %w", path, err)
	}

	var x, y []float64
	for i, rec := range records {
		if len(rec) < 2 {
			return Dataset{}, fmt.Errorf("%s: row %d has %d columns, need 2", path, i+1, len(rec))
		}
		xv, errX := strconv.ParseFloat(rec[0], 64)
		yv, errY := strconv.ParseFloat(rec[1], 64)
		if errX != nil || errY != nil {
			if i == 0 {
				continue // header row
			}
			return Dataset{}, fmt.Errorf("%s: row %d is not numeric", path, i+1)
		}
		x = append(x, xv)
		y = append(y, yv)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return New(name, x, y)
}
