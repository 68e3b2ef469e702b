package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/san-kum/odefit/internal/compare"
	"github.com/san-kum/odefit/internal/report"
)

// Store persists comparison runs under a base directory, one subdirectory
// per run holding metadata.json plus the summary and prediction CSVs.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type UnitMetadata struct {
	Label  string    `json:"label"`
	Params []float64 `json:"params,omitempty"`
	BIC    float64   `json:"bic,omitempty"`
	SSR    float64   `json:"ssr,omitempty"`
	Error  string    `json:"error,omitempty"`
}

type RunMetadata struct {
	ID        string         `json:"id"`
	Kind      string         `json:"kind"`
	Dataset   string         `json:"dataset"`
	Timestamp time.Time      `json:"timestamp"`
	Seed      int64          `json:"seed"`
	Best      string         `json:"best,omitempty"`
	Units     []UnitMetadata `json:"units"`
}

// Save writes a comparison to a fresh run directory and returns the run ID.
// kind is the comparison flavor ("models", "datasets", "collection",
// "batch"); it also selects the summary CSV's label column.
func (s *Store) Save(kind, datasetName string, seed int64, c *compare.Comparison) (string, error) {
	runID := fmt.Sprintf("%s_%d", kind, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Kind:      kind,
		Dataset:   datasetName,
		Timestamp: time.Now(),
		Seed:      seed,
		Units:     make([]UnitMetadata, 0, len(c.Units)),
	}
	if best := c.BestUnit(); best != nil {
		meta.Best = best.Label
	}
	for _, u := range c.Units {
		um := UnitMetadata{Label: u.Label}
		if u.OK() {
			um.Params = u.Result.Params
			um.BIC = u.Result.BIC
			um.SSR = u.Result.SSR
		} else {
			um.Error = u.Err.Error()
		}
		meta.Units = append(meta.Units, um)
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	labelColumn := "Model"
	if kind == "datasets" || kind == "batch" {
		labelColumn = "Dataset"
	}
	if err := report.Export(filepath.Join(runDir, "summary.csv"), labelColumn, c); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}
