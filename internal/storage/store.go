// Package storage persists estimation runs under a data directory, one
// subdirectory per run holding metadata.json and the evaluated curve as
// CSV, and loads trajectory data from CSV files.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes one estimation run. Kind is "mle" or "cgw";
// Summary holds the kind-specific scalar results (best_d, ci_min, ci_max
// for MLE; fit_d, fit_stderr for a fitted CGW run).
type RunMetadata struct {
	ID        string             `json:"id"`
	Kind      string             `json:"kind"`
	Timestamp time.Time          `json:"timestamp"`
	Dim       int                `json:"dim"`
	Points    int                `json:"points"`
	Unknown   string             `json:"unknown,omitempty"`
	Prior     string             `json:"prior,omitempty"`
	Summary   map[string]float64 `json:"summary"`
}

// Save writes metadata.json and curve.csv for a run and returns the run
// ID. cols are parallel columns written under header.
func (s *Store) Save(meta RunMetadata, header []string, cols [][]float64) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Kind, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
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

	csvFile, err := os.Create(filepath.Join(runDir, "curve.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(header); err != nil {
		return "", err
	}
	if len(cols) == 0 {
		return runID, nil
	}
	for i := 0; i < len(cols[0]); i++ {
		row := make([]string, len(cols))
		for j := range cols {
			row[j] = strconv.FormatFloat(cols[j][i], 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
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

// LoadCurve reads back the curve columns of a run.
func (s *Store) LoadCurve(runID string) (header []string, cols [][]float64, err error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "curve.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("storage: run %s has an empty curve", runID)
	}

	header = records[0]
	cols = make([][]float64, len(header))
	for _, row := range records[1:] {
		for j := range header {
			v, err := strconv.ParseFloat(row[j], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("storage: bad curve value %q: %w", row[j], err)
			}
			cols[j] = append(cols[j], v)
		}
	}
	return header, cols, nil
}
