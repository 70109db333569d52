package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/san-kum/ptrack/internal/traj"
)

// LoadTrajectory reads a trajectory CSV: one row per record, columns are
// d position coordinates, sigma, timestamp. Dimension is inferred from
// the column count. A leading header row is skipped if its first field
// does not parse as a number.
func LoadTrajectory(path string) (*traj.Trajectory, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		if _, err := strconv.ParseFloat(rows[0][0], 64); err != nil {
			rows = rows[1:]
		}
	}

	records := make([][]float64, 0, len(rows))
	for i, row := range rows {
		rec := make([]float64, len(row))
		for j, field := range row {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: row %d column %d: %w", i+1, j+1, err)
			}
			rec[j] = v
		}
		records = append(records, rec)
	}

	tr, err := traj.New(records)
	if err != nil {
		return nil, fmt.Errorf("storage: %s: %w", path, err)
	}
	return tr, nil
}

// WriteTrajectory writes a trajectory in the format LoadTrajectory reads,
// with a header row naming the coordinate columns.
func WriteTrajectory(path string, tr *traj.Trajectory) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	header := []string{"x", "y", "z"}[:tr.Dim()]
	header = append(header, "sigma", "t")
	if err := w.Write(header); err != nil {
		return err
	}

	for i := 0; i < tr.Len(); i++ {
		row := make([]string, 0, tr.Dim()+2)
		for _, c := range tr.Position(i) {
			row = append(row, strconv.FormatFloat(c, 'g', -1, 64))
		}
		row = append(row,
			strconv.FormatFloat(tr.Sigma(i), 'g', -1, 64),
			strconv.FormatFloat(tr.Time(i), 'g', -1, 64))
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
