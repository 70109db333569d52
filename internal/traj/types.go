package traj

import "math"

// Trajectory is a read-only sequence of position measurements for one
// particle. Records are rows of dim coordinates followed by the
// measurement uncertainty sigma and the absolute timestamp.
type Trajectory struct {
	dim    int
	points [][]float64
	sigma  []float64
	times  []float64
}

// New builds a Trajectory from raw records. Each record must contain
// dim coordinates, sigma, and a timestamp, so the dimension is the record
// width minus two. The input is copied; the caller keeps ownership.
func New(records [][]float64) (*Trajectory, error) {
	if len(records) < 2 {
		return nil, ErrTooShort
	}
	dim := len(records[0]) - 2
	if dim < 1 || dim > 3 {
		return nil, ErrInvalidDimension
	}

	t := &Trajectory{
		dim:    dim,
		points: make([][]float64, len(records)),
		sigma:  make([]float64, len(records)),
		times:  make([]float64, len(records)),
	}
	for i, rec := range records {
		if len(rec) != dim+2 {
			return nil, ErrRaggedRecord
		}
		p := make([]float64, dim)
		copy(p, rec[:dim])
		t.points[i] = p
		t.sigma[i] = rec[dim]
		t.times[i] = rec[dim+1]
	}
	return t, nil
}

func (t *Trajectory) Len() int { return len(t.points) }

func (t *Trajectory) Dim() int { return t.dim }

// Position returns the coordinates of record i. The slice is shared;
// callers must not modify it.
func (t *Trajectory) Position(i int) []float64 { return t.points[i] }

func (t *Trajectory) Sigma(i int) float64 { return t.sigma[i] }

func (t *Trajectory) Time(i int) float64 { return t.times[i] }

// TimesIncreasing reports whether timestamps are strictly increasing.
// Lag times are computed as consecutive differences, so trajectories
// failing this check produce meaningless statistics.
func (t *Trajectory) TimesIncreasing() bool {
	for i := 1; i < len(t.times); i++ {
		if t.times[i] <= t.times[i-1] {
			return false
		}
	}
	return true
}

// Translate returns a new Trajectory with offset added per dimension.
// A single offset value is broadcast to every dimension. Sigma and
// timestamps are unchanged; the receiver is not modified.
func (t *Trajectory) Translate(offset ...float64) (*Trajectory, error) {
	if len(offset) != t.dim && len(offset) != 1 {
		return nil, ErrOffsetDimension
	}

	out := &Trajectory{
		dim:    t.dim,
		points: make([][]float64, len(t.points)),
		sigma:  make([]float64, len(t.sigma)),
		times:  make([]float64, len(t.times)),
	}
	copy(out.sigma, t.sigma)
	copy(out.times, t.times)
	for i, p := range t.points {
		q := make([]float64, t.dim)
		for d := 0; d < t.dim; d++ {
			off := offset[0]
			if len(offset) > 1 {
				off = offset[d]
			}
			q[d] = p[d] + off
		}
		out.points[i] = q
	}
	return out, nil
}

// distance is the Euclidean separation of records i and j.
func (t *Trajectory) distance(i, j int) float64 {
	sum := 0.0
	for d := 0; d < t.dim; d++ {
		diff := t.points[i][d] - t.points[j][d]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}
