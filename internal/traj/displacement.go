package traj

// DisplacementSeries pairs each consecutive step of a trajectory with its
// lag time and the combined measurement-noise variance of its endpoints.
// All three slices have length Len()-1.
type DisplacementSeries struct {
	Steps    []float64 // Euclidean step lengths
	Lags     []float64 // time differences between consecutive records
	NoiseVar []float64 // sigma_i^2 + sigma_i+1^2 per step
}

// Displacements derives the consecutive-step series. The result is built
// fresh on every call; the trajectory itself is never mutated.
func (t *Trajectory) Displacements() DisplacementSeries {
	n := t.Len() - 1
	s := DisplacementSeries{
		Steps:    make([]float64, n),
		Lags:     make([]float64, n),
		NoiseVar: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		s.Steps[i] = t.distance(i, i+1)
		s.Lags[i] = t.times[i+1] - t.times[i]
		s.NoiseVar[i] = t.sigma[i]*t.sigma[i] + t.sigma[i+1]*t.sigma[i+1]
	}
	return s
}

// LagSteps returns the generalized lag-step displacements: the Euclidean
// distance between records k and k+lag for every valid k. The result has
// length Len()-lag. Lags outside [1, Len()) yield an empty series, not an
// error; consumers treat "no samples" as undefined.
func (t *Trajectory) LagSteps(lag int) []float64 {
	if lag < 1 || lag >= t.Len() {
		return nil
	}
	out := make([]float64, t.Len()-lag)
	for k := range out {
		out[k] = t.distance(k, k+lag)
	}
	return out
}
