package inference

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/san-kum/ptrack/internal/traj"
)

// LogLikelihood computes the log-likelihood of the observed step
// displacements of tr under a Gaussian diffusion model convolved with
// measurement noise. Each of the N-1 steps contributes
//
//	-1/2*log(2*pi) - 1/2*log(s2) - d^2/(2*s2)
//	s2 = 2*ndim*D*dt + sigma_k^2 + sigma_k+1^2
//
// The normalization constant is counted once per step; the classic
// formulation applies -N/2*log(2*pi) once globally, which is
// dimensionally inconsistent with a per-observation Gaussian, so absolute
// values differ from it by a constant offset. Maxima and likelihood
// ratios are unaffected.
//
// When unknown is not D, theta is interpreted as the named physical
// quantity and D is derived through the Stokes-Einstein relation with the
// companions taken from c. Any non-positive physical quantity yields
// -Inf, not an error: infeasible proposals are routine during grid search
// and sampling.
func LogLikelihood(theta float64, tr *traj.Trajectory, unknown Unknown, c Constants) (float64, error) {
	d, err := resolveD(theta, unknown, c, tr.Dim())
	if err != nil {
		return 0, err
	}
	if !feasible(theta, unknown, c) || d <= 0 {
		return math.Inf(-1), nil
	}

	ndim := float64(tr.Dim())
	s := tr.Displacements()

	sum := 0.0
	for k := range s.Steps {
		s2 := 2*ndim*d*s.Lags[k] + s.NoiseVar[k]
		if s2 <= 0 {
			return math.Inf(-1), nil
		}
		step := distuv.Normal{Mu: 0, Sigma: math.Sqrt(s2)}
		sum += step.LogProb(s.Steps[k])
	}
	return sum, nil
}
