// Package synth generates synthetic Brownian trajectories with Gaussian
// measurement noise, for exercising the estimators against a known D.
package synth

import (
	"errors"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/san-kum/ptrack/internal/traj"
)

// ErrBadWalk indicates non-positive step count, D, or dt.
var ErrBadWalk = errors.New("synth: walk needs n >= 2, D > 0 and dt > 0")

// Walk simulates n observations of a particle diffusing with coefficient
// d in dim dimensions at fixed time step dt. True per-dimension
// increments are Normal(0, sqrt(2*D*dt)); observed positions add
// Normal(0, sigma) measurement noise, and sigma is recorded on every
// point. The same seed reproduces the same trajectory.
func Walk(dim, n int, d, sigma, dt float64, seed uint64) (*traj.Trajectory, error) {
	if n < 2 || d <= 0 || dt <= 0 {
		return nil, ErrBadWalk
	}

	src := rand.NewPCG(seed, seed)
	step := distuv.Normal{Mu: 0, Sigma: math.Sqrt(2 * d * dt), Src: src}
	noise := distuv.Normal{Mu: 0, Sigma: sigma, Src: src}

	pos := make([]float64, dim)
	records := make([][]float64, n)
	for i := 0; i < n; i++ {
		rec := make([]float64, dim+2)
		for k := 0; k < dim; k++ {
			if i > 0 {
				pos[k] += step.Rand()
			}
			rec[k] = pos[k]
			if sigma > 0 {
				rec[k] += noise.Rand()
			}
		}
		rec[dim] = sigma
		rec[dim+1] = float64(i) * dt
		records[i] = rec
	}
	return traj.New(records)
}
