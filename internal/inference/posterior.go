package inference

import (
	"math"

	"github.com/san-kum/ptrack/internal/traj"
)

// Posterior combines a prior with the diffusion likelihood.
type Posterior struct {
	Prior   Prior
	Unknown Unknown
	Known   Constants

	likelihood func(theta float64, tr *traj.Trajectory, unknown Unknown, c Constants) (float64, error)
}

func NewPosterior(prior Prior, unknown Unknown, known Constants) *Posterior {
	return &Posterior{
		Prior:      prior,
		Unknown:    unknown,
		Known:      known,
		likelihood: LogLikelihood,
	}
}

// LogDensity is log-prior + log-likelihood. A -Inf prior short-circuits:
// the likelihood is never evaluated outside the prior support, so
// degenerate variances there cannot propagate NaNs.
func (p *Posterior) LogDensity(theta float64, tr *traj.Trajectory) (float64, error) {
	lp := p.Prior.LogDensity(theta)
	if math.IsInf(lp, -1) {
		return lp, nil
	}
	ll, err := p.likelihood(theta, tr, p.Unknown, p.Known)
	if err != nil {
		return 0, err
	}
	return lp + ll, nil
}

// LogPosterior is the one-shot form of [Posterior.LogDensity].
func LogPosterior(theta float64, tr *traj.Trajectory, unknown Unknown, c Constants, prior Prior) (float64, error) {
	return NewPosterior(prior, unknown, c).LogDensity(theta, tr)
}
