package estimate

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/ptrack/internal/traj"
)

// DefaultDownSample is the default stride between evaluated lag counts.
const DefaultDownSample = 10

// ErrNoFiniteSamples indicates an MSD curve with no usable entries left
// after filtering NaN and degenerate standard errors.
var ErrNoFiniteSamples = errors.New("estimate: no finite MSD samples to fit")

// MSDCurve holds parallel sequences of lag count, mean squared
// displacement, and its standard-error estimate. Entries at lags with too
// few samples carry NaN or Inf rather than being dropped, so indices stay
// aligned with Lags; consumers filter the degenerate tail.
type MSDCurve struct {
	Lags  []int
	MSD   []float64
	Sigma []float64
	Dim   int
	N     int // records in the source trajectory
}

// MSD is the mean squared lag-step displacement, NaN when the lag leaves
// no samples.
func MSD(tr *traj.Trajectory, lag int) float64 {
	steps := tr.LagSteps(lag)
	if len(steps) == 0 {
		return math.NaN()
	}
	sq := make([]float64, len(steps))
	for i, s := range steps {
		sq[i] = s * s
	}
	return stat.Mean(sq, nil)
}

// NIndependent is the effective number of statistically independent
// samples at the given lag, 2(N-lag)/lag. Overlapping windows at large
// lags share most of their path, which this correction accounts for.
func NIndependent(n, lag int) float64 {
	return 2 * float64(n-lag) / float64(lag)
}

// SigmaMSD estimates the standard error of MSD at the given lag:
// MSD*sqrt(2/(Nind-1)). As Nind approaches 1 the estimate diverges and
// below 1 it is NaN; neither is clamped.
func SigmaMSD(tr *traj.Trajectory, lag int) float64 {
	nind := NIndependent(tr.Len(), lag)
	return MSD(tr, lag) * math.Sqrt(2/(nind-1))
}

// CGW computes the Crocker-Grier-Weeks MSD curve at lags
// 1, 1+downSample, 1+2*downSample, ... below maxLag. A downSample below 1
// falls back to DefaultDownSample.
func CGW(tr *traj.Trajectory, maxLag, downSample int) *MSDCurve {
	if downSample < 1 {
		downSample = DefaultDownSample
	}

	curve := &MSDCurve{Dim: tr.Dim(), N: tr.Len()}
	for lag := 1; lag < maxLag; lag += downSample {
		curve.Lags = append(curve.Lags, lag)
		curve.MSD = append(curve.MSD, MSD(tr, lag))
		curve.Sigma = append(curve.Sigma, SigmaMSD(tr, lag))
	}
	return curve
}

// LineFit is the expected MSD of free diffusion, 2*ndim*D*tau.
func LineFit(ndim int, tau, d float64) float64 {
	return 2 * float64(ndim) * d * tau
}

func LineFit1D(tau, d float64) float64 { return LineFit(1, tau, d) }

func LineFit2D(tau, d float64) float64 { return LineFit(2, tau, d) }

func LineFit3D(tau, d float64) float64 { return LineFit(3, tau, d) }

// FitDiffusion recovers D from an MSD curve by weighted least squares of
// MSD against 2*ndim*tau through the origin, with tau = lag*dt and
// weights 1/sigma^2. Degenerate entries (NaN or non-finite sigma) are
// skipped. Returns D and its standard error.
func FitDiffusion(curve *MSDCurve, dt float64) (d, stderr float64, err error) {
	var xs, ys, ws []float64
	for i, lag := range curve.Lags {
		msd := curve.MSD[i]
		sigma := curve.Sigma[i]
		if math.IsNaN(msd) || math.IsNaN(sigma) || math.IsInf(sigma, 0) || sigma <= 0 {
			continue
		}
		xs = append(xs, LineFit(curve.Dim, float64(lag)*dt, 1))
		ys = append(ys, msd)
		ws = append(ws, 1/(sigma*sigma))
	}
	if len(xs) == 0 {
		return 0, 0, ErrNoFiniteSamples
	}

	_, d = stat.LinearRegression(xs, ys, ws, true)

	sumWX2 := 0.0
	for i := range xs {
		sumWX2 += ws[i] * xs[i] * xs[i]
	}
	return d, math.Sqrt(1 / sumWX2), nil
}
