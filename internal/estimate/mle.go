package estimate

import (
	"context"
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/ptrack/internal/inference"
	"github.com/san-kum/ptrack/internal/traj"
)

// ErrGridTooSmall indicates fewer than two grid points were requested.
var ErrGridTooSmall = errors.New("estimate: grid needs at least 2 intervals")

// minChunk is the smallest grid slice worth handing to a worker.
const minChunk = 16

// MLEResult holds the evaluated grid and the profile-likelihood band.
type MLEResult struct {
	Grid      []float64 // tested parameter values, log-uniformly spaced
	LogLik    []float64 // log-likelihood at each grid point
	BestIndex int
	Best      float64 // argmax parameter value

	// CIMin and CIMax bound the contiguous run of grid points around the
	// maximum whose log-likelihood is within 0.5 of it, the
	// likelihood-ratio approximation to a 68 percent interval. A band
	// touching the first or last grid point signals the range is too
	// narrow, not an error.
	CIMin, CIMax float64

	// Disjoint reports that grid points outside the returned band also
	// clear the 0.5 threshold. The curve is then multimodal at the grid
	// resolution and the band covers only the region around the global
	// maximum.
	Disjoint bool
}

// EdgeTouching reports whether the confidence band reaches either end of
// the grid.
func (r *MLEResult) EdgeTouching() bool {
	return r.CIMin == r.Grid[0] || r.CIMax == r.Grid[len(r.Grid)-1]
}

// MLE evaluates the likelihood at intervals points log-uniformly spaced
// between 10^lower10 and 10^upper10 and extracts the maximum and its
// confidence band. Grid points are independent, so evaluation is spread
// across available CPUs; results land in grid order regardless.
func MLE(ctx context.Context, tr *traj.Trajectory, unknown inference.Unknown, c inference.Constants, lower10, upper10 float64, intervals int) (*MLEResult, error) {
	if intervals < 2 {
		return nil, ErrGridTooSmall
	}

	grid := make([]float64, intervals)
	floats.LogSpan(grid, math.Pow(10, lower10), math.Pow(10, upper10))

	loglik := make([]float64, intervals)
	errs := make([]error, intervals)

	parallelFor(intervals, minChunk, func(start, end int) {
		for i := start; i < end; i++ {
			if ctx.Err() != nil {
				return
			}
			loglik[i], errs[i] = inference.LogLikelihood(grid[i], tr, unknown, c)
		}
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	best := floats.MaxIdx(loglik)
	threshold := loglik[best] - 0.5

	lo, hi := best, best
	for lo > 0 && loglik[lo-1] >= threshold {
		lo--
	}
	for hi < intervals-1 && loglik[hi+1] >= threshold {
		hi++
	}

	disjoint := false
	for i := range loglik {
		if (i < lo || i > hi) && loglik[i] >= threshold {
			disjoint = true
			break
		}
	}

	return &MLEResult{
		Grid:      grid,
		LogLik:    loglik,
		BestIndex: best,
		Best:      grid[best],
		CIMin:     grid[lo],
		CIMax:     grid[hi],
		Disjoint:  disjoint,
	}, nil
}
