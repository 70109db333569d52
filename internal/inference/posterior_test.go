package inference

import (
	"math"
	"testing"

	"github.com/san-kum/ptrack/internal/traj"
)

func TestLogPosterior_AdditiveDecomposition(t *testing.T) {
	tr := testTrajectory(t)
	prior := Jeffreys{Lower: 1e-3, Upper: 1e3}

	theta := 0.7
	lp := prior.LogDensity(theta)
	ll, err := LogLikelihood(theta, tr, UnknownD, Constants{})
	if err != nil {
		t.Fatalf("LogLikelihood() error = %v", err)
	}

	got, err := LogPosterior(theta, tr, UnknownD, Constants{}, prior)
	if err != nil {
		t.Fatalf("LogPosterior() error = %v", err)
	}
	if math.Abs(got-(lp+ll)) > 1e-12*math.Abs(lp+ll) {
		t.Errorf("LogPosterior = %v, want prior+likelihood = %v", got, lp+ll)
	}
}

func TestPosterior_ShortCircuit(t *testing.T) {
	tr := testTrajectory(t)

	p := NewPosterior(Jeffreys{Lower: 1e-12, Upper: 1e-8}, UnknownD, Constants{})
	p.likelihood = func(float64, *traj.Trajectory, Unknown, Constants) (float64, error) {
		t.Fatal("likelihood evaluated outside prior support")
		return 0, nil
	}

	for _, theta := range []float64{-1, 0, 1e-13, 1e-7} {
		got, err := p.LogDensity(theta, tr)
		if err != nil {
			t.Fatalf("LogDensity(%v) error = %v", theta, err)
		}
		if !math.IsInf(got, -1) {
			t.Errorf("LogDensity(%v) = %v, want -Inf", theta, got)
		}
	}
}
