package inference

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/ptrack/internal/traj"
)

func testTrajectory(t *testing.T) *traj.Trajectory {
	t.Helper()
	tr, err := traj.New([][]float64{
		{0.0, 0.0, 0.0, 0.1, 0.0},
		{1.0, 0.5, -0.2, 0.1, 1.0},
		{1.4, 1.1, 0.3, 0.2, 2.0},
		{2.0, 0.9, 0.1, 0.1, 3.5},
	})
	if err != nil {
		t.Fatalf("traj.New() error = %v", err)
	}
	return tr
}

func TestLogLikelihood_PerStepForm(t *testing.T) {
	tr, err := traj.New([][]float64{
		{0, 0.1, 0},
		{1, 0.1, 1},
	})
	if err != nil {
		t.Fatalf("traj.New() error = %v", err)
	}

	d := 0.5
	s2 := 2*1*d*1 + 0.01 + 0.01
	want := -0.5*math.Log(2*math.Pi) - 0.5*math.Log(s2) - 1.0/(2*s2)

	got, err := LogLikelihood(d, tr, UnknownD, Constants{})
	if err != nil {
		t.Fatalf("LogLikelihood() error = %v", err)
	}
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("LogLikelihood = %v, want %v", got, want)
	}
}

func TestLogLikelihood_Infeasible(t *testing.T) {
	tr := testTrajectory(t)

	for _, theta := range []float64{0, -1e-12} {
		got, err := LogLikelihood(theta, tr, UnknownD, Constants{})
		if err != nil {
			t.Fatalf("LogLikelihood(%v) error = %v", theta, err)
		}
		if !math.IsInf(got, -1) {
			t.Errorf("LogLikelihood(%v) = %v, want -Inf", theta, got)
		}
	}

	// Non-positive companion constants are infeasible too.
	got, err := LogLikelihood(1e-6, tr, UnknownRadius, Constants{Viscosity: -1, Temperature: 300})
	if err != nil {
		t.Fatalf("LogLikelihood() error = %v", err)
	}
	if !math.IsInf(got, -1) {
		t.Errorf("negative viscosity: got %v, want -Inf", got)
	}
}

func TestLogLikelihood_ParameterIdentification(t *testing.T) {
	tr := testTrajectory(t)

	d0 := 2.3e-12
	c := Constants{Viscosity: 8.9e-4, Temperature: 293.0}
	// Radius chosen so Stokes-Einstein recovers d0 exactly.
	a := Boltzmann * c.Temperature / (2 * float64(tr.Dim()) * math.Pi * c.Viscosity * d0)

	viaD, err := LogLikelihood(d0, tr, UnknownD, Constants{})
	if err != nil {
		t.Fatalf("LogLikelihood(D) error = %v", err)
	}
	viaA, err := LogLikelihood(a, tr, UnknownRadius, c)
	if err != nil {
		t.Fatalf("LogLikelihood(a) error = %v", err)
	}

	if math.Abs(viaD-viaA) > 1e-9*math.Abs(viaD) {
		t.Errorf("likelihood via D = %v, via a = %v", viaD, viaA)
	}
}

func TestLogLikelihood_TranslationInvariant(t *testing.T) {
	tr := testTrajectory(t)
	shifted, err := tr.Translate(5, -3, 0.7)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}

	a, err := LogLikelihood(1e-1, tr, UnknownD, Constants{})
	if err != nil {
		t.Fatalf("LogLikelihood() error = %v", err)
	}
	b, err := LogLikelihood(1e-1, shifted, UnknownD, Constants{})
	if err != nil {
		t.Fatalf("LogLikelihood() error = %v", err)
	}
	if math.Abs(a-b) > 1e-9*math.Abs(a) {
		t.Errorf("likelihood changed under translation: %v vs %v", a, b)
	}
}

func TestParseUnknown(t *testing.T) {
	for name, want := range map[string]Unknown{
		"D": UnknownD, "a": UnknownRadius, "mu": UnknownViscosity, "T": UnknownTemperature,
	} {
		got, err := ParseUnknown(name)
		if err != nil || got != want {
			t.Errorf("ParseUnknown(%q) = %v, %v", name, got, err)
		}
	}

	if _, err := ParseUnknown("rho"); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("ParseUnknown(rho) error = %v, want %v", err, ErrInvalidParameter)
	}
}

func TestLogLikelihood_InvalidUnknown(t *testing.T) {
	tr := testTrajectory(t)
	if _, err := LogLikelihood(1, tr, Unknown(42), Constants{}); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("LogLikelihood(Unknown(42)) error = %v, want %v", err, ErrInvalidParameter)
	}
}

func TestStokesEinstein(t *testing.T) {
	// 1 um radius sphere in water at 293 K, 3D.
	d := StokesEinstein(3, 1e-6, 8.9e-4, 293)
	want := Boltzmann * 293 / (6 * math.Pi * 8.9e-4 * 1e-6)
	if math.Abs(d-want) > 1e-25 {
		t.Errorf("StokesEinstein = %v, want %v", d, want)
	}
}
