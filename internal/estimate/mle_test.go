package estimate

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/ptrack/internal/inference"
	"github.com/san-kum/ptrack/internal/synth"
)

func TestMLE_RecoversKnownD(t *testing.T) {
	d0 := 1e-12
	tr, err := synth.Walk(3, 400, d0, 0, 1.0, 11)
	if err != nil {
		t.Fatalf("synth.Walk() error = %v", err)
	}

	res, err := MLE(context.Background(), tr, inference.UnknownD, inference.Constants{}, -13, -11, 201)
	if err != nil {
		t.Fatalf("MLE() error = %v", err)
	}

	if len(res.Grid) != 201 || len(res.LogLik) != 201 {
		t.Fatalf("grid/loglik lengths = %d/%d, want 201", len(res.Grid), len(res.LogLik))
	}
	if res.Grid[0] >= res.Grid[200] {
		t.Error("grid not increasing")
	}

	// 400 steps in 3D pin D to a few percent; allow far more.
	if res.Best < 0.7*d0 || res.Best > 1.4*d0 {
		t.Errorf("Best = %v, want near %v", res.Best, d0)
	}
	if res.CIMin > res.Best || res.CIMax < res.Best {
		t.Errorf("band [%v, %v] does not contain Best %v", res.CIMin, res.CIMax, res.Best)
	}
	if res.EdgeTouching() {
		t.Errorf("band [%v, %v] touches grid edge", res.CIMin, res.CIMax)
	}
}

func TestMLE_BandThreshold(t *testing.T) {
	tr, err := synth.Walk(2, 200, 5e-12, 0, 1.0, 3)
	if err != nil {
		t.Fatalf("synth.Walk() error = %v", err)
	}

	res, err := MLE(context.Background(), tr, inference.UnknownD, inference.Constants{}, -13, -11, 101)
	if err != nil {
		t.Fatalf("MLE() error = %v", err)
	}

	threshold := res.LogLik[res.BestIndex] - 0.5
	for i, d := range res.Grid {
		inBand := d >= res.CIMin && d <= res.CIMax
		above := res.LogLik[i] >= threshold
		if inBand && !above {
			t.Errorf("grid point %d inside band but below threshold", i)
		}
		if !inBand && above && !res.Disjoint {
			t.Errorf("grid point %d above threshold outside band with Disjoint unset", i)
		}
	}
}

func TestMLE_Deterministic(t *testing.T) {
	tr, err := synth.Walk(1, 100, 2e-12, 1e-9, 1.0, 9)
	if err != nil {
		t.Fatalf("synth.Walk() error = %v", err)
	}

	a, err := MLE(context.Background(), tr, inference.UnknownD, inference.Constants{}, -13, -11, 64)
	if err != nil {
		t.Fatalf("MLE() error = %v", err)
	}
	b, err := MLE(context.Background(), tr, inference.UnknownD, inference.Constants{}, -13, -11, 64)
	if err != nil {
		t.Fatalf("MLE() error = %v", err)
	}

	if a.Best != b.Best || a.CIMin != b.CIMin || a.CIMax != b.CIMax {
		t.Error("repeated grid search disagrees")
	}
	for i := range a.LogLik {
		if a.LogLik[i] != b.LogLik[i] {
			t.Fatalf("loglik[%d] differs between runs", i)
		}
	}
}

func TestMLE_GridTooSmall(t *testing.T) {
	tr, err := synth.Walk(1, 10, 1e-12, 0, 1.0, 1)
	if err != nil {
		t.Fatalf("synth.Walk() error = %v", err)
	}

	if _, err := MLE(context.Background(), tr, inference.UnknownD, inference.Constants{}, -13, -11, 1); !errors.Is(err, ErrGridTooSmall) {
		t.Errorf("MLE(intervals=1) error = %v, want %v", err, ErrGridTooSmall)
	}
}

func TestMLE_Canceled(t *testing.T) {
	tr, err := synth.Walk(1, 10, 1e-12, 0, 1.0, 1)
	if err != nil {
		t.Fatalf("synth.Walk() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := MLE(ctx, tr, inference.UnknownD, inference.Constants{}, -13, -11, 64); !errors.Is(err, context.Canceled) {
		t.Errorf("MLE(canceled) error = %v, want context.Canceled", err)
	}
}

func TestMLE_ParameterIdentification(t *testing.T) {
	d0 := 1e-12
	tr, err := synth.Walk(3, 300, d0, 0, 1.0, 21)
	if err != nil {
		t.Fatalf("synth.Walk() error = %v", err)
	}

	c := inference.Constants{Viscosity: 8.9e-4, Temperature: 293}
	a0 := inference.Boltzmann * c.Temperature / (2 * 3 * math.Pi * c.Viscosity * d0)

	res, err := MLE(context.Background(), tr, inference.UnknownRadius, c, math.Log10(a0)-1, math.Log10(a0)+1, 201)
	if err != nil {
		t.Fatalf("MLE() error = %v", err)
	}
	if res.Best < 0.7*a0 || res.Best > 1.4*a0 {
		t.Errorf("Best radius = %v, want near %v", res.Best, a0)
	}
}
