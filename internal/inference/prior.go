package inference

import (
	"fmt"
	"math"
)

// Prior evaluates a log probability density over a bounded support.
// Values outside the support map to -Inf.
type Prior interface {
	LogDensity(x float64) float64
}

// Jeffreys is the scale-invariant prior p(x) = 1/(x*ln(upper/lower)) on
// (lower, upper), the standard choice for strictly positive scale
// parameters such as D.
type Jeffreys struct {
	Lower, Upper float64
}

func (p Jeffreys) LogDensity(x float64) float64 {
	if x <= p.Lower || x >= p.Upper || x <= 0 {
		return math.Inf(-1)
	}
	return -math.Log(x) - math.Log(math.Log(p.Upper/p.Lower))
}

// Uniform is the flat prior p(x) = 1/(upper-lower) on (lower, upper).
type Uniform struct {
	Lower, Upper float64
}

func (p Uniform) LogDensity(x float64) float64 {
	if x <= p.Lower || x >= p.Upper {
		return math.Inf(-1)
	}
	return -math.Log(p.Upper - p.Lower)
}

// Family is a closed enumeration of supported prior families.
type Family int

const (
	FamilyJeffreys Family = iota
	FamilyUniform
)

func (f Family) String() string {
	switch f {
	case FamilyJeffreys:
		return "Jeffreys"
	case FamilyUniform:
		return "Uniform"
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// ParseFamily resolves a prior family name at the boundary.
func ParseFamily(name string) (Family, error) {
	switch name {
	case "Jeffreys":
		return FamilyJeffreys, nil
	case "Uniform":
		return FamilyUniform, nil
	}
	return 0, fmt.Errorf("%w: got %q", ErrUnsupportedPrior, name)
}

// LogPrior evaluates the named family's log density at theta over
// (lower, upper).
func LogPrior(theta, lower, upper float64, f Family) (float64, error) {
	p, err := NewPrior(f, lower, upper)
	if err != nil {
		return 0, err
	}
	return p.LogDensity(theta), nil
}

// NewPrior builds a prior of the given family over (lower, upper).
func NewPrior(f Family, lower, upper float64) (Prior, error) {
	switch f {
	case FamilyJeffreys:
		return Jeffreys{Lower: lower, Upper: upper}, nil
	case FamilyUniform:
		return Uniform{Lower: lower, Upper: upper}, nil
	}
	return nil, fmt.Errorf("%w: got %v", ErrUnsupportedPrior, f)
}
