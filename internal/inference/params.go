package inference

import (
	"fmt"
	"math"
)

// Boltzmann is the Boltzmann constant in J/K (CODATA exact value).
const Boltzmann = 1.380649e-23

// Unknown selects which physical parameter a likelihood evaluation treats
// as the free variable. The remaining quantities come from Constants.
type Unknown int

const (
	UnknownD Unknown = iota // diffusion coefficient
	UnknownRadius
	UnknownViscosity
	UnknownTemperature
)

func (u Unknown) String() string {
	switch u {
	case UnknownD:
		return "D"
	case UnknownRadius:
		return "a"
	case UnknownViscosity:
		return "mu"
	case UnknownTemperature:
		return "T"
	}
	return fmt.Sprintf("Unknown(%d)", int(u))
}

// ParseUnknown resolves a parameter name at the boundary. Valid names are
// D, a, mu, and T.
func ParseUnknown(name string) (Unknown, error) {
	switch name {
	case "D":
		return UnknownD, nil
	case "a":
		return UnknownRadius, nil
	case "mu":
		return UnknownViscosity, nil
	case "T":
		return UnknownTemperature, nil
	}
	return 0, fmt.Errorf("%w: got %q", ErrInvalidParameter, name)
}

// Constants carries the known physical quantities when the unknown is not
// the diffusion coefficient itself. Only the two companions of the unknown
// are read: radius and viscosity for unknown T, and so on.
type Constants struct {
	Radius      float64 // particle radius a, m
	Viscosity   float64 // dynamic viscosity mu, Pa*s
	Temperature float64 // T, K
}

// StokesEinstein derives the diffusion coefficient from the physical
// triple: D = kB*T / (2*ndim*pi*mu*a).
func StokesEinstein(ndim int, a, mu, T float64) float64 {
	return Boltzmann * T / (2 * float64(ndim) * math.Pi * mu * a)
}

// resolveD maps the free parameter theta to a diffusion coefficient.
// Non-positive physical quantities yield -Inf probability downstream, so
// a negative D is returned as-is rather than rejected here.
func resolveD(theta float64, unknown Unknown, c Constants, ndim int) (float64, error) {
	switch unknown {
	case UnknownD:
		return theta, nil
	case UnknownRadius:
		return StokesEinstein(ndim, theta, c.Viscosity, c.Temperature), nil
	case UnknownViscosity:
		return StokesEinstein(ndim, c.Radius, theta, c.Temperature), nil
	case UnknownTemperature:
		return StokesEinstein(ndim, c.Radius, c.Viscosity, theta), nil
	}
	return 0, fmt.Errorf("%w: got %v", ErrInvalidParameter, unknown)
}

// feasible reports whether every physical quantity entering the model is
// strictly positive.
func feasible(theta float64, unknown Unknown, c Constants) bool {
	if theta <= 0 {
		return false
	}
	switch unknown {
	case UnknownRadius:
		return c.Viscosity > 0 && c.Temperature > 0
	case UnknownViscosity:
		return c.Radius > 0 && c.Temperature > 0
	case UnknownTemperature:
		return c.Radius > 0 && c.Viscosity > 0
	}
	return true
}
