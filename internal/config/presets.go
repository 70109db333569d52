package config

// Presets covers common single-particle-tracking setups. Grid bounds
// bracket the Stokes-Einstein D of a micron-scale sphere in each medium.
var Presets = map[string]*Config{
	"water": {
		Unknown: "D", Prior: "Jeffreys",
		PriorLower: 1e-14, PriorUpper: 1e-10,
		Known: KnownConfig{Radius: 1e-6, Viscosity: 8.9e-4, Temperature: 293},
		Grid:  GridConfig{LowerLog10: -14, UpperLog10: -10, Intervals: 1000},
		CGW:   CGWConfig{MaxLag: 100, DownSample: 10},
	},
	"glycerol": {
		Unknown: "D", Prior: "Jeffreys",
		PriorLower: 1e-17, PriorUpper: 1e-13,
		Known: KnownConfig{Radius: 1e-6, Viscosity: 1.412, Temperature: 293},
		Grid:  GridConfig{LowerLog10: -17, UpperLog10: -13, Intervals: 1000},
		CGW:   CGWConfig{MaxLag: 100, DownSample: 10},
	},
	"viscosity": {
		Unknown: "mu", Prior: "Jeffreys",
		PriorLower: 1e-5, PriorUpper: 1e2,
		Known: KnownConfig{Radius: 1e-6, Temperature: 293},
		Grid:  GridConfig{LowerLog10: -5, UpperLog10: 2, Intervals: 1000},
		CGW:   CGWConfig{MaxLag: 100, DownSample: 10},
	},
}
