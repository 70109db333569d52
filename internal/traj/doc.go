// Package traj holds positional time-series data for a single tracked
// particle and derives displacement statistics from it.
//
// A [Trajectory] is an immutable sequence of measurement records, each
// record being 1-3 spatial coordinates, a positional measurement
// uncertainty, and a timestamp. Derived quantities are recomputed on
// demand:
//
//   - [Trajectory.Displacements]: consecutive step lengths with lag times
//     and combined measurement-noise variances
//   - [Trajectory.LagSteps]: generalized i-step displacements for MSD work
//
// Timestamps are expected to be strictly increasing; the constructor does
// not enforce this (see [Trajectory.TimesIncreasing] for callers that
// ingest untrusted data).
package traj
