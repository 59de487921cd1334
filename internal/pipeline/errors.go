package pipeline

import "errors"

// Builder errors. Grid-construction failures are wrapped from the sampling
// package's sentinels instead.
var (
	// ErrNotReady indicates a builder invoked before its prerequisites.
	ErrNotReady = errors.New("pipeline: required input not ready")

	// ErrWavenumberBounds indicates wavenumber boundaries derivable from
	// neither the wavenumber nor the wavelength hints.
	ErrWavenumberBounds = errors.New("pipeline: wavenumber boundary not provided")

	// ErrNonPositiveFactor indicates a unit factor that must be positive.
	ErrNonPositiveFactor = errors.New("pipeline: unit factor must be positive")

	// ErrTemperatureRange indicates a projected layer temperature outside
	// the line list's tabulated bounds.
	ErrTemperatureRange = errors.New("pipeline: projected temperature outside line-list bounds")
)
