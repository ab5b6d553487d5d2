package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Execution state errors
	ErrSimulationRunning   = errors.New("simulation is already running")
	ErrSimulationCompleted = errors.New("simulation is already completed")
)

// Context keys for error values
const (
	SimulationIDKey = "simulation_id"
	VendorIDKey     = "vendor_id"
)
