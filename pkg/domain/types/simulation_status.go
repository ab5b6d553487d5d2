package types

import "fmt"

// SimulationStatus represents the execution status of a simulation
type SimulationStatus string

const (
	SimulationStatusPending   SimulationStatus = "pending"
	SimulationStatusRunning   SimulationStatus = "running"
	SimulationStatusCompleted SimulationStatus = "completed"
	SimulationStatusFailed    SimulationStatus = "failed"
)

// AllSimulationStatuses returns all valid simulation statuses
func AllSimulationStatuses() []SimulationStatus {
	return []SimulationStatus{
		SimulationStatusPending,
		SimulationStatusRunning,
		SimulationStatusCompleted,
		SimulationStatusFailed,
	}
}

// IsValid checks if the simulation status is valid
func (s SimulationStatus) IsValid() bool {
	switch s {
	case SimulationStatusPending,
		SimulationStatusRunning,
		SimulationStatusCompleted,
		SimulationStatusFailed:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status is a terminal state
func (s SimulationStatus) IsTerminal() bool {
	return s == SimulationStatusCompleted || s == SimulationStatusFailed
}

// CanTransitionTo reports whether the status may move to next.
// Valid transitions: pending→running, running→completed, running→failed.
func (s SimulationStatus) CanTransitionTo(next SimulationStatus) bool {
	switch s {
	case SimulationStatusPending:
		return next == SimulationStatusRunning
	case SimulationStatusRunning:
		return next == SimulationStatusCompleted || next == SimulationStatusFailed
	default:
		return false
	}
}

// Normalize returns the status, treating empty as pending
func (s SimulationStatus) Normalize() SimulationStatus {
	if s == "" {
		return SimulationStatusPending
	}
	return s
}

// String returns the string representation of the simulation status
func (s SimulationStatus) String() string {
	return string(s)
}

// ParseSimulationStatus parses a string into a SimulationStatus
func ParseSimulationStatus(s string) (SimulationStatus, error) {
	status := SimulationStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid simulation status: %s", s)
	}
	return status, nil
}
