package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/briareus/pkg/domain/types"
)

const (
	// MinMonteCarloIterations and DefaultMonteCarloIterations bound the
	// probabilistic refinement. The upper bound is configuration-driven.
	MinMonteCarloIterations     = 100
	DefaultMonteCarloIterations = 1000
)

// Simulation represents a single risk simulation request and its execution
// state. The status field acts as a mutual-exclusion marker: a simulation
// must never be executed while already running.
type Simulation struct {
	ID             types.SimulationID
	OrganizationID types.OrgID
	Name           string
	Description    string

	ScenarioType   types.ScenarioType
	TargetVendorID types.VendorID
	Parameters     map[string]any

	UseMonteCarlo        bool
	MonteCarloIterations int

	Status        types.SimulationStatus
	StartedAt     *time.Time
	CompletedAt   *time.Time
	ExecutionTime float64 // seconds
	ErrorMessage  string

	Tags []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the simulation request fields
func (s *Simulation) Validate() error {
	if s.Name == "" {
		return goerr.New("simulation name is required")
	}
	if !s.ScenarioType.IsValid() {
		return goerr.New("invalid scenario type", goerr.V("scenario_type", s.ScenarioType))
	}
	if s.TargetVendorID == "" {
		return goerr.New("target vendor is required")
	}
	if s.UseMonteCarlo && s.MonteCarloIterations < MinMonteCarloIterations {
		return goerr.New("monte carlo iterations below minimum",
			goerr.V("iterations", s.MonteCarloIterations),
			goerr.V("min", MinMonteCarloIterations))
	}
	return nil
}

// Clone returns a deep copy of the simulation
func (s *Simulation) Clone() *Simulation {
	clone := *s
	if s.Parameters != nil {
		clone.Parameters = make(map[string]any, len(s.Parameters))
		for k, v := range s.Parameters {
			clone.Parameters[k] = v
		}
	}
	clone.Tags = append([]string(nil), s.Tags...)
	if s.StartedAt != nil {
		t := *s.StartedAt
		clone.StartedAt = &t
	}
	if s.CompletedAt != nil {
		t := *s.CompletedAt
		clone.CompletedAt = &t
	}
	return &clone
}
