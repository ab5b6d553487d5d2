package memory

import (
	"errors"

	"github.com/secmon-lab/briareus/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("not found")

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is an in-memory repository for development and tests
type Memory struct {
	vendor     *vendorRepository
	process    *processRepository
	simulation *simulationRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		vendor:     newVendorRepository(),
		process:    newProcessRepository(),
		simulation: newSimulationRepository(),
	}
}

func (m *Memory) Vendor() interfaces.VendorRepository {
	return m.vendor
}

func (m *Memory) BusinessProcess() interfaces.BusinessProcessRepository {
	return m.process
}

func (m *Memory) Simulation() interfaces.SimulationRepository {
	return m.simulation
}
