package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
)

type simulationRepository struct {
	mu          sync.RWMutex
	simulations map[types.SimulationID]*model.Simulation
	results     map[types.SimulationID]*model.SimulationResult
}

func newSimulationRepository() *simulationRepository {
	return &simulationRepository{
		simulations: make(map[types.SimulationID]*model.Simulation),
		results:     make(map[types.SimulationID]*model.SimulationResult),
	}
}

func (r *simulationRepository) Create(ctx context.Context, sim *model.Simulation) (*model.Simulation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sim.ID == "" {
		sim.ID = types.NewSimulationID()
	}
	if _, exists := r.simulations[sim.ID]; exists {
		return nil, goerr.New("simulation already exists", goerr.V("id", sim.ID))
	}

	r.simulations[sim.ID] = sim.Clone()
	return sim.Clone(), nil
}

func (r *simulationRepository) Get(ctx context.Context, id types.SimulationID) (*model.Simulation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sim, exists := r.simulations[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "simulation not found", goerr.V("id", id))
	}

	return sim.Clone(), nil
}

func (r *simulationRepository) Update(ctx context.Context, sim *model.Simulation) (*model.Simulation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.simulations[sim.ID]; !exists {
		return nil, goerr.Wrap(ErrNotFound, "simulation not found", goerr.V("id", sim.ID))
	}

	r.simulations[sim.ID] = sim.Clone()
	return sim.Clone(), nil
}

func (r *simulationRepository) ListByOrganization(ctx context.Context, orgID types.OrgID) ([]*model.Simulation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sims := make([]*model.Simulation, 0)
	for _, sim := range r.simulations {
		if sim.OrganizationID == orgID {
			sims = append(sims, sim.Clone())
		}
	}

	return sims, nil
}

// SaveResult stores the result and the simulation's final state in one
// critical section, replacing any previous result for the simulation.
func (r *simulationRepository) SaveResult(ctx context.Context, sim *model.Simulation, result *model.SimulationResult) (*model.SimulationResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.simulations[sim.ID]; !exists {
		return nil, goerr.Wrap(ErrNotFound, "simulation not found", goerr.V("id", sim.ID))
	}

	stored := *result
	r.simulations[sim.ID] = sim.Clone()
	r.results[sim.ID] = &stored

	returned := stored
	return &returned, nil
}

func (r *simulationRepository) GetResult(ctx context.Context, simulationID types.SimulationID) (*model.SimulationResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result, exists := r.results[simulationID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "simulation result not found", goerr.V("simulation_id", simulationID))
	}

	returned := *result
	return &returned, nil
}
