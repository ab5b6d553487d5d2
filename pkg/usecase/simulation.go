package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/briareus/pkg/domain/interfaces"
	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/model/config"
	"github.com/secmon-lab/briareus/pkg/domain/types"
	"github.com/secmon-lab/briareus/pkg/engine"
	"github.com/secmon-lab/briareus/pkg/utils/async"
	"github.com/secmon-lab/briareus/pkg/utils/logging"
)

// SimulationUseCase manages simulation requests and drives their execution
// through the engine. Execution is guarded by the simulation status: a
// running simulation is never executed concurrently, and a completed one
// only re-runs when explicitly forced.
type SimulationUseCase struct {
	repo       interfaces.Repository
	calcConfig *config.CalcConfig
	engineOpts []engine.Option
}

func NewSimulationUseCase(repo interfaces.Repository, cfg *config.CalcConfig, opts ...engine.Option) *SimulationUseCase {
	return &SimulationUseCase{
		repo:       repo,
		calcConfig: cfg,
		engineOpts: opts,
	}
}

// CreateSimulation validates and persists a simulation request in pending
// state. The target vendor must exist and belong to the same organization.
func (uc *SimulationUseCase) CreateSimulation(ctx context.Context, sim *model.Simulation) (*model.Simulation, error) {
	if sim.UseMonteCarlo && sim.MonteCarloIterations == 0 {
		sim.MonteCarloIterations = model.DefaultMonteCarloIterations
	}
	if err := sim.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid simulation")
	}

	vendor, err := uc.repo.Vendor().Get(ctx, sim.TargetVendorID)
	if err != nil {
		return nil, goerr.Wrap(err, "target vendor not found", goerr.V(VendorIDKey, sim.TargetVendorID))
	}
	if vendor.OrganizationID != sim.OrganizationID {
		return nil, goerr.New("target vendor belongs to a different organization",
			goerr.V(VendorIDKey, sim.TargetVendorID))
	}

	if sim.ID == "" {
		sim.ID = types.NewSimulationID()
	}
	sim.Status = types.SimulationStatusPending
	now := time.Now().UTC()
	sim.CreatedAt = now
	sim.UpdatedAt = now

	created, err := uc.repo.Simulation().Create(ctx, sim)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create simulation")
	}
	return created, nil
}

// GetSimulation returns the simulation by ID
func (uc *SimulationUseCase) GetSimulation(ctx context.Context, id types.SimulationID) (*model.Simulation, error) {
	sim, err := uc.repo.Simulation().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get simulation", goerr.V(SimulationIDKey, id))
	}
	return sim, nil
}

// ListSimulations returns all simulations of the organization
func (uc *SimulationUseCase) ListSimulations(ctx context.Context, orgID types.OrgID) ([]*model.Simulation, error) {
	sims, err := uc.repo.Simulation().ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list simulations")
	}
	return sims, nil
}

// GetResult returns the stored result of a simulation
func (uc *SimulationUseCase) GetResult(ctx context.Context, id types.SimulationID) (*model.SimulationResult, error) {
	result, err := uc.repo.Simulation().GetResult(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get simulation result", goerr.V(SimulationIDKey, id))
	}
	return result, nil
}

// Execute runs the simulation synchronously. A running simulation is
// rejected, and a completed one is rejected unless forceRerun is set;
// failed simulations may always re-run. Calculation errors mark the
// simulation failed with the error message recorded, and are returned to
// the caller.
func (uc *SimulationUseCase) Execute(ctx context.Context, id types.SimulationID, forceRerun bool) (*model.SimulationResult, error) {
	sim, err := uc.repo.Simulation().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get simulation", goerr.V(SimulationIDKey, id))
	}

	switch sim.Status.Normalize() {
	case types.SimulationStatusRunning:
		return nil, goerr.Wrap(ErrSimulationRunning, "cannot execute simulation",
			goerr.V(SimulationIDKey, id))
	case types.SimulationStatusCompleted:
		if !forceRerun {
			return nil, goerr.Wrap(ErrSimulationCompleted, "use force rerun to execute again",
				goerr.V(SimulationIDKey, id))
		}
	}

	startedAt := time.Now().UTC()
	sim.Status = types.SimulationStatusRunning
	sim.StartedAt = &startedAt
	sim.CompletedAt = nil
	sim.ErrorMessage = ""
	sim.UpdatedAt = startedAt
	if sim, err = uc.repo.Simulation().Update(ctx, sim); err != nil {
		return nil, goerr.Wrap(err, "failed to mark simulation running", goerr.V(SimulationIDKey, id))
	}

	result, runErr := uc.run(ctx, sim)

	completedAt := time.Now().UTC()
	sim.CompletedAt = &completedAt
	sim.ExecutionTime = completedAt.Sub(startedAt).Seconds()
	sim.UpdatedAt = completedAt

	if runErr != nil {
		sim.Status = types.SimulationStatusFailed
		sim.ErrorMessage = runErr.Error()
		if _, err := uc.repo.Simulation().Update(ctx, sim); err != nil {
			logging.From(ctx).Error("failed to mark simulation failed",
				"simulation_id", id, "error", err)
		}
		return nil, goerr.Wrap(runErr, "simulation execution failed", goerr.V(SimulationIDKey, id))
	}

	sim.Status = types.SimulationStatusCompleted
	result.ID = uuid.New().String()
	result.SimulationID = sim.ID
	result.CreatedAt = completedAt

	saved, err := uc.repo.Simulation().SaveResult(ctx, sim, result)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to save simulation result", goerr.V(SimulationIDKey, id))
	}

	logging.From(ctx).Info("simulation completed",
		"simulation_id", id,
		"scenario_type", sim.ScenarioType,
		"total_impact", saved.TotalFinancialImpact.String(),
		"execution_time", sim.ExecutionTime)

	return saved, nil
}

// ExecuteAsync runs the simulation in a background goroutine. Errors are
// recorded on the simulation and logged; callers poll the status.
func (uc *SimulationUseCase) ExecuteAsync(ctx context.Context, id types.SimulationID, forceRerun bool) {
	async.Dispatch(ctx, func(ctx context.Context) error {
		_, err := uc.Execute(ctx, id, forceRerun)
		return err
	})
}

// run assembles the engine input from the organization's stored state and
// executes the scenario
func (uc *SimulationUseCase) run(ctx context.Context, sim *model.Simulation) (*model.SimulationResult, error) {
	if uc.calcConfig == nil {
		return nil, goerr.New("calculation config is not set")
	}

	vendor, err := uc.repo.Vendor().Get(ctx, sim.TargetVendorID)
	if err != nil {
		return nil, goerr.Wrap(err, "target vendor not found", goerr.V(VendorIDKey, sim.TargetVendorID))
	}

	vendors, err := uc.repo.Vendor().ListByOrganization(ctx, sim.OrganizationID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list vendors")
	}
	processes, err := uc.repo.BusinessProcess().ListByOrganization(ctx, sim.OrganizationID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list business processes")
	}

	eng := engine.New(uc.calcConfig, uc.engineOpts...)
	return eng.Run(ctx, &engine.Input{
		Vendor:               vendor,
		Processes:            processes,
		Graph:                engine.NewDependencyGraph(vendors),
		ScenarioType:         sim.ScenarioType,
		Parameters:           sim.Parameters,
		UseMonteCarlo:        sim.UseMonteCarlo,
		MonteCarloIterations: sim.MonteCarloIterations,
	})
}
