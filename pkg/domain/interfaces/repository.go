package interfaces

import (
	"context"

	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
)

// Repository defines the interface for data persistence
type Repository interface {
	Vendor() VendorRepository
	BusinessProcess() BusinessProcessRepository
	Simulation() SimulationRepository
}

// VendorRepository persists vendors and their dependency edges
type VendorRepository interface {
	Create(ctx context.Context, vendor *model.Vendor) (*model.Vendor, error)
	Get(ctx context.Context, id types.VendorID) (*model.Vendor, error)
	Update(ctx context.Context, vendor *model.Vendor) (*model.Vendor, error)
	Delete(ctx context.Context, id types.VendorID) error
	ListByOrganization(ctx context.Context, orgID types.OrgID) ([]*model.Vendor, error)
}

// BusinessProcessRepository persists business processes
type BusinessProcessRepository interface {
	Create(ctx context.Context, process *model.BusinessProcess) (*model.BusinessProcess, error)
	Get(ctx context.Context, id types.ProcessID) (*model.BusinessProcess, error)
	Update(ctx context.Context, process *model.BusinessProcess) (*model.BusinessProcess, error)
	Delete(ctx context.Context, id types.ProcessID) error
	ListByOrganization(ctx context.Context, orgID types.OrgID) ([]*model.BusinessProcess, error)
	// ListByVendor returns the organization's processes whose dependent
	// vendors include the given vendor
	ListByVendor(ctx context.Context, orgID types.OrgID, vendorID types.VendorID) ([]*model.BusinessProcess, error)
}

// SimulationRepository persists simulations and their results. SaveResult
// must atomically persist the result together with the simulation's status
// update: either both persist or neither does. A prior result for the same
// simulation is replaced, not appended.
type SimulationRepository interface {
	Create(ctx context.Context, sim *model.Simulation) (*model.Simulation, error)
	Get(ctx context.Context, id types.SimulationID) (*model.Simulation, error)
	Update(ctx context.Context, sim *model.Simulation) (*model.Simulation, error)
	ListByOrganization(ctx context.Context, orgID types.OrgID) ([]*model.Simulation, error)
	SaveResult(ctx context.Context, sim *model.Simulation, result *model.SimulationResult) (*model.SimulationResult, error)
	GetResult(ctx context.Context, simulationID types.SimulationID) (*model.SimulationResult, error)
}
