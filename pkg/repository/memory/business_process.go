package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
)

type processRepository struct {
	mu        sync.RWMutex
	processes map[types.ProcessID]*model.BusinessProcess
}

func newProcessRepository() *processRepository {
	return &processRepository{
		processes: make(map[types.ProcessID]*model.BusinessProcess),
	}
}

func (r *processRepository) Create(ctx context.Context, process *model.BusinessProcess) (*model.BusinessProcess, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if process.ID == "" {
		process.ID = types.NewProcessID()
	}
	if _, exists := r.processes[process.ID]; exists {
		return nil, goerr.New("business process already exists", goerr.V("id", process.ID))
	}

	r.processes[process.ID] = process.Clone()
	return process.Clone(), nil
}

func (r *processRepository) Get(ctx context.Context, id types.ProcessID) (*model.BusinessProcess, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	process, exists := r.processes[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "business process not found", goerr.V("id", id))
	}

	return process.Clone(), nil
}

func (r *processRepository) Update(ctx context.Context, process *model.BusinessProcess) (*model.BusinessProcess, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.processes[process.ID]; !exists {
		return nil, goerr.Wrap(ErrNotFound, "business process not found", goerr.V("id", process.ID))
	}

	r.processes[process.ID] = process.Clone()
	return process.Clone(), nil
}

func (r *processRepository) Delete(ctx context.Context, id types.ProcessID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.processes[id]; !exists {
		return goerr.Wrap(ErrNotFound, "business process not found", goerr.V("id", id))
	}

	delete(r.processes, id)
	return nil
}

func (r *processRepository) ListByOrganization(ctx context.Context, orgID types.OrgID) ([]*model.BusinessProcess, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	processes := make([]*model.BusinessProcess, 0)
	for _, process := range r.processes {
		if process.OrganizationID == orgID {
			processes = append(processes, process.Clone())
		}
	}

	return processes, nil
}

func (r *processRepository) ListByVendor(ctx context.Context, orgID types.OrgID, vendorID types.VendorID) ([]*model.BusinessProcess, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	processes := make([]*model.BusinessProcess, 0)
	for _, process := range r.processes {
		if process.OrganizationID == orgID && process.DependsOn(vendorID) {
			processes = append(processes, process.Clone())
		}
	}

	return processes, nil
}
