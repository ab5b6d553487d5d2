package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/briareus/pkg/domain/interfaces"
	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
)

// ProcessUseCase manages business processes
type ProcessUseCase struct {
	repo interfaces.Repository
}

func NewProcessUseCase(repo interfaces.Repository) *ProcessUseCase {
	return &ProcessUseCase{
		repo: repo,
	}
}

func validateProcess(p *model.BusinessProcess) error {
	if p.Name == "" {
		return goerr.New("process name is required")
	}
	if p.CriticalityLevel < 1 || p.CriticalityLevel > 5 {
		return goerr.New("criticality level must be between 1 and 5",
			goerr.V("level", p.CriticalityLevel))
	}
	if p.HourlyOperatingCost.IsNegative() {
		return goerr.New("hourly operating cost must not be negative",
			goerr.V("cost", p.HourlyOperatingCost))
	}
	if p.AnnualRevenueContribution.IsNegative() {
		return goerr.New("annual revenue contribution must not be negative",
			goerr.V("revenue", p.AnnualRevenueContribution))
	}
	return nil
}

// CreateProcess validates and persists a business process. Every referenced
// vendor must exist.
func (uc *ProcessUseCase) CreateProcess(ctx context.Context, process *model.BusinessProcess) (*model.BusinessProcess, error) {
	if err := validateProcess(process); err != nil {
		return nil, goerr.Wrap(err, "invalid business process")
	}
	for _, id := range process.DependentVendorIDs {
		if _, err := uc.repo.Vendor().Get(ctx, id); err != nil {
			return nil, goerr.Wrap(err, "dependent vendor not found", goerr.V(VendorIDKey, id))
		}
	}

	if process.ID == "" {
		process.ID = types.NewProcessID()
	}
	now := time.Now().UTC()
	process.CreatedAt = now
	process.UpdatedAt = now

	created, err := uc.repo.BusinessProcess().Create(ctx, process)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create business process")
	}
	return created, nil
}

// UpdateProcess validates and persists changes to a business process
func (uc *ProcessUseCase) UpdateProcess(ctx context.Context, process *model.BusinessProcess) (*model.BusinessProcess, error) {
	if err := validateProcess(process); err != nil {
		return nil, goerr.Wrap(err, "invalid business process")
	}

	existing, err := uc.repo.BusinessProcess().Get(ctx, process.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get business process", goerr.V("process_id", process.ID))
	}
	for _, id := range process.DependentVendorIDs {
		if _, err := uc.repo.Vendor().Get(ctx, id); err != nil {
			return nil, goerr.Wrap(err, "dependent vendor not found", goerr.V(VendorIDKey, id))
		}
	}

	process.CreatedAt = existing.CreatedAt
	process.UpdatedAt = time.Now().UTC()

	updated, err := uc.repo.BusinessProcess().Update(ctx, process)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update business process", goerr.V("process_id", process.ID))
	}
	return updated, nil
}

// GetProcess returns the business process by ID
func (uc *ProcessUseCase) GetProcess(ctx context.Context, id types.ProcessID) (*model.BusinessProcess, error) {
	process, err := uc.repo.BusinessProcess().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get business process", goerr.V("process_id", id))
	}
	return process, nil
}

// ListProcesses returns all business processes of the organization
func (uc *ProcessUseCase) ListProcesses(ctx context.Context, orgID types.OrgID) ([]*model.BusinessProcess, error) {
	processes, err := uc.repo.BusinessProcess().ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list business processes")
	}
	return processes, nil
}

// DeleteProcess removes the business process
func (uc *ProcessUseCase) DeleteProcess(ctx context.Context, id types.ProcessID) error {
	if err := uc.repo.BusinessProcess().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete business process", goerr.V("process_id", id))
	}
	return nil
}
