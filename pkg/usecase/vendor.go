package usecase

import (
	"context"
	"slices"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/briareus/pkg/domain/interfaces"
	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
)

// VendorUseCase manages vendors and keeps their risk scores and dependency
// edges consistent. Callers set DependentVendorIDs only; the reverse
// DependencyOfIDs lists are maintained here so both directions always agree.
type VendorUseCase struct {
	repo interfaces.Repository
}

func NewVendorUseCase(repo interfaces.Repository) *VendorUseCase {
	return &VendorUseCase{
		repo: repo,
	}
}

// CreateVendor validates the vendor, derives its risk score and persists
// it. Every referenced dependency must already exist.
func (uc *VendorUseCase) CreateVendor(ctx context.Context, vendor *model.Vendor) (*model.Vendor, error) {
	if err := vendor.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid vendor")
	}
	if err := uc.checkDependenciesExist(ctx, vendor.DependentVendorIDs); err != nil {
		return nil, err
	}

	if vendor.ID == "" {
		vendor.ID = types.NewVendorID()
	}
	now := time.Now().UTC()
	vendor.CreatedAt = now
	vendor.UpdatedAt = now
	vendor.DependencyOfIDs = nil

	// Risk score is derived synchronously so a vendor is never persisted
	// with a stale score
	vendor.RecalculateRiskScore()

	created, err := uc.repo.Vendor().Create(ctx, vendor)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create vendor")
	}

	if err := uc.addReverseEdges(ctx, created.ID, created.DependentVendorIDs); err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateVendor validates and persists the vendor, recomputing its risk
// score and reconciling reverse dependency edges against the stored state.
func (uc *VendorUseCase) UpdateVendor(ctx context.Context, vendor *model.Vendor) (*model.Vendor, error) {
	if err := vendor.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid vendor")
	}

	existing, err := uc.repo.Vendor().Get(ctx, vendor.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get vendor", goerr.V(VendorIDKey, vendor.ID))
	}

	if err := uc.checkDependenciesExist(ctx, vendor.DependentVendorIDs); err != nil {
		return nil, err
	}

	vendor.CreatedAt = existing.CreatedAt
	vendor.UpdatedAt = time.Now().UTC()
	vendor.DependencyOfIDs = existing.DependencyOfIDs
	vendor.RecalculateRiskScore()

	updated, err := uc.repo.Vendor().Update(ctx, vendor)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update vendor", goerr.V(VendorIDKey, vendor.ID))
	}

	added, removed := diffIDs(existing.DependentVendorIDs, updated.DependentVendorIDs)
	if err := uc.addReverseEdges(ctx, updated.ID, added); err != nil {
		return nil, err
	}
	if err := uc.removeReverseEdges(ctx, updated.ID, removed); err != nil {
		return nil, err
	}

	return updated, nil
}

// GetVendor returns the vendor by ID
func (uc *VendorUseCase) GetVendor(ctx context.Context, id types.VendorID) (*model.Vendor, error) {
	vendor, err := uc.repo.Vendor().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get vendor", goerr.V(VendorIDKey, id))
	}
	return vendor, nil
}

// ListVendors returns all vendors of the organization
func (uc *VendorUseCase) ListVendors(ctx context.Context, orgID types.OrgID) ([]*model.Vendor, error) {
	vendors, err := uc.repo.Vendor().ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list vendors")
	}
	return vendors, nil
}

// DeleteVendor removes the vendor and strips it from the dependency edges
// of all remaining vendors in the organization.
func (uc *VendorUseCase) DeleteVendor(ctx context.Context, id types.VendorID) error {
	vendor, err := uc.repo.Vendor().Get(ctx, id)
	if err != nil {
		return goerr.Wrap(err, "failed to get vendor", goerr.V(VendorIDKey, id))
	}

	others, err := uc.repo.Vendor().ListByOrganization(ctx, vendor.OrganizationID)
	if err != nil {
		return goerr.Wrap(err, "failed to list vendors")
	}
	for _, other := range others {
		if other.ID == id {
			continue
		}
		deps := removeID(other.DependentVendorIDs, id)
		depOf := removeID(other.DependencyOfIDs, id)
		if len(deps) == len(other.DependentVendorIDs) && len(depOf) == len(other.DependencyOfIDs) {
			continue
		}
		other.DependentVendorIDs = deps
		other.DependencyOfIDs = depOf
		if _, err := uc.repo.Vendor().Update(ctx, other); err != nil {
			return goerr.Wrap(err, "failed to detach vendor edge", goerr.V(VendorIDKey, other.ID))
		}
	}

	if err := uc.repo.Vendor().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete vendor", goerr.V(VendorIDKey, id))
	}
	return nil
}

func (uc *VendorUseCase) checkDependenciesExist(ctx context.Context, ids []types.VendorID) error {
	for _, id := range ids {
		if _, err := uc.repo.Vendor().Get(ctx, id); err != nil {
			return goerr.Wrap(err, "dependent vendor not found", goerr.V(VendorIDKey, id))
		}
	}
	return nil
}

func (uc *VendorUseCase) addReverseEdges(ctx context.Context, from types.VendorID, to []types.VendorID) error {
	for _, id := range to {
		dep, err := uc.repo.Vendor().Get(ctx, id)
		if err != nil {
			return goerr.Wrap(err, "failed to get dependent vendor", goerr.V(VendorIDKey, id))
		}
		if slices.Contains(dep.DependencyOfIDs, from) {
			continue
		}
		dep.DependencyOfIDs = append(dep.DependencyOfIDs, from)
		if _, err := uc.repo.Vendor().Update(ctx, dep); err != nil {
			return goerr.Wrap(err, "failed to update dependency edge", goerr.V(VendorIDKey, id))
		}
	}
	return nil
}

func (uc *VendorUseCase) removeReverseEdges(ctx context.Context, from types.VendorID, to []types.VendorID) error {
	for _, id := range to {
		dep, err := uc.repo.Vendor().Get(ctx, id)
		if err != nil {
			return goerr.Wrap(err, "failed to get dependent vendor", goerr.V(VendorIDKey, id))
		}
		trimmed := removeID(dep.DependencyOfIDs, from)
		if len(trimmed) == len(dep.DependencyOfIDs) {
			continue
		}
		dep.DependencyOfIDs = trimmed
		if _, err := uc.repo.Vendor().Update(ctx, dep); err != nil {
			return goerr.Wrap(err, "failed to update dependency edge", goerr.V(VendorIDKey, id))
		}
	}
	return nil
}

func diffIDs(before, after []types.VendorID) (added, removed []types.VendorID) {
	for _, id := range after {
		if !slices.Contains(before, id) {
			added = append(added, id)
		}
	}
	for _, id := range before {
		if !slices.Contains(after, id) {
			removed = append(removed, id)
		}
	}
	return added, removed
}

func removeID(ids []types.VendorID, target types.VendorID) []types.VendorID {
	out := make([]types.VendorID, 0, len(ids))
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}
