package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
)

type vendorRepository struct {
	mu      sync.RWMutex
	vendors map[types.VendorID]*model.Vendor
}

func newVendorRepository() *vendorRepository {
	return &vendorRepository{
		vendors: make(map[types.VendorID]*model.Vendor),
	}
}

func (r *vendorRepository) Create(ctx context.Context, vendor *model.Vendor) (*model.Vendor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if vendor.ID == "" {
		vendor.ID = types.NewVendorID()
	}
	if _, exists := r.vendors[vendor.ID]; exists {
		return nil, goerr.New("vendor already exists", goerr.V("id", vendor.ID))
	}

	r.vendors[vendor.ID] = vendor.Clone()
	return vendor.Clone(), nil
}

func (r *vendorRepository) Get(ctx context.Context, id types.VendorID) (*model.Vendor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	vendor, exists := r.vendors[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "vendor not found", goerr.V("id", id))
	}

	// Return a copy to prevent external modification
	return vendor.Clone(), nil
}

func (r *vendorRepository) Update(ctx context.Context, vendor *model.Vendor) (*model.Vendor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.vendors[vendor.ID]; !exists {
		return nil, goerr.Wrap(ErrNotFound, "vendor not found", goerr.V("id", vendor.ID))
	}

	r.vendors[vendor.ID] = vendor.Clone()
	return vendor.Clone(), nil
}

func (r *vendorRepository) Delete(ctx context.Context, id types.VendorID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.vendors[id]; !exists {
		return goerr.Wrap(ErrNotFound, "vendor not found", goerr.V("id", id))
	}

	delete(r.vendors, id)
	return nil
}

func (r *vendorRepository) ListByOrganization(ctx context.Context, orgID types.OrgID) ([]*model.Vendor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	vendors := make([]*model.Vendor, 0)
	for _, vendor := range r.vendors {
		if vendor.OrganizationID == orgID {
			vendors = append(vendors, vendor.Clone())
		}
	}

	return vendors, nil
}
