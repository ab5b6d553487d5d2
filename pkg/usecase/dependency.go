package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/briareus/pkg/domain/types"
	"github.com/secmon-lab/briareus/pkg/engine"
)

// TraceDependencyChain walks the organization's vendor dependency graph
// transitively from the given vendor and returns every reachable vendor
// with its depth and decaying impact multiplier. maxDepth <= 0 applies the
// default bound.
func (uc *VendorUseCase) TraceDependencyChain(ctx context.Context, vendorID types.VendorID, maxDepth int) ([]engine.ChainEntry, error) {
	vendor, err := uc.repo.Vendor().Get(ctx, vendorID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get vendor", goerr.V(VendorIDKey, vendorID))
	}

	vendors, err := uc.repo.Vendor().ListByOrganization(ctx, vendor.OrganizationID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list vendors")
	}

	graph := engine.NewDependencyGraph(vendors)
	return graph.TraceDependencyChain(vendorID, maxDepth), nil
}
