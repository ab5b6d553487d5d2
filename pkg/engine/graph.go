package engine

import (
	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
)

// DefaultMaxChainDepth bounds the transitive dependency trace
const DefaultMaxChainDepth = 5

// chainDecayFactor is the per-level impact decay of the dependency trace
const chainDecayFactor = 0.8

// DependencyGraph is an owned adjacency snapshot of the vendor dependency
// graph. Traversals operate over this snapshot rather than live entity
// references, so there is no shared state to mutate mid-walk. The edge set
// is a general directed graph and may contain cycles.
type DependencyGraph struct {
	vendors      map[types.VendorID]*model.Vendor
	dependents   map[types.VendorID][]types.VendorID // vendors the key relies on
	dependencyOf map[types.VendorID][]types.VendorID // vendors relying on the key
}

// NewDependencyGraph builds an adjacency snapshot from the given vendors.
// Edges referencing vendors outside the set are dropped. Iteration order
// follows the order edges appear on the vendor records, keeping traversals
// deterministic.
func NewDependencyGraph(vendors []*model.Vendor) *DependencyGraph {
	g := &DependencyGraph{
		vendors:      make(map[types.VendorID]*model.Vendor, len(vendors)),
		dependents:   make(map[types.VendorID][]types.VendorID),
		dependencyOf: make(map[types.VendorID][]types.VendorID),
	}

	for _, v := range vendors {
		g.vendors[v.ID] = v
	}
	for _, v := range vendors {
		for _, dep := range v.DependentVendorIDs {
			if _, ok := g.vendors[dep]; !ok {
				continue
			}
			g.dependents[v.ID] = append(g.dependents[v.ID], dep)
			g.dependencyOf[dep] = append(g.dependencyOf[dep], v.ID)
		}
	}

	return g
}

// Vendor returns the vendor record for the given ID, or nil if absent
func (g *DependencyGraph) Vendor(id types.VendorID) *model.Vendor {
	return g.vendors[id]
}

// Dependents returns the vendors the given vendor directly relies on
func (g *DependencyGraph) Dependents(id types.VendorID) []*model.Vendor {
	return g.resolve(g.dependents[id])
}

// DependencyOf returns the vendors that directly rely on the given vendor
func (g *DependencyGraph) DependencyOf(id types.VendorID) []*model.Vendor {
	return g.resolve(g.dependencyOf[id])
}

func (g *DependencyGraph) resolve(ids []types.VendorID) []*model.Vendor {
	vendors := make([]*model.Vendor, 0, len(ids))
	for _, id := range ids {
		if v, ok := g.vendors[id]; ok {
			vendors = append(vendors, v)
		}
	}
	return vendors
}

// ChainEntry is one vendor reached by the transitive dependency trace
type ChainEntry struct {
	Vendor           *model.Vendor
	Depth            int
	ImpactMultiplier float64
}

// TraceDependencyChain walks the dependency graph transitively from the
// given vendor, bounded by maxDepth (DefaultMaxChainDepth when <= 0).
// Each reachable vendor is assigned its depth and a decaying impact
// multiplier of 0.8^depth. A visited set keyed by vendor ID guards against
// cycles: a vendor already seen on the traversal is never re-entered, so
// circular dependency edges truncate silently instead of recursing forever.
func (g *DependencyGraph) TraceDependencyChain(rootID types.VendorID, maxDepth int) []ChainEntry {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxChainDepth
	}

	visited := make(map[types.VendorID]struct{})
	var chain []ChainEntry

	var walk func(id types.VendorID, depth int, multiplier float64)
	walk = func(id types.VendorID, depth int, multiplier float64) {
		if depth > maxDepth {
			return
		}
		if _, seen := visited[id]; seen {
			return
		}
		vendor, ok := g.vendors[id]
		if !ok {
			return
		}

		visited[id] = struct{}{}
		chain = append(chain, ChainEntry{
			Vendor:           vendor,
			Depth:            depth,
			ImpactMultiplier: multiplier,
		})

		for _, dep := range g.dependents[id] {
			walk(dep, depth+1, multiplier*chainDecayFactor)
		}
	}

	walk(rootID, 0, 1.0)
	return chain
}
