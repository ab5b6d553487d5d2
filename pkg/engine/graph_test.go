package engine_test

import (
	"math"
	"testing"

	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
	"github.com/secmon-lab/briareus/pkg/engine"
)

func chainVendor(id string, deps ...string) *model.Vendor {
	v := &model.Vendor{
		ID:             types.VendorID(id),
		OrganizationID: "org-1",
		Name:           id,
	}
	for _, d := range deps {
		v.DependentVendorIDs = append(v.DependentVendorIDs, types.VendorID(d))
	}
	return v
}

func TestTraceDependencyChain(t *testing.T) {
	g := engine.NewDependencyGraph([]*model.Vendor{
		chainVendor("a", "b"),
		chainVendor("b", "c"),
		chainVendor("c"),
	})

	chain := g.TraceDependencyChain("a", 0)

	if len(chain) != 3 {
		t.Fatalf("chain length = %d, want 3", len(chain))
	}
	for i, want := range []struct {
		id         types.VendorID
		depth      int
		multiplier float64
	}{
		{"a", 0, 1.0},
		{"b", 1, 0.8},
		{"c", 2, 0.64},
	} {
		entry := chain[i]
		if entry.Vendor.ID != want.id {
			t.Errorf("chain[%d].Vendor.ID = %s, want %s", i, entry.Vendor.ID, want.id)
		}
		if entry.Depth != want.depth {
			t.Errorf("chain[%d].Depth = %d, want %d", i, entry.Depth, want.depth)
		}
		if math.Abs(entry.ImpactMultiplier-want.multiplier) > 1e-12 {
			t.Errorf("chain[%d].ImpactMultiplier = %v, want %v", i, entry.ImpactMultiplier, want.multiplier)
		}
	}
}

func TestTraceDependencyChainCycle(t *testing.T) {
	g := engine.NewDependencyGraph([]*model.Vendor{
		chainVendor("a", "b"),
		chainVendor("b", "a"),
	})

	chain := g.TraceDependencyChain("a", 0)

	if len(chain) != 2 {
		t.Fatalf("cycle trace length = %d, want 2", len(chain))
	}
	seen := map[types.VendorID]bool{}
	for _, entry := range chain {
		if seen[entry.Vendor.ID] {
			t.Errorf("vendor %s visited twice", entry.Vendor.ID)
		}
		seen[entry.Vendor.ID] = true
	}
}

func TestTraceDependencyChainMaxDepth(t *testing.T) {
	g := engine.NewDependencyGraph([]*model.Vendor{
		chainVendor("a", "b"),
		chainVendor("b", "c"),
		chainVendor("c", "d"),
		chainVendor("d"),
	})

	chain := g.TraceDependencyChain("a", 1)

	if len(chain) != 2 {
		t.Fatalf("bounded trace length = %d, want 2", len(chain))
	}
	for _, entry := range chain {
		if entry.Depth > 1 {
			t.Errorf("entry %s exceeds max depth: %d", entry.Vendor.ID, entry.Depth)
		}
	}
}

func TestTraceDependencyChainDefaultDepth(t *testing.T) {
	// Chain longer than the default bound
	vendors := []*model.Vendor{
		chainVendor("v0", "v1"),
		chainVendor("v1", "v2"),
		chainVendor("v2", "v3"),
		chainVendor("v3", "v4"),
		chainVendor("v4", "v5"),
		chainVendor("v5", "v6"),
		chainVendor("v6", "v7"),
		chainVendor("v7"),
	}
	g := engine.NewDependencyGraph(vendors)

	chain := g.TraceDependencyChain("v0", 0)

	want := engine.DefaultMaxChainDepth + 1
	if len(chain) != want {
		t.Errorf("default trace length = %d, want %d", len(chain), want)
	}
}

func TestNewDependencyGraphDropsUnknownEdges(t *testing.T) {
	g := engine.NewDependencyGraph([]*model.Vendor{
		chainVendor("a", "b", "ghost"),
		chainVendor("b"),
	})

	deps := g.Dependents("a")
	if len(deps) != 1 || deps[0].ID != "b" {
		t.Errorf("Dependents(a) = %v, want [b]", deps)
	}
}

func TestDependencyOf(t *testing.T) {
	g := engine.NewDependencyGraph([]*model.Vendor{
		chainVendor("a", "c"),
		chainVendor("b", "c"),
		chainVendor("c"),
	})

	rev := g.DependencyOf("c")
	if len(rev) != 2 {
		t.Fatalf("DependencyOf(c) length = %d, want 2", len(rev))
	}
	ids := map[types.VendorID]bool{rev[0].ID: true, rev[1].ID: true}
	if !ids["a"] || !ids["b"] {
		t.Errorf("DependencyOf(c) = %v, want a and b", ids)
	}

	if g.Vendor("missing") != nil {
		t.Error("Vendor(missing) must be nil")
	}
}

func TestTraceDependencyChainUnknownRoot(t *testing.T) {
	g := engine.NewDependencyGraph([]*model.Vendor{chainVendor("a")})

	if chain := g.TraceDependencyChain("missing", 0); len(chain) != 0 {
		t.Errorf("trace from unknown root = %v, want empty", chain)
	}
}
