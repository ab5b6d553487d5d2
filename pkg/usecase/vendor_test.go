package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
	"github.com/secmon-lab/briareus/pkg/repository/memory"
	"github.com/secmon-lab/briareus/pkg/usecase"
	"github.com/shopspring/decimal"
)

func newVendor(orgID types.OrgID, name string) *model.Vendor {
	return &model.Vendor{
		OrganizationID:              orgID,
		Name:                        name,
		Industry:                    "technology",
		ContractValue:               decimal.NewFromInt(500000),
		SecurityPostureScore:        70,
		DataSensitivityLevel:        3,
		ServiceCriticalityLevel:     4,
		IncidentHistoryScore:        80,
		ComplianceScore:             60,
		ThirdPartyDependenciesScore: 50,
		IsActive:                    true,
	}
}

func TestCreateVendorDerivesRiskScore(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	created, err := uc.Vendor.CreateVendor(ctx, newVendor("org-1", "Acme"))
	gt.NoError(t, err).Required()

	gt.Value(t, created.OverallRiskScore).Equal(23.8)
	gt.Value(t, created.RiskLevel).Equal(types.RiskLevelLow)
	gt.Value(t, created.ID).NotEqual(types.VendorID(""))
	gt.Bool(t, created.CreatedAt.IsZero()).False()
}

func TestCreateVendorRejectsUnknownDependency(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	v := newVendor("org-1", "Acme")
	v.DependentVendorIDs = []types.VendorID{"missing"}

	_, err := uc.Vendor.CreateVendor(ctx, v)
	gt.Error(t, err)
}

func TestVendorReverseEdgeSync(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	base, err := uc.Vendor.CreateVendor(ctx, newVendor("org-1", "Base"))
	gt.NoError(t, err).Required()

	dependent := newVendor("org-1", "Dependent")
	dependent.DependentVendorIDs = []types.VendorID{base.ID}
	created, err := uc.Vendor.CreateVendor(ctx, dependent)
	gt.NoError(t, err).Required()

	got, err := uc.Vendor.GetVendor(ctx, base.ID)
	gt.NoError(t, err).Required()
	gt.Array(t, got.DependencyOfIDs).Equal([]types.VendorID{created.ID})

	// Dropping the edge clears the reverse side
	created.DependentVendorIDs = nil
	_, err = uc.Vendor.UpdateVendor(ctx, created)
	gt.NoError(t, err).Required()

	got, err = uc.Vendor.GetVendor(ctx, base.ID)
	gt.NoError(t, err).Required()
	gt.Number(t, len(got.DependencyOfIDs)).Equal(0)
}

func TestDeleteVendorDetachesEdges(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	base, err := uc.Vendor.CreateVendor(ctx, newVendor("org-1", "Base"))
	gt.NoError(t, err).Required()

	dependent := newVendor("org-1", "Dependent")
	dependent.DependentVendorIDs = []types.VendorID{base.ID}
	created, err := uc.Vendor.CreateVendor(ctx, dependent)
	gt.NoError(t, err).Required()

	gt.NoError(t, uc.Vendor.DeleteVendor(ctx, base.ID)).Required()

	got, err := uc.Vendor.GetVendor(ctx, created.ID)
	gt.NoError(t, err).Required()
	gt.Number(t, len(got.DependentVendorIDs)).Equal(0)

	_, err = uc.Vendor.GetVendor(ctx, base.ID)
	gt.Error(t, err)
}

func TestTraceDependencyChain(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	c, err := uc.Vendor.CreateVendor(ctx, newVendor("org-1", "C"))
	gt.NoError(t, err).Required()

	b := newVendor("org-1", "B")
	b.DependentVendorIDs = []types.VendorID{c.ID}
	bCreated, err := uc.Vendor.CreateVendor(ctx, b)
	gt.NoError(t, err).Required()

	a := newVendor("org-1", "A")
	a.DependentVendorIDs = []types.VendorID{bCreated.ID}
	aCreated, err := uc.Vendor.CreateVendor(ctx, a)
	gt.NoError(t, err).Required()

	chain, err := uc.Vendor.TraceDependencyChain(ctx, aCreated.ID, 0)
	gt.NoError(t, err).Required()
	gt.Number(t, len(chain)).Equal(3)
	gt.Value(t, chain[0].Vendor.ID).Equal(aCreated.ID)
	gt.Number(t, chain[2].Depth).Equal(2)
}
