package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
	"github.com/shopspring/decimal"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Monetary values are stored as decimal strings to avoid any floating
// point representation in the datastore.
type vendorDocument struct {
	ID             string `firestore:"id"`
	OrganizationID string `firestore:"organization_id"`
	Name           string `firestore:"name"`
	Industry       string `firestore:"industry"`
	ContractValue  string `firestore:"contract_value"`

	SecurityPostureScore        int `firestore:"security_posture_score"`
	DataSensitivityLevel        int `firestore:"data_sensitivity_level"`
	ServiceCriticalityLevel     int `firestore:"service_criticality_level"`
	IncidentHistoryScore        int `firestore:"incident_history_score"`
	ComplianceScore             int `firestore:"compliance_score"`
	ThirdPartyDependenciesScore int `firestore:"third_party_dependencies_score"`

	OverallRiskScore float64 `firestore:"overall_risk_score"`
	RiskLevel        string  `firestore:"risk_level"`

	DependentVendorIDs []string `firestore:"dependent_vendor_ids"`
	DependencyOfIDs    []string `firestore:"dependency_of_ids"`

	IsActive  bool      `firestore:"is_active"`
	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

func toVendorDocument(v *model.Vendor) *vendorDocument {
	return &vendorDocument{
		ID:                          v.ID.String(),
		OrganizationID:              v.OrganizationID.String(),
		Name:                        v.Name,
		Industry:                    v.Industry,
		ContractValue:               v.ContractValue.String(),
		SecurityPostureScore:        v.SecurityPostureScore,
		DataSensitivityLevel:        v.DataSensitivityLevel,
		ServiceCriticalityLevel:     v.ServiceCriticalityLevel,
		IncidentHistoryScore:        v.IncidentHistoryScore,
		ComplianceScore:             v.ComplianceScore,
		ThirdPartyDependenciesScore: v.ThirdPartyDependenciesScore,
		OverallRiskScore:            v.OverallRiskScore,
		RiskLevel:                   string(v.RiskLevel),
		DependentVendorIDs:          vendorIDsToStrings(v.DependentVendorIDs),
		DependencyOfIDs:             vendorIDsToStrings(v.DependencyOfIDs),
		IsActive:                    v.IsActive,
		CreatedAt:                   v.CreatedAt,
		UpdatedAt:                   v.UpdatedAt,
	}
}

func (d *vendorDocument) toModel() (*model.Vendor, error) {
	contractValue, err := decimal.NewFromString(d.ContractValue)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid contract value", goerr.V("value", d.ContractValue))
	}

	return &model.Vendor{
		ID:                          types.VendorID(d.ID),
		OrganizationID:              types.OrgID(d.OrganizationID),
		Name:                        d.Name,
		Industry:                    d.Industry,
		ContractValue:               contractValue,
		SecurityPostureScore:        d.SecurityPostureScore,
		DataSensitivityLevel:        d.DataSensitivityLevel,
		ServiceCriticalityLevel:     d.ServiceCriticalityLevel,
		IncidentHistoryScore:        d.IncidentHistoryScore,
		ComplianceScore:             d.ComplianceScore,
		ThirdPartyDependenciesScore: d.ThirdPartyDependenciesScore,
		OverallRiskScore:            d.OverallRiskScore,
		RiskLevel:                   types.RiskLevel(d.RiskLevel),
		DependentVendorIDs:          stringsToVendorIDs(d.DependentVendorIDs),
		DependencyOfIDs:             stringsToVendorIDs(d.DependencyOfIDs),
		IsActive:                    d.IsActive,
		CreatedAt:                   d.CreatedAt,
		UpdatedAt:                   d.UpdatedAt,
	}, nil
}

func vendorIDsToStrings(ids []types.VendorID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func stringsToVendorIDs(ids []string) []types.VendorID {
	out := make([]types.VendorID, len(ids))
	for i, id := range ids {
		out[i] = types.VendorID(id)
	}
	return out
}

type vendorRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newVendorRepository(client *firestore.Client) *vendorRepository {
	return &vendorRepository{
		client: client,
	}
}

func (r *vendorRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_vendors"
	}
	return "vendors"
}

func (r *vendorRepository) Create(ctx context.Context, vendor *model.Vendor) (*model.Vendor, error) {
	if vendor.ID == "" {
		vendor.ID = types.NewVendorID()
	}

	doc := toVendorDocument(vendor)
	docRef := r.client.Collection(r.collection()).Doc(doc.ID)
	if _, err := docRef.Create(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create vendor", goerr.V("id", doc.ID))
	}

	return doc.toModel()
}

func (r *vendorRepository) Get(ctx context.Context, id types.VendorID) (*model.Vendor, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "vendor not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get vendor", goerr.V("id", id))
	}

	var vendorDoc vendorDocument
	if err := doc.DataTo(&vendorDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal vendor", goerr.V("id", id))
	}

	return vendorDoc.toModel()
}

func (r *vendorRepository) Update(ctx context.Context, vendor *model.Vendor) (*model.Vendor, error) {
	docRef := r.client.Collection(r.collection()).Doc(vendor.ID.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "vendor not found", goerr.V("id", vendor.ID))
		}
		return nil, goerr.Wrap(err, "failed to get vendor", goerr.V("id", vendor.ID))
	}

	doc := toVendorDocument(vendor)
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to update vendor", goerr.V("id", vendor.ID))
	}

	return doc.toModel()
}

func (r *vendorRepository) Delete(ctx context.Context, id types.VendorID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "vendor not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get vendor", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete vendor", goerr.V("id", id))
	}
	return nil
}

func (r *vendorRepository) ListByOrganization(ctx context.Context, orgID types.OrgID) ([]*model.Vendor, error) {
	iter := r.client.Collection(r.collection()).
		Where("organization_id", "==", orgID.String()).
		Documents(ctx)
	defer iter.Stop()

	var vendors []*model.Vendor
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate vendors")
		}

		var vendorDoc vendorDocument
		if err := doc.DataTo(&vendorDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal vendor")
		}
		vendor, err := vendorDoc.toModel()
		if err != nil {
			return nil, err
		}
		vendors = append(vendors, vendor)
	}

	return vendors, nil
}
