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

type processDocument struct {
	ID             string `firestore:"id"`
	OrganizationID string `firestore:"organization_id"`
	Name           string `firestore:"name"`
	Description    string `firestore:"description"`

	CriticalityLevel          int    `firestore:"criticality_level"`
	HourlyOperatingCost       string `firestore:"hourly_operating_cost"`
	AnnualRevenueContribution string `firestore:"annual_revenue_contribution"`

	DependentVendorIDs []string `firestore:"dependent_vendor_ids"`

	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

func toProcessDocument(p *model.BusinessProcess) *processDocument {
	return &processDocument{
		ID:                        p.ID.String(),
		OrganizationID:            p.OrganizationID.String(),
		Name:                      p.Name,
		Description:               p.Description,
		CriticalityLevel:          p.CriticalityLevel,
		HourlyOperatingCost:       p.HourlyOperatingCost.String(),
		AnnualRevenueContribution: p.AnnualRevenueContribution.String(),
		DependentVendorIDs:        vendorIDsToStrings(p.DependentVendorIDs),
		CreatedAt:                 p.CreatedAt,
		UpdatedAt:                 p.UpdatedAt,
	}
}

func (d *processDocument) toModel() (*model.BusinessProcess, error) {
	hourlyCost, err := decimal.NewFromString(d.HourlyOperatingCost)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid hourly operating cost", goerr.V("value", d.HourlyOperatingCost))
	}
	annualRevenue, err := decimal.NewFromString(d.AnnualRevenueContribution)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid annual revenue contribution", goerr.V("value", d.AnnualRevenueContribution))
	}

	return &model.BusinessProcess{
		ID:                        types.ProcessID(d.ID),
		OrganizationID:            types.OrgID(d.OrganizationID),
		Name:                      d.Name,
		Description:               d.Description,
		CriticalityLevel:          d.CriticalityLevel,
		HourlyOperatingCost:       hourlyCost,
		AnnualRevenueContribution: annualRevenue,
		DependentVendorIDs:        stringsToVendorIDs(d.DependentVendorIDs),
		CreatedAt:                 d.CreatedAt,
		UpdatedAt:                 d.UpdatedAt,
	}, nil
}

type processRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newProcessRepository(client *firestore.Client) *processRepository {
	return &processRepository{
		client: client,
	}
}

func (r *processRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_business_processes"
	}
	return "business_processes"
}

func (r *processRepository) Create(ctx context.Context, process *model.BusinessProcess) (*model.BusinessProcess, error) {
	if process.ID == "" {
		process.ID = types.NewProcessID()
	}

	doc := toProcessDocument(process)
	docRef := r.client.Collection(r.collection()).Doc(doc.ID)
	if _, err := docRef.Create(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create business process", goerr.V("id", doc.ID))
	}

	return doc.toModel()
}

func (r *processRepository) Get(ctx context.Context, id types.ProcessID) (*model.BusinessProcess, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "business process not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get business process", goerr.V("id", id))
	}

	var processDoc processDocument
	if err := doc.DataTo(&processDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal business process", goerr.V("id", id))
	}

	return processDoc.toModel()
}

func (r *processRepository) Update(ctx context.Context, process *model.BusinessProcess) (*model.BusinessProcess, error) {
	docRef := r.client.Collection(r.collection()).Doc(process.ID.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "business process not found", goerr.V("id", process.ID))
		}
		return nil, goerr.Wrap(err, "failed to get business process", goerr.V("id", process.ID))
	}

	doc := toProcessDocument(process)
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to update business process", goerr.V("id", process.ID))
	}

	return doc.toModel()
}

func (r *processRepository) Delete(ctx context.Context, id types.ProcessID) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "business process not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get business process", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete business process", goerr.V("id", id))
	}
	return nil
}

func (r *processRepository) ListByOrganization(ctx context.Context, orgID types.OrgID) ([]*model.BusinessProcess, error) {
	iter := r.client.Collection(r.collection()).
		Where("organization_id", "==", orgID.String()).
		Documents(ctx)
	defer iter.Stop()

	return collectProcesses(iter)
}

func (r *processRepository) ListByVendor(ctx context.Context, orgID types.OrgID, vendorID types.VendorID) ([]*model.BusinessProcess, error) {
	iter := r.client.Collection(r.collection()).
		Where("organization_id", "==", orgID.String()).
		Where("dependent_vendor_ids", "array-contains", vendorID.String()).
		Documents(ctx)
	defer iter.Stop()

	return collectProcesses(iter)
}

func collectProcesses(iter *firestore.DocumentIterator) ([]*model.BusinessProcess, error) {
	var processes []*model.BusinessProcess
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate business processes")
		}

		var processDoc processDocument
		if err := doc.DataTo(&processDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal business process")
		}
		process, err := processDoc.toModel()
		if err != nil {
			return nil, err
		}
		processes = append(processes, process)
	}

	return processes, nil
}
