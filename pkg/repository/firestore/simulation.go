package firestore

import (
	"context"
	"strconv"
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

type simulationDocument struct {
	ID             string `firestore:"id"`
	OrganizationID string `firestore:"organization_id"`
	Name           string `firestore:"name"`
	Description    string `firestore:"description"`

	ScenarioType   string         `firestore:"scenario_type"`
	TargetVendorID string         `firestore:"target_vendor_id"`
	Parameters     map[string]any `firestore:"parameters"`

	UseMonteCarlo        bool `firestore:"use_monte_carlo"`
	MonteCarloIterations int  `firestore:"monte_carlo_iterations"`

	Status        string     `firestore:"status"`
	StartedAt     *time.Time `firestore:"started_at"`
	CompletedAt   *time.Time `firestore:"completed_at"`
	ExecutionTime float64    `firestore:"execution_time"`
	ErrorMessage  string     `firestore:"error_message"`

	Tags []string `firestore:"tags"`

	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

func toSimulationDocument(s *model.Simulation) *simulationDocument {
	return &simulationDocument{
		ID:                   s.ID.String(),
		OrganizationID:       s.OrganizationID.String(),
		Name:                 s.Name,
		Description:          s.Description,
		ScenarioType:         s.ScenarioType.String(),
		TargetVendorID:       s.TargetVendorID.String(),
		Parameters:           s.Parameters,
		UseMonteCarlo:        s.UseMonteCarlo,
		MonteCarloIterations: s.MonteCarloIterations,
		Status:               s.Status.String(),
		StartedAt:            s.StartedAt,
		CompletedAt:          s.CompletedAt,
		ExecutionTime:        s.ExecutionTime,
		ErrorMessage:         s.ErrorMessage,
		Tags:                 s.Tags,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
}

func (d *simulationDocument) toModel() *model.Simulation {
	return &model.Simulation{
		ID:                   types.SimulationID(d.ID),
		OrganizationID:       types.OrgID(d.OrganizationID),
		Name:                 d.Name,
		Description:          d.Description,
		ScenarioType:         types.ScenarioType(d.ScenarioType),
		TargetVendorID:       types.VendorID(d.TargetVendorID),
		Parameters:           d.Parameters,
		UseMonteCarlo:        d.UseMonteCarlo,
		MonteCarloIterations: d.MonteCarloIterations,
		Status:               types.SimulationStatus(d.Status),
		StartedAt:            d.StartedAt,
		CompletedAt:          d.CompletedAt,
		ExecutionTime:        d.ExecutionTime,
		ErrorMessage:         d.ErrorMessage,
		Tags:                 d.Tags,
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
	}
}

type cascadeImpactDocument struct {
	VendorID   string `firestore:"vendor_id"`
	VendorName string `firestore:"vendor_name"`
	Impact     string `firestore:"impact"`
	Reason     string `firestore:"reason"`
}

type confidenceIntervalDocument struct {
	Lower float64 `firestore:"lower"`
	Upper float64 `firestore:"upper"`
}

// Percentile keys are serialized as strings: firestore map keys must not
// be integers.
type monteCarloDocument struct {
	Iterations int     `firestore:"iterations"`
	Mean       float64 `firestore:"mean"`
	Median     float64 `firestore:"median"`
	StdDev     float64 `firestore:"std_dev"`
	Min        float64 `firestore:"min"`
	Max        float64 `firestore:"max"`

	Percentiles         map[string]float64                    `firestore:"percentiles"`
	ConfidenceIntervals map[string]confidenceIntervalDocument `firestore:"confidence_intervals"`

	DistributionSample []float64 `firestore:"distribution_sample"`
}

type resultDocument struct {
	ID           string `firestore:"id"`
	SimulationID string `firestore:"simulation_id"`

	DirectCosts       string `firestore:"direct_costs"`
	OperationalCosts  string `firestore:"operational_costs"`
	RegulatoryCosts   string `firestore:"regulatory_costs"`
	ReputationalCosts string `firestore:"reputational_costs"`

	TotalFinancialImpact string `firestore:"total_financial_impact"`

	DowntimeHours              float64 `firestore:"downtime_hours"`
	ProductivityLossPercentage float64 `firestore:"productivity_loss_percentage"`
	CustomersAffected          int     `firestore:"customers_affected"`
	EstimatedRecoveryTimeHours float64 `firestore:"estimated_recovery_time_hours"`
	RecoveryComplexity         string  `firestore:"recovery_complexity"`

	CascadingVendorImpacts []cascadeImpactDocument `firestore:"cascading_vendor_impacts"`
	TotalCascadingImpact   string                  `firestore:"total_cascading_impact"`

	AffectedProcessIDs []string       `firestore:"affected_process_ids"`
	ImpactBreakdown    map[string]any `firestore:"impact_breakdown"`

	RiskScore float64 `firestore:"risk_score"`

	MonteCarlo *monteCarloDocument `firestore:"monte_carlo"`

	CreatedAt time.Time `firestore:"created_at"`
}

func toResultDocument(r *model.SimulationResult) *resultDocument {
	doc := &resultDocument{
		ID:                         r.ID,
		SimulationID:               r.SimulationID.String(),
		DirectCosts:                r.DirectCosts.String(),
		OperationalCosts:           r.OperationalCosts.String(),
		RegulatoryCosts:            r.RegulatoryCosts.String(),
		ReputationalCosts:          r.ReputationalCosts.String(),
		TotalFinancialImpact:       r.TotalFinancialImpact.String(),
		DowntimeHours:              r.DowntimeHours,
		ProductivityLossPercentage: r.ProductivityLossPercentage,
		CustomersAffected:          r.CustomersAffected,
		EstimatedRecoveryTimeHours: r.EstimatedRecoveryTimeHours,
		RecoveryComplexity:         string(r.RecoveryComplexity),
		TotalCascadingImpact:       r.TotalCascadingImpact.String(),
		ImpactBreakdown:            r.ImpactBreakdown,
		RiskScore:                  r.RiskScore,
		CreatedAt:                  r.CreatedAt,
	}

	for _, c := range r.CascadingVendorImpacts {
		doc.CascadingVendorImpacts = append(doc.CascadingVendorImpacts, cascadeImpactDocument{
			VendorID:   c.VendorID.String(),
			VendorName: c.VendorName,
			Impact:     c.Impact.String(),
			Reason:     c.Reason,
		})
	}
	for _, id := range r.AffectedProcessIDs {
		doc.AffectedProcessIDs = append(doc.AffectedProcessIDs, id.String())
	}

	if r.MonteCarlo != nil {
		mc := &monteCarloDocument{
			Iterations:          r.MonteCarlo.Iterations,
			Mean:                r.MonteCarlo.Mean,
			Median:              r.MonteCarlo.Median,
			StdDev:              r.MonteCarlo.StdDev,
			Min:                 r.MonteCarlo.Min,
			Max:                 r.MonteCarlo.Max,
			Percentiles:         make(map[string]float64, len(r.MonteCarlo.Percentiles)),
			ConfidenceIntervals: make(map[string]confidenceIntervalDocument, len(r.MonteCarlo.ConfidenceIntervals)),
			DistributionSample:  r.MonteCarlo.DistributionSample,
		}
		for p, v := range r.MonteCarlo.Percentiles {
			mc.Percentiles[strconv.Itoa(p)] = v
		}
		for level, ci := range r.MonteCarlo.ConfidenceIntervals {
			mc.ConfidenceIntervals[level] = confidenceIntervalDocument{Lower: ci.Lower, Upper: ci.Upper}
		}
		doc.MonteCarlo = mc
	}

	return doc
}

func (d *resultDocument) toModel() (*model.SimulationResult, error) {
	parse := func(name, value string) (decimal.Decimal, error) {
		v, err := decimal.NewFromString(value)
		if err != nil {
			return decimal.Zero, goerr.Wrap(err, "invalid cost value",
				goerr.V("field", name), goerr.V("value", value))
		}
		return v, nil
	}

	directCosts, err := parse("direct_costs", d.DirectCosts)
	if err != nil {
		return nil, err
	}
	operationalCosts, err := parse("operational_costs", d.OperationalCosts)
	if err != nil {
		return nil, err
	}
	regulatoryCosts, err := parse("regulatory_costs", d.RegulatoryCosts)
	if err != nil {
		return nil, err
	}
	reputationalCosts, err := parse("reputational_costs", d.ReputationalCosts)
	if err != nil {
		return nil, err
	}
	totalImpact, err := parse("total_financial_impact", d.TotalFinancialImpact)
	if err != nil {
		return nil, err
	}
	totalCascading, err := parse("total_cascading_impact", d.TotalCascadingImpact)
	if err != nil {
		return nil, err
	}

	result := &model.SimulationResult{
		ID:                         d.ID,
		SimulationID:               types.SimulationID(d.SimulationID),
		DirectCosts:                directCosts,
		OperationalCosts:           operationalCosts,
		RegulatoryCosts:            regulatoryCosts,
		ReputationalCosts:          reputationalCosts,
		TotalFinancialImpact:       totalImpact,
		DowntimeHours:              d.DowntimeHours,
		ProductivityLossPercentage: d.ProductivityLossPercentage,
		CustomersAffected:          d.CustomersAffected,
		EstimatedRecoveryTimeHours: d.EstimatedRecoveryTimeHours,
		RecoveryComplexity:         types.RecoveryComplexity(d.RecoveryComplexity),
		TotalCascadingImpact:       totalCascading,
		ImpactBreakdown:            d.ImpactBreakdown,
		RiskScore:                  d.RiskScore,
		CreatedAt:                  d.CreatedAt,
	}

	for _, c := range d.CascadingVendorImpacts {
		impact, err := parse("cascade_impact", c.Impact)
		if err != nil {
			return nil, err
		}
		result.CascadingVendorImpacts = append(result.CascadingVendorImpacts, model.CascadeImpact{
			VendorID:   types.VendorID(c.VendorID),
			VendorName: c.VendorName,
			Impact:     impact,
			Reason:     c.Reason,
		})
	}
	for _, id := range d.AffectedProcessIDs {
		result.AffectedProcessIDs = append(result.AffectedProcessIDs, types.ProcessID(id))
	}

	if d.MonteCarlo != nil {
		mc := &model.MonteCarloStats{
			Iterations:          d.MonteCarlo.Iterations,
			Mean:                d.MonteCarlo.Mean,
			Median:              d.MonteCarlo.Median,
			StdDev:              d.MonteCarlo.StdDev,
			Min:                 d.MonteCarlo.Min,
			Max:                 d.MonteCarlo.Max,
			Percentiles:         make(map[int]float64, len(d.MonteCarlo.Percentiles)),
			ConfidenceIntervals: make(map[string]model.ConfidenceInterval, len(d.MonteCarlo.ConfidenceIntervals)),
			DistributionSample:  d.MonteCarlo.DistributionSample,
		}
		for p, v := range d.MonteCarlo.Percentiles {
			key, err := strconv.Atoi(p)
			if err != nil {
				return nil, goerr.Wrap(err, "invalid percentile key", goerr.V("key", p))
			}
			mc.Percentiles[key] = v
		}
		for level, ci := range d.MonteCarlo.ConfidenceIntervals {
			mc.ConfidenceIntervals[level] = model.ConfidenceInterval{Lower: ci.Lower, Upper: ci.Upper}
		}
		result.MonteCarlo = mc
	}

	return result, nil
}

type simulationRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newSimulationRepository(client *firestore.Client) *simulationRepository {
	return &simulationRepository{
		client: client,
	}
}

func (r *simulationRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_simulations"
	}
	return "simulations"
}

func (r *simulationRepository) resultCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_simulation_results"
	}
	return "simulation_results"
}

func (r *simulationRepository) Create(ctx context.Context, sim *model.Simulation) (*model.Simulation, error) {
	if sim.ID == "" {
		sim.ID = types.NewSimulationID()
	}

	doc := toSimulationDocument(sim)
	docRef := r.client.Collection(r.collection()).Doc(doc.ID)
	if _, err := docRef.Create(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create simulation", goerr.V("id", doc.ID))
	}

	return doc.toModel(), nil
}

func (r *simulationRepository) Get(ctx context.Context, id types.SimulationID) (*model.Simulation, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "simulation not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get simulation", goerr.V("id", id))
	}

	var simDoc simulationDocument
	if err := doc.DataTo(&simDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal simulation", goerr.V("id", id))
	}

	return simDoc.toModel(), nil
}

func (r *simulationRepository) Update(ctx context.Context, sim *model.Simulation) (*model.Simulation, error) {
	docRef := r.client.Collection(r.collection()).Doc(sim.ID.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "simulation not found", goerr.V("id", sim.ID))
		}
		return nil, goerr.Wrap(err, "failed to get simulation", goerr.V("id", sim.ID))
	}

	doc := toSimulationDocument(sim)
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to update simulation", goerr.V("id", sim.ID))
	}

	return doc.toModel(), nil
}

func (r *simulationRepository) ListByOrganization(ctx context.Context, orgID types.OrgID) ([]*model.Simulation, error) {
	iter := r.client.Collection(r.collection()).
		Where("organization_id", "==", orgID.String()).
		Documents(ctx)
	defer iter.Stop()

	var sims []*model.Simulation
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate simulations")
		}

		var simDoc simulationDocument
		if err := doc.DataTo(&simDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal simulation")
		}
		sims = append(sims, simDoc.toModel())
	}

	return sims, nil
}

// SaveResult writes the result and the simulation's final state in one
// transaction. The result document is keyed by simulation ID, so a re-run
// replaces the previous result instead of appending a second one.
func (r *simulationRepository) SaveResult(ctx context.Context, sim *model.Simulation, result *model.SimulationResult) (*model.SimulationResult, error) {
	simRef := r.client.Collection(r.collection()).Doc(sim.ID.String())
	resultRef := r.client.Collection(r.resultCollection()).Doc(sim.ID.String())

	simDoc := toSimulationDocument(sim)
	resDoc := toResultDocument(result)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(simRef); err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(ErrNotFound, "simulation not found", goerr.V("id", sim.ID))
			}
			return goerr.Wrap(err, "failed to get simulation")
		}
		if err := tx.Set(simRef, simDoc); err != nil {
			return goerr.Wrap(err, "failed to update simulation")
		}
		if err := tx.Set(resultRef, resDoc); err != nil {
			return goerr.Wrap(err, "failed to save simulation result")
		}
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to save simulation result", goerr.V("id", sim.ID))
	}

	return resDoc.toModel()
}

func (r *simulationRepository) GetResult(ctx context.Context, simulationID types.SimulationID) (*model.SimulationResult, error) {
	docRef := r.client.Collection(r.resultCollection()).Doc(simulationID.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "simulation result not found", goerr.V("simulation_id", simulationID))
		}
		return nil, goerr.Wrap(err, "failed to get simulation result", goerr.V("simulation_id", simulationID))
	}

	var resDoc resultDocument
	if err := doc.DataTo(&resDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal simulation result", goerr.V("simulation_id", simulationID))
	}

	return resDoc.toModel()
}
