package engine

import (
	"context"
	"math/rand"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/model/config"
	"github.com/secmon-lab/briareus/pkg/domain/types"
	"github.com/secmon-lab/briareus/pkg/utils/logging"
)

// Engine computes the financial and operational impact of an incident
// scenario against a target vendor. Execution is synchronous and
// request-scoped: one call to Run produces one immutable result.
type Engine struct {
	cfg *config.CalcConfig
	rng *rand.Rand
}

// Option configures an Engine
type Option func(*Engine)

// WithRand injects the random source used for cascade-trigger sampling and
// Monte Carlo noise. Tests pass a fixed-seed source to force deterministic
// outcomes.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// New creates an Engine with the given calculation configuration
func New(cfg *config.CalcConfig, opts ...Option) *Engine {
	e := &Engine{
		cfg: cfg,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Input carries everything a single execution consumes: the target vendor,
// the organization's business processes, a dependency graph snapshot and
// the scenario request.
type Input struct {
	Vendor       *model.Vendor
	Processes    []*model.BusinessProcess
	Graph        *DependencyGraph
	ScenarioType types.ScenarioType
	Parameters   map[string]any

	UseMonteCarlo        bool
	MonteCarloIterations int
}

// run holds the mutable state of one execution
type run struct {
	engine *Engine
	cfg    *config.CalcConfig
	rng    *rand.Rand

	vendor    *model.Vendor
	processes []*model.BusinessProcess
	graph     *DependencyGraph
	params    params

	res *model.SimulationResult
}

// Run executes the scenario and returns the assembled result. All
// validation (scenario type, parameter ranges, Monte Carlo bounds,
// configuration keys) happens before any cost calculation, so a bad
// request never produces a partial result.
func (e *Engine) Run(ctx context.Context, in *Input) (*model.SimulationResult, error) {
	if in.Vendor == nil {
		return nil, goerr.New("target vendor is required")
	}
	if !in.ScenarioType.IsValid() {
		return nil, goerr.Wrap(ErrUnknownScenarioType, "cannot execute simulation",
			goerr.V("scenario_type", in.ScenarioType))
	}
	if err := e.validate(in); err != nil {
		return nil, err
	}

	graph := in.Graph
	if graph == nil {
		graph = NewDependencyGraph([]*model.Vendor{in.Vendor})
	}

	r := &run{
		engine:    e,
		cfg:       e.cfg,
		rng:       e.rng,
		vendor:    in.Vendor,
		processes: in.Processes,
		graph:     graph,
		params:    params(in.Parameters),
		res: &model.SimulationResult{
			RecoveryComplexity: types.RecoveryMedium,
			ImpactBreakdown:    map[string]any{},
		},
	}

	logger := logging.From(ctx)
	logger.Info("starting scenario calculation",
		"scenario_type", in.ScenarioType,
		"vendor", in.Vendor.Name)

	if err := r.calculate(ctx, in.ScenarioType); err != nil {
		return nil, err
	}

	// The multi_vendor calculator performs its own cascade computation
	// inline; every other scenario uses the generic depth-1 step.
	if in.ScenarioType != types.ScenarioMultiVendor {
		r.calculateCascadingImpacts(ctx)
	}

	r.res.RecomputeTotal()
	r.res.RiskScore = composeRiskScore(
		r.res.TotalFinancialImpact,
		r.res.DowntimeHours,
		r.res.RecoveryComplexity,
		in.Vendor.OverallRiskScore,
	)

	if in.UseMonteCarlo {
		baseline := r.res.DirectCosts.
			Add(r.res.OperationalCosts).
			Add(r.res.RegulatoryCosts).
			Add(r.res.ReputationalCosts)
		r.res.MonteCarlo = runMonteCarlo(baseline, in.MonteCarloIterations, monteCarloSigma, e.rng)
	}

	logger.Info("scenario calculation completed",
		"total_impact", r.res.TotalFinancialImpact.String(),
		"risk_score", r.res.RiskScore)

	return r.res, nil
}

// calculate dispatches to the scenario-specific impact calculator
func (r *run) calculate(ctx context.Context, st types.ScenarioType) error {
	switch st {
	case types.ScenarioDataBreach:
		return r.dataBreach(ctx)
	case types.ScenarioRansomware:
		return r.ransomware(ctx)
	case types.ScenarioServiceDisruption:
		return r.serviceDisruption(ctx)
	case types.ScenarioSupplyChain:
		return r.supplyChainCompromise(ctx)
	case types.ScenarioMultiVendor:
		return r.multiVendorFailure(ctx)
	default:
		return goerr.Wrap(ErrUnknownScenarioType, "cannot execute simulation",
			goerr.V("scenario_type", st))
	}
}

// validate rejects bad parameters and a bad Monte Carlo request up front,
// so that an invalid refinement never discards a valid deterministic pass.
func (e *Engine) validate(in *Input) error {
	if in.UseMonteCarlo {
		if in.MonteCarloIterations < model.MinMonteCarloIterations {
			return goerr.Wrap(ErrInvalidParameter, "monte carlo iterations below minimum",
				goerr.V("iterations", in.MonteCarloIterations),
				goerr.V("min", model.MinMonteCarloIterations))
		}
		if maxIter := e.cfg.MaxIterations(); in.MonteCarloIterations > maxIter {
			return goerr.Wrap(ErrInvalidParameter, "monte carlo iterations above maximum",
				goerr.V("iterations", in.MonteCarloIterations),
				goerr.V("max", maxIter))
		}
	}

	p := params(in.Parameters)
	switch in.ScenarioType {
	case types.ScenarioDataBreach:
		if err := p.requireNonNegative("records_compromised", "detection_time_hours"); err != nil {
			return err
		}
	case types.ScenarioRansomware:
		if err := p.requireNonNegative("ransom_amount", "downtime_hours"); err != nil {
			return err
		}
	case types.ScenarioServiceDisruption:
		if err := p.requireNonNegative("duration_hours", "customer_impact_percentage"); err != nil {
			return err
		}
	case types.ScenarioSupplyChain:
		if err := p.requireNonNegative("detection_delay_days", "affected_downstream_count"); err != nil {
			return err
		}
	case types.ScenarioMultiVendor:
		prob := p.float("cascade_probability", 0.6)
		if prob < 0 || prob > 1 {
			return goerr.Wrap(ErrInvalidParameter, "cascade probability must be between 0 and 1",
				goerr.V("cascade_probability", prob))
		}
		initial := types.ScenarioType(p.str("initial_failure_type", string(types.ScenarioDataBreach)))
		if initial == types.ScenarioMultiVendor || !initial.IsValid() {
			return goerr.Wrap(ErrInvalidParameter, "invalid initial failure type",
				goerr.V("initial_failure_type", initial))
		}
		// The nested scenario consumes the same parameter map
		return e.validate(&Input{ScenarioType: initial, Parameters: in.Parameters})
	}

	return nil
}

// affectedProcesses returns the business processes that depend on the
// target vendor
func (r *run) affectedProcesses() []*model.BusinessProcess {
	var affected []*model.BusinessProcess
	for _, p := range r.processes {
		if p.DependsOn(r.vendor.ID) {
			affected = append(affected, p)
		}
	}
	return affected
}

// recordAffectedProcesses stores the IDs of processes impacted by the
// scenario on the result
func (r *run) recordAffectedProcesses(affected []*model.BusinessProcess) {
	ids := make([]types.ProcessID, 0, len(affected))
	for _, p := range affected {
		ids = append(ids, p.ID)
	}
	r.res.AffectedProcessIDs = ids
}
