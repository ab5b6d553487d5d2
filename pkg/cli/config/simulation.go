package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
	"github.com/shopspring/decimal"
)

// SimulationDefinition represents a self-contained simulation input file:
// the vendors, business processes and the simulation request. Records
// reference each other by name so the file needs no generated IDs.
type SimulationDefinition struct {
	Vendors    []VendorDefinition  `toml:"vendor"`
	Processes  []ProcessDefinition `toml:"process"`
	Simulation SimulationRequest   `toml:"simulation"`
}

// VendorDefinition is a vendor record in a simulation input file
type VendorDefinition struct {
	Name          string `toml:"name"`
	Industry      string `toml:"industry"`
	ContractValue string `toml:"contract_value"`

	SecurityPostureScore        int `toml:"security_posture_score"`
	DataSensitivityLevel        int `toml:"data_sensitivity_level"`
	ServiceCriticalityLevel     int `toml:"service_criticality_level"`
	IncidentHistoryScore        int `toml:"incident_history_score"`
	ComplianceScore             int `toml:"compliance_score"`
	ThirdPartyDependenciesScore int `toml:"third_party_dependencies_score"`

	// Names of vendors this vendor relies on
	DependsOn []string `toml:"depends_on"`
}

// Validate checks the vendor record
func (v *VendorDefinition) Validate() error {
	if v.Name == "" {
		return goerr.New("vendor name is required")
	}
	if _, err := decimal.NewFromString(v.ContractValue); err != nil {
		return goerr.Wrap(err, "invalid contract value",
			goerr.V("vendor", v.Name), goerr.V("value", v.ContractValue))
	}
	return nil
}

// ProcessDefinition is a business process record in a simulation input file
type ProcessDefinition struct {
	Name                      string `toml:"name"`
	Description               string `toml:"description"`
	CriticalityLevel          int    `toml:"criticality_level"`
	HourlyOperatingCost       string `toml:"hourly_operating_cost"`
	AnnualRevenueContribution string `toml:"annual_revenue_contribution"`

	// Names of vendors the process depends on
	Vendors []string `toml:"vendors"`
}

// Validate checks the business process record
func (p *ProcessDefinition) Validate() error {
	if p.Name == "" {
		return goerr.New("process name is required")
	}
	if _, err := decimal.NewFromString(p.HourlyOperatingCost); err != nil {
		return goerr.Wrap(err, "invalid hourly operating cost",
			goerr.V("process", p.Name), goerr.V("value", p.HourlyOperatingCost))
	}
	if p.AnnualRevenueContribution != "" {
		if _, err := decimal.NewFromString(p.AnnualRevenueContribution); err != nil {
			return goerr.Wrap(err, "invalid annual revenue contribution",
				goerr.V("process", p.Name), goerr.V("value", p.AnnualRevenueContribution))
		}
	}
	return nil
}

// SimulationRequest is the simulation section of a simulation input file
type SimulationRequest struct {
	Name                 string         `toml:"name"`
	Description          string         `toml:"description"`
	ScenarioType         string         `toml:"scenario_type"`
	TargetVendor         string         `toml:"target_vendor"`
	Parameters           map[string]any `toml:"parameters"`
	UseMonteCarlo        bool           `toml:"use_monte_carlo"`
	MonteCarloIterations int            `toml:"monte_carlo_iterations"`
}

// Validate checks the whole definition, including cross references
func (d *SimulationDefinition) Validate() error {
	if len(d.Vendors) == 0 {
		return goerr.New("at least one vendor is required")
	}

	names := make(map[string]bool, len(d.Vendors))
	for i := range d.Vendors {
		v := &d.Vendors[i]
		if err := v.Validate(); err != nil {
			return goerr.Wrap(err, "invalid vendor")
		}
		if names[v.Name] {
			return goerr.New("duplicate vendor name", goerr.V("name", v.Name))
		}
		names[v.Name] = true
	}
	for i := range d.Vendors {
		for _, dep := range d.Vendors[i].DependsOn {
			if !names[dep] {
				return goerr.New("unknown vendor in depends_on",
					goerr.V("vendor", d.Vendors[i].Name), goerr.V("depends_on", dep))
			}
		}
	}

	for i := range d.Processes {
		p := &d.Processes[i]
		if err := p.Validate(); err != nil {
			return goerr.Wrap(err, "invalid process")
		}
		for _, dep := range p.Vendors {
			if !names[dep] {
				return goerr.New("unknown vendor in process",
					goerr.V("process", p.Name), goerr.V("vendor", dep))
			}
		}
	}

	if d.Simulation.Name == "" {
		return goerr.New("simulation name is required")
	}
	if _, err := types.ParseScenarioType(d.Simulation.ScenarioType); err != nil {
		return goerr.Wrap(err, "invalid scenario type")
	}
	if !names[d.Simulation.TargetVendor] {
		return goerr.New("unknown target vendor", goerr.V("target_vendor", d.Simulation.TargetVendor))
	}
	return nil
}

// ToModels converts the definition to domain models sharing one generated
// organization. Vendor and process records get fresh IDs; the returned
// simulation references the target vendor's ID.
func (d *SimulationDefinition) ToModels() ([]*model.Vendor, []*model.BusinessProcess, *model.Simulation, error) {
	if err := d.Validate(); err != nil {
		return nil, nil, nil, err
	}

	orgID := types.NewOrgID()
	idsByName := make(map[string]types.VendorID, len(d.Vendors))
	for i := range d.Vendors {
		idsByName[d.Vendors[i].Name] = types.NewVendorID()
	}

	vendors := make([]*model.Vendor, 0, len(d.Vendors))
	for i := range d.Vendors {
		v := &d.Vendors[i]
		contractValue, _ := decimal.NewFromString(v.ContractValue)

		deps := make([]types.VendorID, 0, len(v.DependsOn))
		for _, dep := range v.DependsOn {
			deps = append(deps, idsByName[dep])
		}

		vendors = append(vendors, &model.Vendor{
			ID:                          idsByName[v.Name],
			OrganizationID:              orgID,
			Name:                        v.Name,
			Industry:                    v.Industry,
			ContractValue:               contractValue,
			SecurityPostureScore:        v.SecurityPostureScore,
			DataSensitivityLevel:        v.DataSensitivityLevel,
			ServiceCriticalityLevel:     v.ServiceCriticalityLevel,
			IncidentHistoryScore:        v.IncidentHistoryScore,
			ComplianceScore:             v.ComplianceScore,
			ThirdPartyDependenciesScore: v.ThirdPartyDependenciesScore,
			DependentVendorIDs:          deps,
			IsActive:                    true,
		})
	}

	processes := make([]*model.BusinessProcess, 0, len(d.Processes))
	for i := range d.Processes {
		p := &d.Processes[i]
		hourlyCost, _ := decimal.NewFromString(p.HourlyOperatingCost)
		annualRevenue := decimal.Zero
		if p.AnnualRevenueContribution != "" {
			annualRevenue, _ = decimal.NewFromString(p.AnnualRevenueContribution)
		}

		deps := make([]types.VendorID, 0, len(p.Vendors))
		for _, dep := range p.Vendors {
			deps = append(deps, idsByName[dep])
		}

		processes = append(processes, &model.BusinessProcess{
			ID:                        types.NewProcessID(),
			OrganizationID:            orgID,
			Name:                      p.Name,
			Description:               p.Description,
			CriticalityLevel:          p.CriticalityLevel,
			HourlyOperatingCost:       hourlyCost,
			AnnualRevenueContribution: annualRevenue,
			DependentVendorIDs:        deps,
		})
	}

	sim := &model.Simulation{
		OrganizationID:       orgID,
		Name:                 d.Simulation.Name,
		Description:          d.Simulation.Description,
		ScenarioType:         types.ScenarioType(d.Simulation.ScenarioType),
		TargetVendorID:       idsByName[d.Simulation.TargetVendor],
		Parameters:           d.Simulation.Parameters,
		UseMonteCarlo:        d.Simulation.UseMonteCarlo,
		MonteCarloIterations: d.Simulation.MonteCarloIterations,
	}

	return vendors, processes, sim, nil
}

// LoadSimulationDefinition loads a simulation input file
func LoadSimulationDefinition(path string) (*SimulationDefinition, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read simulation file", goerr.V("path", path))
	}

	var def SimulationDefinition
	if err := toml.Unmarshal(data, &def); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML simulation file", goerr.V("path", path))
	}

	if err := def.Validate(); err != nil {
		return nil, goerr.Wrap(err, "simulation definition validation failed", goerr.V("path", path))
	}

	return &def, nil
}
