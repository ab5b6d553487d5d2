package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/briareus/pkg/cli/config"
	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
	"github.com/secmon-lab/briareus/pkg/engine"
	"github.com/secmon-lab/briareus/pkg/usecase"
	"github.com/secmon-lab/briareus/pkg/utils/logging"
	"github.com/secmon-lab/briareus/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

// simulateOutput is the JSON document printed after an execution
type simulateOutput struct {
	SimulationID string                       `json:"simulation_id"`
	ScenarioType string                       `json:"scenario_type"`
	RiskBand     string                       `json:"risk_band"`
	Result       *model.SimulationResult      `json:"result"`
	Summary      *engine.ExecutiveSummary     `json:"summary"`
	Distribution *engine.DistributionAnalysis `json:"distribution,omitempty"`
}

func cmdSimulate() *cli.Command {
	var repoCfg config.Repository
	var configPath string
	var simulationPath string
	var asyncRun bool

	var flags []cli.Flag
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags,
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to the scenario configuration TOML file",
			Required:    true,
			Sources:     cli.EnvVars("BRIAREUS_CONFIG"),
			Destination: &configPath,
		},
		&cli.StringFlag{
			Name:        "simulation",
			Usage:       "Path to the simulation definition TOML file",
			Required:    true,
			Sources:     cli.EnvVars("BRIAREUS_SIMULATION"),
			Destination: &simulationPath,
		},
		&cli.BoolFlag{
			Name:        "async",
			Usage:       "Dispatch execution in the background and poll the status until it finishes",
			Sources:     cli.EnvVars("BRIAREUS_ASYNC"),
			Destination: &asyncRun,
		},
	)

	return &cli.Command{
		Name:    "simulate",
		Aliases: []string{"s"},
		Usage:   "Execute a risk simulation from a definition file and print the result",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			scenarioCfg, err := config.LoadScenarioConfig(configPath)
			if err != nil {
				return goerr.Wrap(err, "failed to load scenario config")
			}
			calcCfg, err := scenarioCfg.ToCalcConfig()
			if err != nil {
				return err
			}

			def, err := config.LoadSimulationDefinition(simulationPath)
			if err != nil {
				return goerr.Wrap(err, "failed to load simulation definition")
			}
			vendors, processes, sim, err := def.ToModels()
			if err != nil {
				return err
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return err
			}
			if closer, ok := repo.(io.Closer); ok {
				defer safe.Close(ctx, closer)
			}

			uc := usecase.New(repo, usecase.WithCalcConfig(calcCfg))

			// Seed in two passes: edges may reference vendors defined later
			// in the file
			for _, v := range vendors {
				seed := v.Clone()
				seed.DependentVendorIDs = nil
				if _, err := uc.Vendor.CreateVendor(ctx, seed); err != nil {
					return goerr.Wrap(err, "failed to seed vendor", goerr.V("vendor", v.Name))
				}
			}
			for _, v := range vendors {
				if len(v.DependentVendorIDs) == 0 {
					continue
				}
				if _, err := uc.Vendor.UpdateVendor(ctx, v); err != nil {
					return goerr.Wrap(err, "failed to link vendor dependencies", goerr.V("vendor", v.Name))
				}
			}
			for _, p := range processes {
				if _, err := uc.Process.CreateProcess(ctx, p); err != nil {
					return goerr.Wrap(err, "failed to seed business process", goerr.V("process", p.Name))
				}
			}

			created, err := uc.Simulation.CreateSimulation(ctx, sim)
			if err != nil {
				return err
			}

			logger.Info("Executing simulation",
				"simulation_id", created.ID,
				"scenario_type", created.ScenarioType,
				"monte_carlo", created.UseMonteCarlo,
				"async", asyncRun)

			var result *model.SimulationResult
			if asyncRun {
				uc.Simulation.ExecuteAsync(ctx, created.ID, false)
				result, err = waitForResult(ctx, uc.Simulation, created.ID)
			} else {
				result, err = uc.Simulation.Execute(ctx, created.ID, false)
			}
			if err != nil {
				return err
			}

			out := &simulateOutput{
				SimulationID: created.ID.String(),
				ScenarioType: created.ScenarioType.String(),
				RiskBand:     types.CategorizeRiskScore(result.RiskScore).String(),
				Result:       result,
				Summary:      engine.GenerateExecutiveSummary(result, affectedOf(processes, result)),
			}
			if result.MonteCarlo != nil {
				out.Distribution = engine.AnalyzeDistribution(result.MonteCarlo)
			}

			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return goerr.Wrap(err, "failed to marshal simulation output")
			}
			safe.Write(ctx, os.Stdout, append(data, '\n'))
			return nil
		},
	}
}

// waitForResult polls the simulation status until it reaches a terminal
// state, then loads the stored result
func waitForResult(ctx context.Context, uc *usecase.SimulationUseCase, id types.SimulationID) (*model.SimulationResult, error) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, goerr.Wrap(ctx.Err(), "aborted while waiting for simulation",
				goerr.V("simulation_id", id))
		case <-ticker.C:
		}

		sim, err := uc.GetSimulation(ctx, id)
		if err != nil {
			return nil, err
		}

		switch sim.Status.Normalize() {
		case types.SimulationStatusCompleted:
			return uc.GetResult(ctx, id)
		case types.SimulationStatusFailed:
			return nil, goerr.New("simulation failed",
				goerr.V("simulation_id", id),
				goerr.V("error_message", sim.ErrorMessage))
		}
	}
}

// affectedOf filters the seeded processes down to the ones the result names
func affectedOf(processes []*model.BusinessProcess, result *model.SimulationResult) []*model.BusinessProcess {
	affected := make(map[types.ProcessID]bool, len(result.AffectedProcessIDs))
	for _, id := range result.AffectedProcessIDs {
		affected[id] = true
	}

	var out []*model.BusinessProcess
	for _, p := range processes {
		if affected[p.ID] {
			out = append(out, p)
		}
	}
	return out
}
