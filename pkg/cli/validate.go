package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/briareus/pkg/cli/config"
	"github.com/secmon-lab/briareus/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var configPath string
	var simulationPath string

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate scenario configuration and simulation definition files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Usage:       "Path to the scenario configuration TOML file",
				Required:    true,
				Sources:     cli.EnvVars("BRIAREUS_CONFIG"),
				Destination: &configPath,
			},
			&cli.StringFlag{
				Name:        "simulation",
				Usage:       "Path to a simulation definition TOML file (optional)",
				Sources:     cli.EnvVars("BRIAREUS_SIMULATION"),
				Destination: &simulationPath,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			scenarioCfg, err := config.LoadScenarioConfig(configPath)
			if err != nil {
				return goerr.Wrap(err, "configuration validation failed")
			}
			calcCfg, err := scenarioCfg.ToCalcConfig()
			if err != nil {
				return goerr.Wrap(err, "configuration validation failed")
			}

			logger.Info("Scenario configuration validation passed",
				"path", configPath,
				"churn_industries", len(calcCfg.ChurnRates),
				"max_monte_carlo_iterations", calcCfg.MaxIterations(),
			)

			if simulationPath == "" {
				return nil
			}

			def, err := config.LoadSimulationDefinition(simulationPath)
			if err != nil {
				return goerr.Wrap(err, "simulation definition validation failed")
			}

			logger.Info("Simulation definition validation passed",
				"path", simulationPath,
				"vendors", len(def.Vendors),
				"processes", len(def.Processes),
				"scenario_type", def.Simulation.ScenarioType,
			)
			return nil
		},
	}
}
