package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

// templateOutput is one scenario catalog entry in the JSON listing
type templateOutput struct {
	ID                string         `json:"id"`
	ScenarioType      string         `json:"scenario_type"`
	Name              string         `json:"name"`
	Description       string         `json:"description"`
	DefaultParameters map[string]any `json:"default_parameters"`
	Version           string         `json:"version"`
}

func cmdTemplates() *cli.Command {
	return &cli.Command{
		Name:    "templates",
		Aliases: []string{"t"},
		Usage:   "List the builtin scenario templates and their default parameters",
		Action: func(ctx context.Context, c *cli.Command) error {
			var out []templateOutput
			for _, tmpl := range model.BuiltinScenarioTemplates() {
				if !tmpl.IsActive {
					continue
				}
				out = append(out, templateOutput{
					ID:                tmpl.ID,
					ScenarioType:      tmpl.ScenarioType.String(),
					Name:              tmpl.Name,
					Description:       tmpl.Description,
					DefaultParameters: tmpl.DefaultParameters,
					Version:           tmpl.Version,
				})
			}

			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return goerr.Wrap(err, "failed to marshal scenario templates")
			}
			safe.Write(ctx, os.Stdout, append(data, '\n'))
			return nil
		},
	}
}
