package model_test

import (
	"testing"

	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
)

func TestBuiltinScenarioTemplates(t *testing.T) {
	templates := model.BuiltinScenarioTemplates()

	byType := make(map[types.ScenarioType]*model.ScenarioTemplate, len(templates))
	for _, tmpl := range templates {
		if !tmpl.ScenarioType.IsValid() {
			t.Errorf("template %s has invalid scenario type %q", tmpl.ID, tmpl.ScenarioType)
		}
		if byType[tmpl.ScenarioType] != nil {
			t.Errorf("duplicate template for scenario type %s", tmpl.ScenarioType)
		}
		byType[tmpl.ScenarioType] = tmpl

		if tmpl.Name == "" || tmpl.ID == "" {
			t.Errorf("template for %s missing name or ID", tmpl.ScenarioType)
		}
		if len(tmpl.DefaultParameters) == 0 {
			t.Errorf("template for %s has no default parameters", tmpl.ScenarioType)
		}
		if !tmpl.IsActive {
			t.Errorf("builtin template for %s must be active", tmpl.ScenarioType)
		}
	}

	// Every scenario type the engine understands has a catalog entry
	for _, st := range types.AllScenarioTypes() {
		if byType[st] == nil {
			t.Errorf("no template for scenario type %s", st)
		}
	}

	// The nested failure default must never point back at multi_vendor
	mv := byType[types.ScenarioMultiVendor]
	if mv != nil {
		initial, _ := mv.DefaultParameters["initial_failure_type"].(string)
		if initial == types.ScenarioMultiVendor.String() {
			t.Error("multi_vendor template defaults to a nested multi_vendor failure")
		}
	}
}
