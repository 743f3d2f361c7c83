// Package export builds the hand-off envelope given to the external trainer.
package export

import (
	"encoding/json"
	"time"

	"github.com/convoy-rl/convoy/experiment"
)

// BuildEnvelope constructs the trainer envelope from a validated descriptor.
// The envelope is the descriptor itself plus a meta block summarizing the
// run. toolVersion is the convoy CLI version string.
func BuildEnvelope(desc *experiment.Descriptor, toolVersion string) (map[string]any, error) {
	descBytes, err := json.Marshal(desc)
	if err != nil {
		return nil, err
	}

	var envelope map[string]any
	if err := json.Unmarshal(descBytes, &envelope); err != nil {
		return nil, err
	}

	scenarioBudgets := map[string]int{}
	for name, s := range desc.Scenarios {
		if s.IsEnabled() {
			scenarioBudgets[name] = s.StepNum
		}
	}

	envelope["_convoy_export_meta"] = map[string]any{
		"exported_at":      time.Now().UTC().Format(time.RFC3339),
		"convoy_version":   toolVersion,
		"total_agents":     desc.TotalAgents(),
		"scenario_budgets": scenarioBudgets,
		"step_budget":      desc.TotalStepBudget(),
	}

	return envelope, nil
}

// Marshal renders an envelope as indented JSON for the run directory.
func Marshal(envelope map[string]any) ([]byte, error) {
	return json.MarshalIndent(envelope, "", "  ")
}
