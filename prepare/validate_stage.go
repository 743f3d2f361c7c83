// Package prepare implements the pipeline stages that assemble a run
// directory for the external trainer.
package prepare

import (
	"context"
	"fmt"

	"github.com/convoy-rl/convoy/config"
	"github.com/convoy-rl/convoy/pipeline"
)

// ValidateStage loads and validates the experiment document, populating the
// run context descriptor.
type ValidateStage struct{}

func (s *ValidateStage) Name() string { return "validate-experiment" }

func (s *ValidateStage) Execute(ctx context.Context, rc *pipeline.RunContext) error {
	desc, result, err := config.Load(rc.Opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("loading experiment: %w", err)
	}
	for _, w := range result.Warnings {
		rc.AddWarning(w)
	}
	if !result.IsValid() {
		msgs := make([]string, 0, len(result.Errors))
		for _, e := range result.Errors {
			msgs = append(msgs, e.Error())
		}
		return fmt.Errorf("experiment validation failed: %v", msgs)
	}
	rc.Descriptor = desc
	return nil
}
