package prepare

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/convoy-rl/convoy/export"
	"github.com/convoy-rl/convoy/pipeline"
)

// EnvelopeStage writes the trainer hand-off envelope to the output dir.
type EnvelopeStage struct{}

func (s *EnvelopeStage) Name() string { return "write-envelope" }

func (s *EnvelopeStage) Execute(ctx context.Context, rc *pipeline.RunContext) error {
	if rc.Descriptor == nil {
		return fmt.Errorf("descriptor not loaded; validate stage must run first")
	}

	envelope, err := export.BuildEnvelope(rc.Descriptor, rc.Opts.ToolVersion)
	if err != nil {
		return fmt.Errorf("building envelope: %w", err)
	}
	data, err := export.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("encoding envelope: %w", err)
	}

	if err := os.MkdirAll(rc.Opts.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	path := filepath.Join(rc.Opts.OutputDir, "experiment.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing envelope: %w", err)
	}
	rc.AddFile("experiment.json", path)
	return nil
}
