package prepare

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/convoy-rl/convoy/pipeline"
)

// EnvFileStage writes run.env with the variables the trainer subprocess
// receives, so a run directory can be replayed by hand.
type EnvFileStage struct{}

func (s *EnvFileStage) Name() string { return "write-env-file" }

func (s *EnvFileStage) Execute(ctx context.Context, rc *pipeline.RunContext) error {
	if rc.Descriptor == nil {
		return fmt.Errorf("descriptor not loaded; validate stage must run first")
	}

	env := map[string]string{
		"CONVOY_EXPERIMENT":     filepath.Join(rc.Opts.OutputDir, "experiment.json"),
		"CONVOY_SCENARIOS":      filepath.Join(rc.Opts.OutputDir, "scenarios.json"),
		"CONVOY_RESULT_DIR":     rc.Descriptor.ResultPath,
		"CONVOY_SCENARIOS_ROOT": rc.Descriptor.ScenariosRoot,
		"CONVOY_FRAMEWORK":      string(rc.Descriptor.Policy.Framework),
	}
	for k, v := range rc.Opts.Env {
		env[k] = v
	}

	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(env[k])
		b.WriteByte('\n')
	}

	path := filepath.Join(rc.Opts.OutputDir, "run.env")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing run.env: %w", err)
	}
	rc.AddFile("run.env", path)
	return nil
}
