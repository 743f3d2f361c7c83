package prepare

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/convoy-rl/convoy/pipeline"
)

// ManifestStage writes the scenario manifest: each enabled scenario with its
// step budget and the path the trainer should resolve it under.
type ManifestStage struct{}

func (s *ManifestStage) Name() string { return "write-scenario-manifest" }

type manifestEntry struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	StepNum int    `json:"step_num"`
}

func (s *ManifestStage) Execute(ctx context.Context, rc *pipeline.RunContext) error {
	if rc.Descriptor == nil {
		return fmt.Errorf("descriptor not loaded; validate stage must run first")
	}

	entries := make([]manifestEntry, 0, len(rc.Descriptor.Scenarios))
	for name, sc := range rc.Descriptor.Scenarios {
		if !sc.IsEnabled() {
			continue
		}
		entries = append(entries, manifestEntry{
			Name:    name,
			Path:    filepath.Join(rc.Descriptor.ScenariosRoot, name),
			StepNum: sc.StepNum,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding scenario manifest: %w", err)
	}
	path := filepath.Join(rc.Opts.OutputDir, "scenarios.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing scenario manifest: %w", err)
	}
	rc.AddFile("scenarios.json", path)
	return nil
}
