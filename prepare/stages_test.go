package prepare

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/convoy-rl/convoy/pipeline"
)

const stageDoc = `
agent:
  wrapper: frame_stack
  action_type: 1
interface:
  max_episode_steps: 1000
  neighborhood_radius: 100.0
  waypoints_lookahead: 50
policy:
  framework: rllib
  model:
    agent_number: 1
    communicate_level: 1
    rnn_hidden_dim: 64
  trainer:
    module: commnet.trainer
    name: CommNetTrainer
run:
  checkpoint_freq: 5
  stop:
    time_total_s: 7200
  config:
    horizon: 1000
    rollout_fragment_length: 200
    lr: 0.0001
    gamma: 0.99
agent_list:
  group_a:
    - locator: open_agent:open_agent-v0
scenarios:
  cross:
    step_num: 1500
  merge:
    step_num: 2000
    enabled: false
result_path: ./results
scenarios_root: ./scenarios
`

func preparedContext(t *testing.T) *pipeline.RunContext {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "experiment.yaml")
	if err := os.WriteFile(cfgPath, []byte(stageDoc), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return pipeline.NewRunContext(pipeline.RunOptions{
		WorkDir:     dir,
		OutputDir:   filepath.Join(dir, ".convoy-run"),
		ConfigPath:  cfgPath,
		ToolVersion: "test",
	})
}

func TestPipeline_AllStages(t *testing.T) {
	rc := preparedContext(t)
	p := pipeline.New(
		&ValidateStage{},
		&EnvelopeStage{},
		&ManifestStage{},
		&EnvFileStage{},
	)
	if err := p.Run(context.Background(), rc); err != nil {
		t.Fatalf("pipeline: %v", err)
	}

	for _, rel := range []string{"experiment.json", "scenarios.json", "run.env"} {
		path, ok := rc.GeneratedFiles[rel]
		if !ok {
			t.Fatalf("%s not recorded in run context", rel)
		}
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("%s not written: %v", rel, err)
		}
	}
}

func TestValidateStage_RejectsInvalidDocument(t *testing.T) {
	rc := preparedContext(t)
	bad := strings.Replace(stageDoc, "gamma: 0.99", "gamma: 2.0", 1)
	if err := os.WriteFile(rc.Opts.ConfigPath, []byte(bad), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	err := (&ValidateStage{}).Execute(context.Background(), rc)
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if !strings.Contains(err.Error(), "run.config.gamma") {
		t.Fatalf("error should name the offending field, got: %v", err)
	}
}

func TestEnvelopeStage_RequiresDescriptor(t *testing.T) {
	rc := preparedContext(t)
	if err := (&EnvelopeStage{}).Execute(context.Background(), rc); err == nil {
		t.Fatal("expected error when validate stage has not run")
	}
}

func TestManifestStage_SkipsDisabledScenarios(t *testing.T) {
	rc := preparedContext(t)
	if err := (&ValidateStage{}).Execute(context.Background(), rc); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if err := os.MkdirAll(rc.Opts.OutputDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := (&ManifestStage{}).Execute(context.Background(), rc); err != nil {
		t.Fatalf("manifest: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(rc.Opts.OutputDir, "scenarios.json"))
	if err != nil {
		t.Fatalf("reading manifest: %v", err)
	}
	var entries []struct {
		Name    string `json:"name"`
		Path    string `json:"path"`
		StepNum int    `json:"step_num"`
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("decoding manifest: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "cross" || entries[0].StepNum != 1500 {
		t.Fatalf("unexpected manifest: %+v", entries)
	}
	if entries[0].Path != filepath.Join("./scenarios", "cross") {
		t.Fatalf("unexpected scenario path: %s", entries[0].Path)
	}
}

func TestEnvFileStage_WritesHandoffVariables(t *testing.T) {
	rc := preparedContext(t)
	rc.Opts.Env = map[string]string{"EXTRA": "1"}
	if err := (&ValidateStage{}).Execute(context.Background(), rc); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if err := os.MkdirAll(rc.Opts.OutputDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := (&EnvFileStage{}).Execute(context.Background(), rc); err != nil {
		t.Fatalf("env file: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(rc.Opts.OutputDir, "run.env"))
	if err != nil {
		t.Fatalf("reading run.env: %v", err)
	}
	content := string(data)
	for _, key := range []string{
		"CONVOY_EXPERIMENT=", "CONVOY_SCENARIOS=", "CONVOY_RESULT_DIR=",
		"CONVOY_SCENARIOS_ROOT=", "CONVOY_FRAMEWORK=rllib", "EXTRA=1",
	} {
		if !strings.Contains(content, key) {
			t.Errorf("run.env missing %s:\n%s", key, content)
		}
	}
}
