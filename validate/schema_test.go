package validate

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

const schemaDoc = `
agent:
  wrapper: frame_stack
  features:
    speed: true
    heading_errors: [10, continuous]
  action_type: 1
interface:
  max_episode_steps: 1000
  neighborhood_radius: 100.0
  waypoints_lookahead: 50
policy:
  framework: rllib
  model:
    agent_number: 2
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
result_path: ./results
scenarios_root: ./scenarios
`

func validateYAML(t *testing.T, src string) *Result {
	t.Helper()
	var doc any
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	jsonDoc, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	r, err := Document(jsonDoc)
	if err != nil {
		t.Fatalf("validating: %v", err)
	}
	return r
}

func TestDocument_Valid(t *testing.T) {
	r := validateYAML(t, schemaDoc)
	if !r.IsValid() {
		t.Fatalf("expected valid, got errors: %v", r.Errors)
	}
}

func TestDocument_MissingRequiredField(t *testing.T) {
	r := validateYAML(t, `
agent:
  wrapper: frame_stack
  action_type: 1
`)
	if r.IsValid() {
		t.Fatal("expected invalid")
	}
	found := false
	for _, e := range r.Errors {
		if e.Kind == KindType && e.Path == "result_path" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a type error at result_path, got %v", r.Errors)
	}
}

func TestDocument_GammaOutOfRange(t *testing.T) {
	bad := replaceLine(schemaDoc, "    gamma: 0.99", "    gamma: 1.5")
	r := validateYAML(t, bad)
	if len(r.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", r.Errors)
	}
	e := r.Errors[0]
	if e.Kind != KindRange || e.Path != "run.config.gamma" {
		t.Fatalf("unexpected error: %+v", e)
	}
}

func TestDocument_UnknownFramework(t *testing.T) {
	bad := replaceLine(schemaDoc, "  framework: rllib", "  framework: torchbeast")
	r := validateYAML(t, bad)
	if len(r.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", r.Errors)
	}
	e := r.Errors[0]
	if e.Kind != KindUnknownEnum || e.Path != "policy.framework" {
		t.Fatalf("unexpected error: %+v", e)
	}
}

func TestDocument_UnknownTopLevelField(t *testing.T) {
	r := validateYAML(t, schemaDoc+"mystery_field: 1\n")
	if len(r.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", r.Errors)
	}
	e := r.Errors[0]
	if e.Kind != KindType || e.Path != "mystery_field" {
		t.Fatalf("unexpected error: %+v", e)
	}
}

func TestDocument_AllErrorsCollected(t *testing.T) {
	bad := replaceLine(schemaDoc, "    gamma: 0.99", "    gamma: 1.5")
	bad = replaceLine(bad, "  framework: rllib", "  framework: torchbeast")
	r := validateYAML(t, bad)
	if len(r.Errors) != 2 {
		t.Fatalf("expected both errors in one pass, got %v", r.Errors)
	}
}

func replaceLine(doc, old, new string) string {
	return strings.Replace(doc, old, new, 1)
}
