package export

import (
	"encoding/json"
	"testing"

	"github.com/convoy-rl/convoy/experiment"
)

func sampleDescriptor() *experiment.Descriptor {
	off := false
	return &experiment.Descriptor{
		Agent: experiment.AgentConfig{Wrapper: "frame_stack", ActionType: experiment.ActionLane},
		Policy: experiment.PolicyConfig{
			Framework: experiment.FrameworkRLlib,
			Model:     experiment.ModelConfig{AgentNumber: 2},
			Trainer:   experiment.TrainerConfig{Module: "commnet.trainer", Name: "CommNetTrainer"},
		},
		AgentList: map[string]experiment.AgentGroup{
			"group_a": {
				{Locator: "open_agent:open_agent-v0", Name: "open_agent:open_agent-v0"},
				{Locator: "keep_lane:keep_lane-v0", Name: "lane_keeper", Enabled: &off},
			},
		},
		Scenarios: map[string]experiment.ScenarioEntry{
			"cross": {StepNum: 1500},
			"merge": {StepNum: 2000, Enabled: &off},
		},
		ResultPath:    "./results",
		ScenariosRoot: "./scenarios",
	}
}

func TestBuildEnvelope_Basic(t *testing.T) {
	envelope, err := BuildEnvelope(sampleDescriptor(), "0.3.0")
	if err != nil {
		t.Fatalf("BuildEnvelope() error: %v", err)
	}

	meta, ok := envelope["_convoy_export_meta"].(map[string]any)
	if !ok {
		t.Fatal("envelope missing meta block")
	}
	if meta["convoy_version"] != "0.3.0" {
		t.Errorf("convoy_version = %v", meta["convoy_version"])
	}
	if meta["total_agents"] != 1 {
		t.Errorf("total_agents = %v, want 1 (one entry disabled)", meta["total_agents"])
	}
	if meta["step_budget"] != 1500 {
		t.Errorf("step_budget = %v, want 1500 (merge disabled)", meta["step_budget"])
	}

	budgets, ok := meta["scenario_budgets"].(map[string]int)
	if !ok {
		t.Fatalf("scenario_budgets has wrong type: %T", meta["scenario_budgets"])
	}
	if len(budgets) != 1 || budgets["cross"] != 1500 {
		t.Errorf("scenario_budgets = %v", budgets)
	}

	if envelope["result_path"] != "./results" {
		t.Errorf("descriptor fields must be carried through, got result_path=%v", envelope["result_path"])
	}
}

func TestMarshal_RoundTrips(t *testing.T) {
	envelope, err := BuildEnvelope(sampleDescriptor(), "dev")
	if err != nil {
		t.Fatalf("BuildEnvelope() error: %v", err)
	}
	data, err := Marshal(envelope)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("envelope is not valid JSON: %v", err)
	}
	if _, ok := decoded["_convoy_export_meta"]; !ok {
		t.Fatal("decoded envelope missing meta block")
	}
}
