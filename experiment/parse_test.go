package experiment

import "testing"

const parseDoc = `
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
  checkpoint_at_end: true
  stop:
    time_total_s: 7200
  config:
    log_level: WARN
    horizon: 1000
    rollout_fragment_length: 200
    lr: 0.0001
    gamma: 0.99
agent_list:
  group_a:
    - locator: open_agent:open_agent-v0
    - locator: keep_lane:keep_lane-v0
      name: lane_keeper
      enabled: false
scenarios:
  cross:
    step_num: 1500
  merge:
    step_num: 2000
    enabled: false
result_path: ./results
scenarios_root: ./scenarios
evaluation_items: [diversity, collision]
`

func TestParse_Defaults(t *testing.T) {
	d, err := Parse([]byte(parseDoc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	group := d.AgentList["group_a"]
	if len(group) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(group))
	}
	if group[0].Name != "open_agent:open_agent-v0" {
		t.Fatalf("entry name should default to locator, got %q", group[0].Name)
	}
	if group[1].Name != "lane_keeper" {
		t.Fatalf("explicit name must be kept, got %q", group[1].Name)
	}
	if !group[0].IsEnabled() {
		t.Fatal("entries default to enabled")
	}
	if group[1].IsEnabled() {
		t.Fatal("enabled: false must disable the entry")
	}
}

func TestParse_TypedFields(t *testing.T) {
	d, err := Parse([]byte(parseDoc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.Agent.ActionType != ActionLane {
		t.Fatalf("expected lane action space, got %v", d.Agent.ActionType)
	}
	if d.Policy.Framework != FrameworkRLlib {
		t.Fatalf("expected rllib, got %q", d.Policy.Framework)
	}
	if d.Run.Config.Gamma != 0.99 {
		t.Fatalf("gamma: got %v", d.Run.Config.Gamma)
	}
	f := d.Agent.Features["heading_errors"]
	if f.Buckets != 10 || f.Mode != ModeContinuous {
		t.Fatalf("heading_errors: got %+v", f)
	}
}

func TestDescriptor_Totals(t *testing.T) {
	d, err := Parse([]byte(parseDoc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if n := d.TotalAgents(); n != 1 {
		t.Fatalf("expected 1 enabled agent, got %d", n)
	}
	if n := d.TotalStepBudget(); n != 1500 {
		t.Fatalf("expected budget 1500 (merge disabled), got %d", n)
	}
	enabled := d.EnabledAgents()["group_a"]
	if len(enabled) != 1 || enabled[0].Name != "open_agent:open_agent-v0" {
		t.Fatalf("unexpected enabled agents: %+v", enabled)
	}
}

func TestParse_Malformed(t *testing.T) {
	if _, err := Parse([]byte("agent: [unclosed")); err == nil {
		t.Fatal("expected error for malformed document")
	}
}

func TestActionType_Names(t *testing.T) {
	if ActionContinuous.String() != "continuous" || ActionTrajectory.String() != "trajectory" {
		t.Fatal("action space names out of sync")
	}
	if ActionType(9).Known() {
		t.Fatal("9 is not a recognized action space")
	}
	if ActionType(9).String() != "unknown" {
		t.Fatalf("unexpected name: %s", ActionType(9))
	}
}
