// Package experiment defines the typed in-memory representation of a
// convoy experiment document.
package experiment

// Descriptor is the canonical in-memory representation of an experiment
// document. It is built once by config.Load and never mutated afterwards.
type Descriptor struct {
	Agent           AgentConfig              `yaml:"agent" json:"agent"`
	Interface       InterfaceConfig          `yaml:"interface" json:"interface"`
	Policy          PolicyConfig             `yaml:"policy" json:"policy"`
	Run             RunConfig                `yaml:"run" json:"run"`
	AgentList       map[string]AgentGroup    `yaml:"agent_list" json:"agent_list"`
	Scenarios       map[string]ScenarioEntry `yaml:"scenarios" json:"scenarios"`
	ResultPath      string                   `yaml:"result_path" json:"result_path"`
	ScenariosRoot   string                   `yaml:"scenarios_root" json:"scenarios_root"`
	EvaluationItems []EvaluationItem         `yaml:"evaluation_items" json:"evaluation_items"`
}

// AgentConfig describes the observation/action adapter applied to each agent.
type AgentConfig struct {
	Wrapper    string                 `yaml:"wrapper" json:"wrapper"`
	Features   map[string]FeatureSpec `yaml:"features" json:"features"`
	ActionType ActionType             `yaml:"action_type" json:"action_type"`
}

// InterfaceConfig describes how agents observe the environment.
type InterfaceConfig struct {
	MaxEpisodeSteps    int     `yaml:"max_episode_steps" json:"max_episode_steps"`
	NeighborhoodRadius float64 `yaml:"neighborhood_radius" json:"neighborhood_radius"`
	WaypointsLookahead int     `yaml:"waypoints_lookahead" json:"waypoints_lookahead"`
}

// PolicyConfig describes the communication-network policy and its trainer.
type PolicyConfig struct {
	Framework Framework     `yaml:"framework" json:"framework"`
	Model     ModelConfig   `yaml:"model" json:"model"`
	Trainer   TrainerConfig `yaml:"trainer" json:"trainer"`
}

// ModelConfig holds communication-network hyperparameters.
type ModelConfig struct {
	AgentNumber      int `yaml:"agent_number" json:"agent_number"`
	CommunicateLevel int `yaml:"communicate_level" json:"communicate_level"`
	RNNHiddenDim     int `yaml:"rnn_hidden_dim" json:"rnn_hidden_dim"`
}

// TrainerConfig references the external trainer implementation.
type TrainerConfig struct {
	Module string `yaml:"module" json:"module"`
	Name   string `yaml:"name" json:"name"`
}

// RunConfig holds training-run settings handed to the external trainer.
type RunConfig struct {
	CheckpointFreq  int                `yaml:"checkpoint_freq" json:"checkpoint_freq"`
	CheckpointAtEnd bool               `yaml:"checkpoint_at_end" json:"checkpoint_at_end"`
	MaxFailures     int                `yaml:"max_failures" json:"max_failures"`
	Resume          bool               `yaml:"resume" json:"resume"`
	ExportFormats   []ExportFormat     `yaml:"export_formats" json:"export_formats"`
	Stop            map[string]float64 `yaml:"stop" json:"stop"`
	Config          RunTimeConfig      `yaml:"config" json:"config"`
}

// RunTimeConfig holds nested run-time hyperparameters.
type RunTimeConfig struct {
	LogLevel              LogLevel `yaml:"log_level" json:"log_level"`
	NumWorkers            int      `yaml:"num_workers" json:"num_workers"`
	NumGPUs               int      `yaml:"num_gpus" json:"num_gpus"`
	Horizon               int      `yaml:"horizon" json:"horizon"`
	RolloutFragmentLength int      `yaml:"rollout_fragment_length" json:"rollout_fragment_length"`
	LR                    float64  `yaml:"lr" json:"lr"`
	MinIterTimeS          float64  `yaml:"min_iter_time_s" json:"min_iter_time_s"`
	Gamma                 float64  `yaml:"gamma" json:"gamma"`
}

// AgentGroup is an ordered sequence of agent entries sharing a group name.
type AgentGroup []AgentEntry

// AgentEntry references an externally-installed policy implementation.
// Name defaults to the locator when omitted. Enabled defaults to true and
// replaces the source format's comment-based soft-disable.
type AgentEntry struct {
	Locator string             `yaml:"locator" json:"locator"`
	Name    string             `yaml:"name,omitempty" json:"name,omitempty"`
	Params  map[string]float64 `yaml:"params,omitempty" json:"params,omitempty"`
	Enabled *bool              `yaml:"enabled,omitempty" json:"enabled,omitempty"`
}

// IsEnabled reports whether the entry participates in the run.
func (e AgentEntry) IsEnabled() bool {
	return e.Enabled == nil || *e.Enabled
}

// DisplayName returns the entry name, falling back to the locator.
func (e AgentEntry) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.Locator
}

// ScenarioEntry is a named driving scenario with a step budget. The name is
// the mapping key and doubles as the directory name under scenarios_root.
type ScenarioEntry struct {
	StepNum int   `yaml:"step_num" json:"step_num"`
	Enabled *bool `yaml:"enabled,omitempty" json:"enabled,omitempty"`
}

// IsEnabled reports whether the scenario participates in the run.
func (s ScenarioEntry) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// EnabledAgents returns the enabled entries of every group, keyed by group
// name, preserving entry order within each group.
func (d *Descriptor) EnabledAgents() map[string][]AgentEntry {
	out := make(map[string][]AgentEntry, len(d.AgentList))
	for name, group := range d.AgentList {
		var entries []AgentEntry
		for _, e := range group {
			if e.IsEnabled() {
				entries = append(entries, e)
			}
		}
		out[name] = entries
	}
	return out
}

// TotalAgents counts enabled agent entries across all groups.
func (d *Descriptor) TotalAgents() int {
	n := 0
	for _, group := range d.AgentList {
		for _, e := range group {
			if e.IsEnabled() {
				n++
			}
		}
	}
	return n
}

// TotalStepBudget sums step_num over enabled scenarios.
func (d *Descriptor) TotalStepBudget() int {
	n := 0
	for _, s := range d.Scenarios {
		if s.IsEnabled() {
			n += s.StepNum
		}
	}
	return n
}
