package experiment

// ActionType is the integer code selecting the agent action space.
type ActionType int

// Recognized action space codes.
const (
	ActionContinuous      ActionType = 0
	ActionLane            ActionType = 1
	ActionActuatorDynamic ActionType = 2
	ActionTrajectory      ActionType = 3
)

var actionTypeNames = map[ActionType]string{
	ActionContinuous:      "continuous",
	ActionLane:            "lane",
	ActionActuatorDynamic: "actuator_dynamic",
	ActionTrajectory:      "trajectory",
}

// Known reports whether the code is a recognized action space.
func (a ActionType) Known() bool {
	_, ok := actionTypeNames[a]
	return ok
}

// String returns the action space name, or "unknown" for unrecognized codes.
func (a ActionType) String() string {
	if name, ok := actionTypeNames[a]; ok {
		return name
	}
	return "unknown"
}

// Framework names the training framework the experiment targets.
type Framework string

const (
	FrameworkRLlib Framework = "rllib"
	FrameworkTune  Framework = "tune"
)

// KnownFrameworks lists accepted framework values.
var KnownFrameworks = []Framework{FrameworkRLlib, FrameworkTune}

// Known reports whether the framework value is accepted.
func (f Framework) Known() bool {
	for _, k := range KnownFrameworks {
		if f == k {
			return true
		}
	}
	return false
}

// ExportFormat selects a trainer export artifact.
type ExportFormat string

const (
	ExportModel      ExportFormat = "model"
	ExportCheckpoint ExportFormat = "checkpoint"
)

// Known reports whether the export format is recognized.
func (e ExportFormat) Known() bool {
	return e == ExportModel || e == ExportCheckpoint
}

// LogLevel is the run-time log level handed to the trainer.
type LogLevel string

const (
	LogDebug LogLevel = "DEBUG"
	LogInfo  LogLevel = "INFO"
	LogWarn  LogLevel = "WARN"
	LogError LogLevel = "ERROR"
)

// Known reports whether the log level is recognized.
func (l LogLevel) Known() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// EvaluationItem is a post-run evaluation metric.
type EvaluationItem string

const (
	EvalDiversity  EvaluationItem = "diversity"
	EvalOffroad    EvaluationItem = "offroad"
	EvalCollision  EvaluationItem = "collision"
	EvalKinematics EvaluationItem = "kinematics"
)

// KnownEvaluationItems lists the fixed metric set.
var KnownEvaluationItems = []EvaluationItem{
	EvalDiversity, EvalOffroad, EvalCollision, EvalKinematics,
}

// Known reports whether the metric is part of the fixed set.
func (e EvaluationItem) Known() bool {
	for _, k := range KnownEvaluationItems {
		if e == k {
			return true
		}
	}
	return false
}

// FeatureMode selects continuous or discretized feature encoding.
type FeatureMode string

const (
	ModeContinuous FeatureMode = "continuous"
	ModeDiscrete   FeatureMode = "discrete"
)

// Known reports whether the feature mode is recognized.
func (m FeatureMode) Known() bool {
	return m == ModeContinuous || m == ModeDiscrete
}
