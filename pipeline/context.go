package pipeline

import (
	"github.com/convoy-rl/convoy/experiment"
)

// RunOptions carries shared configuration for all pipeline stages.
type RunOptions struct {
	WorkDir     string
	OutputDir   string
	ConfigPath  string
	ToolVersion string
	Env         map[string]string
}

// RunContext carries state through the run-preparation pipeline.
type RunContext struct {
	Opts           RunOptions
	Descriptor     *experiment.Descriptor
	GeneratedFiles map[string]string // relPath -> absPath
	Warnings       []string
	Verbose        bool
}

// NewRunContext creates a RunContext with the given options and initialized maps.
func NewRunContext(opts RunOptions) *RunContext {
	return &RunContext{
		Opts:           opts,
		GeneratedFiles: make(map[string]string),
	}
}

// AddFile records a generated file in the run context.
func (rc *RunContext) AddFile(relPath, absPath string) {
	rc.GeneratedFiles[relPath] = absPath
}

// AddWarning appends a warning message to the run context.
func (rc *RunContext) AddWarning(msg string) {
	rc.Warnings = append(rc.Warnings, msg)
}
