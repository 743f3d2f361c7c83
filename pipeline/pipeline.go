// Package pipeline provides a sequential stage-based pipeline for preparing
// an experiment run directory.
package pipeline

import (
	"context"
	"fmt"
)

// Stage is a single unit of work in a run-preparation pipeline.
type Stage interface {
	Name() string
	Execute(ctx context.Context, rc *RunContext) error
}

// Pipeline executes a sequence of stages in order.
type Pipeline struct {
	stages []Stage
}

// New creates a Pipeline from the given stages.
func New(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// Run executes each stage sequentially. It stops on the first error.
func (p *Pipeline) Run(ctx context.Context, rc *RunContext) error {
	for _, s := range p.stages {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("pipeline cancelled before stage %s: %w", s.Name(), err)
		}
		if err := s.Execute(ctx, rc); err != nil {
			return fmt.Errorf("stage %s: %w", s.Name(), err)
		}
	}
	return nil
}
