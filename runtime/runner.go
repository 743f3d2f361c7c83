package runtime

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/convoy-rl/convoy/experiment"
	"github.com/convoy-rl/convoy/pipeline"
	"github.com/convoy-rl/convoy/prepare"
)

// RunnerConfig holds configuration for the Runner.
type RunnerConfig struct {
	ConfigPath  string
	WorkDir     string
	RunDir      string
	Trainer     string
	EnvFilePath string
	ToolVersion string
	Watch       bool
	Verbose     bool
}

// Runner validates the experiment, prepares a run directory, and supervises
// the external trainer process. It never resolves agent locators itself;
// those are handed to the trainer untouched.
type Runner struct {
	cfg    RunnerConfig
	logger Logger
}

// NewRunner creates a Runner from the given config.
func NewRunner(cfg RunnerConfig) (*Runner, error) {
	if cfg.Trainer == "" {
		return nil, fmt.Errorf("trainer entrypoint is required")
	}
	if cfg.RunDir == "" {
		cfg.RunDir = filepath.Join(cfg.WorkDir, ".convoy-run")
	}
	return &Runner{cfg: cfg, logger: NewJSONLogger(os.Stderr, cfg.Verbose)}, nil
}

// Run prepares the run directory and launches the trainer. It blocks until
// the trainer exits or ctx is cancelled. With Watch enabled, changes to the
// experiment file or scenario tree trigger revalidation and a trainer
// restart; an edit that fails validation stops the run rather than feeding
// the trainer a broken document.
func (r *Runner) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	desc, env, err := r.prepare(ctx)
	if err != nil {
		return err
	}

	restart := make(chan struct{}, 1)
	if r.cfg.Watch {
		watcher := NewFileWatcher(
			[]string{r.cfg.ConfigPath, filepath.Join(r.cfg.WorkDir, desc.ScenariosRoot)},
			func() {
				select {
				case restart <- struct{}{}:
				default:
				}
			},
			r.logger,
		)
		go watcher.Watch(ctx)
	}

	for {
		proc := NewTrainerProcess(r.cfg.Trainer, r.cfg.WorkDir, env, r.logger)
		if err := proc.Start(ctx); err != nil {
			return err
		}

		exited := make(chan error, 1)
		go func() { exited <- proc.Wait() }()

		select {
		case err := <-exited:
			if err != nil {
				return fmt.Errorf("trainer exited: %w", err)
			}
			r.logger.Info("trainer finished", nil)
			return nil
		case <-ctx.Done():
			proc.Stop()
			<-exited
			r.logger.Info("trainer stopped", nil)
			return nil
		case <-restart:
			r.logger.Info("restarting trainer after experiment change", nil)
			proc.Stop()
			<-exited
			desc, env, err = r.prepare(ctx)
			if err != nil {
				return fmt.Errorf("revalidation after change: %w", err)
			}
		}
	}
}

// prepare runs the run-directory pipeline and assembles the trainer env.
func (r *Runner) prepare(ctx context.Context) (*experiment.Descriptor, map[string]string, error) {
	envVars, err := LoadEnvFile(r.cfg.EnvFilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading env file: %w", err)
	}

	rc := pipeline.NewRunContext(pipeline.RunOptions{
		WorkDir:     r.cfg.WorkDir,
		OutputDir:   r.cfg.RunDir,
		ConfigPath:  r.cfg.ConfigPath,
		ToolVersion: r.cfg.ToolVersion,
		Env:         envVars,
	})
	rc.Verbose = r.cfg.Verbose

	p := pipeline.New(
		&prepare.ValidateStage{},
		&prepare.EnvelopeStage{},
		&prepare.ManifestStage{},
		&prepare.EnvFileStage{},
	)
	if err := p.Run(ctx, rc); err != nil {
		return nil, nil, err
	}
	for _, w := range rc.Warnings {
		r.logger.Warn(w, nil)
	}

	env := map[string]string{
		"CONVOY_EXPERIMENT":     filepath.Join(r.cfg.RunDir, "experiment.json"),
		"CONVOY_SCENARIOS":      filepath.Join(r.cfg.RunDir, "scenarios.json"),
		"CONVOY_RESULT_DIR":     rc.Descriptor.ResultPath,
		"CONVOY_SCENARIOS_ROOT": rc.Descriptor.ScenariosRoot,
		"CONVOY_FRAMEWORK":      string(rc.Descriptor.Policy.Framework),
	}
	for k, v := range envVars {
		env[k] = v
	}
	return rc.Descriptor, env, nil
}
