package runtime

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// TrainerProcess manages the external trainer child process.
type TrainerProcess struct {
	entrypoint string
	workDir    string
	env        map[string]string
	logger     Logger

	mu      sync.Mutex
	cmd     *exec.Cmd
	done    chan struct{}
	waitErr error
}

// NewTrainerProcess creates a process wrapper that will run the given
// entrypoint command with the provided environment merged over os.Environ.
func NewTrainerProcess(entrypoint, workDir string, env map[string]string, logger Logger) *TrainerProcess {
	return &TrainerProcess{
		entrypoint: entrypoint,
		workDir:    workDir,
		env:        env,
		logger:     logger,
	}
}

// Start launches the trainer. Output is streamed through the logger.
func (t *TrainerProcess) Start(ctx context.Context) error {
	fields := strings.Fields(t.entrypoint)
	if len(fields) == 0 {
		return fmt.Errorf("empty trainer entrypoint")
	}

	t.mu.Lock()
	t.cmd = exec.CommandContext(ctx, fields[0], fields[1:]...)
	t.cmd.Dir = t.workDir

	env := os.Environ()
	for k, v := range t.env {
		env = append(env, k+"="+v)
	}
	t.cmd.Env = env

	stdout, err := t.cmd.StdoutPipe()
	if err != nil {
		t.mu.Unlock()
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := t.cmd.StderrPipe()
	if err != nil {
		t.mu.Unlock()
		return fmt.Errorf("stderr pipe: %w", err)
	}

	if err := t.cmd.Start(); err != nil {
		t.mu.Unlock()
		return fmt.Errorf("starting trainer: %w", err)
	}
	pid := t.cmd.Process.Pid
	t.done = make(chan struct{})
	cmd := t.cmd
	t.mu.Unlock()

	go t.pipe("stdout", stdout)
	go t.pipe("stderr", stderr)
	go func() {
		t.waitErr = cmd.Wait()
		close(t.done)
	}()

	t.logger.Info("trainer started", map[string]any{
		"pid":        pid,
		"entrypoint": t.entrypoint,
	})
	return nil
}

func (t *TrainerProcess) pipe(stream string, r io.Reader) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		t.logger.Info("trainer", map[string]any{stream: scanner.Text()})
	}
}

// Wait blocks until the trainer exits and returns its exit error.
func (t *TrainerProcess) Wait() error {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()
	if done == nil {
		return fmt.Errorf("trainer not started")
	}
	<-done
	return t.waitErr
}

// Stop signals the trainer to shut down, killing it after a grace period.
func (t *TrainerProcess) Stop() {
	t.mu.Lock()
	cmd := t.cmd
	done := t.done
	t.mu.Unlock()
	if cmd == nil || cmd.Process == nil {
		return
	}

	if err := cmd.Process.Signal(os.Interrupt); err != nil {
		_ = cmd.Process.Kill()
		return
	}

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.logger.Warn("trainer did not exit, killing", map[string]any{"pid": cmd.Process.Pid})
		_ = cmd.Process.Kill()
	}
}
