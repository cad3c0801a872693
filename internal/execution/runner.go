package execution

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"pyformat/internal/config"
	"pyformat/internal/domain"
)

// CommandRunner runs one probe
type CommandRunner interface {
	Run(ctx context.Context, probe domain.Probe) domain.ProbeResult
}

// Runner executes probe commands in the project directory
type Runner struct {
	config *config.Config
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{config: cfg}
}

// Run executes the probe command and captures its stdout
func (r *Runner) Run(ctx context.Context, probe domain.Probe) domain.ProbeResult {
	start := time.Now()
	result := domain.ProbeResult{Name: probe.Name}

	if len(probe.Command) == 0 {
		result.Error = fmt.Errorf("probe %s has no command", probe.Name)
		return result
	}

	cmd := exec.CommandContext(ctx, probe.Command[0], probe.Command[1:]...)
	cmd.Dir = r.config.ProjectPath

	output, err := cmd.Output()
	result.Duration = time.Since(start)
	result.Output = string(output)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			err = fmt.Errorf("%w: %s", err, exitErr.Stderr)
		}
		result.Error = fmt.Errorf("run %s: %w", probe.Name, err)
		return result
	}
	result.Success = true
	return result
}
