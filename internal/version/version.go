// Package version collects the build metadata shown in the page footer.
package version

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"pyformat/internal/config"
	"pyformat/internal/domain"
	"pyformat/internal/execution"
)

// Probe names, also the order of the probes handed to the executor.
const (
	GitProbe    = "git"
	PythonProbe = "python"
	RustProbe   = "rust"
)

// Labels prefixed to the language version strings.
const (
	PythonLabel = "Python version: "
	RustLabel   = "Rust version: "
)

// Generator builds a domain.Version from probe commands.
type Generator struct {
	logger   *log.Logger
	config   *config.Config
	executor execution.Executor
	now      func() time.Time
}

// NewGenerator creates a Generator.
func NewGenerator(logger *log.Logger, cfg *config.Config, executor execution.Executor) *Generator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Generator{logger: logger, config: cfg, executor: executor, now: time.Now}
}

// Probes returns the commands Generate runs.
func (g *Generator) Probes() []domain.Probe {
	return []domain.Probe{
		{Name: GitProbe, Command: g.config.GitCommand},
		{Name: PythonProbe, Command: g.config.PythonCommand},
		{Name: RustProbe, Command: g.config.RustCommand},
	}
}

// Generate runs the probes. A failed probe leaves its value empty; only
// cancellation is an error.
func (g *Generator) Generate(ctx context.Context) (domain.Version, error) {
	results, elapsed, err := g.executor.Execute(ctx, g.Probes())
	if err != nil {
		return domain.Version{}, err
	}
	g.logger.Debug("Probed versions.", "elapsed", elapsed)

	outputs := make(map[string]string, len(results))
	for _, result := range results {
		if !result.Success {
			g.logger.Warn("Version probe failed.", "probe", result.Name, "duration", result.Duration, "err", result.Error)
			continue
		}
		g.logger.Debug("Version probe finished.", "probe", result.Name, "duration", result.Duration)
		outputs[result.Name] = strings.TrimSpace(result.Output)
	}

	return domain.Version{
		RevID:    outputs[GitProbe],
		Datetime: g.now().UTC(),
		LanguageVersions: []string{
			label(PythonLabel, outputs[PythonProbe]),
			label(RustLabel, outputs[RustProbe]),
		},
	}, nil
}

func label(prefix, value string) string {
	if value == "" {
		return ""
	}
	return prefix + value
}
