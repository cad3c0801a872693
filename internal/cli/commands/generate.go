package commands

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"pyformat/internal/assets"
	"pyformat/internal/config"
	"pyformat/internal/execution"
	"pyformat/internal/highlight"
	"pyformat/internal/render"
	"pyformat/internal/ui"
	"pyformat/internal/version"
)

// GenerateCommand handles the generate command
type GenerateCommand struct {
	config      *config.Config
	logger      *log.Logger
	loader      *contentLoader
	compiler    *assets.Compiler
	versions    *version.Generator
	pool        *execution.WorkerPool
	highlighter *highlight.Highlighter
}

// NewGenerateCommand creates a new GenerateCommand
func NewGenerateCommand(
	cfg *config.Config,
	logger *log.Logger,
	loader *contentLoader,
	compiler *assets.Compiler,
	versions *version.Generator,
	pool *execution.WorkerPool,
	highlighter *highlight.Highlighter,
) *GenerateCommand {
	return &GenerateCommand{
		config:      cfg,
		logger:      logger,
		loader:      loader,
		compiler:    compiler,
		versions:    versions,
		pool:        pool,
		highlighter: highlighter,
	}
}

// Execute runs the command
func (gc *GenerateCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	records, _, err := gc.loader.Load(ctx)
	if err != nil {
		return err
	}

	sassDir := gc.config.GetSassDir()
	entries, err := assets.EntryPoints(sassDir)
	if err != nil {
		return err
	}
	progressBar := ui.NewProgressBarTo(cmd.ErrOrStderr(), len(entries), "Compiling SCSS")
	styles, err := gc.compiler.WithProgress(progressBar).Generate(ctx, sassDir, gc.config.GetCSSDir())
	progressBar.Finish()
	if err != nil {
		return fmt.Errorf("generate css: %w", err)
	}

	// The pool finishes the bar once every probe has run
	probeBar := ui.NewProgressBarTo(cmd.ErrOrStderr(), len(gc.versions.Probes()), "Probing versions")
	gc.pool.SetProgress(probeBar)
	v, err := gc.versions.Generate(ctx)
	if err != nil {
		return fmt.Errorf("generate version: %w", err)
	}
	probed, failed := probeBar.Counts()
	gc.logger.Debug("Probed versions.", "done", probed, "failed", failed)

	// The templates dir is only known once flags are applied
	renderer := render.New(gc.logger, gc.highlighter, gc.config.GetTemplatesDir())
	output := gc.config.GetOutputPath()
	if err := renderer.RenderFile(output, records, styles, v); err != nil {
		return err
	}
	gc.logger.Info("Done.", "output", output)
	return nil
}
