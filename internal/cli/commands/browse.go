package commands

import (
	"time"

	"github.com/spf13/cobra"

	"pyformat/internal/config"
	"pyformat/internal/domain"
	"pyformat/internal/storage"
	"pyformat/internal/ui"
)

// BrowseCommand handles the browse command
type BrowseCommand struct {
	config  *config.Config
	loader  *contentLoader
	storage storage.Storage
	viewer  ui.Viewer
}

// NewBrowseCommand creates a new BrowseCommand
func NewBrowseCommand(cfg *config.Config, loader *contentLoader, st storage.Storage, viewer ui.Viewer) *BrowseCommand {
	return &BrowseCommand{
		config:  cfg,
		loader:  loader,
		storage: st,
		viewer:  viewer,
	}
}

// Execute runs the command
func (bc *BrowseCommand) Execute(cmd *cobra.Command, args []string) error {
	output, err := bc.records(cmd)
	if err != nil {
		return err
	}
	return bc.viewer.View(output)
}

// records loads the last saved extraction with --saved, otherwise
// extracts the content afresh.
func (bc *BrowseCommand) records(cmd *cobra.Command) (*domain.RecordsOutput, error) {
	if bc.config.Flags.Saved {
		return bc.storage.Load()
	}
	records, files, err := bc.loader.Load(cmd.Context())
	if err != nil {
		return nil, err
	}
	return &domain.RecordsOutput{
		Meta: domain.RecordsMeta{
			Content:   files,
			Records:   len(records),
			Examples:  domain.CountExamples(records),
			Timestamp: time.Now().Format(time.RFC3339),
		},
		Records: records,
	}, nil
}
