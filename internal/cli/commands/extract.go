package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pyformat/internal/config"
	"pyformat/internal/storage"
	"pyformat/internal/ui"
)

// ExtractCommand handles the extract command
type ExtractCommand struct {
	config    *config.Config
	loader    *contentLoader
	storage   storage.Storage
	formatter *ui.Formatter
}

// NewExtractCommand creates a new ExtractCommand
func NewExtractCommand(cfg *config.Config, loader *contentLoader, st storage.Storage, formatter *ui.Formatter) *ExtractCommand {
	return &ExtractCommand{
		config:    cfg,
		loader:    loader,
		storage:   st,
		formatter: formatter,
	}
}

// Execute runs the command
func (ec *ExtractCommand) Execute(cmd *cobra.Command, args []string) error {
	if ec.config.Flags.List {
		files, err := ec.loader.Files()
		if err != nil {
			return err
		}
		if len(files) == 0 {
			color.Yellow("No content files found")
			return nil
		}
		ec.formatter.PrintContentFiles(files)
		return nil
	}

	records, files, err := ec.loader.Load(cmd.Context())
	if err != nil {
		return err
	}

	ec.formatter.PrintRecords(records, ec.config.Flags.Verbose)

	if ec.config.Flags.JSON {
		if err := ec.storage.Save(records, files); err != nil {
			return err
		}
		color.Green("✓ Records saved to %s", ec.config.GetRecordsPath())
	}
	return nil
}
