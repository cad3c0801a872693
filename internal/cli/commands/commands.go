package commands

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"pyformat/internal/assets"
	"pyformat/internal/cli"
	"pyformat/internal/config"
	"pyformat/internal/discovery"
	"pyformat/internal/execution"
	"pyformat/internal/extract"
	"pyformat/internal/highlight"
	"pyformat/internal/logging"
	"pyformat/internal/storage"
	"pyformat/internal/ui"
	"pyformat/internal/version"
)

// Commands holds all CLI commands
type Commands struct {
	Generate *GenerateCommand
	Extract  *ExtractCommand
	Browse   *BrowseCommand

	logger *log.Logger
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config, logger *log.Logger) *Commands {
	// Initialize dependencies
	loader := &contentLoader{
		config:    cfg,
		scanner:   discovery.NewScanner(cfg.PathsToIgnore),
		filter:    discovery.NewFilter(),
		extractor: extract.New(logger),
	}
	highlighter := highlight.New(highlight.DefaultStyle)
	compiler := assets.NewCompiler(logger, highlighter)
	runner := execution.NewRunner(cfg)
	pool := execution.NewWorkerPool(cfg, runner, execution.NewRoundRobinScheduler())
	versions := version.NewGenerator(logger, cfg, pool)
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg, discovery.NewParser())
	browser := ui.NewBrowser()

	return &Commands{
		Generate: NewGenerateCommand(cfg, logger, loader, compiler, versions, pool, highlighter),
		Extract:  NewExtractCommand(cfg, loader, jsonStorage, formatter),
		Browse:   NewBrowseCommand(cfg, loader, jsonStorage, browser),
		logger:   logger,
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	rootCmd.PersistentFlags().StringVar(&flags.ProjectPath, "project", "", "Project directory that relative paths and .env are resolved against")
	rootCmd.PersistentFlags().StringVar(&flags.Content, "content", "", "Python content file, or a directory to scan for test_*.py files")
	rootCmd.PersistentFlags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter examples by name pattern (supports wildcards, e.g., '*pad*')")
	rootCmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "", "Log level: debug, info, warn or error")

	// Update config with flags after parsing
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := cfg.Apply(flags.ToConfigFlags()); err != nil {
			return err
		}
		return logging.SetLevel(c.logger, cfg.LogLevel)
	}

	// Generate command
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Render the comparison page",
		Long:  "Extract the examples, compile the stylesheets, probe the tool versions and render the HTML page",
		RunE:  c.Generate.Execute,
	}
	generateCmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Path to the output HTML file (default index.html)")
	rootCmd.AddCommand(generateCmd)

	// Extract command
	extractCmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract the examples and print them",
		Long:  "Parse the content and report the extracted examples",
		RunE:  c.Extract.Execute,
	}
	extractCmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Print every extracted example")
	extractCmd.Flags().BoolVar(&flags.JSON, "json", false, "Save the extracted records to storage/examples.json")
	extractCmd.Flags().BoolVarP(&flags.List, "list", "l", false, "List the content files and their test definitions without extracting")
	rootCmd.AddCommand(extractCmd)

	// Browse command
	browseCmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the examples interactively",
		Long:  "Display the extracted examples in an interactive viewer",
		RunE:  c.Browse.Execute,
	}
	browseCmd.Flags().BoolVar(&flags.Saved, "saved", false, "Browse the records saved by 'extract --json' instead of extracting")
	rootCmd.AddCommand(browseCmd)
}
