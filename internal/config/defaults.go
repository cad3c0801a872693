package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultContentPath is the Python module holding the examples
	DefaultContentPath = "tests/test_content.py"
	// DefaultOutputPath is the rendered page
	DefaultOutputPath = "index.html"
	// DefaultTemplatesDir holds index.html
	DefaultTemplatesDir = "templates"
	// DefaultSassDir holds the SCSS sources
	DefaultSassDir = "assets/sass"
	// DefaultCSSDir receives the compiled stylesheets
	DefaultCSSDir = "assets/css"
	// DefaultRecordsFile is the JSON file name for extracted records
	DefaultRecordsFile = "examples.json"
	// DefaultRecordsDir is the directory of the records file
	DefaultRecordsDir = "storage"
	// DefaultLogLevel is the default log level
	DefaultLogLevel = "info"
	// DefaultProcessors is the default number of probe workers
	DefaultProcessors = 3
	// EnvFile is read from the project path when present
	EnvFile = ".env"
)

// Environment keys read from the process environment and the .env file.
const (
	EnvContent   = "PYFORMAT_CONTENT"
	EnvOutput    = "PYFORMAT_OUTPUT"
	EnvTemplates = "PYFORMAT_TEMPLATES"
	EnvSassDir   = "PYFORMAT_SASS_DIR"
	EnvCSSDir    = "PYFORMAT_CSS_DIR"
	EnvLogLevel  = "PYFORMAT_LOG_LEVEL"
)

// DefaultPathsToIgnore are the directories skipped when scanning for content files
var DefaultPathsToIgnore = []string{
	"venv",
	"node_modules",
	"__pycache__",
	"site-packages",
	"storage",
	"assets",
	"templates",
}

// Default probe commands for the version metadata.
var (
	DefaultGitCommand    = []string{"git", "rev-parse", "HEAD"}
	DefaultPythonCommand = []string{"python3", "--version"}
	DefaultRustCommand   = []string{"rustc", "--version"}
)
