package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	ContentPath string

	// Page settings
	OutputPath   string
	TemplatesDir string
	SassDir      string
	CSSDir       string

	// Record storage
	RecordsFile string
	RecordsDir  string

	LogLevel string

	// Number of workers running version probes
	Processors int

	// Paths to ignore when scanning a content directory
	PathsToIgnore []string

	// Version probe commands
	GitCommand    []string
	PythonCommand []string
	RustCommand   []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	ProjectPath string
	Content     string
	Output      string
	NameFilter  string
	LogLevel    string
	Verbose     bool
	JSON        bool
	List        bool
	Saved       bool
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:   DefaultProjectPath,
		ContentPath:   DefaultContentPath,
		OutputPath:    DefaultOutputPath,
		TemplatesDir:  DefaultTemplatesDir,
		SassDir:       DefaultSassDir,
		CSSDir:        DefaultCSSDir,
		RecordsFile:   DefaultRecordsFile,
		RecordsDir:    DefaultRecordsDir,
		LogLevel:      DefaultLogLevel,
		Processors:    DefaultProcessors,
		GitCommand:    append([]string(nil), DefaultGitCommand...),
		PythonCommand: append([]string(nil), DefaultPythonCommand...),
		RustCommand:   append([]string(nil), DefaultRustCommand...),
	}
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load creates a config, applies the environment and then the flags.
func Load(flags Flags) (*Config, error) {
	cfg := New()
	if err := cfg.Apply(flags); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply layers the .env file, the process environment and flags over the
// current values. Process variables win over the .env file.
func (c *Config) Apply(flags Flags) error {
	c.Flags = flags
	if flags.ProjectPath != "" {
		c.ProjectPath = flags.ProjectPath
	}

	env, err := c.readEnv()
	if err != nil {
		return err
	}
	set := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
			return
		}
		if v := env[key]; v != "" {
			*dst = v
		}
	}
	set(&c.ContentPath, EnvContent)
	set(&c.OutputPath, EnvOutput)
	set(&c.TemplatesDir, EnvTemplates)
	set(&c.SassDir, EnvSassDir)
	set(&c.CSSDir, EnvCSSDir)
	set(&c.LogLevel, EnvLogLevel)

	if flags.Content != "" {
		c.ContentPath = flags.Content
	}
	if flags.Output != "" {
		c.OutputPath = flags.Output
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
	return nil
}

func (c *Config) readEnv() (map[string]string, error) {
	path := filepath.Join(c.ProjectPath, EnvFile)
	env, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		// No .env file, the process environment still applies
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return env, nil
}

// resolve makes p relative to the project path unless it is absolute.
func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.ProjectPath, p)
}

// GetContentPath returns the content file or directory
func (c *Config) GetContentPath() string {
	return c.resolve(c.ContentPath)
}

// GetOutputPath returns the page output path
func (c *Config) GetOutputPath() string {
	return c.resolve(c.OutputPath)
}

// GetTemplatesDir returns the directory holding index.html
func (c *Config) GetTemplatesDir() string {
	return c.resolve(c.TemplatesDir)
}

// GetSassDir returns the SCSS source directory
func (c *Config) GetSassDir() string {
	return c.resolve(c.SassDir)
}

// GetCSSDir returns the compiled stylesheet directory
func (c *Config) GetCSSDir() string {
	return c.resolve(c.CSSDir)
}

// GetRecordsPath returns the full path to the records JSON file.
// Resolves to an absolute path so extract and browse read the same file regardless of cwd.
func (c *Config) GetRecordsPath() string {
	p := filepath.Join(c.resolve(c.RecordsDir), c.RecordsFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
