package cli

import "pyformat/internal/config"

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

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ProjectPath: f.ProjectPath,
		Content:     f.Content,
		Output:      f.Output,
		NameFilter:  f.NameFilter,
		LogLevel:    f.LogLevel,
		Verbose:     f.Verbose,
		JSON:        f.JSON,
		List:        f.List,
		Saved:       f.Saved,
	}
}
