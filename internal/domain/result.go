package domain

import "time"

// Probe is an external command whose output is recorded, such as
// `rustc --version`.
type Probe struct {
	Name    string
	Command []string
}

// ProbeResult is the outcome of running one probe
type ProbeResult struct {
	Name     string        // Probe name, e.g. "git" or "rustc"
	Success  bool          // Whether the command exited cleanly
	Output   string        // Raw stdout
	Error    error         // Error if execution failed
	Duration time.Duration // Time taken to execute
}
