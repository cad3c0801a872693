package ui

import "pyformat/internal/domain"

// Viewer displays extracted records in an interactive TUI
type Viewer interface {
	View(output *domain.RecordsOutput) error
}
