package commands

import (
	"context"

	"pyformat/internal/config"
	"pyformat/internal/discovery"
	"pyformat/internal/domain"
	"pyformat/internal/extract"
)

// contentLoader resolves the content path and extracts its records
type contentLoader struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	extractor *extract.Extractor
}

// Files returns the content files to read, in path order
func (l *contentLoader) Files() ([]string, error) {
	return l.scanner.Resolve(l.config.GetContentPath())
}

// Load extracts the records of every content file and applies the name
// filter. It also returns the files that were read.
func (l *contentLoader) Load(ctx context.Context) ([]domain.Record, []string, error) {
	files, err := l.Files()
	if err != nil {
		return nil, nil, err
	}

	var records []domain.Record
	for _, file := range files {
		found, err := l.extractor.ExtractFile(ctx, file)
		if err != nil {
			return nil, nil, err
		}
		records = append(records, found...)
	}
	return l.filter.FilterRecords(records, l.config.Flags.NameFilter), files, nil
}
