package storage

import (
	"pyformat/internal/config"
	"pyformat/internal/domain"
)

// Storage persists and loads extracted records (e.g. for the browser).
type Storage interface {
	Save(records []domain.Record, content []string) error
	Load() (*domain.RecordsOutput, error)
}

// JSONStorage stores records in a JSON file under the configured records path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's records JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}

// Path returns the file the storage reads and writes.
func (s *JSONStorage) Path() string {
	return s.cfg.GetRecordsPath()
}
