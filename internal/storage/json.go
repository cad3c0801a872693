package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pyformat/internal/domain"
)

// Save writes records and the content files they came from to the
// configured JSON file.
func (s *JSONStorage) Save(records []domain.Record, content []string) error {
	output := domain.RecordsOutput{
		Meta: domain.RecordsMeta{
			Content:   content,
			Records:   len(records),
			Examples:  domain.CountExamples(records),
			Timestamp: time.Now().Format(time.RFC3339),
		},
		Records: records,
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}

	path := s.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create records dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write records: %w", err)
	}
	return nil
}

// Load reads the last saved records from the configured JSON file.
func (s *JSONStorage) Load() (*domain.RecordsOutput, error) {
	path := s.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read records file: %w", err)
	}
	var output domain.RecordsOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse records: %w", err)
	}
	return &output, nil
}
