package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	// ContentPrefix and ContentSuffix bound the names of content files.
	ContentPrefix = "test_"
	ContentSuffix = ".py"
)

// Scanner scans for content files in a directory
type Scanner struct {
	skipDirs map[string]bool
}

// NewScanner creates a new Scanner with the given directories to skip
func NewScanner(skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap}
}

// Resolve returns the content files for path. A file is returned as is, a
// directory is scanned.
func (s *Scanner) Resolve(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("content path does not exist: %s", path)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	return s.Scan(path)
}

// Scan finds all test_*.py files under root, sorted by path
func (s *Scanner) Scan(root string) ([]string, error) {
	var files []string

	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("content path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content path is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			// Skip hidden directories (starting with .)
			if path != root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if s.skipDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		if strings.HasPrefix(name, ContentPrefix) && strings.HasSuffix(name, ContentSuffix) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
