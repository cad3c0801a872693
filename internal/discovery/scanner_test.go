package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScanner_Scan(t *testing.T) {
	tmpDir := t.TempDir()

	testFiles := []string{
		"tests/test_b.py",
		"tests/formatting/test_a.py",
		"tests/helpers.py",
		"tests/test_notes.txt",
		"venv/lib/test_vendored.py",
		".hidden/test_hidden.py",
		"test_top.py",
	}
	for _, file := range testFiles {
		fullPath := filepath.Join(tmpDir, file)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("failed to create dir for %s: %v", file, err)
		}
		if err := os.WriteFile(fullPath, []byte("pass\n"), 0644); err != nil {
			t.Fatalf("failed to create file %s: %v", file, err)
		}
	}

	scanner := NewScanner([]string{"venv"})

	t.Run("scans content files in path order", func(t *testing.T) {
		results, err := scanner.Scan(tmpDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := []string{
			filepath.Join(tmpDir, "test_top.py"),
			filepath.Join(tmpDir, "tests/formatting/test_a.py"),
			filepath.Join(tmpDir, "tests/test_b.py"),
		}
		if len(results) != len(expected) {
			t.Fatalf("expected %d content files, got %d: %v", len(expected), len(results), results)
		}
		for i := range expected {
			if results[i] != expected[i] {
				t.Errorf("expected %s at %d, got %s", expected[i], i, results[i])
			}
		}
	})

	t.Run("returns error for non-existent directory", func(t *testing.T) {
		_, err := scanner.Scan("/non/existent/path")
		if err == nil {
			t.Error("expected error for non-existent directory")
		}
	})

	t.Run("returns error for file instead of directory", func(t *testing.T) {
		_, err := scanner.Scan(filepath.Join(tmpDir, "test_top.py"))
		if err == nil {
			t.Error("expected error for file path")
		}
	})
}

func TestScanner_Resolve(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "content.py")
	if err := os.WriteFile(file, []byte("pass\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "test_x.py"), []byte("pass\n"), 0644); err != nil {
		t.Fatal(err)
	}

	scanner := NewScanner(nil)

	t.Run("file is returned as is", func(t *testing.T) {
		files, err := scanner.Resolve(file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(files) != 1 || files[0] != file {
			t.Errorf("expected [%s], got %v", file, files)
		}
	})

	t.Run("directory is scanned", func(t *testing.T) {
		files, err := scanner.Resolve(tmpDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(files) != 1 {
			t.Errorf("expected 1 file, got %v", files)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		if _, err := scanner.Resolve(filepath.Join(tmpDir, "missing.py")); err == nil {
			t.Error("expected error for missing path")
		}
	})
}
