package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// writeTestFile creates a file with the given content, failing the test on
// error.
func writeTestFile(testingHandle *testing.T, filePath string, content string) {
	testingHandle.Helper()
	if makeDirError := os.MkdirAll(filepath.Dir(filePath), 0o755); makeDirError != nil {
		testingHandle.Fatalf("failed to create parent of %s: %v", filePath, makeDirError)
	}
	if writeError := os.WriteFile(filePath, []byte(content), 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write %s: %v", filePath, writeError)
	}
}

// TestLoadIgnoreFilePatterns verifies comment and blank-line stripping.
func TestLoadIgnoreFilePatterns(t *testing.T) {
	ignoreFilePath := filepath.Join(t.TempDir(), GitIgnoreFileName)
	writeTestFile(t, ignoreFilePath, "# build artifacts\n\n*.o\n  dist/  \n!dist/keep.txt\n")

	patterns, loadError := LoadIgnoreFilePatterns(ignoreFilePath)
	if loadError != nil {
		t.Fatalf("LoadIgnoreFilePatterns failed: %v", loadError)
	}

	expected := []string{"*.o", "dist/", "!dist/keep.txt"}
	if !reflect.DeepEqual(patterns, expected) {
		t.Fatalf("got %v want %v", patterns, expected)
	}
}

// TestLoadIgnoreFilePatternsMissingFile verifies a missing file is not an
// error.
func TestLoadIgnoreFilePatternsMissingFile(t *testing.T) {
	patterns, loadError := LoadIgnoreFilePatterns(filepath.Join(t.TempDir(), GitIgnoreFileName))
	if loadError != nil {
		t.Fatalf("missing file must not error: %v", loadError)
	}
	if patterns != nil {
		t.Fatalf("missing file must yield no patterns, got %v", patterns)
	}
}

// TestLoadIgnorePatternsMergesRootFiles verifies the conventional ignore
// files merge in order with duplicates removed.
func TestLoadIgnorePatternsMergesRootFiles(t *testing.T) {
	rootDirectory := t.TempDir()
	writeTestFile(t, filepath.Join(rootDirectory, GitIgnoreFileName), "*.log\ndist/\n")
	writeTestFile(t, filepath.Join(rootDirectory, NpmIgnoreFileName), "*.log\ncoverage/\n")
	writeTestFile(t, filepath.Join(rootDirectory, DigestIgnoreFileName), "notes.md\n")

	patterns := LoadIgnorePatterns(rootDirectory, nil)

	expected := []string{"*.log", "dist/", "coverage/", "notes.md"}
	if !reflect.DeepEqual(patterns, expected) {
		t.Fatalf("got %v want %v", patterns, expected)
	}
}

// TestLoadIgnorePatternsWithoutFiles verifies an ignore-file-free root yields
// no patterns.
func TestLoadIgnorePatternsWithoutFiles(t *testing.T) {
	patterns := LoadIgnorePatterns(t.TempDir(), nil)
	if len(patterns) != 0 {
		t.Fatalf("expected no patterns, got %v", patterns)
	}
}
