// Package config loads ignore files and the optional application
// configuration that supplies flag defaults.
package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/SallahBoussettah/repodigest/internal/utils"
)

// Ignore files honored at the traversal root, in merge order.
const (
	GitIgnoreFileName    = ".gitignore"
	NpmIgnoreFileName    = ".npmignore"
	DigestIgnoreFileName = ".digestignore"
)

const warningIgnoreFileFormat = "unable to read %s: %v"

// ignoreFileNames lists the conventionally-named ignore files, version
// control first, then package manager, then tool specific.
var ignoreFileNames = []string{GitIgnoreFileName, NpmIgnoreFileName, DigestIgnoreFileName}

// LoadIgnoreFilePatterns reads one ignore file and returns its pattern
// lines with blank lines and comments stripped. A missing file yields a nil
// slice and no error.
func LoadIgnoreFilePatterns(ignoreFilePath string) ([]string, error) {
	fileHandle, openError := os.Open(ignoreFilePath)
	if openError != nil {
		if os.IsNotExist(openError) {
			return nil, nil
		}
		return nil, openError
	}
	defer fileHandle.Close()

	var patterns []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		lineValue := strings.TrimSpace(scanner.Text())
		if lineValue == "" || strings.HasPrefix(lineValue, "#") {
			continue
		}
		patterns = append(patterns, lineValue)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}
	return patterns, nil
}

// LoadIgnorePatterns concatenates the patterns of every conventional ignore
// file found at the traversal root. Ignore files are loaded from the root
// only, never per subdirectory. Missing files are silently skipped;
// unreadable ones degrade to a warning on the sink.
func LoadIgnorePatterns(rootDirectory string, sink utils.Sink) []string {
	if sink == nil {
		sink = utils.NewNopSink()
	}
	var combinedPatterns []string
	for _, ignoreFileName := range ignoreFileNames {
		ignoreFilePath := filepath.Join(rootDirectory, ignoreFileName)
		filePatterns, loadError := LoadIgnoreFilePatterns(ignoreFilePath)
		if loadError != nil {
			sink.Warnf(warningIgnoreFileFormat, ignoreFilePath, loadError)
			continue
		}
		combinedPatterns = append(combinedPatterns, filePatterns...)
	}
	return utils.DeduplicatePatterns(combinedPatterns)
}
