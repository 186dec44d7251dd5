// Package output serializes a finished digest tree and its statistics into
// text, JSON, or Markdown.
package output

import (
	"fmt"
	"sort"

	"github.com/SallahBoussettah/repodigest/internal/types"
)

const (
	separatorLine = "----------------------------------------"
	contentsLine  = "========================================"
)

// Digest is the serialization envelope: the stable Node/Stats contract the
// renderers consume.
type Digest struct {
	Root  *types.Node  `json:"root"`
	Stats *types.Stats `json:"stats"`
}

// Render serializes the digest in the requested format.
func Render(format string, digest Digest) (string, error) {
	switch format {
	case types.FormatText:
		return RenderText(digest), nil
	case types.FormatJSON:
		return RenderJSON(digest)
	case types.FormatMarkdown:
		return RenderMarkdown(digest), nil
	default:
		return "", fmt.Errorf("unsupported output format %q", format)
	}
}

// IsSupportedFormat reports whether the format name is recognized.
func IsSupportedFormat(format string) bool {
	switch format {
	case types.FormatText, types.FormatJSON, types.FormatMarkdown:
		return true
	default:
		return false
	}
}

// languageCount pairs a language with its file count for sorted display.
type languageCount struct {
	name  string
	count int
}

// sortedLanguages orders the histogram by count descending, then name, so
// rendered output is stable across runs.
func sortedLanguages(histogram map[string]int) []languageCount {
	entries := make([]languageCount, 0, len(histogram))
	for languageName, fileCount := range histogram {
		entries = append(entries, languageCount{name: languageName, count: fileCount})
	}
	sort.Slice(entries, func(left, right int) bool {
		if entries[left].count != entries[right].count {
			return entries[left].count > entries[right].count
		}
		return entries[left].name < entries[right].name
	})
	return entries
}

// collectFiles gathers file nodes in tree order, which is already the
// deterministic directories-first ordering produced by the walk.
func collectFiles(node *types.Node, files *[]*types.Node) {
	if node == nil {
		return
	}
	if !node.IsDirectory() {
		*files = append(*files, node)
		return
	}
	for _, childNode := range node.Children {
		collectFiles(childNode, files)
	}
}
