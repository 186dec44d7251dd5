package output

import (
	"strings"
	"testing"

	"github.com/SallahBoussettah/repodigest/internal/types"
)

// buildTestDigest assembles a small fixed tree with one directory, one text
// file inside it, one root-level text file, and one binary file.
func buildTestDigest() Digest {
	mainNode := &types.Node{
		Name:         "main.go",
		RelativePath: "src/main.go",
		Kind:         types.KindFile,
		SizeBytes:    13,
		Content:      "package main\n",
		Language:     "Go",
		Encoding:     "utf-8",
		LineCount:    2,
	}
	sourceDirectory := &types.Node{
		Name:         "src",
		RelativePath: "src",
		Kind:         types.KindDirectory,
		SizeBytes:    13,
		Children:     []*types.Node{mainNode},
	}
	readmeNode := &types.Node{
		Name:         "README.md",
		RelativePath: "README.md",
		Kind:         types.KindFile,
		SizeBytes:    8,
		Content:      "# readme",
		Language:     "Markdown",
		Encoding:     "utf-8",
		LineCount:    1,
	}
	logoNode := &types.Node{
		Name:         "logo.png",
		RelativePath: "logo.png",
		Kind:         types.KindFile,
		SizeBytes:    512,
		Content:      types.BinaryContent,
	}
	rootNode := &types.Node{
		Name:      "project",
		Kind:      types.KindDirectory,
		SizeBytes: 533,
		Children:  []*types.Node{sourceDirectory, readmeNode, logoNode},
	}
	return Digest{
		Root: rootNode,
		Stats: &types.Stats{
			TotalFiles:       3,
			TotalDirectories: 1,
			TotalSizeBytes:   533,
			TextSizeBytes:    21,
			BinaryFiles:      1,
			Languages:        map[string]int{"Go": 1, "Markdown": 1},
			LargestFiles: []types.FileSizeEntry{
				{Path: "logo.png", SizeBytes: 512},
				{Path: "src/main.go", SizeBytes: 13},
				{Path: "README.md", SizeBytes: 8},
			},
		},
	}
}

// TestRenderTextLayout verifies the summary block, the indented tree, and the
// per-file content blocks of the text format.
func TestRenderTextLayout(t *testing.T) {
	rendered, renderError := Render(types.FormatText, buildTestDigest())
	if renderError != nil {
		t.Fatalf("Render failed: %v", renderError)
	}

	expectedFragments := []string{
		"Summary\n",
		"Root:        project\n",
		"Files:       3\n",
		"Directories: 1\n",
		"Binary files: 1\n",
		"Directory structure\n",
		"project/\n  src/\n    main.go\n  README.md\n  logo.png\n",
		"File: src/main.go\n",
		"File: README.md\n",
		"File: logo.png\n",
		types.BinaryContent + "\n",
	}
	for _, fragment := range expectedFragments {
		if !strings.Contains(rendered, fragment) {
			t.Fatalf("text output missing fragment %q:\n%s", fragment, rendered)
		}
	}

	if strings.Index(rendered, "File: src/main.go") > strings.Index(rendered, "File: README.md") {
		t.Fatalf("file blocks must follow tree order, directories first")
	}
	if strings.Contains(rendered, "Estimated tokens") {
		t.Fatalf("estimated tokens line must be omitted when no count exists")
	}
}

// TestRenderTextEstimatedTokens verifies the token line appears once a count
// has been stamped.
func TestRenderTextEstimatedTokens(t *testing.T) {
	digest := buildTestDigest()
	digest.Stats.EstimatedTokens = 1234

	rendered := RenderText(digest)
	if !strings.Contains(rendered, "Estimated tokens: 1234\n") {
		t.Fatalf("expected the estimated tokens line:\n%s", rendered)
	}
}

// TestRenderTextTerminatesContent verifies content without a trailing newline
// is terminated before the closing delimiter.
func TestRenderTextTerminatesContent(t *testing.T) {
	rendered := RenderText(buildTestDigest())
	if !strings.Contains(rendered, "# readme\n"+separatorLine) {
		t.Fatalf("content must end with a newline before the delimiter:\n%s", rendered)
	}
}

// TestRenderJSONFieldNames verifies the stable camelCase field names of the
// JSON format.
func TestRenderJSONFieldNames(t *testing.T) {
	rendered, renderError := Render(types.FormatJSON, buildTestDigest())
	if renderError != nil {
		t.Fatalf("Render failed: %v", renderError)
	}

	expectedFields := []string{
		`"root"`,
		`"stats"`,
		`"name"`,
		`"relativePath"`,
		`"kind"`,
		`"sizeBytes"`,
		`"totalFiles"`,
		`"totalDirectories"`,
		`"textSizeBytes"`,
		`"binaryFiles"`,
		`"largestFiles"`,
		`"lineCount"`,
	}
	for _, fieldName := range expectedFields {
		if !strings.Contains(rendered, fieldName) {
			t.Fatalf("json output missing field %s:\n%s", fieldName, rendered)
		}
	}
	if strings.Contains(rendered, `"estimatedTokens"`) {
		t.Fatalf("zero token estimate must be omitted from json output")
	}
}

// TestRenderMarkdownFences verifies headers, the summary table, and the
// language tags on code fences.
func TestRenderMarkdownFences(t *testing.T) {
	rendered, renderError := Render(types.FormatMarkdown, buildTestDigest())
	if renderError != nil {
		t.Fatalf("Render failed: %v", renderError)
	}

	expectedFragments := []string{
		"# Digest: project\n",
		"| Files | 3 |\n",
		"### `src/main.go`\n\n```go\npackage main\n```\n",
		"### `logo.png`\n\n```\n" + types.BinaryContent + "\n```\n",
		"## Directory structure\n\n```\nproject/\n",
	}
	for _, fragment := range expectedFragments {
		if !strings.Contains(rendered, fragment) {
			t.Fatalf("markdown output missing fragment %q:\n%s", fragment, rendered)
		}
	}
}

// TestFenceTag verifies the special-cased and derived fence tags.
func TestFenceTag(t *testing.T) {
	testCases := []struct {
		name     string
		node     *types.Node
		expected string
	}{
		{name: "lower-cased language", node: &types.Node{Language: "Go", Content: "x"}, expected: "go"},
		{name: "cpp special case", node: &types.Node{Language: "C++", Content: "x"}, expected: "cpp"},
		{name: "plain text special case", node: &types.Node{Language: "Plain Text", Content: "x"}, expected: "text"},
		{name: "space stripped", node: &types.Node{Language: "Protocol Buffers", Content: "x"}, expected: "protocolbuffers"},
		{name: "binary sentinel untagged", node: &types.Node{Language: "Go", Content: types.BinaryContent}, expected: ""},
		{name: "unreadable sentinel untagged", node: &types.Node{Language: "Go", Content: types.UnreadableContent}, expected: ""},
		{name: "unknown language untagged", node: &types.Node{Content: "x"}, expected: ""},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result := fenceTag(testCase.node)
			if result != testCase.expected {
				t.Fatalf("got %q want %q", result, testCase.expected)
			}
		})
	}
}

// TestRenderUnsupportedFormat verifies unknown formats fail with an error.
func TestRenderUnsupportedFormat(t *testing.T) {
	if _, renderError := Render("yaml", buildTestDigest()); renderError == nil {
		t.Fatalf("expected an error for an unsupported format")
	}
	if IsSupportedFormat("yaml") {
		t.Fatalf("yaml must not report as supported")
	}
	for _, format := range []string{types.FormatText, types.FormatJSON, types.FormatMarkdown} {
		if !IsSupportedFormat(format) {
			t.Fatalf("%s must report as supported", format)
		}
	}
}

// TestSortedLanguages verifies the count-descending, name-ascending ordering.
func TestSortedLanguages(t *testing.T) {
	entries := sortedLanguages(map[string]int{"Go": 3, "Python": 1, "Markdown": 3})

	expectedNames := []string{"Go", "Markdown", "Python"}
	for entryIndex, expectedName := range expectedNames {
		if entries[entryIndex].name != expectedName {
			t.Fatalf("entry %d: got %q want %q", entryIndex, entries[entryIndex].name, expectedName)
		}
	}
}
