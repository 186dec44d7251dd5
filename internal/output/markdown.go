package output

import (
	"fmt"
	"strings"

	"github.com/SallahBoussettah/repodigest/internal/types"
	"github.com/SallahBoussettah/repodigest/internal/utils"
)

// fenceTags maps language names whose fence tag is not just the lower-cased
// name.
var fenceTags = map[string]string{
	"C++":              "cpp",
	"C#":               "csharp",
	"Objective-C":      "objectivec",
	"Plain Text":       "text",
	"reStructuredText": "rst",
}

// RenderMarkdown serializes the digest as a Markdown document: a summary
// table, a fenced directory tree, and one fenced code block per file.
func RenderMarkdown(digest Digest) string {
	var builder strings.Builder
	statistics := digest.Stats

	fmt.Fprintf(&builder, "# Digest: %s\n\n", digest.Root.Name)

	builder.WriteString("## Summary\n\n")
	builder.WriteString("| Metric | Value |\n")
	builder.WriteString("| --- | --- |\n")
	fmt.Fprintf(&builder, "| Files | %d |\n", statistics.TotalFiles)
	fmt.Fprintf(&builder, "| Directories | %d |\n", statistics.TotalDirectories)
	fmt.Fprintf(&builder, "| Total size | %s |\n", utils.FormatFileSize(statistics.TotalSizeBytes))
	fmt.Fprintf(&builder, "| Text size | %s |\n", utils.FormatFileSize(statistics.TextSizeBytes))
	fmt.Fprintf(&builder, "| Binary files | %d |\n", statistics.BinaryFiles)
	if statistics.EstimatedTokens > 0 {
		fmt.Fprintf(&builder, "| Estimated tokens | %d |\n", statistics.EstimatedTokens)
	}
	builder.WriteString("\n")

	if len(statistics.Languages) > 0 {
		builder.WriteString("## Languages\n\n")
		for _, entry := range sortedLanguages(statistics.Languages) {
			fmt.Fprintf(&builder, "- %s: %d\n", entry.name, entry.count)
		}
		builder.WriteString("\n")
	}

	builder.WriteString("## Directory structure\n\n```\n")
	var treeBuilder strings.Builder
	writeTextTree(&treeBuilder, digest.Root, "")
	builder.WriteString(treeBuilder.String())
	builder.WriteString("```\n\n")

	builder.WriteString("## Files\n\n")
	var files []*types.Node
	collectFiles(digest.Root, &files)
	for _, fileNode := range files {
		fmt.Fprintf(&builder, "### `%s`\n\n", fileNode.RelativePath)
		builder.WriteString("```" + fenceTag(fileNode) + "\n")
		builder.WriteString(fileNode.Content)
		if !strings.HasSuffix(fileNode.Content, "\n") {
			builder.WriteString("\n")
		}
		builder.WriteString("```\n\n")
	}

	return builder.String()
}

// fenceTag resolves the code-fence language tag for a file node. Binary and
// unreadable sentinels get an untagged fence.
func fenceTag(fileNode *types.Node) string {
	if fileNode.Content == types.BinaryContent || fileNode.Content == types.UnreadableContent {
		return ""
	}
	if fileNode.Language == "" {
		return ""
	}
	if tag, hasTag := fenceTags[fileNode.Language]; hasTag {
		return tag
	}
	return strings.ToLower(strings.ReplaceAll(fileNode.Language, " ", ""))
}
