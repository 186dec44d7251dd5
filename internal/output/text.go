package output

import (
	"fmt"
	"strings"

	"github.com/SallahBoussettah/repodigest/internal/types"
	"github.com/SallahBoussettah/repodigest/internal/utils"
)

// RenderText serializes the digest as plain text: a summary block, the
// indented directory structure, then one delimited block per file.
func RenderText(digest Digest) string {
	var builder strings.Builder

	builder.WriteString("Summary\n")
	builder.WriteString(separatorLine + "\n")
	writeSummaryLines(&builder, digest)

	builder.WriteString("\nDirectory structure\n")
	builder.WriteString(separatorLine + "\n")
	writeTextTree(&builder, digest.Root, "")

	builder.WriteString("\nFile contents\n")
	builder.WriteString(contentsLine + "\n")
	var files []*types.Node
	collectFiles(digest.Root, &files)
	for _, fileNode := range files {
		builder.WriteString("File: " + fileNode.RelativePath + "\n")
		builder.WriteString(separatorLine + "\n")
		builder.WriteString(fileNode.Content)
		if !strings.HasSuffix(fileNode.Content, "\n") {
			builder.WriteString("\n")
		}
		builder.WriteString(separatorLine + "\n")
	}

	return builder.String()
}

// writeSummaryLines renders the stats block shared by the text format.
func writeSummaryLines(builder *strings.Builder, digest Digest) {
	statistics := digest.Stats
	fmt.Fprintf(builder, "Root:        %s\n", digest.Root.Name)
	fmt.Fprintf(builder, "Files:       %d\n", statistics.TotalFiles)
	fmt.Fprintf(builder, "Directories: %d\n", statistics.TotalDirectories)
	fmt.Fprintf(builder, "Total size:  %s\n", utils.FormatFileSize(statistics.TotalSizeBytes))
	fmt.Fprintf(builder, "Text size:   %s\n", utils.FormatFileSize(statistics.TextSizeBytes))
	fmt.Fprintf(builder, "Binary files: %d\n", statistics.BinaryFiles)
	if statistics.EstimatedTokens > 0 {
		fmt.Fprintf(builder, "Estimated tokens: %d\n", statistics.EstimatedTokens)
	}

	if len(statistics.Languages) > 0 {
		builder.WriteString("Languages:\n")
		for _, entry := range sortedLanguages(statistics.Languages) {
			fmt.Fprintf(builder, "  %s: %d\n", entry.name, entry.count)
		}
	}
	if len(statistics.LargestFiles) > 0 {
		builder.WriteString("Largest files:\n")
		for _, entry := range statistics.LargestFiles {
			fmt.Fprintf(builder, "  %s (%s)\n", entry.Path, utils.FormatFileSize(entry.SizeBytes))
		}
	}
}

// writeTextTree renders the node tree with two-space indentation,
// directories suffixed with a slash.
func writeTextTree(builder *strings.Builder, node *types.Node, indent string) {
	if node == nil {
		return
	}
	if node.IsDirectory() {
		builder.WriteString(indent + node.Name + "/\n")
		for _, childNode := range node.Children {
			writeTextTree(builder, childNode, indent+"  ")
		}
		return
	}
	builder.WriteString(indent + node.Name + "\n")
}
