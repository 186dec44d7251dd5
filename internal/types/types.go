// Package types defines every cross-package data structure used by the repodigest CLI.
package types

import "time"

const (
	KindFile      = "file"
	KindDirectory = "directory"

	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"

	// BinaryContent is the content sentinel stored on file nodes whose bytes
	// were classified as binary and therefore withheld from the digest.
	BinaryContent = "[binary]"

	// UnreadableContent is the content sentinel stored on file nodes whose
	// bytes could not be read. The node is still counted using its on-disk size.
	UnreadableContent = "[unreadable]"
)

// Node represents one file or directory of the digest tree. Directory nodes
// own their children exclusively; the tree mirrors the filesystem hierarchy
// and is acyclic by construction. A directory node's SizeBytes always equals
// the sum of its children's SizeBytes, and children are ordered directories
// first, then files, each group lexicographically by name.
type Node struct {
	Name         string    `json:"name"`
	RelativePath string    `json:"relativePath"`
	Kind         string    `json:"kind"`
	SizeBytes    int64     `json:"sizeBytes"`
	LastModified time.Time `json:"lastModified"`
	Content      string    `json:"content,omitempty"`
	Language     string    `json:"language,omitempty"`
	Encoding     string    `json:"encoding,omitempty"`
	LineCount    int       `json:"lineCount,omitempty"`
	Children     []*Node   `json:"children,omitempty"`
}

// IsDirectory reports whether the node represents a directory.
func (node *Node) IsDirectory() bool {
	return node.Kind == KindDirectory
}

// FileSizeEntry is one entry of the bounded largest-files list.
type FileSizeEntry struct {
	Path      string `json:"path"`
	SizeBytes int64  `json:"sizeBytes"`
}

// Stats aggregates counters collected during a single walk. It is created
// empty at walk start, mutated only by the walk, and handed read-only to the
// serializer after finalization.
type Stats struct {
	TotalFiles       int             `json:"totalFiles"`
	TotalDirectories int             `json:"totalDirectories"`
	TotalSizeBytes   int64           `json:"totalSizeBytes"`
	TextSizeBytes    int64           `json:"textSizeBytes"`
	BinaryFiles      int             `json:"binaryFiles"`
	Languages        map[string]int  `json:"languages,omitempty"`
	LargestFiles     []FileSizeEntry `json:"largestFiles,omitempty"`
	EstimatedTokens  int             `json:"estimatedTokens,omitempty"`
	ProcessingTime   time.Duration   `json:"processingTime"`
}
