// Package walker traverses a directory tree, consulting the pattern resolver
// and the classifier, and assembles an ordered node tree plus aggregate
// statistics.
package walker

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/SallahBoussettah/repodigest/internal/classify"
	"github.com/SallahBoussettah/repodigest/internal/pattern"
	"github.com/SallahBoussettah/repodigest/internal/stats"
	"github.com/SallahBoussettah/repodigest/internal/types"
	"github.com/SallahBoussettah/repodigest/internal/utils"
)

// classifyConcurrency bounds concurrent file classification within one
// directory. Results land in slot-indexed positions, so parallelism never
// leaks enumeration order into the output.
const classifyConcurrency = 4

const (
	warningUnreadableDirectoryFormat = "skipping unreadable directory %s: %v"
	warningStatFailedFormat          = "skipping %s: unable to stat: %v"
	warningFileTooLargeFormat        = "skipping %s: size %d bytes exceeds maximum of %d bytes"
	warningUnreadableFileFormat      = "unable to read %s: %v"
	errorRootMissingFormat           = "root path %s: %w"
)

// ErrNoFilesFound reports that the root yielded zero files after filtering.
// It is one of the two fatal conditions of a walk.
var ErrNoFilesFound = errors.New("no files found to process")

// ErrNotDirectory reports that the root path is not a directory.
var ErrNotDirectory = errors.New("root path is not a directory")

// Options configures a walk.
type Options struct {
	Root             string
	Resolver         *pattern.Resolver
	Classifier       *classify.Classifier
	MaxFileSizeBytes int64
	// MaxDepth limits recursion measured in directory levels below the root
	// (root = depth 0). A negative value means unlimited.
	MaxDepth int
	Sink     utils.Sink
}

// Result bundles the finished tree with its statistics.
type Result struct {
	Root  *types.Node
	Stats *types.Stats
}

// walkState carries the per-run collaborators through the recursion.
type walkState struct {
	options    Options
	aggregator *stats.Aggregator
	sink       utils.Sink
}

// Walk produces one root node and a stats record from the root path. The
// only fatal conditions are a missing or non-directory root and a root that
// yields no files after filtering; everything else degrades to warnings on
// the sink. Cancelling the context abandons the walk and discards the
// partially-built tree.
func Walk(ctx context.Context, options Options) (*Result, error) {
	sink := options.Sink
	if sink == nil {
		sink = utils.NewNopSink()
	}
	if options.Classifier == nil {
		options.Classifier = classify.NewClassifier()
	}
	if options.Resolver == nil {
		options.Resolver = pattern.NewResolver(pattern.ResolverOptions{Sink: sink})
	}

	absoluteRoot, absoluteError := filepath.Abs(options.Root)
	if absoluteError != nil {
		return nil, fmt.Errorf(errorRootMissingFormat, options.Root, absoluteError)
	}
	rootInfo, statError := os.Stat(absoluteRoot)
	if statError != nil {
		return nil, fmt.Errorf(errorRootMissingFormat, options.Root, statError)
	}
	if !rootInfo.IsDir() {
		return nil, fmt.Errorf("%s: %w", options.Root, ErrNotDirectory)
	}

	state := &walkState{
		options:    options,
		aggregator: stats.NewAggregator(),
		sink:       sink,
	}

	rootNode, walkError := state.walkDirectory(ctx, absoluteRoot, "", rootInfo.ModTime(), 0)
	if walkError != nil {
		return nil, walkError
	}
	if rootNode == nil {
		return nil, ErrNoFilesFound
	}
	return &Result{Root: rootNode, Stats: state.aggregator.Finalize()}, nil
}

// walkDirectory recurses post-order and returns nil when the directory ends
// up with no surviving children, which cascades pruning up the tree.
func (state *walkState) walkDirectory(ctx context.Context, absolutePath string, relativePath string, modifiedTime time.Time, depth int) (*types.Node, error) {
	if contextError := ctx.Err(); contextError != nil {
		return nil, contextError
	}

	directoryEntries, readError := os.ReadDir(absolutePath)
	if readError != nil {
		state.sink.Warnf(warningUnreadableDirectoryFormat, displayPath(relativePath), readError)
		return nil, nil
	}

	var subdirectoryEntries []fs.DirEntry
	var fileEntries []fs.DirEntry
	for _, directoryEntry := range directoryEntries {
		if directoryEntry.IsDir() {
			subdirectoryEntries = append(subdirectoryEntries, directoryEntry)
		} else {
			fileEntries = append(fileEntries, directoryEntry)
		}
	}
	sortEntriesByName(subdirectoryEntries)
	sortEntriesByName(fileEntries)

	var children []*types.Node

	for _, subdirectoryEntry := range subdirectoryEntries {
		childRelativePath := joinRelative(relativePath, subdirectoryEntry.Name())
		if state.options.Resolver.ShouldIgnore(childRelativePath, true) {
			continue
		}
		if !state.options.Resolver.ShouldInclude(childRelativePath, false) {
			continue
		}
		if state.options.MaxDepth >= 0 && depth+1 > state.options.MaxDepth {
			continue
		}
		childModifiedTime := time.Time{}
		if childInfo, infoError := subdirectoryEntry.Info(); infoError == nil {
			childModifiedTime = childInfo.ModTime()
		}
		childNode, childError := state.walkDirectory(ctx, filepath.Join(absolutePath, subdirectoryEntry.Name()), childRelativePath, childModifiedTime, depth+1)
		if childError != nil {
			return nil, childError
		}
		if childNode != nil {
			children = append(children, childNode)
		}
	}

	fileNodes, filesError := state.processFiles(ctx, absolutePath, relativePath, fileEntries)
	if filesError != nil {
		return nil, filesError
	}
	for _, fileNode := range fileNodes {
		if fileNode != nil {
			children = append(children, fileNode)
		}
	}

	if len(children) == 0 {
		return nil, nil
	}

	if relativePath != "" {
		state.aggregator.AddDirectory()
	}

	var totalSize int64
	for _, childNode := range children {
		totalSize += childNode.SizeBytes
	}
	return &types.Node{
		Name:         filepath.Base(absolutePath),
		RelativePath: relativePath,
		Kind:         types.KindDirectory,
		SizeBytes:    totalSize,
		LastModified: modifiedTime,
		Children:     children,
	}, nil
}

// processFiles classifies the directory's files concurrently. Each worker
// writes into its own slot, keeping the final ordering deterministic, and
// the aggregator serializes stats updates internally.
func (state *walkState) processFiles(ctx context.Context, absolutePath string, relativePath string, fileEntries []fs.DirEntry) ([]*types.Node, error) {
	fileNodes := make([]*types.Node, len(fileEntries))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(classifyConcurrency)

	for entryIndex, fileEntry := range fileEntries {
		group.Go(func() error {
			if contextError := groupCtx.Err(); contextError != nil {
				return contextError
			}
			fileNodes[entryIndex] = state.processFile(filepath.Join(absolutePath, fileEntry.Name()), joinRelative(relativePath, fileEntry.Name()), fileEntry)
			return nil
		})
	}
	if groupError := group.Wait(); groupError != nil {
		return nil, groupError
	}
	return fileNodes, nil
}

// processFile applies leaf filtering and classification to one file. A nil
// return means the file was filtered out or skipped with a warning.
func (state *walkState) processFile(absolutePath string, relativePath string, fileEntry fs.DirEntry) *types.Node {
	resolver := state.options.Resolver
	if resolver.ShouldIgnore(relativePath, false) {
		return nil
	}
	if !resolver.ShouldInclude(relativePath, true) {
		return nil
	}

	fileInfo, infoError := fileEntry.Info()
	if infoError != nil {
		state.sink.Warnf(warningStatFailedFormat, relativePath, infoError)
		return nil
	}
	sizeBytes := fileInfo.Size()
	if state.options.MaxFileSizeBytes > 0 && sizeBytes > state.options.MaxFileSizeBytes {
		state.sink.Warnf(warningFileTooLargeFormat, relativePath, sizeBytes, state.options.MaxFileSizeBytes)
		return nil
	}

	classification := state.options.Classifier.Classify(absolutePath)

	node := &types.Node{
		Name:         fileEntry.Name(),
		RelativePath: relativePath,
		Kind:         types.KindFile,
		SizeBytes:    sizeBytes,
		LastModified: fileInfo.ModTime(),
		Language:     classification.Language,
	}

	hasTextContent := false
	if classification.Binary {
		node.Content = types.BinaryContent
	} else {
		contentBytes, readError := os.ReadFile(absolutePath)
		if readError != nil {
			state.sink.Warnf(warningUnreadableFileFormat, relativePath, readError)
			node.Content = types.UnreadableContent
			node.Encoding = classify.EncodingUnknown
		} else {
			node.Content = string(contentBytes)
			node.Encoding = classification.Encoding
			node.LineCount = classify.CountLines(node.Content)
			hasTextContent = true
		}
	}

	state.aggregator.AddFile(relativePath, sizeBytes, classification.Language, classification.Binary, hasTextContent)
	return node
}

// sortEntriesByName orders entries lexicographically, independent of the
// filesystem's enumeration order.
func sortEntriesByName(entries []fs.DirEntry) {
	sort.Slice(entries, func(left, right int) bool {
		return entries[left].Name() < entries[right].Name()
	})
}

// joinRelative appends a name to a POSIX-style root-relative path.
func joinRelative(relativePath string, name string) string {
	if relativePath == "" {
		return name
	}
	return relativePath + "/" + name
}

// displayPath substitutes "." for the empty root-relative path in messages.
func displayPath(relativePath string) string {
	if relativePath == "" {
		return "."
	}
	return path.Clean(relativePath)
}
