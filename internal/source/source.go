// Package source materializes a digest source: a local directory is used in
// place, a remote repository is shallow-cloned into a temporary directory.
package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

const (
	temporaryDirectoryPattern = "repodigest-"

	errorCloneFormat     = "cloning %s: %w"
	errorTempDirFormat   = "creating temporary clone directory: %w"
	errorLocalPathFormat = "source path %s: %w"
)

// ErrNotDirectory reports a local source path that exists but is not a directory.
var ErrNotDirectory = errors.New("source is not a directory")

// Source is a materialized traversal root. Cleanup removes any temporary
// storage once the digest has been produced; it is a no-op for local paths.
type Source struct {
	root      string
	temporary bool
}

// Options configures remote materialization.
type Options struct {
	// Branch selects the branch to clone; empty clones the default branch.
	Branch string
}

// Root returns the filesystem path ready for traversal.
func (source *Source) Root() string {
	return source.root
}

// Cleanup deletes the temporary clone, if any.
func (source *Source) Cleanup() error {
	if !source.temporary {
		return nil
	}
	return os.RemoveAll(source.root)
}

// IsRemote reports whether the descriptor names a remote git repository
// rather than a local path.
func IsRemote(descriptor string) bool {
	return strings.HasPrefix(descriptor, "http://") ||
		strings.HasPrefix(descriptor, "https://") ||
		strings.HasPrefix(descriptor, "ssh://") ||
		strings.HasPrefix(descriptor, "git@") ||
		strings.HasSuffix(descriptor, ".git")
}

// Materialize resolves a descriptor to a local root. Local paths must exist
// and be directories; remote descriptors are shallow single-branch cloned.
func Materialize(ctx context.Context, descriptor string, options Options) (*Source, error) {
	if IsRemote(descriptor) {
		return cloneRemote(ctx, descriptor, options)
	}

	pathInfo, statError := os.Stat(descriptor)
	if statError != nil {
		return nil, fmt.Errorf(errorLocalPathFormat, descriptor, statError)
	}
	if !pathInfo.IsDir() {
		return nil, fmt.Errorf("%s: %w", descriptor, ErrNotDirectory)
	}
	return &Source{root: descriptor}, nil
}

// cloneRemote clones the repository's selected branch at depth one into a
// fresh temporary directory. The directory is removed again when the clone
// fails part-way.
func cloneRemote(ctx context.Context, repositoryURL string, options Options) (*Source, error) {
	temporaryDirectory, tempError := os.MkdirTemp("", temporaryDirectoryPattern)
	if tempError != nil {
		return nil, fmt.Errorf(errorTempDirFormat, tempError)
	}

	cloneOptions := &git.CloneOptions{
		URL:           repositoryURL,
		Depth:         1,
		SingleBranch:  true,
		ReferenceName: plumbing.HEAD,
	}
	if options.Branch != "" {
		cloneOptions.ReferenceName = plumbing.NewBranchReferenceName(options.Branch)
	}

	if _, cloneError := git.PlainCloneContext(ctx, temporaryDirectory, false, cloneOptions); cloneError != nil {
		_ = os.RemoveAll(temporaryDirectory)
		return nil, fmt.Errorf(errorCloneFormat, repositoryURL, cloneError)
	}
	return &Source{root: temporaryDirectory, temporary: true}, nil
}
