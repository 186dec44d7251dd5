package pattern

import (
	"github.com/SallahBoussettah/repodigest/internal/classify"
	"github.com/SallahBoussettah/repodigest/internal/utils"
)

const (
	warningMalformedPatternFormat = "ignoring malformed pattern %q"
	warningUnknownLanguageFormat  = "unknown language filter %q"
)

// ResolverOptions configures pattern-set construction.
type ResolverOptions struct {
	// IgnoreFilePatterns holds the merged, comment-stripped lines of every
	// ignore file discovered at the traversal root.
	IgnoreFilePatterns []string
	// IncludeIgnored skips ignore-file patterns entirely. The built-in
	// default excludes still apply; only user-authored ignore files are
	// bypassed.
	IncludeIgnored bool
	// IncludeGlobs narrows the emitted files to those matching at least one
	// glob. Empty means "include everything not denied".
	IncludeGlobs []string
	// ExcludeGlobs further restricts emitted paths and is applied to
	// directories directly: an excluded directory subtree is pruned.
	ExcludeGlobs []string
	// Languages expands the include-glob set with the extension globs of
	// each named language.
	Languages []string
	// Sink receives warnings about malformed globs and unknown languages.
	Sink utils.Sink
}

// Resolver answers, for a root-relative path and a path kind, whether the
// path should be visited. It is read-only after construction and safe for
// concurrent use.
type Resolver struct {
	denyPatterns    []Pattern
	includePatterns []Pattern
	excludePatterns []Pattern
}

// NewResolver builds the merged pattern set once, before the walk. Malformed
// patterns are kept as never-matching entries and reported through the sink.
func NewResolver(options ResolverOptions) *Resolver {
	sink := options.Sink
	if sink == nil {
		sink = utils.NewNopSink()
	}

	denySources := DefaultExcludes()
	if !options.IncludeIgnored {
		denySources = append(denySources, options.IgnoreFilePatterns...)
	}

	includeSources := append([]string(nil), options.IncludeGlobs...)
	for _, languageName := range options.Languages {
		languageGlobs, isKnownLanguage := classify.ExtensionGlobsForLanguage(languageName)
		if !isKnownLanguage {
			sink.Warnf(warningUnknownLanguageFormat, languageName)
			continue
		}
		includeSources = append(includeSources, languageGlobs...)
	}

	resolver := &Resolver{}
	resolver.denyPatterns = compileReporting(utils.DeduplicatePatterns(denySources), sink)
	resolver.includePatterns = compileReporting(utils.DeduplicatePatterns(includeSources), sink)
	resolver.excludePatterns = compileReporting(utils.DeduplicatePatterns(options.ExcludeGlobs), sink)
	return resolver
}

// compileReporting compiles raw patterns and warns once per malformed entry.
func compileReporting(rawPatterns []string, sink utils.Sink) []Pattern {
	compiled, malformed := CompileAll(rawPatterns)
	for _, rawPattern := range malformed {
		sink.Warnf(warningMalformedPatternFormat, rawPattern)
	}
	return compiled
}

// ShouldIgnore reports whether the path matches the merged deny set using
// gitignore semantics: the last matching pattern decides, and a negated
// pattern re-includes the path.
func (resolver *Resolver) ShouldIgnore(relativePath string, isDirectory bool) bool {
	ignored := false
	for _, denyPattern := range resolver.denyPatterns {
		if denyPattern.Matches(relativePath, isDirectory) {
			ignored = !denyPattern.Negated()
		}
	}
	return ignored
}

// ShouldInclude applies include and exclude globs after the deny set has
// passed. Files must match an include glob (when any are configured) and no
// exclude glob. Directories are kept whenever some include glob could still
// match a descendant, so that traversal is never pruned prematurely; exclude
// globs apply to directories directly.
func (resolver *Resolver) ShouldInclude(relativePath string, isFile bool) bool {
	for _, excludePattern := range resolver.excludePatterns {
		if excludePattern.Matches(relativePath, !isFile) {
			return false
		}
	}
	if len(resolver.includePatterns) == 0 {
		return true
	}
	if isFile {
		for _, includePattern := range resolver.includePatterns {
			if includePattern.Matches(relativePath, false) {
				return true
			}
		}
		return false
	}
	for _, includePattern := range resolver.includePatterns {
		if includePattern.CouldMatchWithin(relativePath) {
			return true
		}
	}
	return false
}
