// Package pattern merges default deny patterns, ignore-file contents, and
// user include/exclude globs into one inclusion predicate per path.
package pattern

import (
	"path/filepath"
	"strings"
)

const pathSegmentSeparator = "/"

// doubleStarSegment matches zero or more whole path segments.
const doubleStarSegment = "**"

// Pattern is one compiled gitignore-style rule: an ordered list of glob
// segments plus a negation flag. A pattern ending in "/" matches directories
// only. A pattern containing an interior "/" is anchored to the traversal
// root; otherwise it matches at any depth. Malformed globs compile to a
// pattern that never matches.
type Pattern struct {
	raw      string
	segments []string
	negated  bool
	dirOnly  bool
	anchored bool
	invalid  bool
}

// Compile parses one pattern line. Callers are expected to have stripped
// blank lines and comments already.
func Compile(rawPattern string) Pattern {
	compiled := Pattern{raw: rawPattern}
	text := strings.TrimSpace(rawPattern)

	if strings.HasPrefix(text, "!") {
		compiled.negated = true
		text = text[1:]
	}
	if strings.HasSuffix(text, pathSegmentSeparator) {
		compiled.dirOnly = true
		text = strings.TrimSuffix(text, pathSegmentSeparator)
	}
	if strings.HasPrefix(text, pathSegmentSeparator) {
		compiled.anchored = true
		text = strings.TrimPrefix(text, pathSegmentSeparator)
	}
	if strings.Contains(text, pathSegmentSeparator) {
		compiled.anchored = true
	}

	if text == "" {
		compiled.invalid = true
		return compiled
	}

	compiled.segments = strings.Split(text, pathSegmentSeparator)
	for _, segment := range compiled.segments {
		if segment == doubleStarSegment {
			continue
		}
		if _, matchError := filepath.Match(segment, "probe"); matchError != nil {
			compiled.invalid = true
			break
		}
	}
	return compiled
}

// CompileAll compiles every pattern line and reports the raw text of the
// malformed ones. Malformed patterns stay in the result but never match.
func CompileAll(rawPatterns []string) ([]Pattern, []string) {
	compiled := make([]Pattern, 0, len(rawPatterns))
	var malformed []string
	for _, rawPattern := range rawPatterns {
		patternValue := Compile(rawPattern)
		if patternValue.invalid {
			malformed = append(malformed, rawPattern)
		}
		compiled = append(compiled, patternValue)
	}
	return compiled, malformed
}

// Raw returns the original pattern text.
func (pattern Pattern) Raw() string {
	return pattern.raw
}

// Negated reports whether the pattern re-includes matching paths.
func (pattern Pattern) Negated() bool {
	return pattern.negated
}

// Invalid reports whether the pattern failed to compile.
func (pattern Pattern) Invalid() bool {
	return pattern.invalid
}

// Matches reports whether the pattern matches the root-relative POSIX path.
// A directory-only pattern matches a file path only through one of the
// path's ancestor directories; any pattern matching a proper prefix of the
// path matches the whole path, because everything beneath a matched
// directory is covered by it.
func (pattern Pattern) Matches(relativePath string, isDirectory bool) bool {
	if pattern.invalid || relativePath == "" {
		return false
	}
	pathSegments := strings.Split(relativePath, pathSegmentSeparator)

	startOffsets := len(pathSegments)
	if pattern.anchored {
		startOffsets = 1
	}
	for offset := 0; offset < startOffsets; offset++ {
		if matchSegments(pattern.segments, pathSegments[offset:], isDirectory, pattern.dirOnly) {
			return true
		}
	}
	return false
}

// matchSegments matches pattern segments against path segments, where "**"
// consumes zero or more whole segments. The pattern may stop early at a
// segment boundary: the consumed prefix is then a directory containing the
// final path element, which satisfies both plain and directory-only rules.
func matchSegments(patternSegments, pathSegments []string, isDirectory bool, dirOnly bool) bool {
	if len(patternSegments) == 0 {
		if len(pathSegments) > 0 {
			// Matched a proper prefix: the prefix is necessarily a directory.
			return true
		}
		return !dirOnly || isDirectory
	}
	if patternSegments[0] == doubleStarSegment {
		for skip := 0; skip <= len(pathSegments); skip++ {
			if matchSegments(patternSegments[1:], pathSegments[skip:], isDirectory, dirOnly) {
				return true
			}
		}
		return false
	}
	if len(pathSegments) == 0 {
		return false
	}
	segmentMatched, matchError := filepath.Match(patternSegments[0], pathSegments[0])
	if matchError != nil || !segmentMatched {
		return false
	}
	return matchSegments(patternSegments[1:], pathSegments[1:], isDirectory, dirOnly)
}

// literalPrefix returns the pattern text before its first wildcard segment,
// joined with "/". An empty result means the pattern starts with a wildcard.
func (pattern Pattern) literalPrefix() string {
	var literalSegments []string
	for _, segment := range pattern.segments {
		if segment == doubleStarSegment || strings.ContainsAny(segment, "*?[") {
			break
		}
		literalSegments = append(literalSegments, segment)
	}
	return strings.Join(literalSegments, pathSegmentSeparator)
}

// CouldMatchWithin reports whether the pattern could match some descendant
// of the given directory path. Non-anchored patterns float to any depth and
// always qualify. Anchored patterns qualify when their literal prefix and
// the directory path agree on their common length.
func (pattern Pattern) CouldMatchWithin(directoryPath string) bool {
	if pattern.invalid {
		return false
	}
	if !pattern.anchored {
		return true
	}
	prefix := pattern.literalPrefix()
	if prefix == "" {
		return true
	}
	prefixWithSeparator := prefix + pathSegmentSeparator
	directoryWithSeparator := directoryPath + pathSegmentSeparator
	return strings.HasPrefix(prefixWithSeparator, directoryWithSeparator) ||
		strings.HasPrefix(directoryWithSeparator, prefixWithSeparator)
}
