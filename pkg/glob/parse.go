package glob

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/fsglob-project/fsglob/pkg/models"
)

const (
	singleStar = "*"
	doubleStar = "**"
)

// Create derives the glob units for a set of patterns relative to baseDir.
// Units are appended in pattern order. Create is total: it never fails, and
// malformed component patterns surface later, during application. Use
// ValidatePatterns to reject them up front.
func Create(baseDir models.Dir, patterns []string) PathGlobs {
	globs := make(PathGlobs, 0, len(patterns))
	for _, pattern := range patterns {
		globs = append(globs, Parse(baseDir, baseDir.Path, pattern)...)
	}
	return globs
}

// Parse derives the units for a single pattern against a canonical directory
// and the symbolic path through which it was reached. Runs of consecutive
// doublestar components collapse to one before dispatch, so equivalent
// spellings derive identical units.
func Parse(canonicalDir models.Dir, symbolicPath, pattern string) PathGlobs {
	parts := normalizeDoublestar(splitPattern(pattern))

	switch {
	case isRootDir(canonicalDir) && len(parts) == 1 && parts[0] == ".":
		return PathGlobs{Root{}}

	case parts[0] == doubleStar:
		if len(parts) == 1 {
			// Per https://git-scm.com/docs/gitignore: a trailing "**" matches
			// everything inside the directory, with infinite depth.
			return PathGlobs{
				DirWildcard{
					CanonicalDir: canonicalDir,
					SymbolicPath: symbolicPath,
					Pattern:      singleStar,
					Remainder:    doubleStar,
				},
				Wildcard{
					CanonicalDir: canonicalDir,
					SymbolicPath: symbolicPath,
					Pattern:      singleStar,
				},
			}
		}
		// A doublestar in a dirname is recursive, so the remainder reads two
		// ways: with the doublestar still in front, and with it consumed at
		// this level.
		withDoublestar := DirWildcard{
			CanonicalDir: canonicalDir,
			SymbolicPath: symbolicPath,
			Pattern:      singleStar,
			Remainder:    strings.Join(parts, "/"),
		}
		var withoutDoublestar PathGlob
		if len(parts) == 2 {
			withoutDoublestar = Wildcard{
				CanonicalDir: canonicalDir,
				SymbolicPath: symbolicPath,
				Pattern:      parts[1],
			}
		} else {
			withoutDoublestar = DirWildcard{
				CanonicalDir: canonicalDir,
				SymbolicPath: symbolicPath,
				Pattern:      parts[1],
				Remainder:    strings.Join(parts[2:], "/"),
			}
		}
		return PathGlobs{withDoublestar, withoutDoublestar}

	case len(parts) == 1:
		return PathGlobs{Wildcard{
			CanonicalDir: canonicalDir,
			SymbolicPath: symbolicPath,
			Pattern:      parts[0],
		}}

	default:
		return PathGlobs{DirWildcard{
			CanonicalDir: canonicalDir,
			SymbolicPath: symbolicPath,
			Pattern:      parts[0],
			Remainder:    strings.Join(parts[1:], "/"),
		}}
	}
}

// splitPattern cleans a pattern into its slash separated components. An
// empty or all-dot pattern becomes the single component ".".
func splitPattern(pattern string) []string {
	cleaned := path.Clean(filepath.ToSlash(pattern))
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" {
		cleaned = "."
	}
	return strings.Split(cleaned, "/")
}

// normalizeDoublestar collapses every run of consecutive doublestar
// components into a single one, anywhere in the pattern.
func normalizeDoublestar(parts []string) []string {
	normalized := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == doubleStar && len(normalized) > 0 && normalized[len(normalized)-1] == doubleStar {
			continue
		}
		normalized = append(normalized, part)
	}
	return normalized
}

func isRootDir(dir models.Dir) bool {
	return dir.Path == "" || dir.Path == "."
}
