package fsys

import (
	"fmt"
	"path"

	"github.com/hashicorp/go-multierror"

	"github.com/fsglob-project/fsglob/pkg/glob"
	"github.com/fsglob-project/fsglob/pkg/models"
)

// Apply evaluates a single glob unit. See Expand for the aggregation
// contract.
func Apply[K any](fs Filesystem[K], unit glob.PathGlob) ([]models.PathStat, []K, error) {
	return Expand(fs, glob.PathGlobs{unit})
}

// Expand evaluates a unit sequence against fs, breadth first. Results from
// every unit are aggregated: matches, pending continuations and per-entry
// failures are collected side by side, so one unreadable directory or
// looping link never stops the rest of the expansion. Zero matches is a
// successful outcome. Matches carry no ordering or uniqueness guarantee
// beyond being deterministic for a fixed backend state; callers sort or
// deduplicate to taste.
//
// A non-empty continuation slice means the expansion is incomplete: the
// caller fulfills the continuations with its scheduler and calls Expand
// again. Nothing is memoized between calls.
func Expand[K any](fs Filesystem[K], globs glob.PathGlobs) ([]models.PathStat, []K, error) {
	e := &expander[K]{
		fs:   fs,
		seen: make(map[glob.PathGlob]struct{}, len(globs)),
	}
	e.push(globs)
	for head := 0; head < len(e.worklist); head++ {
		e.apply(e.worklist[head])
	}
	return e.matches, e.pendings, e.mErr.ErrorOrNil()
}

// expander carries the state of one Expand call: a FIFO worklist of units
// still to apply, and the aggregated outcomes of the units applied so far.
type expander[K any] struct {
	fs       Filesystem[K]
	worklist glob.PathGlobs
	seen     map[glob.PathGlob]struct{}
	matches  []models.PathStat
	pendings []K
	mErr     multierror.Error
}

// push queues units not applied before in this expansion. Identical units
// derived more than once, whether by one pattern or several, apply once.
func (e *expander[K]) push(units glob.PathGlobs) {
	for _, unit := range units {
		if _, ok := e.seen[unit]; ok {
			continue
		}
		e.seen[unit] = struct{}{}
		e.worklist = append(e.worklist, unit)
	}
}

func (e *expander[K]) apply(unit glob.PathGlob) {
	switch unit := unit.(type) {
	case glob.Root:
		// The root matches without consulting the backend.
		e.matches = append(e.matches, glob.RootStat())

	case glob.Wildcard:
		resolved := e.directoryListing(unit, unit.CanonicalDir, unit.SymbolicPath, unit.Pattern)
		e.matches = append(e.matches, resolved...)

	case glob.DirWildcard:
		resolved := e.directoryListing(unit, unit.CanonicalDir, unit.SymbolicPath, unit.Pattern)
		for _, matched := range resolved {
			dir, ok := matched.Stat.(models.Dir)
			if !ok {
				continue
			}
			// Recursion continues canonically through the resolved directory
			// and symbolically through the name that reached it.
			e.push(glob.Parse(dir, matched.Path, unit.Remainder))
		}
	}
}

// directoryListing lists dir and resolves the entries whose basename matches
// pattern, expanding links to their concrete targets. Entries that suspend
// or fail are recorded on the expander without stopping their siblings. A
// listing that is itself pending or failed resolves no entries at all.
func (e *expander[K]) directoryListing(
	unit glob.PathGlob, dir models.Dir, symbolicPath, pattern string) []models.PathStat {
	// A malformed pattern fails the unit whatever the directory holds, so
	// the backend is not consulted at all.
	if err := glob.ValidatePattern(pattern); err != nil {
		e.fail(fmt.Errorf("applying %s: %w", unit, err))
		return nil
	}

	entries, k, err := e.fs.ReadDir(dir)
	if k != nil {
		e.pendings = append(e.pendings, *k)
		return nil
	}
	if err != nil {
		e.fail(fmt.Errorf("applying %s: %w", unit, err))
		return nil
	}

	resolved := make([]models.PathStat, 0, len(entries))
	for _, entry := range entries {
		base := path.Base(entry.StatPath())
		matched, err := glob.Match(pattern, base)
		if err != nil {
			// A matcher error is per-pattern, not per-name: every entry
			// would fail the same way.
			e.fail(fmt.Errorf("applying %s: %w", unit, err))
			return nil
		}
		if !matched {
			continue
		}

		symbolic := path.Join(symbolicPath, base)
		link, isLink := entry.(models.Link)
		if !isLink {
			resolved = append(resolved, models.PathStat{Path: symbolic, Stat: entry})
			continue
		}
		expansion, k, err := ExpandLink(e.fs, link)
		switch {
		case k != nil:
			e.pendings = append(e.pendings, *k)
		case err != nil:
			e.fail(fmt.Errorf("expanding %s: %w", link, err))
		case expansion.Loop != nil:
			e.fail(expansion.Loop)
		default:
			resolved = append(resolved, models.PathStat{Path: symbolic, Stat: expansion.Stat})
		}
	}
	return resolved
}

func (e *expander[K]) fail(err error) {
	e.mErr.Errors = append(e.mErr.Errors, err)
}
