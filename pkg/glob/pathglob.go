package glob

import (
	"fmt"

	"github.com/fsglob-project/fsglob/pkg/models"
)

// PathGlob is one unit of glob evaluation against a directory tree. A parsed
// pattern becomes an ordered sequence of units, each scoped to the canonical
// directory it inspects plus the symbolic path through which that directory
// was reached. Exactly three implementations exist, all small comparable
// values.
type PathGlob interface {
	String() string
	isPathGlob()
}

// Root matches the base directory of the expansion itself.
type Root struct{}

// Wildcard matches entries of CanonicalDir whose basename matches Pattern.
type Wildcard struct {
	CanonicalDir models.Dir
	SymbolicPath string
	Pattern      string
}

// DirWildcard matches directories of CanonicalDir whose basename matches
// Pattern, then continues matching Remainder beneath each one.
type DirWildcard struct {
	CanonicalDir models.Dir
	SymbolicPath string
	Pattern      string
	Remainder    string
}

func (Root) String() string { return "root" }

func (g Wildcard) String() string {
	return fmt.Sprintf("wildcard(%s) in %s", g.Pattern, g.CanonicalDir)
}

func (g DirWildcard) String() string {
	return fmt.Sprintf("wildcard(%s/%s) in %s", g.Pattern, g.Remainder, g.CanonicalDir)
}

func (Root) isPathGlob()        {}
func (Wildcard) isPathGlob()    {}
func (DirWildcard) isPathGlob() {}

// PathGlobs is the ordered unit sequence derived from one or more patterns.
// Derivation order is preserved and duplicates are kept.
type PathGlobs []PathGlob

// RootStat is the match produced by a Root unit: the base directory under
// its own empty name.
func RootStat() models.PathStat {
	return models.PathStat{Path: "", Stat: models.Dir{Path: ""}}
}
