package models

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// PathStat pairs the symbolic path a caller asked about with the canonical
// stat it resolved to. The symbolic path accumulates the names used to reach
// the entry, so a match found through a symlinked directory keeps the
// requested spelling while Stat records the real entry.
type PathStat struct {
	// Path is the symbolic, request-relative path of the match.
	Path string
	// Stat is the canonical classification of the entry reached via Path.
	Stat Stat
}

func (p PathStat) String() string {
	if p.Stat == nil {
		return p.Path
	}
	return fmt.Sprintf("%s (%s)", p.Path, p.Stat)
}

// Validate validates the path stat. Resolved matches never carry a Link:
// links are expanded before results are produced.
func (p PathStat) Validate() error {
	var mErr multierror.Error
	if p.Stat == nil {
		mErr.Errors = append(mErr.Errors, errors.New("stat is nil"))
	} else if _, ok := p.Stat.(Link); ok {
		mErr.Errors = append(mErr.Errors, fmt.Errorf("unresolved link %q", p.Stat.StatPath()))
	}
	return mErr.ErrorOrNil()
}
