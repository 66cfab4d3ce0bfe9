package fsys

import (
	"fmt"

	"github.com/fsglob-project/fsglob/pkg/models"
)

// MaxLinkExpansionAttempts bounds how many times a single link chain is
// followed before it is declared a loop.
const MaxLinkExpansionAttempts = 64

// SymlinkLoopError reports a link chain that did not reach a concrete entry
// within MaxLinkExpansionAttempts.
type SymlinkLoopError struct {
	// Link is the link at the head of the chain, as first encountered.
	Link models.Link
	// Attempts is the number of expansion attempts made before giving up.
	Attempts int
}

func (e *SymlinkLoopError) Error() string {
	return fmt.Sprintf("encountered a symlink loop while expanding %s", e.Link)
}

// LinkExpansion is the outcome of fully resolving one symlink chain. Stat
// holds the Dir or File the chain lands on; Loop is set instead when the
// chain exceeded the expansion bound. Exactly one of the two is set.
type LinkExpansion struct {
	Stat models.Stat
	Loop *SymlinkLoopError
}

// ExpandLink follows link until it reaches a concrete entry. Each attempt
// reads the current link's target and classifies it; a target that is itself
// a link is followed by the next attempt. A chain still unresolved after
// MaxLinkExpansionAttempts is reported as a loop outcome, not an error. A
// pending continuation or a backend failure from either primitive returns
// immediately and unchanged.
func ExpandLink[K any](fs Filesystem[K], link models.Link) (LinkExpansion, *K, error) {
	current := link
	for attempts := 1; attempts <= MaxLinkExpansionAttempts; attempts++ {
		target, k, err := fs.ReadLink(current)
		if k != nil || err != nil {
			return LinkExpansion{}, k, err
		}
		stat, k, err := fs.Lstat(target)
		if k != nil || err != nil {
			return LinkExpansion{}, k, err
		}
		next, ok := stat.(models.Link)
		if !ok {
			return LinkExpansion{Stat: stat}, nil, nil
		}
		current = next
	}
	loop := &SymlinkLoopError{Link: link, Attempts: MaxLinkExpansionAttempts}
	return LinkExpansion{Loop: loop}, nil, nil
}
