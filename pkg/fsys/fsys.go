package fsys

import (
	"github.com/fsglob-project/fsglob/pkg/models"
)

// Filesystem is the capability surface glob expansion needs from a backing
// store. All paths are slash separated and relative to the store's root.
//
// Each primitive either answers immediately, or hands back a continuation of
// type K that the caller's scheduler must fulfill before retrying the whole
// expansion. On success the continuation and error are nil; a non-nil
// continuation means no answer yet and no failure; an error is terminal for
// that call. Backends that always answer immediately instantiate K as Never.
type Filesystem[K any] interface {
	// Lstat classifies the entry at path without following symlinks.
	Lstat(path string) (models.Stat, *K, error)
	// ReadLink returns the target path the link points at, relative to the
	// store's root.
	ReadLink(link models.Link) (string, *K, error)
	// ReadDir lists the entries of dir as lstat classifications.
	ReadDir(dir models.Dir) ([]models.Stat, *K, error)
}

// Never is the continuation type of synchronous backends. No value of it is
// ever produced.
type Never struct{}
