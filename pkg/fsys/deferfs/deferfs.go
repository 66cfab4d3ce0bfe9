package deferfs

import (
	"sync"

	"github.com/google/uuid"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/fsglob-project/fsglob/pkg/fsys"
	"github.com/fsglob-project/fsglob/pkg/models"
)

// Op identifies which primitive a continuation suspended.
type Op string

const (
	OpLstat    Op = "lstat"
	OpReadLink Op = "readlink"
	OpReadDir  Op = "readdir"
)

// Continuation identifies one unanswered primitive call. The scheduler that
// owns the filesystem fulfills it and then re-runs the expansion.
type Continuation struct {
	ID   uuid.UUID
	Op   Op
	Path string
}

// FS defers every primitive until a scheduler supplies the answer. Asking an
// unanswered question returns a continuation instead of a value; asking the
// same question again returns the same continuation. Once fulfilled, the
// stored answer is returned on every subsequent ask. Safe for concurrent use
// by a resolver and a scheduler.
type FS struct {
	mu      sync.Mutex
	pending map[key]Continuation
	stats   map[string]models.Stat
	links   map[string]string
	dirs    map[string][]models.Stat
	errs    map[key]error
}

type key struct {
	op   Op
	path string
}

// New returns a filesystem with no answers recorded.
func New() *FS {
	return &FS{
		pending: map[key]Continuation{},
		stats:   map[string]models.Stat{},
		links:   map[string]string{},
		dirs:    map[string][]models.Stat{},
		errs:    map[key]error{},
	}
}

var _ fsys.Filesystem[Continuation] = (*FS)(nil)

// Lstat answers from the fulfilled stats or suspends.
func (f *FS) Lstat(path string) (models.Stat, *Continuation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := key{op: OpLstat, path: path}
	if err, ok := f.errs[k]; ok {
		return nil, nil, err
	}
	if stat, ok := f.stats[path]; ok {
		return stat, nil, nil
	}
	return nil, f.suspend(k), nil
}

// ReadLink answers from the fulfilled link targets or suspends.
func (f *FS) ReadLink(link models.Link) (string, *Continuation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := key{op: OpReadLink, path: link.Path}
	if err, ok := f.errs[k]; ok {
		return "", nil, err
	}
	if target, ok := f.links[link.Path]; ok {
		return target, nil, nil
	}
	return "", f.suspend(k), nil
}

// ReadDir answers from the fulfilled listings or suspends.
func (f *FS) ReadDir(dir models.Dir) ([]models.Stat, *Continuation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := key{op: OpReadDir, path: dir.Path}
	if err, ok := f.errs[k]; ok {
		return nil, nil, err
	}
	if entries, ok := f.dirs[dir.Path]; ok {
		return slices.Clone(entries), nil, nil
	}
	return nil, f.suspend(k), nil
}

// FulfillStat answers every pending and future Lstat of path.
func (f *FS) FulfillStat(path string, stat models.Stat) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stats[path] = stat
	delete(f.pending, key{op: OpLstat, path: path})
}

// FulfillLink answers every pending and future ReadLink of path.
func (f *FS) FulfillLink(path, target string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.links[path] = target
	delete(f.pending, key{op: OpReadLink, path: path})
}

// FulfillDir answers every pending and future ReadDir of path. Entries must
// carry their dir-prefixed paths, the way any listing does.
func (f *FS) FulfillDir(path string, entries []models.Stat) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dirs[path] = slices.Clone(entries)
	delete(f.pending, key{op: OpReadDir, path: path})
}

// Fail answers the given primitive for path with a terminal error.
func (f *FS) Fail(op Op, path string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[key{op: op, path: path}] = err
	delete(f.pending, key{op: op, path: path})
}

// Pending lists the continuations recorded and not yet fulfilled, ordered by
// operation and path.
func (f *FS) Pending() []Continuation {
	f.mu.Lock()
	defer f.mu.Unlock()
	pending := maps.Values(f.pending)
	slices.SortFunc(pending, func(a, b Continuation) bool {
		if a.Op != b.Op {
			return a.Op < b.Op
		}
		return a.Path < b.Path
	})
	return pending
}

// suspend records, or recalls, the continuation for an unanswered call.
// Callers hold mu.
func (f *FS) suspend(k key) *Continuation {
	if c, ok := f.pending[k]; ok {
		return &c
	}
	c := Continuation{ID: uuid.New(), Op: k.op, Path: k.path}
	f.pending[k] = c
	return &c
}
