package memfs

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"

	"github.com/fsglob-project/fsglob/pkg/fsys"
	"github.com/fsglob-project/fsglob/pkg/models"
)

// FS is an in-memory filesystem for tests and examples. Entries are added up
// front and parent directories appear implicitly. Listings come back in name
// order. Every primitive answers immediately, so the continuation type is
// Never. Errors can be injected per path to exercise failure handling.
//
// Link targets are interpreted relative to the filesystem root, not the
// link's parent directory.
type FS struct {
	nodes  map[string]node
	faults map[string]error
}

type node struct {
	kind   kind
	target string
}

type kind int

const (
	kindDir kind = iota
	kindFile
	kindLink
)

// New returns an empty filesystem containing only the root directory.
func New() *FS {
	return &FS{
		nodes:  map[string]node{"": {kind: kindDir}},
		faults: map[string]error{},
	}
}

var _ fsys.Filesystem[fsys.Never] = (*FS)(nil)

// AddFile adds a regular file, creating missing parents as directories.
func (f *FS) AddFile(p string) *FS {
	f.add(p, node{kind: kindFile})
	return f
}

// AddDir adds a directory, creating missing parents as directories.
func (f *FS) AddDir(p string) *FS {
	f.add(p, node{kind: kindDir})
	return f
}

// AddLink adds a symlink to target, creating missing parents as directories.
func (f *FS) AddLink(p, target string) *FS {
	f.add(p, node{kind: kindLink, target: clean(target)})
	return f
}

// InjectError makes every primitive touching p fail with err.
func (f *FS) InjectError(p string, err error) *FS {
	f.faults[clean(p)] = err
	return f
}

// Lstat classifies the entry at p without following symlinks.
func (f *FS) Lstat(p string) (models.Stat, *fsys.Never, error) {
	p = clean(p)
	if err := f.faults[p]; err != nil {
		return nil, nil, err
	}
	n, ok := f.nodes[p]
	if !ok {
		return nil, nil, fmt.Errorf("lstat %q: %w", p, fs.ErrNotExist)
	}
	return n.stat(p), nil, nil
}

// ReadLink returns the root-relative target of the link.
func (f *FS) ReadLink(link models.Link) (string, *fsys.Never, error) {
	p := clean(link.Path)
	if err := f.faults[p]; err != nil {
		return "", nil, err
	}
	n, ok := f.nodes[p]
	if !ok {
		return "", nil, fmt.Errorf("readlink %q: %w", p, fs.ErrNotExist)
	}
	if n.kind != kindLink {
		return "", nil, fmt.Errorf("readlink %q: not a link", p)
	}
	return n.target, nil, nil
}

// ReadDir lists the entries of dir in name order.
func (f *FS) ReadDir(dir models.Dir) ([]models.Stat, *fsys.Never, error) {
	p := clean(dir.Path)
	if err := f.faults[p]; err != nil {
		return nil, nil, err
	}
	n, ok := f.nodes[p]
	if !ok {
		return nil, nil, fmt.Errorf("readdir %q: %w", p, fs.ErrNotExist)
	}
	if n.kind != kindDir {
		return nil, nil, fmt.Errorf("readdir %q: not a directory", p)
	}

	var children []string
	for candidate := range f.nodes {
		if candidate != "" && parent(candidate) == p {
			children = append(children, candidate)
		}
	}
	slices.Sort(children)
	return lo.Map(children, func(child string, _ int) models.Stat {
		return f.nodes[child].stat(child)
	}), nil, nil
}

func (f *FS) add(p string, n node) {
	p = clean(p)
	if p == "" {
		return
	}
	f.nodes[p] = n
	for dir := parent(p); dir != ""; dir = parent(dir) {
		if _, ok := f.nodes[dir]; !ok {
			f.nodes[dir] = node{kind: kindDir}
		}
	}
}

func (n node) stat(p string) models.Stat {
	switch n.kind {
	case kindLink:
		return models.Link{Path: p}
	case kindDir:
		return models.Dir{Path: p}
	default:
		return models.File{Path: p}
	}
}

// clean normalizes p to the root-relative slash form used as a node key.
// The root itself is the empty string.
func clean(p string) string {
	p = strings.TrimPrefix(path.Clean(filepath.ToSlash(p)), "/")
	if p == "." {
		return ""
	}
	return p
}

func parent(p string) string {
	dir := path.Dir(p)
	if dir == "." {
		return ""
	}
	return dir
}
