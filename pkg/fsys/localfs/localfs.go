package localfs

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/fsglob-project/fsglob/pkg/fsys"
	"github.com/fsglob-project/fsglob/pkg/lib/validate"
	"github.com/fsglob-project/fsglob/pkg/models"
)

// FS answers glob expansion against a directory tree on the local disk. All
// paths are slash separated and relative to the configured root, and link
// targets are rewritten into that form on the way out; targets pointing
// outside the root are rejected. Every primitive answers immediately, so the
// continuation type is Never.
type FS struct {
	root string
}

// New returns a filesystem rooted at the given directory.
func New(root string) (*FS, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving filesystem root %q", root)
	}
	if err := validate.IsDirectory(absRoot, "filesystem root %q is not a directory", absRoot); err != nil {
		return nil, err
	}
	log.Debug().Msgf("created local filesystem at root: %s", absRoot)
	return &FS{root: absRoot}, nil
}

var _ fsys.Filesystem[fsys.Never] = (*FS)(nil)

// Root returns the absolute root directory the filesystem serves.
func (f *FS) Root() string {
	return f.root
}

// Lstat classifies the entry at p without following symlinks.
func (f *FS) Lstat(p string) (models.Stat, *fsys.Never, error) {
	info, err := os.Lstat(f.hostPath(p))
	if err != nil {
		return nil, nil, err
	}
	return statFromMode(p, info.Mode()), nil, nil
}

// ReadLink reads the link target and rewrites it relative to the root.
func (f *FS) ReadLink(link models.Link) (string, *fsys.Never, error) {
	target, err := os.Readlink(f.hostPath(link.Path))
	if err != nil {
		return "", nil, err
	}
	normalized, err := f.normalizeTarget(link, target)
	if err != nil {
		return "", nil, err
	}
	return normalized, nil, nil
}

// ReadDir lists dir in name order as lstat classifications.
func (f *FS) ReadDir(dir models.Dir) ([]models.Stat, *fsys.Never, error) {
	entries, err := os.ReadDir(f.hostPath(dir.Path))
	if err != nil {
		return nil, nil, err
	}
	stats := make([]models.Stat, 0, len(entries))
	for _, entry := range entries {
		stats = append(stats, statFromMode(path.Join(dir.Path, entry.Name()), entry.Type()))
	}
	return stats, nil, nil
}

// normalizeTarget rewrites a raw link target as a root-relative slash path.
// Relative targets resolve against the link's parent directory; absolute
// targets must fall inside the root.
func (f *FS) normalizeTarget(link models.Link, target string) (string, error) {
	if filepath.IsAbs(target) {
		rel, err := filepath.Rel(f.root, target)
		if err != nil {
			return "", errors.Wrapf(err, "resolving %s target %q", link, target)
		}
		rel = filepath.ToSlash(rel)
		if escapesRoot(rel) {
			return "", fmt.Errorf("%s target %q escapes root %q", link, target, f.root)
		}
		return rel, nil
	}
	resolved := path.Join(path.Dir(link.Path), filepath.ToSlash(target))
	if escapesRoot(resolved) {
		return "", fmt.Errorf("%s target %q escapes root %q", link, target, f.root)
	}
	return resolved, nil
}

func escapesRoot(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, "../")
}

func (f *FS) hostPath(p string) string {
	return filepath.Join(f.root, filepath.FromSlash(p))
}

// statFromMode classifies by lstat mode bits. Anything that is neither a
// link nor a directory, sockets and devices included, counts as a file.
func statFromMode(p string, mode os.FileMode) models.Stat {
	switch {
	case mode&os.ModeSymlink != 0:
		return models.Link{Path: p}
	case mode.IsDir():
		return models.Dir{Path: p}
	default:
		return models.File{Path: p}
	}
}
