//go:build unit || !integration

package fsys_test

import (
	"fmt"

	"github.com/fsglob-project/fsglob/pkg/fsys"
	"github.com/fsglob-project/fsglob/pkg/fsys/memfs"
	"github.com/fsglob-project/fsglob/pkg/models"
)

// countingFS wraps a backend and counts the primitive calls made through it.
type countingFS[K any] struct {
	inner     fsys.Filesystem[K]
	lstats    int
	readLinks int
	readDirs  int
}

func (c *countingFS[K]) Lstat(path string) (models.Stat, *K, error) {
	c.lstats++
	return c.inner.Lstat(path)
}

func (c *countingFS[K]) ReadLink(link models.Link) (string, *K, error) {
	c.readLinks++
	return c.inner.ReadLink(link)
}

func (c *countingFS[K]) ReadDir(dir models.Dir) ([]models.Stat, *K, error) {
	c.readDirs++
	return c.inner.ReadDir(dir)
}

func (c *countingFS[K]) calls() int {
	return c.lstats + c.readLinks + c.readDirs
}

// linkChain builds n links l1 -> l2 -> ... -> ln all leading to a final
// regular file, and returns the head link.
func linkChain(fs *memfs.FS, n int) models.Link {
	for i := 1; i < n; i++ {
		fs.AddLink(fmt.Sprintf("l%d", i), fmt.Sprintf("l%d", i+1))
	}
	fs.AddLink(fmt.Sprintf("l%d", n), "target")
	fs.AddFile("target")
	return models.Link{Path: "l1"}
}
