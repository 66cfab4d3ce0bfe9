//go:build unit || !integration

package memfs

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fsglob-project/fsglob/pkg/models"
)

func TestListingsAreSortedAndParentsImplicit(t *testing.T) {
	backend := New().
		AddFile("src/util/helper.go").
		AddFile("src/main.go").
		AddLink("latest", "src")

	entries, pending, err := backend.ReadDir(models.Dir{Path: ""})
	require.NoError(t, err)
	require.Nil(t, pending)
	require.Equal(t, []models.Stat{
		models.Link{Path: "latest"},
		models.Dir{Path: "src"},
	}, entries)

	entries, _, err = backend.ReadDir(models.Dir{Path: "src"})
	require.NoError(t, err)
	require.Equal(t, []models.Stat{
		models.File{Path: "src/main.go"},
		models.Dir{Path: "src/util"},
	}, entries)
}

func TestPathsAreCleaned(t *testing.T) {
	backend := New().AddFile("./src//main.go")

	stat, _, err := backend.Lstat("src/main.go")
	require.NoError(t, err)
	require.Equal(t, models.File{Path: "src/main.go"}, stat)

	// The dot spelling and the empty spelling both name the root.
	for _, root := range []string{".", ""} {
		stat, _, err = backend.Lstat(root)
		require.NoError(t, err)
		require.Equal(t, models.Dir{Path: ""}, stat)
	}
}

func TestMissingEntries(t *testing.T) {
	backend := New()

	_, _, err := backend.Lstat("missing")
	require.ErrorIs(t, err, fs.ErrNotExist)

	_, _, err = backend.ReadLink(models.Link{Path: "missing"})
	require.ErrorIs(t, err, fs.ErrNotExist)

	_, _, err = backend.ReadDir(models.Dir{Path: "missing"})
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestKindMismatches(t *testing.T) {
	backend := New().AddFile("file").AddLink("link", "file")

	_, _, err := backend.ReadLink(models.Link{Path: "file"})
	require.ErrorContains(t, err, "not a link")

	_, _, err = backend.ReadDir(models.Dir{Path: "file"})
	require.ErrorContains(t, err, "not a directory")

	target, _, err := backend.ReadLink(models.Link{Path: "link"})
	require.NoError(t, err)
	require.Equal(t, "file", target)
}

// Injected errors surface unmodified on every primitive touching the path.
func TestInjectError(t *testing.T) {
	boom := errors.New("cable unplugged")
	backend := New().AddDir("flaky").InjectError("flaky", boom)

	_, _, err := backend.Lstat("flaky")
	require.ErrorIs(t, err, boom)

	_, _, err = backend.ReadDir(models.Dir{Path: "flaky"})
	require.ErrorIs(t, err, boom)
}
