//go:build unit || !integration

package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatString(t *testing.T) {
	testCases := []struct {
		stat     Stat
		path     string
		expected string
	}{
		{Link{Path: "a/b"}, "a/b", "link:a/b"},
		{Dir{Path: "src"}, "src", "dir:src"},
		{Dir{Path: ""}, "", "dir:"},
		{File{Path: "src/main.go"}, "src/main.go", "file:src/main.go"},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.path, tc.stat.StatPath())
		require.Equal(t, tc.expected, tc.stat.String())
	}
}

// Stats are comparable values: the same path under different variants must
// form distinct map keys, while equal values collapse to one.
func TestStatAsMapKey(t *testing.T) {
	seen := map[Stat]struct{}{
		Link{Path: "a"}: {},
		Dir{Path: "a"}:  {},
		File{Path: "a"}: {},
	}
	seen[Dir{Path: "a"}] = struct{}{}
	require.Len(t, seen, 3)
	require.Contains(t, seen, Dir{Path: "a"})
	require.NotContains(t, seen, Dir{Path: "b"})
}
