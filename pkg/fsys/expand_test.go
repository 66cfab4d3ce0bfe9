//go:build unit || !integration

package fsys_test

import (
	"errors"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
	"golang.org/x/exp/slices"

	"github.com/fsglob-project/fsglob/pkg/fsys"
	"github.com/fsglob-project/fsglob/pkg/fsys/memfs"
	"github.com/fsglob-project/fsglob/pkg/glob"
	"github.com/fsglob-project/fsglob/pkg/logger"
	"github.com/fsglob-project/fsglob/pkg/models"
)

type ExpandSuite struct {
	suite.Suite
	backend *memfs.FS
	baseDir models.Dir
}

func TestExpandSuite(t *testing.T) {
	suite.Run(t, new(ExpandSuite))
}

func (s *ExpandSuite) SetupTest() {
	logger.ConfigureTestLogging(s.T())
	s.baseDir = models.Dir{Path: "."}
	s.backend = memfs.New().
		AddFile("src/main.go").
		AddFile("src/lib.go").
		AddFile("src/util/helper.go").
		AddFile("docs/readme.md").
		AddLink("latest", "src").
		AddLink("lib.go", "src/lib.go")
}

func (s *ExpandSuite) expand(patterns ...string) ([]models.PathStat, []fsys.Never, error) {
	return fsys.Expand[fsys.Never](s.backend, glob.Create(s.baseDir, patterns))
}

func (s *ExpandSuite) paths(matches []models.PathStat) []string {
	paths := lo.Map(matches, func(match models.PathStat, _ int) string { return match.Path })
	slices.Sort(paths)
	return paths
}

func (s *ExpandSuite) TestRootAnswersWithoutBackendCalls() {
	counting := &countingFS[fsys.Never]{inner: s.backend}
	matches, pendings, err := fsys.Apply[fsys.Never](counting, glob.Root{})
	s.Require().NoError(err)
	s.Require().Empty(pendings)
	s.Require().Equal([]models.PathStat{{Path: "", Stat: models.Dir{Path: ""}}}, matches)
	s.Require().Zero(counting.calls())
}

func (s *ExpandSuite) TestLiteralPathKeepsItsSpelling() {
	matches, pendings, err := s.expand("src/main.go")
	s.Require().NoError(err)
	s.Require().Empty(pendings)
	s.Require().Len(matches, 1)

	// With no links involved, the symbolic path is the pattern itself and
	// the stat is what a direct lstat of it reports.
	s.Require().Equal("src/main.go", matches[0].Path)
	direct, _, err := s.backend.Lstat("src/main.go")
	s.Require().NoError(err)
	s.Require().Equal(direct, matches[0].Stat)
}

func (s *ExpandSuite) TestWildcardMatchesWithinOneDirectory() {
	matches, _, err := s.expand("src/*.go")
	s.Require().NoError(err)
	s.Require().Equal([]string{"src/lib.go", "src/main.go"}, s.paths(matches))
}

func (s *ExpandSuite) TestMatchesNeverCarryLinks() {
	matches, _, err := s.expand("*")
	s.Require().NoError(err)
	s.Require().Equal([]string{"docs", "latest", "lib.go", "src"}, s.paths(matches))
	for _, match := range matches {
		s.Require().NoError(match.Validate(), "match %s", match)
	}

	// Links resolve to their targets but keep the requested spelling.
	byPath := lo.KeyBy(matches, func(match models.PathStat) string { return match.Path })
	s.Require().Equal(models.Dir{Path: "src"}, byPath["latest"].Stat)
	s.Require().Equal(models.File{Path: "src/lib.go"}, byPath["lib.go"].Stat)
	s.Require().Equal(models.Dir{Path: "src"}, byPath["src"].Stat)
}

func (s *ExpandSuite) TestDoublestarRecursesThroughSymlinkedDirs() {
	matches, pendings, err := s.expand("**/*.go")
	s.Require().NoError(err)
	s.Require().Empty(pendings)
	s.Require().Equal([]string{
		"latest/lib.go",
		"latest/main.go",
		"latest/util/helper.go",
		"lib.go",
		"src/lib.go",
		"src/main.go",
		"src/util/helper.go",
	}, s.paths(matches))
}

func (s *ExpandSuite) TestDoublestarAloneEnumeratesEverything() {
	matches, _, err := s.expand("**")
	s.Require().NoError(err)
	s.Require().Equal([]string{
		"docs",
		"docs/readme.md",
		"latest",
		"latest/lib.go",
		"latest/main.go",
		"latest/util",
		"latest/util/helper.go",
		"lib.go",
		"src",
		"src/lib.go",
		"src/main.go",
		"src/util",
		"src/util/helper.go",
	}, s.paths(matches))
}

func (s *ExpandSuite) TestZeroMatchesIsSuccess() {
	matches, pendings, err := s.expand("*.rs")
	s.Require().NoError(err)
	s.Require().Empty(pendings)
	s.Require().Empty(matches)
}

func (s *ExpandSuite) TestDirWildcardWithoutMatchingDirsIsSuccess() {
	matches, pendings, err := s.expand("nomatch/*", "docs/nothing/*")
	s.Require().NoError(err)
	s.Require().Empty(pendings)
	s.Require().Empty(matches)
}

func (s *ExpandSuite) TestSymlinkLoopFailsTheEntryNotTheListing() {
	s.backend.
		AddLink("loop1", "loop2").
		AddLink("loop2", "loop1")

	matches, _, err := s.expand("*")
	s.Require().Error(err)
	s.Require().Contains(err.Error(), "symlink loop")

	var loopErr *fsys.SymlinkLoopError
	s.Require().ErrorAs(err, &loopErr)
	s.Require().Equal(models.Link{Path: "loop1"}, loopErr.Link)

	// Sibling entries still match.
	s.Require().Equal([]string{"docs", "latest", "lib.go", "src"}, s.paths(matches))
}

func (s *ExpandSuite) TestBackendFailurePassesThroughOpaquely() {
	boom := errors.New("disk on fire")
	s.backend.InjectError("docs", boom)

	matches, _, err := s.expand("docs/*", "src/*.go")
	s.Require().ErrorIs(err, boom)
	s.Require().Equal([]string{"src/lib.go", "src/main.go"}, s.paths(matches))
}

func (s *ExpandSuite) TestMalformedPatternFailsItsUnitOnly() {
	matches, _, err := s.expand("src/a[", "docs/*")
	s.Require().Error(err)
	s.Require().Equal([]string{"docs/readme.md"}, s.paths(matches))
}

func (s *ExpandSuite) TestIdenticalUnitsApplyOnce() {
	counting := &countingFS[fsys.Never]{inner: s.backend}
	globs := glob.Create(s.baseDir, []string{"src/*.go", "src/*.go"})
	s.Require().Len(globs, 2)

	matches, _, err := fsys.Expand[fsys.Never](counting, globs)
	s.Require().NoError(err)
	s.Require().Equal([]string{"src/lib.go", "src/main.go"}, s.paths(matches))

	// One listing for the base dir, one for src.
	s.Require().Equal(2, counting.readDirs)
}

// The two symbolic routes into src stay distinct: reaching the same
// canonical directory through different names is not a duplicate.
func (s *ExpandSuite) TestDiamondRoutesBothReport() {
	matches, _, err := s.expand("latest/main.go", "src/main.go")
	s.Require().NoError(err)
	s.Require().Equal([]string{"latest/main.go", "src/main.go"}, s.paths(matches))
	for _, match := range matches {
		s.Require().Equal(models.File{Path: "src/main.go"}, match.Stat)
	}
}
