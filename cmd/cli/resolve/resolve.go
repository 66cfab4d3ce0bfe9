package resolve

import (
	"sync"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"github.com/fsglob-project/fsglob/cmd/util/flags/cliflags"
	"github.com/fsglob-project/fsglob/cmd/util/output"
	"github.com/fsglob-project/fsglob/pkg/fsys"
	"github.com/fsglob-project/fsglob/pkg/fsys/localfs"
	"github.com/fsglob-project/fsglob/pkg/glob"
	"github.com/fsglob-project/fsglob/pkg/models"
)

const maxCanonicalWidth = 60

// Match is one resolved entry, annotated with the root it was found under.
type Match struct {
	Root      string `json:"Root"`
	Path      string `json:"Path"`
	Kind      string `json:"Kind"`
	Canonical string `json:"Canonical"`
}

var resolveColumns = []output.TableColumn[Match]{
	{
		ColumnConfig: table.ColumnConfig{Name: "Root"},
		Value:        func(m Match) string { return m.Root },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Path"},
		Value:        func(m Match) string { return m.Path },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Kind"},
		Value:        func(m Match) string { return m.Kind },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Canonical", WidthMax: maxCanonicalWidth, WidthMaxEnforcer: text.WrapText},
		Value:        func(m Match) string { return m.Canonical },
	},
}

type ResolveOptions struct {
	Roots      []string
	OutputOpts output.OutputOptions
}

func NewResolveOptions() *ResolveOptions {
	return &ResolveOptions{
		Roots:      []string{"."},
		OutputOpts: output.OutputOptions{Format: output.TableFormat},
	}
}

func NewCmd() *cobra.Command {
	o := NewResolveOptions()

	resolveCmd := &cobra.Command{
		Use:   "resolve [flags] PATTERN [PATTERN...]",
		Short: "Resolve glob patterns to concrete filesystem entries",
		Long: `Resolve gitignore-style glob patterns against one or more directory trees.
A single star matches within one path component; a double star matches
directories at any depth. Symlinks encountered along the way are followed, so
every reported entry is a real file or directory, listed under the path that
reached it.`,
		Example: `  fsglob resolve '**/*.go'
  fsglob resolve --root ./src --root ./docs '**' --output json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args)
		},
	}

	resolveCmd.Flags().StringSliceVar(&o.Roots, "root", o.Roots,
		`Directory to resolve against. Repeat for several roots.`)
	resolveCmd.Flags().AddFlagSet(cliflags.OutputFormatFlags(&o.OutputOpts))

	return resolveCmd
}

func (o *ResolveOptions) run(cmd *cobra.Command, patterns []string) error {
	if err := glob.ValidatePatterns(patterns); err != nil {
		return err
	}

	var (
		mu         sync.Mutex
		rows       []Match
		resolveErr error
	)

	var g errgroup.Group
	for _, root := range o.Roots {
		root := root
		g.Go(func() error {
			matches, err := resolveRoot(root, patterns)
			mu.Lock()
			defer mu.Unlock()
			rows = append(rows, matches...)
			resolveErr = multierr.Append(resolveErr, err)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// Expansion promises no ordering; presentation does.
	slices.SortFunc(rows, func(a, b Match) bool {
		if a.Root != b.Root {
			return a.Root < b.Root
		}
		return a.Path < b.Path
	})

	if err := output.Output(cmd, resolveColumns, o.OutputOpts, rows); err != nil {
		return err
	}

	// Partial results are results: matches print before failures surface.
	return resolveErr
}

func resolveRoot(root string, patterns []string) ([]Match, error) {
	backend, err := localfs.New(root)
	if err != nil {
		return nil, err
	}

	globs := glob.Create(models.Dir{Path: "."}, patterns)
	matches, _, err := fsys.Expand[fsys.Never](backend, globs)

	rows := make([]Match, 0, len(matches))
	for _, match := range matches {
		rows = append(rows, Match{
			Root:      root,
			Path:      displayPath(match.Path),
			Kind:      statKind(match.Stat),
			Canonical: displayPath(match.Stat.StatPath()),
		})
	}
	return rows, err
}

// displayPath renders the empty root path as a dot.
func displayPath(p string) string {
	if p == "" {
		return "."
	}
	return p
}

func statKind(stat models.Stat) string {
	switch stat.(type) {
	case models.Dir:
		return "dir"
	case models.File:
		return "file"
	default:
		return "link"
	}
}
