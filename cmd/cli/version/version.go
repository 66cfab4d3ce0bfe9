package version

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/fsglob-project/fsglob/cmd/util/flags/cliflags"
	"github.com/fsglob-project/fsglob/cmd/util/output"
	"github.com/fsglob-project/fsglob/pkg/version"
)

type VersionOptions struct {
	OutputOpts output.OutputOptions
}

func NewVersionOptions() *VersionOptions {
	return &VersionOptions{
		OutputOpts: output.OutputOptions{Format: output.TableFormat},
	}
}

var versionColumns = []output.TableColumn[*version.BuildVersionInfo]{
	{
		ColumnConfig: table.ColumnConfig{Name: "Version"},
		Value:        func(v *version.BuildVersionInfo) string { return v.GitVersion },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Commit"},
		Value:        func(v *version.BuildVersionInfo) string { return v.GitCommit },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Build Date"},
		Value:        func(v *version.BuildVersionInfo) string { return v.BuildDate },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "OS/Arch"},
		Value:        func(v *version.BuildVersionInfo) string { return v.GOOS + "/" + v.GOARCH },
	},
}

func NewCmd() *cobra.Command {
	oV := NewVersionOptions()

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Get the version of the fsglob binary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVersion(cmd, oV)
		},
	}
	versionCmd.Flags().AddFlagSet(cliflags.OutputFormatFlags(&oV.OutputOpts))

	return versionCmd
}

func runVersion(cmd *cobra.Command, oV *VersionOptions) error {
	return output.OutputOne(cmd, versionColumns, oV.OutputOpts, version.Get())
}
