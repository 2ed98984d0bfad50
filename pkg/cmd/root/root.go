package root

import (
	"github.com/spf13/cobra"

	runCmd "github.com/MaineK00n/amalgamate/pkg/cmd/run"
	versionCmd "github.com/MaineK00n/amalgamate/pkg/cmd/version"
)

func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "amalgamate <command>",
		Short:         "Merge npm audit reports into one text report",
		Long:          "Merge npm audit reports into one fixed-width text report with a per-project summary and one panel per finding",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.AddCommand(
		runCmd.NewCmd(),
		versionCmd.NewCmd(),
	)

	return cmd
}
