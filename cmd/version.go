package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/toolshed/pkg/version"
)

func newVersionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the toolshed version, commit hash, and build date.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(out, version.Version())
				return
			}
			fmt.Fprintf(out, "toolshed %s\n", version.Version())
			fmt.Fprintf(out, "Commit: %s\n", version.Commit())
			fmt.Fprintf(out, "Built: %s\n", version.BuildDate())
		},
	}
	cmd.Flags().BoolVarP(&short, "short", "s", false, "Show only version number")

	return cmd
}
