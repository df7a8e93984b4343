package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/bytom/sm3/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of sm3sum",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "sm3sum v%s %s/%s\n", version.Version, runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
