package cmd

import (
	"fmt"

	"github.com/getsavvyinc/webtoapk/config"
	"github.com/spf13/cobra"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Shows the webtoapk version",
	Long:  "Shows the webtoapk version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "version:", config.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
