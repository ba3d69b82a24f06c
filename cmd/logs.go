package cmd

import (
	"fmt"

	"github.com/getsavvyinc/webtoapk/config"
	"github.com/getsavvyinc/webtoapk/display"
	"github.com/getsavvyinc/webtoapk/tail"
	"github.com/spf13/cobra"
)

var (
	logLines   int
	logRequest string
)

// logsCmd represents the logs command
var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show the end of the webtoapk log file",
	Long: `Show the end of the webtoapk log file.

Include this output when you report a problem with a generated guide.`,
	Example: `  webtoapk logs -n 20
  webtoapk logs --request req-4b1f0c2e-...`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			display.FatalErr(err)
		}

		lines, err := tail.Lines(cfg.LogFile, logLines, logRequest)
		if err != nil {
			display.FatalErr(err, "could not read "+cfg.LogFile)
		}
		for _, l := range lines {
			fmt.Println(l)
		}
	},
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.Flags().IntVarP(&logLines, "lines", "n", 50, "Number of lines to show")
	logsCmd.Flags().StringVar(&logRequest, "request", "", "Only show lines for this request id")
}
