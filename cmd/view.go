package cmd

import (
	"github.com/getsavvyinc/webtoapk/client"
	"github.com/getsavvyinc/webtoapk/display"
	"github.com/getsavvyinc/webtoapk/export"
	"github.com/getsavvyinc/webtoapk/guide"
	"github.com/getsavvyinc/webtoapk/lifecycle"
	"github.com/getsavvyinc/webtoapk/storage"
	"github.com/spf13/cobra"
)

var (
	viewPlainFlag bool
	viewLastFlag  bool
)

// viewCmd represents the view command
var viewCmd = &cobra.Command{
	Use:   "view [guide-file]",
	Short: "Open a guide saved with --export json or --export yaml",
	Example: `  webtoapk view webtoapk_2024_05_01_10_00_00.json
  webtoapk view --last`,
	Args: func(cmd *cobra.Command, args []string) error {
		if viewLastFlag {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		path := storage.Path()
		if !viewLastFlag {
			path = args[0]
		}
		logger := loggerFromCtx(ctx).With("command", "view", "file", path)

		var g *export.Guide
		var err error
		if viewLastFlag {
			g, err = storage.Read()
		} else {
			g, err = export.LoadFile(path)
		}
		if err != nil {
			display.FatalErr(err)
		}

		source := g.Request.RepositoryURL
		if source == "" {
			source = path
		}

		os := g.Request.OS
		if osFlag != "" {
			if os, err = guide.ParseOS(osFlag); err != nil {
				display.FatalErr(err)
			}
		}

		// saved guides skip the status phases and any url check
		s := &session{
			ctrl: lifecycle.New(
				lifecycle.WithPhases(nil),
				lifecycle.WithHostMarker(""),
				lifecycle.WithLogger(logger),
			),
			cl:     client.NewReplay(g.Steps),
			logger: logger,
			plain:  viewPlainFlag || !isInteractive(),
		}
		if err := s.run(ctx, guideInput{
			RepositoryURL:   source,
			PlatformVersion: g.Request.PlatformVersion,
			OS:              os,
		}); err != nil {
			display.FatalErr(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
	viewCmd.Flags().BoolVar(&viewPlainFlag, "plain", false, "Print the guide as markdown instead of the interactive viewer")
	viewCmd.Flags().BoolVar(&viewLastFlag, "last", false, "Open the most recently generated guide")
	viewCmd.Flags().StringVar(&osFlag, "os", "", "Override the operating system stored in the guide")
}
