package cmd

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/getsavvyinc/webtoapk/client"
	"github.com/getsavvyinc/webtoapk/config"
	"github.com/getsavvyinc/webtoapk/display"
	"github.com/getsavvyinc/webtoapk/guide"
	"github.com/getsavvyinc/webtoapk/lifecycle"
	"github.com/getsavvyinc/webtoapk/llm/service"
	"github.com/spf13/cobra"
)

var (
	osFlag       string
	platformFlag string
	plainFlag    bool
	exportFlag   string
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:     "generate [github-repository-url]",
	Aliases: []string{"gen"},
	Short:   "Generate an interactive guide that turns a GitHub web project into an APK",
	Example: `  webtoapk generate
  webtoapk generate https://github.com/user/my-web-app --os windows
  webtoapk generate https://github.com/user/my-web-app --plain --export md`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		logger := loggerFromCtx(ctx).With("command", "generate")

		cfg, err := config.Load()
		if err != nil {
			display.FatalErr(err)
		}

		userOS, err := guide.ParseOS(osFlag)
		if err != nil {
			display.FatalErr(err)
		}

		completer, err := service.New(ctx, cfg)
		if errors.Is(err, config.ErrMissingAPIKey) {
			display.FatalErr(err)
		} else if err != nil {
			display.FatalErrWithSupportCTA(err)
		}

		in := guideInput{PlatformVersion: platformFlag, OS: userOS}
		if len(args) > 0 {
			in.RepositoryURL = strings.TrimSpace(args[0])
		}

		interactive := isInteractive()
		s := &session{
			ctrl:     lifecycle.New(lifecycle.WithLogger(logger)),
			cl:       client.New(completer, cfg.Model, client.WithLogger(logger)),
			logger:   logger,
			interval: cfg.PhaseInterval,
			plain:    plainFlag || !interactive,
			format:   exportFlag,
			remember: true,
		}
		if interactive {
			s.collect = collectInput
		}

		if err := s.run(ctx, in); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return
			}
			logger.Error("generate failed", "kind", client.KindOf(err), "error", client.Cause(err))
			var msgs []string
			var rf *requestFailure
			if errors.As(err, &rf) {
				msgs = append(msgs, rf.hint())
			}
			if client.KindOf(err) == client.KindServiceFailure {
				display.FatalErrWithSupportCTA(err, msgs...)
			}
			display.FatalErr(err, msgs...)
		}
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVar(&osFlag, "os", "", "Your operating system: macos_linux or windows")
	generateCmd.Flags().StringVar(&platformFlag, "platform", "", "Target Android version, e.g. \"Android 13 (Tiramisu)\"")
	generateCmd.Flags().BoolVar(&plainFlag, "plain", false, "Print the guide as markdown instead of the interactive viewer")
	generateCmd.Flags().StringVarP(&exportFlag, "export", "e", "", "Save the guide when done: md, json, yaml or ask")
}
