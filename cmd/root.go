package cmd

import (
	"log/slog"
	"os"

	"github.com/getsavvyinc/webtoapk/config"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "webtoapk",
	Short: "Turn a web project on GitHub into an Android APK, step by step",
	Long: `webtoapk asks an AI for a beginner friendly guide that packages a web project
(HTML, CSS and JavaScript) into an Android APK with Apache Cordova, and walks
you through it one step at a time.`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		logFile, logLevel := config.DefaultLogFile(), slog.LevelInfo
		if cfg, err := config.Load(); err == nil {
			logFile, logLevel = cfg.LogFile, cfg.LogLevel
		}
		if debugFlag {
			logLevel = slog.LevelDebug
		}

		logger, closeLog := config.SetupLogger(logFile, logLevel, debugFlag)
		closeLogFile = closeLog
		slog.SetDefault(logger)
		cmd.SetContext(ctxWithLogger(cmd.Context(), logger))
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if closeLogFile != nil {
			_ = closeLogFile()
		}
	},
}

var (
	debugFlag    bool
	closeLogFile func() error
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false, "Enable debug mode (logs to stderr)")
}
