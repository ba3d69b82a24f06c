package cmd

import (
	"os"

	"github.com/getsavvyinc/webtoapk/config"
	"github.com/getsavvyinc/webtoapk/display"
	"github.com/getsavvyinc/upgrade-cli"
	"github.com/getsavvyinc/upgrade-cli/release/asset"
	"github.com/spf13/cobra"
)

const owner = "getsavvyinc"
const repo = "webtoapk"

// upgradeCmd represents the upgrade command
var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "upgrade webtoapk to the latest version",
	Long:  `upgrade webtoapk to the latest release published on GitHub`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		logger := loggerFromCtx(ctx).With("command", "upgrade")
		executablePath, err := os.Executable()
		if err != nil {
			display.Error(err)
			os.Exit(1)
		}
		version := config.Version()

		assetDownloader := asset.NewAssetDownloader(executablePath, asset.WithLookupArchFallback(map[string]string{
			"amd64": "x86_64",
			"386":   "i386",
		}))
		upgrader := upgrade.NewUpgrader(owner, repo, executablePath, upgrade.WithAssetDownloader(assetDownloader))

		if ok, err := upgrader.IsNewVersionAvailable(ctx, version); err != nil {
			logger.Error("failed to check for a new version", "version", version, "error", err)
			display.Error(err)
			return
		} else if !ok {
			display.Info("webtoapk is already up to date")
			return
		}

		display.Info("Upgrading webtoapk...")
		if err := upgrader.Upgrade(ctx, version); err != nil {
			display.Error(err)
			os.Exit(1)
		} else {
			display.Success("webtoapk has been upgraded to the latest version")
		}
	},
}

func init() {
	rootCmd.AddCommand(upgradeCmd)
}
