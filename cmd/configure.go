package cmd

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/getsavvyinc/webtoapk/cmd/component/secret"
	"github.com/getsavvyinc/webtoapk/config"
	"github.com/getsavvyinc/webtoapk/display"
	"github.com/getsavvyinc/webtoapk/slice"
	"github.com/getsavvyinc/webtoapk/theme"
	"github.com/spf13/cobra"
)

var errConfigureCancelled = errors.New("configuration cancelled")

// configureCmd represents the configure command
var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Choose the AI provider and store its API key",
	Long: `Choose the AI provider and store its API key in ` + config.DefaultConfigFilePath + `.
Environment variables such as GEMINI_API_KEY or OPENAI_API_KEY take precedence.`,
	Run: func(cmd *cobra.Command, _ []string) {
		logger := loggerFromCtx(cmd.Context()).With("command", "configure")

		cfg, err := config.LoadFromFile()
		if errors.Is(err, os.ErrNotExist) {
			cfg, err = &config.Config{Provider: config.ProviderGoogleAI}, nil
		}
		if err != nil {
			display.FatalErr(err, "could not read the existing configuration")
		}

		if err := configure(cfg); err != nil {
			if errors.Is(err, errConfigureCancelled) || errors.Is(err, huh.ErrUserAborted) {
				display.Info("Nothing was changed.")
				return
			}
			display.FatalErrWithSupportCTA(err)
		}

		if err := cfg.Save(); err != nil {
			display.FatalErr(err, "could not save the configuration")
		}
		logger.Info("saved configuration", "provider", cfg.Provider, "model", cfg.Model)
		display.Success(fmt.Sprintf("Saved %s with provider %s and model %s", config.DefaultConfigFilePath, cfg.Provider, cfg.Model))
	},
}

func configure(cfg *config.Config) error {
	if cfg.Provider == "" {
		cfg.Provider = config.ProviderGoogleAI
	}

	providerOptions := slice.Map(config.Providers, func(p config.Provider) huh.Option[config.Provider] {
		return huh.NewOption(string(p), p)
	})
	if err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[config.Provider]().
			Title("AI provider").
			Options(providerOptions...).
			Value(&cfg.Provider),
	)).WithTheme(theme.New()).Run(); err != nil {
		return err
	}

	if cfg.Model == "" || slice.Has(knownModels(), cfg.Model) {
		cfg.Model = config.DefaultModel(cfg.Provider)
	}
	fields := []huh.Field{
		huh.NewInput().
			Title("Model").
			Description("Leave as is unless you know which model you want.").
			Value(&cfg.Model),
	}
	if cfg.Provider == config.ProviderOllama {
		if cfg.BaseURL == "" {
			cfg.BaseURL = config.DefaultOllamaHost
		}
		fields = append(fields, huh.NewInput().Title("Ollama server URL").Value(&cfg.BaseURL))
	}
	if err := huh.NewForm(huh.NewGroup(fields...)).WithTheme(theme.New()).Run(); err != nil {
		return err
	}

	if cfg.Provider == config.ProviderOllama {
		cfg.APIKey = ""
		return nil
	}

	p := tea.NewProgram(secret.New(fmt.Sprintf("Paste your %s API key:", cfg.Provider), "API key"))
	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("api key prompt: %w", err)
	}
	sm := m.(secret.Model)
	if sm.Cancelled() {
		return errConfigureCancelled
	}
	if key := sm.Value(); key != "" {
		cfg.APIKey = key
	}
	return cfg.Validate()
}

// knownModels are the defaults of every provider. A stored default is
// replaced when the provider changes.
func knownModels() []string {
	return slice.Map(config.Providers, config.DefaultModel)
}

func init() {
	rootCmd.AddCommand(configureCmd)
}
