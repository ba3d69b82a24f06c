package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const DefaultConfigFileName = "config.json"

var (
	DefaultConfigDir      = os.ExpandEnv("$HOME/.config/webtoapk")
	DefaultConfigFilePath = filepath.Join(DefaultConfigDir, DefaultConfigFileName)
)

type Provider string

const (
	ProviderGoogleAI  Provider = "googleai"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderOllama    Provider = "ollama"
)

var Providers = []Provider{ProviderGoogleAI, ProviderOpenAI, ProviderAnthropic, ProviderOllama}

// DefaultModel is the model used for a provider when none is configured.
func DefaultModel(p Provider) string {
	switch p {
	case ProviderOpenAI:
		return "gpt-4o-mini"
	case ProviderAnthropic:
		return "claude-3-5-haiku-latest"
	case ProviderOllama:
		return "llama3.1"
	default:
		return "gemini-2.5-flash"
	}
}

const (
	DefaultOllamaHost    = "http://localhost:11434"
	DefaultPhaseInterval = time.Second
)

var ErrMissingAPIKey = errors.New("missing api key")

type Config struct {
	Provider Provider `json:"provider,omitempty"`
	Model    string   `json:"model,omitempty"`
	APIKey   string   `json:"api_key,omitempty"`
	// BaseURL overrides the provider endpoint. For ollama it is the server url.
	BaseURL string `json:"base_url,omitempty"`

	LogFile  string     `json:"log_file,omitempty"`
	LogLevel slog.Level `json:"-"`

	// PhaseInterval is how long each cosmetic status message is shown.
	PhaseInterval time.Duration `json:"-"`
}

func (c *Config) Save() error {
	if _, err := os.Stat(DefaultConfigDir); os.IsNotExist(err) {
		if err := os.MkdirAll(DefaultConfigDir, 0755); err != nil {
			return err
		}
	}

	f, err := os.OpenFile(DefaultConfigFilePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(c); err != nil {
		return err
	}
	return nil
}

func LoadFromFile() (*Config, error) {
	f, err := os.Open(DefaultConfigFilePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var c Config
	if err := json.NewDecoder(f).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load reads the config file, if there is one, and applies environment
// overrides and defaults on top of it.
func Load() (*Config, error) {
	cfg, err := LoadFromFile()
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", DefaultConfigFilePath, err)
	}

	cfg.Provider = Provider(getEnv("WEBTOAPK_PROVIDER", string(cfg.Provider)))
	if cfg.Provider == "" {
		cfg.Provider = ProviderGoogleAI
	}
	cfg.Model = getEnv("WEBTOAPK_MODEL", cfg.Model)
	if cfg.Model == "" {
		cfg.Model = DefaultModel(cfg.Provider)
	}
	cfg.BaseURL = getEnv("WEBTOAPK_BASE_URL", cfg.BaseURL)
	if cfg.Provider == ProviderOllama && cfg.BaseURL == "" {
		cfg.BaseURL = getEnv("OLLAMA_HOST", DefaultOllamaHost)
	}
	if key := providerAPIKey(cfg.Provider); key != "" {
		cfg.APIKey = key
	}

	cfg.LogFile = getEnv("WEBTOAPK_LOG_FILE", cfg.LogFile)
	if cfg.LogFile == "" {
		cfg.LogFile = DefaultLogFile()
	}
	cfg.LogLevel = parseLogLevel(getEnv("WEBTOAPK_LOG_LEVEL", "INFO"))
	cfg.PhaseInterval = parseDuration(getEnv("WEBTOAPK_PHASE_INTERVAL", ""), DefaultPhaseInterval)
	return cfg, nil
}

func DefaultLogFile() string {
	return filepath.Join(os.TempDir(), "webtoapk.log")
}

// Validate checks that the selected provider can be used.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderOllama:
		return nil
	case ProviderGoogleAI, ProviderOpenAI, ProviderAnthropic:
		if c.APIKey == "" {
			return fmt.Errorf("%w for %s: run `webtoapk configure` or set %s", ErrMissingAPIKey, c.Provider, apiKeyEnv(c.Provider)[0])
		}
		return nil
	default:
		return fmt.Errorf("unsupported provider %q", c.Provider)
	}
}

func apiKeyEnv(p Provider) []string {
	switch p {
	case ProviderOpenAI:
		return []string{"OPENAI_API_KEY"}
	case ProviderAnthropic:
		return []string{"ANTHROPIC_API_KEY"}
	default:
		return []string{"GEMINI_API_KEY", "API_KEY"}
	}
}

func providerAPIKey(p Provider) string {
	if p == ProviderOllama {
		return ""
	}
	for _, k := range apiKeyEnv(p) {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseDuration(s string, defaultVal time.Duration) time.Duration {
	if s == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return defaultVal
	}
	return d
}
