package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderWatsonx   = "watsonx"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// TimestampLayout is the token stamped into every artifact name of a run.
const TimestampLayout = "20060102_150405"

var (
	ErrMissingCredential = errors.New("missing API credential")
	ErrMissingEndpoint   = errors.New("missing region endpoint")
)

// SecretSource resolves a provider credential when the environment does not
// carry one. The keyring service implements it.
type SecretSource interface {
	GetApiKey(provider string) (string, error)
}

// Config is the explicit run context passed into the walker, aggregator and
// composer instead of process-wide globals.
type Config struct {
	Provider  string
	APIKey    string
	Endpoint  string
	ProjectID string
	ModelID   string

	MaxNewTokens    int
	MaxContentChars int
	RequestTimeout  time.Duration
	FailFast        bool

	ChatAddr     string
	DatabasePath string
	Timestamp    string
}

// Options are the non-secret knobs surfaced as command-line flags.
type Options struct {
	Provider        string
	ModelID         string
	MaxNewTokens    int
	MaxContentChars int
	RequestTimeout  time.Duration
	FailFast        bool
	ChatAddr        string
}

var envKeyByProvider = map[string]string{
	ProviderWatsonx:   "IBM_API_KEY",
	ProviderOpenAI:    "OPENAI_API_KEY",
	ProviderAnthropic: "ANTHROPIC_API_KEY",
	ProviderGemini:    "GEMINI_API_KEY",
}

var defaultModelByProvider = map[string]string{
	ProviderWatsonx:   "ibm/granite-3-8b-instruct",
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderAnthropic: "claude-sonnet-4-20250514",
	ProviderGemini:    "gemini-2.0-flash",
}

// Load reads a .env file from the working directory when present, then the
// process environment, then the secret source for the credential. It fails
// before any traversal when the credential (or, for watsonx, the region
// endpoint) is missing.
func Load(opts Options, secrets SecretSource) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	provider := strings.TrimSpace(opts.Provider)
	if provider == "" {
		provider = ProviderWatsonx
	}
	envKey, ok := envKeyByProvider[provider]
	if !ok {
		return Config{}, fmt.Errorf("unsupported provider: %s", provider)
	}

	apiKey := strings.TrimSpace(os.Getenv(envKey))
	if apiKey == "" && secrets != nil {
		if fromKeyring, err := secrets.GetApiKey(provider); err == nil {
			apiKey = strings.TrimSpace(fromKeyring)
		}
	}
	if apiKey == "" {
		return Config{}, fmt.Errorf("%w: set %s or store a key for provider %q", ErrMissingCredential, envKey, provider)
	}

	endpoint := strings.TrimSpace(os.Getenv("REGION_ENDPOINT"))
	if provider == ProviderWatsonx && endpoint == "" {
		return Config{}, fmt.Errorf("%w: set REGION_ENDPOINT", ErrMissingEndpoint)
	}

	modelID := strings.TrimSpace(opts.ModelID)
	if modelID == "" {
		modelID = strings.TrimSpace(os.Getenv("MODEL_ID"))
	}
	if modelID == "" {
		modelID = defaultModelByProvider[provider]
	}

	cfg := Config{
		Provider:        provider,
		APIKey:          apiKey,
		Endpoint:        endpoint,
		ProjectID:       strings.TrimSpace(os.Getenv("PROJECT_ID")),
		ModelID:         modelID,
		MaxNewTokens:    opts.MaxNewTokens,
		MaxContentChars: opts.MaxContentChars,
		RequestTimeout:  opts.RequestTimeout,
		FailFast:        opts.FailFast,
		ChatAddr:        opts.ChatAddr,
		DatabasePath:    "intellidoc.db",
		Timestamp:       time.Now().Format(TimestampLayout),
	}
	if cfg.MaxNewTokens <= 0 {
		cfg.MaxNewTokens = 512
	}
	if cfg.MaxContentChars <= 0 {
		cfg.MaxContentChars = 12000
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 2 * time.Minute
	}
	if cfg.ChatAddr == "" {
		cfg.ChatAddr = "127.0.0.1:7860"
	}
	return cfg, nil
}

// SummariesPath returns the chronological plain-text log for this run,
// relative to the working directory.
func (c Config) SummariesPath() string {
	return fmt.Sprintf("initial-summaries_%s.txt", c.Timestamp)
}

// FindingsPath returns the JSON findings artifact for this run.
func (c Config) FindingsPath() string {
	return fmt.Sprintf("findings/%s/findings.json", c.Timestamp)
}

// GuidePath returns the Markdown guide artifact for this run.
func (c Config) GuidePath() string {
	return fmt.Sprintf("guidebook_%s.md", c.Timestamp)
}
