package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the assistant configuration
type Config struct {
	// Data directory for the profile store and conversation database
	DataDir string `yaml:"data_dir"` // ~/.docpal

	// Model endpoint settings
	Model ModelConfig `yaml:"model"`

	// Token and timeout ceilings for model calls
	Limits LimitsConfig `yaml:"limits"`

	// Max conversation turns passed to the routing step
	MaxContext int `yaml:"max_context"`

	// HTTP gateway listen port
	Port int `yaml:"port"`
}

// ModelConfig holds the chat-completion endpoint settings. The defaults
// point at Gemini's OpenAI-compatible endpoint.
type ModelConfig struct {
	APIKey  string `yaml:"api_key,omitempty"`  // supports ${ENV} expansion
	BaseURL string `yaml:"base_url,omitempty"` // OpenAI-compatible endpoint
	Name    string `yaml:"name,omitempty"`     // model identifier
}

// LimitsConfig bounds the cost and latency of model calls.
type LimitsConfig struct {
	MaxInputTokens    int `yaml:"max_input_tokens"`        // input truncation ceiling
	SummaryMaxTokens  int `yaml:"summary_max_tokens"`      // summary output cap
	QuizMaxTokens     int `yaml:"quiz_max_tokens"`         // quiz output cap
	RequestTimeoutSec int `yaml:"request_timeout_seconds"` // per model call
}

// RequestTimeout returns the per-call deadline as a duration.
func (l LimitsConfig) RequestTimeout() time.Duration {
	return time.Duration(l.RequestTimeoutSec) * time.Second
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		DataDir: DefaultDataDir(),
		Model: ModelConfig{
			APIKey:  "${GEMINI_API_KEY}",
			BaseURL: "https://generativelanguage.googleapis.com/v1beta/openai/",
			Name:    "gemini-2.0-flash",
		},
		Limits: LimitsConfig{
			MaxInputTokens:    10000,
			SummaryMaxTokens:  500,
			QuizMaxTokens:     1000,
			RequestTimeoutSec: 60,
		},
		MaxContext: 50,
		Port:       8790,
	}
}

// DefaultDataDir returns the default data directory (~/.docpal)
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".docpal"
	}
	return filepath.Join(home, ".docpal")
}

// Load loads config from ~/.docpal/config.yaml, falling back to defaults
// when the file does not exist.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filepath.Join(cfg.DataDir, "config.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			cfg.expand()
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.expand()
	return cfg, nil
}

// LoadFrom loads config from a specific path
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.expand()
	return cfg, nil
}

// expand resolves ${ENV} references in secret-bearing fields.
func (c *Config) expand() {
	c.Model.APIKey = os.ExpandEnv(c.Model.APIKey)
	c.Model.BaseURL = os.ExpandEnv(c.Model.BaseURL)
}

// EnsureDataDir creates the data directory if needed.
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir, 0700)
}

// DBPath returns the conversation database path.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "docpal.db")
}

// ProfilePath returns the user profile file path.
func (c *Config) ProfilePath() string {
	return filepath.Join(c.DataDir, "user_profile.json")
}
