// Package config loads profiles from config.yaml and the API key from the
// environment or a .env file, and merges them with command-line flags.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	yaml "gopkg.in/yaml.v3"
)

const (
	AppName = "ai-bot"

	// EnvAPIKey is the variable holding the credential, both in the process
	// environment and in the key file.
	EnvAPIKey = "OPENAI_API_KEY"

	// PlaceholderKey is written to a fresh key file before a real key is
	// supplied. It never counts as a configured key.
	PlaceholderKey = "your_openai_api_key_here"

	DefaultEnvFile = ".env"
)

// ===================== Config & Profiles =====================

type Profile struct {
	Model     string   `yaml:"model"`
	Temp      *float64 `yaml:"temp"`
	BaseURL   string   `yaml:"base_url"`
	Proxy     string   `yaml:"proxy"`
	Format    string   `yaml:"format"`     // text|markdown
	MaxTokens int64    `yaml:"max_tokens"` // 0 = default
	Timeout   string   `yaml:"timeout"`    // time.ParseDuration syntax
}

type Config struct {
	APIKey   string             `yaml:"api_key"`
	Default  string             `yaml:"default"`
	Profiles map[string]Profile `yaml:"profiles"`
}

func Dir() string { return filepath.Join(xdg.ConfigHome, AppName) }

func Path() string { return filepath.Join(Dir(), "config.yaml") }

// Load reads the config file at path. A missing file yields an empty
// config.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{Profiles: map[string]Profile{}}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	if cfg.Profiles == nil {
		cfg.Profiles = map[string]Profile{}
	}
	return &cfg, nil
}

// Profile returns the named profile, or the default one when name is empty.
func (c *Config) Profile(name string) (Profile, bool) {
	if c == nil {
		return Profile{}, false
	}
	if name == "" {
		name = c.Default
	}
	if name == "" {
		return Profile{}, false
	}
	p, ok := c.Profiles[name]
	return p, ok
}

// LoadEnvFile loads path into the process environment without overriding
// variables already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

// ===================== Settings =====================

// Flags carries the values given on the command line; zero values mean
// "not set".
type Flags struct {
	APIKey    string
	Model     string
	BaseURL   string
	Proxy     string
	Format    string
	Profile   string
	Temp      float64 // < 0 means unset
	MaxTokens int64
	Timeout   time.Duration
}

// Settings is the merged result used to build a session and a client.
type Settings struct {
	APIKey      string
	Model       string
	BaseURL     string
	Proxy       string
	Format      string
	Temperature float64
	MaxTokens   int64
	Timeout     time.Duration
}

// Defaults supplies the values used when neither flags nor profile set one.
type Defaults struct {
	Model       string
	Temperature float64
	MaxTokens   int64
	Timeout     time.Duration
}

// Resolve merges flags > environment > profile > defaults.
func Resolve(f Flags, cfg *Config, d Defaults) Settings {
	prof, _ := cfg.Profile(f.Profile)

	var cfgKey string
	if cfg != nil {
		cfgKey = cfg.APIKey
	}

	profTemp := -1.0
	if prof.Temp != nil {
		profTemp = *prof.Temp
	}

	var profTimeout time.Duration
	if prof.Timeout != "" {
		profTimeout, _ = time.ParseDuration(prof.Timeout)
	}

	return Settings{
		APIKey:      usableKey(chooseNonEmpty(f.APIKey, os.Getenv(EnvAPIKey), cfgKey)),
		Model:       chooseNonEmpty(f.Model, prof.Model, d.Model),
		BaseURL:     chooseNonEmpty(f.BaseURL, prof.BaseURL),
		Proxy:       chooseNonEmpty(f.Proxy, prof.Proxy),
		Format:      chooseNonEmpty(f.Format, prof.Format),
		Temperature: chooseTemp(f.Temp, profTemp, d.Temperature),
		MaxTokens:   chooseInt64(f.MaxTokens, prof.MaxTokens, d.MaxTokens),
		Timeout:     chooseDuration(f.Timeout, profTimeout, d.Timeout),
	}
}

// usableKey drops the placeholder so that it behaves like a missing key.
func usableKey(key string) string {
	if key == PlaceholderKey {
		return ""
	}
	return key
}
