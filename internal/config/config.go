// Package config resolves oracle credentials and tuning from the
// environment, a user config file and an optional api.key file.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingCredential aborts a run before any file is touched.
var ErrMissingCredential = errors.New("no API key found in OPENAI_KEY, OPENAI_API_KEY, ~/.autotyper/config.json or api.key")

// Config carries everything the oracle client needs. It is constructed
// once at startup and passed by reference; nothing here is global state.
type Config struct {
	APIKey      string
	Org         string
	BaseURL     string
	Model       string // empty means the client default
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

// Load resolves configuration in precedence order: user config file
// (promoted to env), .env file, then the process environment. A missing
// API key is fatal.
func Load() (*Config, error) {
	// Best-effort: a missing .env or user config file is not an error.
	_ = godotenv.Load()
	if err := loadFromUserConfig(); err != nil {
		return nil, err
	}

	key := Get("OPENAI_KEY", "OPENAI_API_KEY")
	if key == "" {
		key = readKeyFile("api.key")
	}
	if key == "" {
		return nil, ErrMissingCredential
	}

	cfg := &Config{
		APIKey:      key,
		Org:         Get("OPENAI_ORG"),
		BaseURL:     Get("OPENAI_BASE_URL"),
		Model:       Get("AUTOTYPER_MODEL"),
		MaxTokens:   48,
		Temperature: 0.5,
		Timeout:     30 * time.Second,
	}
	if v := Get("AUTOTYPER_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxTokens = n
		}
	}
	if v := Get("AUTOTYPER_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	return cfg, nil
}

// Get returns the first non-empty environment variable from the provided keys.
func Get(keys ...string) string {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return ""
}

// loadFromUserConfig promotes entries of ~/.autotyper/config.json into the
// environment so they resolve through the same lookup as real env vars.
func loadFromUserConfig() error {
	home, err := os.UserHomeDir()
	if err != nil {
		// Best-effort: if we can't resolve home, just skip file loading.
		return nil
	}

	file, err := os.Open(filepath.Join(home, ".autotyper", "config.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var values map[string]string
	if err := json.NewDecoder(file).Decode(&values); err != nil {
		return err
	}

	for key, value := range values {
		if value == "" || os.Getenv(key) != "" {
			continue
		}
		_ = os.Setenv(key, value)
	}
	return nil
}

func readKeyFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
