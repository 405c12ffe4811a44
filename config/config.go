// Package config supplies the base URL of the Books API under test. The value can
// come from a YAML settings file, the environment, or a command-line override, and
// is validated once before any test runs.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the endpoint used when nothing else is configured.
const DefaultBaseURL = "https://fakerestapi.azurewebsites.net"

// BaseURLEnvVar overrides the settings file when set.
const BaseURLEnvVar = "BOOKS_API_BASE_URL"

// SettingsPathEnvVar names an alternate settings file location.
const SettingsPathEnvVar = "BOOKS_CONFIG"

const defaultSettingsPath = "books.yaml"

// Config holds the immutable configuration for a test run.
type Config struct {
	BaseURL string `yaml:"base_url"`
}

// Load resolves the base URL, in increasing precedence: built-in default, settings
// file, environment (including a .env file in the working directory), then the
// flagURL command-line override. It returns an error if the result is not a
// well-formed absolute http(s) URL, so that a misconfigured run fails before any
// test executes.
func Load(flagURL string) (Config, error) {
	c := Config{BaseURL: DefaultBaseURL}

	path := os.Getenv(SettingsPathEnvVar)
	explicitPath := path != ""
	if !explicitPath {
		path = defaultSettingsPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fromFile Config
		if err := yaml.Unmarshal(data, &fromFile); err != nil {
			return Config{}, fmt.Errorf("could not parse settings file %s: %w", path, err)
		}
		if fromFile.BaseURL != "" {
			c.BaseURL = fromFile.BaseURL
		}
	case os.IsNotExist(err) && !explicitPath:
		// the default settings file is optional
	default:
		return Config{}, fmt.Errorf("could not read settings file %s: %w", path, err)
	}

	_ = godotenv.Load()
	if v := os.Getenv(BaseURLEnvVar); v != "" {
		c.BaseURL = v
	}

	if flagURL != "" {
		c.BaseURL = flagURL
	}

	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if err := validateBaseURL(c.BaseURL); err != nil {
		return Config{}, err
	}
	return c, nil
}

func validateBaseURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("base URL is not set")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("base URL %q is malformed: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base URL %q is not an absolute http(s) URL", raw)
	}
	return nil
}
