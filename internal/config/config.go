package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/blacktop/lipost/internal/linkedin"
	"github.com/kelseyhightower/envconfig"
)

const (
	envPrefix = "LIPOST"

	EnvAccessToken = "LIPOST_ACCESS_TOKEN"
	EnvPersonID    = "LIPOST_PERSON_ID"
	EnvBaseURL     = "LIPOST_BASE_URL"
	EnvTimeout     = "LIPOST_TIMEOUT"
	EnvDebug       = "LIPOST_DEBUG"
)

// Config holds the settings read from LIPOST_* environment variables.
// Keys are derived with split_words. An envconfig tag would also match the
// unprefixed name (ACCESS_TOKEN, DEBUG, ...).
type Config struct {
	AccessToken string        `split_words:"true"`
	PersonID    string        `split_words:"true"`
	BaseURL     string        `split_words:"true" default:"https://api.linkedin.com/v2"`
	Timeout     time.Duration `split_words:"true" default:"30s"`
	Debug       bool          `split_words:"true" default:"false"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.AccessToken = strings.TrimSpace(cfg.AccessToken)
	cfg.PersonID = strings.TrimSpace(cfg.PersonID)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	return &cfg, nil
}

// Require reports every missing credential at once. The member id is only
// needed by commands that act on behalf of a member.
func (c *Config) Require(person bool) error {
	var missing []string
	if c.AccessToken == "" {
		missing = append(missing, EnvAccessToken)
	}
	if person && c.PersonID == "" {
		missing = append(missing, EnvPersonID)
	}
	if len(missing) > 0 {
		return linkedin.MissingEnvError{Provider: "linkedin", Variables: missing}
	}
	return nil
}
