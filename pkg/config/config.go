package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	DefaultNewRelicBaseURL = "https://api.newrelic.com/v2"
	DefaultSlackAPIURL     = "https://slack.com/api/"
	DefaultTimeout         = 30 * time.Second
	DefaultHTTPAddr        = "localhost:8080"
)

// Config holds the settings shared by both servers
type Config struct {
	LogLevel string `yaml:"log_level" envconfig:"MCP_LOG_LEVEL"`
	HTTPAddr string `yaml:"http_addr" envconfig:"MCP_HTTP_ADDR"`
	// Timezone used when rendering Unix timestamps ("Local" or an IANA name)
	Timezone string `yaml:"timezone" envconfig:"MCP_TIMEZONE"`

	NewRelic NewRelic `yaml:"newrelic" ignored:"true"`
	Slack    Slack    `yaml:"slack" ignored:"true"`
}

// NewRelic configures the monitoring adapter
type NewRelic struct {
	APIKey  string        `yaml:"-" envconfig:"NEWRELIC_API_KEY"`
	BaseURL string        `yaml:"base_url" envconfig:"NEWRELIC_BASE_URL"`
	Timeout time.Duration `yaml:"timeout" envconfig:"NEWRELIC_TIMEOUT"`
}

// Slack configures the messaging adapter
type Slack struct {
	BotToken string        `yaml:"-" envconfig:"SLACK_BOT_TOKEN"`
	APIURL   string        `yaml:"api_url" envconfig:"SLACK_API_URL"`
	Timeout  time.Duration `yaml:"timeout" envconfig:"SLACK_TIMEOUT"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		LogLevel: "info",
		HTTPAddr: DefaultHTTPAddr,
		Timezone: "Local",
		NewRelic: NewRelic{
			BaseURL: DefaultNewRelicBaseURL,
			Timeout: DefaultTimeout,
		},
		Slack: Slack{
			APIURL:  DefaultSlackAPIURL,
			Timeout: DefaultTimeout,
		},
	}
}

// Load builds the configuration: defaults, then the optional YAML file, then the environment.
// Secrets are only ever taken from the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// envconfig leaves fields untouched when the variable is unset.
	// Sections are processed on their own so keys stay unprefixed.
	for _, section := range []interface{}{cfg, &cfg.NewRelic, &cfg.Slack} {
		if err := envconfig.Process("", section); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	return cfg, nil
}

// Validate ensures the configuration is usable
func (c *Config) Validate() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	if c.NewRelic.Timeout <= 0 {
		return fmt.Errorf("invalid newrelic timeout: %s", c.NewRelic.Timeout)
	}
	if c.Slack.Timeout <= 0 {
		return fmt.Errorf("invalid slack timeout: %s", c.Slack.Timeout)
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	return nil
}

// Location resolves the configured timezone
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
