package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Config holds everything the bot reads at startup. All fields have working
// defaults so an empty file (or no file) still boots a text-only bot.
type Config struct {
	HTTP struct {
		TimeoutSeconds int `yaml:"timeoutSeconds"`
	} `yaml:"http"`
	Gemini struct {
		APIKey string `yaml:"apiKey"`
		Model  string `yaml:"model"`
	} `yaml:"gemini"`
	Chart struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"chart"`
}

const defaultTimeoutSeconds = 10

func Default() *Config {
	cfg := &Config{}
	cfg.HTTP.TimeoutSeconds = defaultTimeoutSeconds
	cfg.Gemini.Model = "gemini-2.5-flash"
	cfg.Chart.Enabled = true
	return cfg
}

// Load reads a YAML config file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(file, cfg); err != nil {
		return nil, err
	}
	if cfg.HTTP.TimeoutSeconds <= 0 {
		cfg.HTTP.TimeoutSeconds = defaultTimeoutSeconds
	}
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "gemini-2.5-flash"
	}
	return cfg, nil
}

// HTTPTimeout returns the provider call timeout as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}
