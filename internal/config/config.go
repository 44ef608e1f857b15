// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"

	"gopkg.in/yaml.v2"
)

// DefaultFile is read when no config path is given. Its absence is not an error.
const DefaultFile = "config.yaml"

type Config struct {
	Dictionary struct {
		Path string `yaml:"path"`
		URL  string `yaml:"url"`
	} `yaml:"dictionary"`

	RateLimit struct {
		RequestsPerSecond int `yaml:"requestsPerSecond"`
		Burst             int `yaml:"burst"`
	} `yaml:"rateLimit"`

	HTTPClient struct {
		Timeout    int    `yaml:"timeout"`
		MaxRetries int    `yaml:"maxRetries"`
		UserAgent  string `yaml:"userAgent"`
	} `yaml:"httpClient"`

	Output struct {
		Color           bool `yaml:"color"`
		ShowStatus      bool `yaml:"showStatus"`
		TopUnknownCount int  `yaml:"topUnknownCount"`
	} `yaml:"output"`

	TextProcessing struct {
		MinWordLength int `yaml:"minWordLength"`
	} `yaml:"textProcessing"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	var cfg Config
	cfg.Output.Color = true
	cfg.Output.ShowStatus = true
	cfg.Output.TopUnknownCount = 20
	setDefaults(&cfg)
	return &cfg
}

// Load reads and parses the configuration. An empty path means DefaultFile,
// which may be missing.
func Load(path string) (*Config, error) {
	optional := path == ""
	if optional {
		path = DefaultFile
	}

	f, err := os.Open(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("error opening config file: %w", err)
	}
	defer f.Close()

	cfg := Default()
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}

	// Set default values
	setDefaults(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults sets default values for configuration
func setDefaults(cfg *Config) {
	if cfg.Dictionary.Path == "" && cfg.Dictionary.URL == "" {
		cfg.Dictionary.Path = "dictionary.txt"
	}
	if cfg.RateLimit.RequestsPerSecond == 0 {
		cfg.RateLimit.RequestsPerSecond = 5
	}
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = 10
	}
	if cfg.HTTPClient.Timeout == 0 {
		cfg.HTTPClient.Timeout = 30
	}
	if cfg.HTTPClient.MaxRetries == 0 {
		cfg.HTTPClient.MaxRetries = 3
	}
	if cfg.TextProcessing.MinWordLength == 0 {
		cfg.TextProcessing.MinWordLength = 1
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Dictionary.Path == "" && c.Dictionary.URL == "" {
		return fmt.Errorf("dictionary path or url is required")
	}
	if c.Dictionary.URL != "" {
		u, err := url.Parse(c.Dictionary.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("dictionary url must be an http(s) URL: %q", c.Dictionary.URL)
		}
	}
	if c.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("requestsPerSecond must be positive")
	}
	if c.RateLimit.Burst <= 0 {
		return fmt.Errorf("burst must be positive")
	}
	if c.HTTPClient.MaxRetries < 0 {
		return fmt.Errorf("maxRetries must not be negative")
	}
	if c.HTTPClient.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if c.TextProcessing.MinWordLength < 0 {
		return fmt.Errorf("minWordLength must not be negative")
	}
	if c.Output.TopUnknownCount < 0 {
		return fmt.Errorf("topUnknownCount must not be negative")
	}
	return nil
}
