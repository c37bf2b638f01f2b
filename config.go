package skyflow

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables that override FileConfig values.
const (
	EnvVaultID  = "SKYFLOW_VAULT_ID"
	EnvVaultURL = "SKYFLOW_VAULT_URL"
	EnvLogLevel = "SKYFLOW_LOG_LEVEL"
)

// FileConfig is the on-disk client configuration:
//
//	vault_id: a1b2c3
//	vault_url: https://acme.vault.skyflowapis.com
//	timeout: 45s
//	max_concurrency: 8
//	log_level: warn
//
// Tokens are never read from files; a TokenProvider is supplied in code.
type FileConfig struct {
	VaultID        string `yaml:"vault_id"`
	VaultURL       string `yaml:"vault_url"`
	Timeout        string `yaml:"timeout"`
	MaxConcurrency int    `yaml:"max_concurrency"`
	LogLevel       string `yaml:"log_level"`
}

// LoadConfig reads a YAML configuration file and applies the SKYFLOW_*
// environment overrides. An empty path reads the environment only.
func LoadConfig(path string) (*FileConfig, error) {
	cfg := &FileConfig{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, invalidInput(MsgInvalidConfigFile, err, path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, invalidInput(MsgInvalidConfigFile, err, path)
		}
	}

	if v := os.Getenv(EnvVaultID); v != "" {
		cfg.VaultID = v
	}
	if v := os.Getenv(EnvVaultURL); v != "" {
		cfg.VaultURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}

	if cfg.Timeout != "" {
		if _, err := time.ParseDuration(cfg.Timeout); err != nil {
			return nil, invalidInput(MsgInvalidConfigFile, err, path)
		}
	}
	if cfg.LogLevel != "" {
		if _, ok := ParseLogLevel(cfg.LogLevel); !ok {
			return nil, invalidInput(MsgInvalidConfigFile, nil, path)
		}
	}
	return cfg, nil
}

// Configuration returns the client configuration described by the file.
func (f *FileConfig) Configuration(provider TokenProvider) Configuration {
	return Configuration{
		VaultID:       f.VaultID,
		VaultURL:      f.VaultURL,
		TokenProvider: provider,
	}
}

// Options returns the client options described by the file. LoadConfig
// has already validated every value.
func (f *FileConfig) Options() []Option {
	var opts []Option
	if f.Timeout != "" {
		if d, err := time.ParseDuration(f.Timeout); err == nil {
			opts = append(opts, WithTimeout(d))
		}
	}
	if f.MaxConcurrency > 0 {
		opts = append(opts, WithMaxConcurrency(f.MaxConcurrency))
	}
	return opts
}

// NewClientFromFile loads path with LoadConfig, applies its log level to
// the default logger and creates a Client. Extra options are applied after
// the file's.
func NewClientFromFile(path string, provider TokenProvider, opts ...Option) (*Client, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if level, ok := ParseLogLevel(cfg.LogLevel); ok && cfg.LogLevel != "" {
		SetLogLevel(level)
	}
	return NewClient(cfg.Configuration(provider), append(cfg.Options(), opts...)...)
}
