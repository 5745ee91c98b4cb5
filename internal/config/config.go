package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// FreelancerConfig holds authentication and endpoint configuration for the
// Freelancer.com API.
type FreelancerConfig struct {
	ClientID     string `toml:"client_id" env:"FREELANCER_CLIENT_ID"`
	ClientSecret string `toml:"client_secret" env:"FREELANCER_CLIENT_SECRET"`
	RedirectURI  string `toml:"redirect_uri" env:"FREELANCER_REDIRECT_URI"`
	AccessToken  string `toml:"access_token" env:"FREELANCER_ACCESS_TOKEN"`
	URL          string `toml:"url" env:"FLN_URL"`
}

// MetaConfig holds configuration for the Meta Ads gateway.
type MetaConfig struct {
	APIToken    string `toml:"api_token" env:"PIPEBOARD_API_TOKEN"`
	AdAccountID string `toml:"ad_account_id" env:"META_AD_ACCOUNT_ID"`
	PageID      string `toml:"page_id" env:"META_PAGE_ID"`
	BusinessID  string `toml:"business_id" env:"META_BUSINESS_ID"`
	CTAURL      string `toml:"cta_url" env:"AD_CTA_URL"`
}

// Config holds all gigdeck configuration.
type Config struct {
	Freelancer  FreelancerConfig `toml:"freelancer"`
	Meta        MetaConfig       `toml:"meta"`
	SearchLimit int              `toml:"search_limit"`
}

const defaultSearchLimit = 20

// SearchLimitOrDefault returns SearchLimit if set, otherwise defaultSearchLimit.
func (c Config) SearchLimitOrDefault() int {
	if c.SearchLimit > 0 {
		return c.SearchLimit
	}
	return defaultSearchLimit
}

// LoadFrom reads configuration from the given TOML file path.
// If the file does not exist, it returns an empty config without error.
// A .env file in the working directory is loaded first if present, then
// environment variables always take precedence over file values.
func LoadFrom(path string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("reading environment: %w", err)
	}
	return cfg, nil
}

// DefaultConfigPath returns the default path for the gigdeck config file.
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return home + "/.config/gigdeck/config.toml"
}

// Save writes cfg to the given TOML file path, creating parent directories as needed.
// Existing file contents are overwritten. Permissions on the written file are 0600.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("opening config file: %w", err)
	}
	if encErr := toml.NewEncoder(f).Encode(cfg); encErr != nil {
		f.Close()
		return encErr
	}
	return f.Close()
}
