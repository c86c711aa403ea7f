// Package config loads faxage-cli account settings from a TOML file and
// the environment.
//
// Resolution order, later wins:
//
//  1. defaults (production API host, 60s timeout)
//  2. ~/.config/faxage/config.toml, or the path given to Load
//  3. FAXAGE_USERNAME, FAXAGE_COMPANY, FAXAGE_PASSWORD, FAXAGE_BASE_URL, FAXAGE_TIMEOUT
//
// A missing config file is not an error. Example:
//
//	username = "jdoe"
//	company = "12345"
//	password = "secret"
//	base_url = "https://api.faxage.com"
//	timeout = "30s"
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the account and endpoint settings for the CLI.
type Config struct {
	Username string
	Company  string
	Password string
	BaseURL  string
	Timeout  time.Duration
}

const (
	defaultConfigPath = "~/.config/faxage/config.toml"
	defaultBaseURL    = "https://api.faxage.com"
	defaultTimeout    = 60 * time.Second
)

// Load reads the config file at path (or the default location) and applies
// environment overrides.
func Load(path string) (Config, error) {
	cfg := Config{BaseURL: defaultBaseURL, Timeout: defaultTimeout}

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}
	if err := loadFile(&cfg, resolved); err != nil {
		return Config{}, err
	}
	if err := loadEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Username string `toml:"username"`
		Company  string `toml:"company"`
		Password string `toml:"password"`
		BaseURL  string `toml:"base_url"`
		Timeout  string `toml:"timeout"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	return apply(cfg, raw.Username, raw.Company, raw.Password, raw.BaseURL, raw.Timeout)
}

func loadEnv(cfg *Config, lookup func(string) (string, bool)) error {
	get := func(key string) string {
		v, _ := lookup(key)
		return v
	}
	return apply(cfg,
		get("FAXAGE_USERNAME"),
		get("FAXAGE_COMPANY"),
		get("FAXAGE_PASSWORD"),
		get("FAXAGE_BASE_URL"),
		get("FAXAGE_TIMEOUT"),
	)
}

// apply overwrites cfg with every non-empty value.
func apply(cfg *Config, username, company, password, baseURL, timeout string) error {
	if v := strings.TrimSpace(username); v != "" {
		cfg.Username = v
	}
	if v := strings.TrimSpace(company); v != "" {
		cfg.Company = v
	}
	// passwords are taken verbatim
	if password != "" {
		cfg.Password = password
	}
	if v := strings.TrimSpace(baseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(timeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse timeout %q: %w", v, err)
		}
		cfg.Timeout = d
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultConfigPath
	}
	trimmed := strings.TrimSpace(path)
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
