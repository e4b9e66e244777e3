// Package config persists CLI settings in a JSON config dir.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	defaultCurrency     = "usd"
	defaultInterval     = 30
	defaultConnector    = "injected"
	defaultCallbackAddr = "127.0.0.1:8421"

	configFile = "config.json"
)

// Config holds all walletkit CLI configuration.
type Config struct {
	DefaultWallet  string            `json:"default_wallet"`
	Connector      string            `json:"connector"`       // preferred connector id
	PriceCurrency  string            `json:"price_currency"`
	WatchInterval  int               `json:"watch_interval"`  // seconds
	OAuthClientIDs map[string]string `json:"oauth_client_ids"` // provider name -> client id
	CallbackAddr   string            `json:"callback_addr"`   // oauth redirect listener

	// internal: config dir path used for Save()
	configDir string
}

// Load reads config from dir (or creates defaults). dir defaults to ~/.walletkit.
func Load(dir string) (*Config, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not determine home dir: %w", err)
		}
		dir = filepath.Join(home, ".walletkit")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create config dir: %w", err)
	}

	cfg := defaults(dir)

	path := filepath.Join(dir, configFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.configDir = dir
	cfg.fillZero()

	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.configDir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.configDir, configFile), data, 0o600)
}

// Dir returns the config directory.
func (c *Config) Dir() string {
	return c.configDir
}

// SetClientID records an OAuth client id for a provider.
func (c *Config) SetClientID(provider, clientID string) {
	if c.OAuthClientIDs == nil {
		c.OAuthClientIDs = make(map[string]string)
	}
	c.OAuthClientIDs[provider] = clientID
}

// --- helpers ---

func defaults(dir string) *Config {
	return &Config{
		Connector:      defaultConnector,
		PriceCurrency:  defaultCurrency,
		WatchInterval:  defaultInterval,
		OAuthClientIDs: make(map[string]string),
		CallbackAddr:   defaultCallbackAddr,
		configDir:      dir,
	}
}

// fillZero backfills fields a hand-edited config file left empty.
func (c *Config) fillZero() {
	if c.Connector == "" {
		c.Connector = defaultConnector
	}
	if c.PriceCurrency == "" {
		c.PriceCurrency = defaultCurrency
	}
	if c.WatchInterval <= 0 {
		c.WatchInterval = defaultInterval
	}
	if c.OAuthClientIDs == nil {
		c.OAuthClientIDs = make(map[string]string)
	}
	if c.CallbackAddr == "" {
		c.CallbackAddr = defaultCallbackAddr
	}
}
