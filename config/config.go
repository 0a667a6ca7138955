package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/chinmay1088/arkgo/api"
	"github.com/chinmay1088/arkgo/chains/ark"
	"github.com/joho/godotenv"
)

// Network names
const (
	NetworkMainnet = "mainnet"
	NetworkDevnet  = "devnet"
)

// Environment overrides
const (
	EnvNodeURL = "ARKGO_NODE_URL"
	EnvNetwork = "ARKGO_NETWORK"
)

const (
	dirName  = ".arkgo"
	fileName = "config.toml"
)

// Preset holds the defaults of one network.
type Preset struct {
	NodeURL        string
	Nethash        string
	Version        string
	Port           int
	AddressVersion byte
}

var presets = map[string]Preset{
	NetworkMainnet: {
		NodeURL:        "https://node1.arknet.cloud/api/",
		Nethash:        api.MainnetNethash,
		Version:        "1.0.1",
		Port:           4001,
		AddressVersion: ark.MainnetVersion,
	},
	NetworkDevnet: {
		NodeURL:        "http://167.114.29.55:4002/api/",
		Nethash:        api.DevnetNethash,
		Version:        "1.0.1",
		Port:           4002,
		AddressVersion: ark.DevnetVersion,
	},
}

// PresetFor returns the defaults of network.
func PresetFor(network string) (Preset, error) {
	p, ok := presets[network]
	if !ok {
		return Preset{}, fmt.Errorf("invalid network: %s. Use '%s' or '%s'", network, NetworkMainnet, NetworkDevnet)
	}
	return p, nil
}

// Config is the content of ~/.arkgo/config.toml. Empty fields fall back to
// the network preset.
type Config struct {
	Network        string `toml:"network"`
	NodeURL        string `toml:"node_url"`
	Nethash        string `toml:"nethash"`
	Version        string `toml:"version"`
	Port           int    `toml:"port"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Default returns the mainnet configuration.
func Default() *Config {
	return &Config{
		Network:        NetworkMainnet,
		TimeoutSeconds: int(api.DefaultTimeout / time.Second),
	}
}

// Dir returns ~/.arkgo.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, dirName), nil
}

// Path returns ~/.arkgo/config.toml.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads the config file, then a .env file in the working directory if
// any, then the environment overrides.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	return LoadFile(path)
}

// LoadFile reads the config at path and applies the environment overrides.
// A missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if v := os.Getenv(EnvNetwork); v != "" {
		cfg.Network = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv(EnvNodeURL); v != "" {
		cfg.NodeURL = strings.TrimSpace(v)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if _, err := PresetFor(c.Network); err != nil {
		return err
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative")
	}
	return nil
}

func (c *Config) preset() Preset {
	p, _ := PresetFor(c.Network)
	return p
}

// ResolvedNodeURL returns the node URL, falling back to the network preset.
func (c *Config) ResolvedNodeURL() string {
	if c.NodeURL != "" {
		return c.NodeURL
	}
	return c.preset().NodeURL
}

// Headers returns the nethash, version and port to send to nodes.
func (c *Config) Headers() (string, string, int) {
	p := c.preset()
	nethash, version, port := p.Nethash, p.Version, p.Port
	if c.Nethash != "" {
		nethash = c.Nethash
	}
	if c.Version != "" {
		version = c.Version
	}
	if c.Port != 0 {
		port = c.Port
	}
	return nethash, version, port
}

// AddressVersion returns the address version byte of the configured network.
func (c *Config) AddressVersion() byte {
	return c.preset().AddressVersion
}

func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds == 0 {
		return api.DefaultTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c *Config) IsDevnet() bool {
	return c.Network == NetworkDevnet
}
