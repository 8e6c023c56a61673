package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// MaxPageSize is the largest page the playlistItems endpoint will return.
const MaxPageSize int64 = 50

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Auth     AuthConfig     `toml:"auth"`
	Server   ServerConfig   `toml:"server"`
	YouTube  YouTubeConfig  `toml:"youtube"`
	Database DatabaseConfig `toml:"database"`
}

// AuthConfig locates the application secret and the persisted credential.
type AuthConfig struct {
	ClientSecretPath string `toml:"client_secret_path"`
	TokenPath        string `toml:"token_path"`
	RedirectURL      string `toml:"redirect_url"` // only used by the manual flow
	Flow             string `toml:"flow"`         // manual or loopback
}

// ServerConfig is the listen address of the loopback OAuth callback server.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// YouTubeConfig tunes playlist enumeration.
type YouTubeConfig struct {
	PageSize  int64   `toml:"page_size"`
	Workers   int     `toml:"workers"`
	RateLimit float64 `toml:"rate_limit"` // video lookups per second
}

// DatabaseConfig contains export history settings.
type DatabaseConfig struct {
	Enabled      bool   `toml:"enabled"`
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

const (
	FlowManual   = "manual"
	FlowLoopback = "loopback"
)

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values of [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingConfig, err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// Validate checks the auth flow and normalizes enumeration settings.
func (c *Config) Validate() error {
	switch c.Auth.Flow {
	case "":
		c.Auth.Flow = FlowManual
	case FlowManual, FlowLoopback:
	default:
		return fmt.Errorf("%w: unknown auth flow %q", ErrInvalidConfig, c.Auth.Flow)
	}

	if c.Auth.ClientSecretPath == "" || c.Auth.TokenPath == "" {
		return fmt.Errorf("%w: auth paths must not be empty", ErrInvalidConfig)
	}

	c.YouTube.PageSize = ClampPageSize(c.YouTube.PageSize)
	if c.YouTube.Workers <= 0 {
		c.YouTube.Workers = 1
	}
	return nil
}

// ServerAddr returns the host:port of the loopback callback server.
func (c *Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ClampPageSize bounds n to (0, [MaxPageSize]]; anything outside becomes the maximum.
func ClampPageSize(n int64) int64 {
	if n <= 0 || n > MaxPageSize {
		return MaxPageSize
	}
	return n
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
