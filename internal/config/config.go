package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Stack sources.
const (
	SourcePortainer = "portainer"
	SourceDocker    = "docker"
)

// ConfigFileEnv names the environment variable pointing at an optional YAML file.
const ConfigFileEnv = "PORTAL_CONFIG"

// Config holds all application configuration
type Config struct {
	Addr         string        `koanf:"addr"`                  // HTTP listen address
	PortainerURL string        `koanf:"portainer_url"`         // Portainer base URL
	APIToken     string        `koanf:"portainer_api_token"`   // Portainer API key, empty = mock mode
	EndpointID   int           `koanf:"portainer_endpoint_id"` // Portainer endpoint, not sent upstream
	Timeout      time.Duration `koanf:"timeout"`               // upstream request timeout
	LinkHost     string        `koanf:"link_host"`             // host used in card launch URLs
	Source       string        `koanf:"source"`                // portainer or docker
	DockerSocket string        `koanf:"docker_socket"`         // used when Source is docker
	LogLevel     string        `koanf:"log_level"`             // debug, info, warn, error
	LogFormat    string        `koanf:"log_format"`            // text or json
	Metrics      bool          `koanf:"metrics"`               // expose /metrics
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Addr:         "0.0.0.0:8600",
		PortainerURL: "http://localhost:9000",
		EndpointID:   1,
		Timeout:      10 * time.Second,
		LinkHost:     "localhost",
		Source:       SourcePortainer,
		DockerSocket: "/var/run/docker.sock",
		LogLevel:     "info",
		LogFormat:    "text",
		Metrics:      true,
	}
}

// Load builds a Config by layering defaults, an optional YAML file and
// environment variables (low -> high precedence).
//
// path overrides PORTAL_CONFIG when non-empty. Portainer settings keep their
// historical names (PORTAINER_URL, PORTAINER_API_TOKEN, PORTAINER_ENDPOINT_ID);
// everything else is read from PORTAL_*.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(ConfigFileEnv)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrLoadConfig, path, err)
		}
	}

	// PORTAINER_URL -> portainer_url
	portainer := env.ProviderWithValue("PORTAINER_", ".", func(key, value string) (string, interface{}) {
		return envKey(strings.ToLower(key), value)
	})
	if err := k.Load(portainer, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// PORTAL_LINK_HOST -> link_host
	portal := env.ProviderWithValue("PORTAL_", ".", func(key, value string) (string, interface{}) {
		return envKey(strings.TrimPrefix(strings.ToLower(key), "portal_"), value)
	})
	if err := k.Load(portal, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}
	cfg.PortainerURL = strings.TrimRight(cfg.PortainerURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values after loading.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidConfig, c.Timeout)
	}
	if c.EndpointID <= 0 {
		return fmt.Errorf("%w: portainer_endpoint_id must be positive, got %d", ErrInvalidConfig, c.EndpointID)
	}
	switch c.Source {
	case SourcePortainer, SourceDocker:
	default:
		return fmt.Errorf("%w: unknown source %q", ErrInvalidConfig, c.Source)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	if c.LinkHost == "" {
		return fmt.Errorf("%w: link_host must not be empty", ErrInvalidConfig)
	}
	return nil
}

// MockMode reports whether the portal serves the built-in demo stacks
// instead of calling Portainer.
func (c *Config) MockMode() bool {
	return c.Source == SourcePortainer && c.APIToken == ""
}

// envKey drops empty variables so they fall back to defaults.
func envKey(key, value string) (string, interface{}) {
	if value == "" {
		return "", nil
	}
	return key, value
}
