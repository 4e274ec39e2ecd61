package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/kinestex/kinestex-go/internal/bridge"
	"github.com/kinestex/kinestex-go/internal/content"
	"github.com/kinestex/kinestex-go/internal/payload"
	"github.com/kinestex/kinestex-go/internal/validate"
	"gopkg.in/yaml.v3"
)

type Config struct {
	API       APIConfig       `yaml:"api"`
	Bridge    BridgeConfig    `yaml:"bridge"`
	DevServer DevServerConfig `yaml:"devserver"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
}

// APIConfig carries the tenant credentials and content API location.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Key     string `yaml:"key"`
	Company string `yaml:"company"`
	UserID  string `yaml:"user_id"`
	Lang    string `yaml:"lang"`
}

type BridgeConfig struct {
	BaseURL     string        `yaml:"base_url"`
	SettleDelay time.Duration `yaml:"settle_delay"`
}

type DevServerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Fixtures string `yaml:"fixtures"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// Addr returns the host:port the dev server listens on.
func (d DevServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", d.Host, d.Port)
}

// Load reads config from a YAML file, then applies environment variable overrides.
// An empty path skips the file. A .env file in the working directory is
// loaded into the environment first when present. Env vars use the prefix
// KINESTEX_:
//
//	KINESTEX_API_KEY, KINESTEX_COMPANY, KINESTEX_USER_ID,
//	KINESTEX_API_BASE_URL, KINESTEX_LANG,
//	KINESTEX_BRIDGE_BASE_URL, KINESTEX_SETTLE_DELAY,
//	KINESTEX_DEV_HOST, KINESTEX_DEV_PORT, KINESTEX_DEV_FIXTURES,
//	KINESTEX_TS_ENABLED, KINESTEX_TS_HOSTNAME, KINESTEX_TS_STATE_DIR
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: content.DefaultBaseURL,
			Lang:    content.DefaultLang,
		},
		Bridge: BridgeConfig{
			BaseURL:     payload.DefaultBaseURL,
			SettleDelay: bridge.DefaultSettleDelay,
		},
		DevServer: DevServerConfig{
			Host: "127.0.0.1",
			Port: 8090,
		},
		Tailscale: TailscaleConfig{
			Hostname: "kinestex-dev",
		},
	}
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("KINESTEX_API_KEY"); v != "" {
		cfg.API.Key = v
	}
	if v := os.Getenv("KINESTEX_COMPANY"); v != "" {
		cfg.API.Company = v
	}
	if v := os.Getenv("KINESTEX_USER_ID"); v != "" {
		cfg.API.UserID = v
	}
	if v := os.Getenv("KINESTEX_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("KINESTEX_LANG"); v != "" {
		cfg.API.Lang = v
	}
	if v := os.Getenv("KINESTEX_BRIDGE_BASE_URL"); v != "" {
		cfg.Bridge.BaseURL = v
	}
	if v := os.Getenv("KINESTEX_SETTLE_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("KINESTEX_SETTLE_DELAY: %w", err)
		}
		cfg.Bridge.SettleDelay = d
	}
	if v := os.Getenv("KINESTEX_DEV_HOST"); v != "" {
		cfg.DevServer.Host = v
	}
	if v := os.Getenv("KINESTEX_DEV_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.DevServer.Port = port
		}
	}
	if v := os.Getenv("KINESTEX_DEV_FIXTURES"); v != "" {
		cfg.DevServer.Fixtures = v
	}
	if v := os.Getenv("KINESTEX_TS_ENABLED"); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = on
		}
	}
	if v := os.Getenv("KINESTEX_TS_HOSTNAME"); v != "" {
		cfg.Tailscale.Hostname = v
	}
	if v := os.Getenv("KINESTEX_TS_STATE_DIR"); v != "" {
		cfg.Tailscale.StateDir = v
	}
	return nil
}

func (c *Config) validate() error {
	if c.API.Key == "" {
		return fmt.Errorf("api.key is required")
	}
	if c.API.Company == "" {
		return fmt.Errorf("api.company is required")
	}
	if err := validate.Fields(
		"api.key", c.API.Key,
		"api.company", c.API.Company,
		"api.user_id", c.API.UserID,
		"api.lang", c.API.Lang,
	); err != nil {
		return err
	}
	if c.Bridge.SettleDelay < 0 {
		return fmt.Errorf("bridge.settle_delay must not be negative")
	}
	if c.DevServer.Port <= 0 || c.DevServer.Port > 65535 {
		return fmt.Errorf("devserver.port %d out of range", c.DevServer.Port)
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	return nil
}
