package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	SMTP      SMTPConfig      `yaml:"smtp"`
	LLM       LLMConfig       `yaml:"llm"`
	Recap     RecapConfig     `yaml:"recap"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// SMTPConfig configures the recap mailer. Leaving host or from empty disables
// mail delivery: sends become silent no-ops.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// LLMConfig configures the narration backend. Any OpenAI-compatible
// chat-completions endpoint works.
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// RecapConfig configures the weekly recap batch job.
type RecapConfig struct {
	// Schedule is a cron spec (with seconds field), evaluated in Timezone.
	Schedule string `yaml:"schedule"`
	Timezone string `yaml:"timezone"`
	// StateDir holds the sqlite ledger of already-sent recaps.
	StateDir string `yaml:"state_dir"`
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Load reads config from a YAML file, then applies environment variable
// overrides. Env vars use the prefix REPSCOPE_ and underscore-separated paths:
//
//	REPSCOPE_SERVER_HOST, REPSCOPE_SERVER_PORT,
//	REPSCOPE_DB_HOST, REPSCOPE_DB_PORT, REPSCOPE_DB_NAME,
//	REPSCOPE_DB_USER, REPSCOPE_DB_PASSWORD, REPSCOPE_DB_SSLMODE,
//	REPSCOPE_AUTH_API_KEY,
//	REPSCOPE_SMTP_HOST, REPSCOPE_SMTP_PORT, REPSCOPE_SMTP_USER,
//	REPSCOPE_SMTP_PASSWORD, REPSCOPE_SMTP_FROM,
//	REPSCOPE_LLM_BASE_URL, REPSCOPE_LLM_API_KEY, REPSCOPE_LLM_MODEL,
//	REPSCOPE_RECAP_SCHEDULE, REPSCOPE_RECAP_TIMEZONE
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("REPSCOPE_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("REPSCOPE_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("REPSCOPE_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("REPSCOPE_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("REPSCOPE_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("REPSCOPE_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("REPSCOPE_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("REPSCOPE_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("REPSCOPE_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("REPSCOPE_SMTP_HOST"); v != "" {
		cfg.SMTP.Host = v
	}
	if v := os.Getenv("REPSCOPE_SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.SMTP.Port = port
		}
	}
	if v := os.Getenv("REPSCOPE_SMTP_USER"); v != "" {
		cfg.SMTP.User = v
	}
	if v := os.Getenv("REPSCOPE_SMTP_PASSWORD"); v != "" {
		cfg.SMTP.Password = v
	}
	if v := os.Getenv("REPSCOPE_SMTP_FROM"); v != "" {
		cfg.SMTP.From = v
	}
	if v := os.Getenv("REPSCOPE_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("REPSCOPE_LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("REPSCOPE_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("REPSCOPE_RECAP_SCHEDULE"); v != "" {
		cfg.Recap.Schedule = v
	}
	if v := os.Getenv("REPSCOPE_RECAP_TIMEZONE"); v != "" {
		cfg.Recap.Timezone = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = 587
	}
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-4o-mini"
	}
	if cfg.Recap.Schedule == "" {
		// Sunday 19:00 local time.
		cfg.Recap.Schedule = "0 0 19 * * 0"
	}
	if cfg.Recap.Timezone == "" {
		cfg.Recap.Timezone = "UTC"
	}
	if cfg.Recap.StateDir == "" {
		cfg.Recap.StateDir = "."
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	return nil
}
