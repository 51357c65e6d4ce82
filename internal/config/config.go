// Package config loads service settings from configs/config.yml and the
// environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "BATSIM"

// Config is the full service configuration.
type Config struct {
	Port      string `mapstructure:"port"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	DB        DB     `mapstructure:"db"`
	HTTP      HTTP   `mapstructure:"http"`
	Auth      Auth   `mapstructure:"auth"`
	Solver    Solver `mapstructure:"solver"`
}

type DB struct {
	Path string `mapstructure:"path"`
}

type HTTP struct {
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	// WriteTimeout of zero leaves long solves uninterrupted.
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	// LegacyErrorStatus answers every handled failure with 200 and an error body.
	LegacyErrorStatus bool     `mapstructure:"legacy_error_status"`
	AllowedOrigins    []string `mapstructure:"allowed_origins"`
}

type Auth struct {
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

type Solver struct {
	Command       string        `mapstructure:"command"`
	Args          []string      `mapstructure:"args"`
	Env           []string      `mapstructure:"env"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxConcurrent int64         `mapstructure:"max_concurrent"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8000")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("db.path", "batsim.db")

	v.SetDefault("http.read_header_timeout", 10*time.Second)
	v.SetDefault("http.write_timeout", time.Duration(0))
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("http.legacy_error_status", false)
	v.SetDefault("http.allowed_origins", []string{"*"})

	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", time.Hour)

	v.SetDefault("solver.command", "python3")
	v.SetDefault("solver.args", []string{"scripts/pybamm_solve.py"})
	v.SetDefault("solver.env", []string{})
	v.SetDefault("solver.timeout", time.Duration(0))
	v.SetDefault("solver.max_concurrent", 0)
}

// Load reads config.yml from the first of dirs that has one (default
// "configs"), then applies BATSIM_* environment overrides. A bare PORT
// variable, as set by hosting platforms, overrides the port.
// A missing config file is not an error.
func Load(dirs ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if len(dirs) == 0 {
		dirs = []string{"configs"}
	}
	for _, d := range dirs {
		v.AddConfigPath(d)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("port", envPrefix+"_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("bind port env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	if c.Solver.MaxConcurrent < 0 {
		return fmt.Errorf("solver.max_concurrent must be >= 0, got %d", c.Solver.MaxConcurrent)
	}
	if c.Solver.Timeout < 0 {
		return fmt.Errorf("solver.timeout must be >= 0, got %s", c.Solver.Timeout)
	}
	for _, o := range c.HTTP.AllowedOrigins {
		if o != "*" && !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return fmt.Errorf("http.allowed_origins: %q must be \"*\" or start with http:// or https://", o)
		}
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive, got %s", c.Auth.TokenTTL)
	}
	return nil
}
