package server

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every environment variable the server reads.
const EnvPrefix = "YEARPAPER_"

// Config holds the HTTP server settings.
type Config struct {
	Addr           string        `env:"ADDR" envDefault:":8080"`
	TimezoneHeader string        `env:"TIMEZONE_HEADER" envDefault:"X-Vercel-IP-Timezone"`
	MaxDimension   int           `env:"MAX_DIMENSION" envDefault:"4096"`
	ReadTimeout    time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout   time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	LogJSON        bool          `env:"LOG_JSON"`
	FontRegular    string        `env:"FONT_REGULAR"`
	FontBold       string        `env:"FONT_BOLD"`
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return errors.New("no listen address specified")
	}
	if c.MaxDimension <= 0 {
		return fmt.Errorf("max dimension must be positive, got %d", c.MaxDimension)
	}
	if c.ReadTimeout < 0 || c.WriteTimeout < 0 {
		return errors.New("timeouts cannot be negative")
	}
	return nil
}

// LoadEnvFiles loads variables from .env style files that exist, leaving
// variables already set in the environment untouched.
func LoadEnvFiles(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// LoadConfig reads the server configuration from the process environment.
func LoadConfig() (Config, error) {
	return parseConfig(env.Options{Prefix: EnvPrefix})
}

// ParseConfig reads the configuration from an explicit variable map.
func ParseConfig(environ map[string]string) (Config, error) {
	return parseConfig(env.Options{Prefix: EnvPrefix, Environment: environ})
}

func parseConfig(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid server configuration: %w", err)
	}
	return cfg, nil
}
