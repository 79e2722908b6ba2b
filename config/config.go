// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig  `envPrefix:"SERVER_"`
	Redis   RedisConfig   `envPrefix:"REDIS_"`
	Browser BrowserConfig `envPrefix:"BROWSER_"`
	Fetch   FetchConfig   `envPrefix:"FETCH_"`
	Logging LoggingConfig `envPrefix:"LOGGING_"`
}

type ServerConfig struct {
	Host string `env:"HOST" envDefault:"127.0.0.1"`
	Port int    `env:"PORT" envDefault:"8000"`
}

type RedisConfig struct {
	Addr string        `env:"ADDR" envDefault:"localhost:6379"`
	TTL  time.Duration `env:"TTL" envDefault:"1h"`
}

type BrowserConfig struct {
	PoolSize int           `env:"POOL_SIZE" envDefault:"4"`
	Timeout  time.Duration `env:"TIMEOUT" envDefault:"15s"`
}

type FetchConfig struct {
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

type LoggingConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"text"`
}

// Address returns the listen address.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load reads a .env file if one exists and parses the environment into a
// Config.
func Load() (Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return Config{}, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	var conf Config
	if err := env.Parse(&conf); err != nil {
		return Config{}, fmt.Errorf("error parsing configuration: %w", err)
	}

	if conf.Server.Port < 1 || conf.Server.Port > 65535 {
		return Config{}, fmt.Errorf("server port must be between 1 and 65535")
	}
	if conf.Browser.PoolSize < 1 {
		return Config{}, fmt.Errorf("browser pool size must be at least 1")
	}
	return conf, nil
}
