// Package config loads the bot's settings from an optional YAML file and the
// environment. Environment variables win over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/go-sphere/telegram-vision-bot/dispatch"
	"github.com/go-sphere/telegram-vision-bot/telegram"
	"github.com/go-sphere/telegram-vision-bot/vision"
)

type Config struct {
	Telegram telegram.Config `yaml:"telegram" envPrefix:"BOT_"`
	Vision   vision.Config   `yaml:"vision" envPrefix:"COMPUTER_VISION_"`
	Server   ServerConfig    `yaml:"server" envPrefix:"SERVER_"`
	Dispatch DispatchConfig  `yaml:"dispatch" envPrefix:"DISPATCH_"`
	Logging  LoggingConfig   `yaml:"logging" envPrefix:"LOG_"`
}

type ServerConfig struct {
	Listen          string        `yaml:"listen" env:"LISTEN"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

type DispatchConfig struct {
	TypingDelay time.Duration `yaml:"typing_delay" env:"TYPING_DELAY"`
}

type LoggingConfig struct {
	Level     string `yaml:"level" env:"LEVEL"`
	Format    string `yaml:"format" env:"FORMAT"`
	AddSource bool   `yaml:"add_source" env:"ADD_SOURCE"`
}

// Default returns the settings used when neither file nor environment says otherwise.
func Default() *Config {
	return &Config{
		Telegram: telegram.Config{
			RateLimit: telegram.DefaultRateLimit,
		},
		Vision: vision.Config{
			Timeout: 30 * time.Second,
		},
		Server: ServerConfig{
			Listen:          ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Dispatch: DispatchConfig{
			TypingDelay: dispatch.DefaultTypingDelay,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path, if given, and then applies the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Validate reports every missing setting the server needs.
func (c *Config) Validate() error {
	var errs []error
	if c.Telegram.Token == "" {
		errs = append(errs, errors.New("telegram token is required (BOT_TOKEN)"))
	}
	if err := c.Vision.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Server.Listen == "" {
		errs = append(errs, errors.New("server listen address is required (SERVER_LISTEN)"))
	}
	return errors.Join(errs...)
}
