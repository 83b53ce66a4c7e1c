package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds everything the relay needs. It is loaded once at startup
// from environment variables and treated as immutable afterwards.
type Config struct {
	DiscordBotToken   string `koanf:"discord_bot_token" validate:"required"`
	AuthToken         string `koanf:"auth_token" validate:"required"`
	Port              int    `koanf:"port" validate:"required,gte=1,lte=65535"`
	ErrorChannelID    string `koanf:"error_channel_id" validate:"required"`
	FeedbackChannelID string `koanf:"feedback_channel_id" validate:"required"`
	// SendTimeout bounds a single outbound Discord send, in seconds.
	SendTimeout int `koanf:"send_timeout" validate:"required,gte=1"`
}

// Load reads the configuration from environment variables using koanf
// and validates it. Any missing or malformed value is an error; the
// process must not start on a partial configuration.
func Load() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("load env variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Port == 0 {
		cfg.Port = 3000
	}
	if cfg.SendTimeout == 0 {
		cfg.SendTimeout = 10
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}
