// Package config loads fiszki settings from defaults, an optional YAML file
// and FISZKI_ environment variables.
package config

import (
	"time"

	"github.com/alexanderramin/fiszki/internal/api"
	"github.com/alexanderramin/fiszki/internal/session"
)

// Config holds all application configuration.
type Config struct {
	API      APIConfig      `mapstructure:"api" validate:"required"`
	Session  SessionConfig  `mapstructure:"session" validate:"required"`
	MiniGame MiniGameConfig `mapstructure:"minigame" validate:"required"`
	Log      LogConfig      `mapstructure:"log" validate:"required"`
	Offline  OfflineConfig  `mapstructure:"offline" validate:"required"`
}

type APIConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	Token   string `mapstructure:"token"`
	// TimeoutMs bounds each backend call; 0 disables the timeout.
	TimeoutMs       int `mapstructure:"timeout_ms" validate:"gte=0"`
	VerifyTimeoutMs int `mapstructure:"verify_timeout_ms" validate:"gte=0"`
}

type SessionConfig struct {
	Limit             int    `mapstructure:"limit" validate:"gt=0"`
	Level             string `mapstructure:"level" validate:"required,oneof=A1 A2 B1 B2 C1 C2"`
	CorrectDelayMs    int    `mapstructure:"correct_delay_ms" validate:"gte=0"`
	CompletionDelayMs int    `mapstructure:"completion_delay_ms" validate:"gte=0"`
}

type MiniGameConfig struct {
	Bonus      int `mapstructure:"bonus" validate:"gte=0"`
	MaxRows    int `mapstructure:"max_rows" validate:"gt=0"`
	WordLength int `mapstructure:"word_length" validate:"gt=0"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
	File  string `mapstructure:"file"`
}

type OfflineConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DBPath  string `mapstructure:"db_path" validate:"required"`
}

// APIClient converts the api section into transport settings.
func (c Config) APIClient() api.Config {
	cfg := api.DefaultConfig()
	cfg.BaseURL = c.API.BaseURL
	cfg.Token = c.API.Token
	cfg.Timeout = time.Duration(c.API.TimeoutMs) * time.Millisecond
	if c.API.VerifyTimeoutMs > 0 {
		cfg.Timeouts[api.CallVerify] = time.Duration(c.API.VerifyTimeoutMs) * time.Millisecond
	} else {
		delete(cfg.Timeouts, api.CallVerify)
	}
	return cfg
}

// SessionOptions converts the session and minigame sections into controller
// settings.
func (c Config) SessionOptions() session.Config {
	return session.Config{
		Limit:           c.Session.Limit,
		Level:           c.Session.Level,
		CorrectDelay:    time.Duration(c.Session.CorrectDelayMs) * time.Millisecond,
		CompletionDelay: time.Duration(c.Session.CompletionDelayMs) * time.Millisecond,
		MiniGameBonus:   c.MiniGame.Bonus,
		MaxGuessRows:    c.MiniGame.MaxRows,
		WordLength:      c.MiniGame.WordLength,
	}
}
