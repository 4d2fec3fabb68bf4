package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. FISZKI_API_BASE_URL.
const EnvPrefix = "FISZKI"

// keys lists every setting so that environment variables bind even when no
// config file mentions them.
var keys = []string{
	"api.base_url",
	"api.token",
	"api.timeout_ms",
	"api.verify_timeout_ms",
	"session.limit",
	"session.level",
	"session.correct_delay_ms",
	"session.completion_delay_ms",
	"minigame.bonus",
	"minigame.max_rows",
	"minigame.word_length",
	"log.level",
	"log.file",
	"offline.enabled",
	"offline.db_path",
}

// HomeDir returns the directory holding fiszki's default config, log and
// offline database.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fiszki"
	}
	return filepath.Join(home, ".fiszki")
}

func setDefaults(v *viper.Viper) {
	dir := HomeDir()
	v.SetDefault("api.base_url", "http://localhost:8000")
	v.SetDefault("api.token", "")
	v.SetDefault("api.timeout_ms", 20000)
	v.SetDefault("api.verify_timeout_ms", 45000)
	v.SetDefault("session.limit", 50)
	v.SetDefault("session.level", "A1")
	v.SetDefault("session.correct_delay_ms", 1200)
	v.SetDefault("session.completion_delay_ms", 1500)
	v.SetDefault("minigame.bonus", 100)
	v.SetDefault("minigame.max_rows", 6)
	v.SetDefault("minigame.word_length", 5)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(dir, "fiszki.log"))
	v.SetDefault("offline.enabled", false)
	v.SetDefault("offline.db_path", filepath.Join(dir, "fiszki.db"))
}

// Load reads configuration. An explicit path must exist; with an empty path
// ~/.fiszki/config.yaml is used when present. Environment variables take
// precedence over the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")

	explicit := path != ""
	if !explicit {
		path = filepath.Join(HomeDir(), "config.yaml")
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if explicit || !isMissing(err) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.Offline.DBPath = expandHome(cfg.Offline.DBPath)
	cfg.Log.File = expandHome(cfg.Log.File)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func isMissing(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
