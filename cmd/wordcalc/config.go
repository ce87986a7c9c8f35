package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/wordcalc/pkg/history"
	"github.com/hazyhaar/wordcalc/pkg/logging"
	"github.com/hazyhaar/wordcalc/pkg/numwords"
)

// configEnv names the environment variable holding the config path.
const configEnv = "WORDCALC_CONFIG"

const defaultConfigPath = "wordcalc.yaml"

type config struct {
	Addr      string         `yaml:"addr"`
	DBPath    string         `yaml:"db_path"`
	VocabDir  string         `yaml:"vocab_dir"`
	Locale    string         `yaml:"locale"`
	CacheSize int            `yaml:"cache_size"`
	Log       logging.Config `yaml:"log"`
	History   historyConfig  `yaml:"history"`
	QUIC      quicConfig     `yaml:"quic"`
}

type historyConfig struct {
	Backend   string `yaml:"backend"` // sqlite, memory or redis
	RedisAddr string `yaml:"redis_addr"`
	RedisKey  string `yaml:"redis_key"`
}

type quicConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

func defaultConfig() config {
	return config{
		Addr:      ":8420",
		DBPath:    "wordcalc.db",
		VocabDir:  "vocab",
		Locale:    string(numwords.Russian),
		CacheSize: 1024,
		Log:       logging.Config{Level: "info"},
		History: historyConfig{
			Backend:  "sqlite",
			RedisKey: history.DefaultRedisKey,
		},
	}
}

// configPath picks the flag value, then $WORDCALC_CONFIG, then the default.
func configPath(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv(configEnv); env != "" {
		return env
	}
	return defaultConfigPath
}

// loadConfig reads path over the defaults. A missing file is not an error.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (c config) validate() error {
	if _, err := numwords.ParseLocale(c.Locale); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.History.Backend {
	case "sqlite", "memory":
	case "redis":
		if c.History.RedisAddr == "" {
			return errors.New("history.redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown history backend %q", c.History.Backend)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size must not be negative, got %d", c.CacheSize)
	}
	if (c.QUIC.CertFile == "") != (c.QUIC.KeyFile == "") {
		return errors.New("quic.cert_file and quic.key_file must be set together")
	}
	return nil
}
