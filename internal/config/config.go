package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the application configuration. Cookies are the session
// credentials in "name=value; Domain=…; Path=/" form; how they were
// obtained is out of scope here.
type Config struct {
	Cookies []string `koanf:"cookies"`

	API struct {
		BaseURL           string  `koanf:"base_url"`
		UserAgent         string  `koanf:"user_agent"`
		RequestsPerSecond float64 `koanf:"requests_per_second"`
	} `koanf:"api"`

	Thread struct {
		ScanLimit int `koanf:"scan_limit"`
	} `koanf:"thread"`

	Storage struct {
		DatabaseURL string `koanf:"database_url"`
		StatePath   string `koanf:"state_path"`
	} `koanf:"storage"`

	Telegram struct {
		Token  string `koanf:"token"`
		ChatID string `koanf:"chat_id"`
	} `koanf:"telegram"`

	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`
}

// Load builds the configuration from defaults, an optional TOML file and
// ATC_-prefixed environment variables, in that order of precedence.
func Load(configPath string) (*Config, error) {
	var k = koanf.New(".")

	k.Load(confmap.Provider(map[string]interface{}{
		"api.base_url":            "https://x.com/i/api",
		"api.requests_per_second": 1.0,
		"thread.scan_limit":       100,
		"storage.state_path":      "data/grok-state.json",
		"log.level":               "info",
	}, "."), nil)

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	} else {
		defaultPaths := []string{"./atc.toml", "$HOME/.atc.toml"}
		for _, path := range defaultPaths {
			path = os.ExpandEnv(path)
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), toml.Parser()); err == nil {
					break
				}
			}
		}
	}

	// ATC_STORAGE_DATABASE_URL -> storage.database_url and so on: only the
	// first underscore separates the section, the rest belongs to the key.
	// Cookies come in as ATC_COOKIES, a "||"-separated list, since cookie
	// values themselves contain ';' and '='.
	k.Load(env.ProviderWithValue("ATC_", ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, "ATC_"))
		if key == "cookies" {
			var cookies []string
			for _, c := range strings.Split(value, "||") {
				if c = strings.TrimSpace(c); c != "" {
					cookies = append(cookies, c)
				}
			}
			return key, cookies
		}
		if section, rest, found := strings.Cut(key, "_"); found {
			return section + "." + rest, value
		}
		return key, value
	}), nil)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &cfg, nil
}
