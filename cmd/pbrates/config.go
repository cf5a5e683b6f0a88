package main

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robotomize/pbrates/provider/privatbank"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const envPrefix = "PBRATES"

var ErrInvalidURL = errors.New("archive url must be an absolute http(s) url")

type Config struct {
	URL      string        `mapstructure:"url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Days     int           `mapstructure:"days"`
	LogLevel string        `mapstructure:"log_level"`
	Debug    bool          `mapstructure:"debug"`

	archiveURL url.URL
	level      logrus.Level
}

func (c Config) ArchiveURL() url.URL {
	return c.archiveURL
}

func (c Config) Level() logrus.Level {
	return c.level
}

// loadConfig merges flags, PBRATES_* env (a .env file included), the optional config file and defaults,
// in that order of precedence
func loadConfig(v *viper.Viper, configFile string) (Config, error) {
	var cfg Config

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("error loading .env file: %w", err)
	}

	defaultURL := privatbank.DefaultArchiveURL
	v.SetDefault("url", defaultURL.String())
	v.SetDefault("timeout", time.Duration(0))
	v.SetDefault("days", 0)
	v.SetDefault("log_level", logrus.InfoLevel.String())
	v.SetDefault("debug", false)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("error unmarshalling config: %w", err)
	}

	u, err := parseArchiveURL(cfg.URL)
	if err != nil {
		return cfg, err
	}
	cfg.archiveURL = u

	if cfg.Debug {
		cfg.LogLevel = logrus.DebugLevel.String()
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return cfg, fmt.Errorf("log level: %w", err)
	}
	cfg.level = level

	if cfg.Timeout < 0 {
		return cfg, fmt.Errorf("timeout must not be negative, got %s", cfg.Timeout)
	}

	return cfg, nil
}

func parseArchiveURL(raw string) (url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return url.URL{}, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return url.URL{}, fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}

	u.RawQuery = ""

	return *u, nil
}
