package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port int `yaml:"port"`
	// Metrics is the path prometheus metrics are served at. Empty disables them.
	Metrics string        `yaml:"metrics"`
	LogFile string        `yaml:"logFile"`
	Trace   bool          `yaml:"trace"`
	Mounts  []ConfigMount `yaml:"mounts"`
}

// ConfigMount serves either a directory or a SQLite bundle (see asset-pack)
// below a prefix.
type ConfigMount struct {
	Prefix string `yaml:"prefix"`
	Dir    string `yaml:"dir"`
	DB     string `yaml:"db"`
}

func defaultConfig() Config {
	return Config{
		Port:    8080,
		Metrics: "/metrics",
	}
}

func getConfig(filename string) (Config, error) {
	config := defaultConfig()
	configBytes, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	err = yaml.Unmarshal(configBytes, &config)
	return config, err
}

// applyEnv overrides config with ASSETS_* variables.
// ASSETS_DIR or ASSETS_DB replace the configured mounts with a single one at
// ASSETS_PREFIX.
func applyEnv(config *Config, getenv func(string) string) error {
	if port := getenv("ASSETS_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid ASSETS_PORT: %w", err)
		}
		config.Port = p
	}
	if metrics, ok := lookup(getenv, "ASSETS_METRICS"); ok {
		config.Metrics = metrics
	}
	if logFile := getenv("ASSETS_LOG_FILE"); logFile != "" {
		config.LogFile = logFile
	}
	if trace := getenv("ASSETS_TRACE"); trace != "" {
		t, err := strconv.ParseBool(trace)
		if err != nil {
			return fmt.Errorf("invalid ASSETS_TRACE: %w", err)
		}
		config.Trace = t
	}
	dir, db := getenv("ASSETS_DIR"), getenv("ASSETS_DB")
	if dir != "" || db != "" {
		config.Mounts = mountsFrom(getenv("ASSETS_PREFIX"), dir, db)
	}
	return nil
}

// lookup treats the value "off" as an explicit empty value.
func lookup(getenv func(string) string, key string) (string, bool) {
	value := getenv(key)
	switch value {
	case "":
		return "", false
	case "off":
		return "", true
	default:
		return value, true
	}
}

// mountsFrom builds the mounts for a directory and/or bundle given on the
// command line or in the environment. With both, the directory is served at
// prefix and the bundle below prefix + "/bundle".
func mountsFrom(prefix, dir, db string) []ConfigMount {
	mounts := make([]ConfigMount, 0, 2)
	if dir != "" {
		mounts = append(mounts, ConfigMount{Prefix: prefix, Dir: dir})
	}
	if db != "" {
		dbPrefix := prefix
		if dir != "" {
			dbPrefix = strings.TrimSuffix(prefix, "/") + "/bundle"
		}
		mounts = append(mounts, ConfigMount{Prefix: dbPrefix, DB: db})
	}
	return mounts
}

func (c Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if len(c.Mounts) == 0 {
		return errors.New("nothing to serve, specify a directory or bundle")
	}
	if c.Metrics != "" && !strings.HasPrefix(c.Metrics, "/") {
		return fmt.Errorf("metrics path %q must start with /", c.Metrics)
	}
	prefixes := make(map[string]bool, len(c.Mounts))
	for _, m := range c.Mounts {
		if (m.Dir == "") == (m.DB == "") {
			return fmt.Errorf("mount %q: specify exactly one of dir and db", m.Prefix)
		}
		if m.Prefix != "" && !strings.HasPrefix(m.Prefix, "/") {
			return fmt.Errorf("mount %q: prefix must start with /", m.Prefix)
		}
		p := normalizePrefix(m.Prefix)
		if prefixes[p] {
			return fmt.Errorf("mount %q: duplicate prefix", m.Prefix)
		}
		prefixes[p] = true
	}
	return nil
}

func normalizePrefix(prefix string) string {
	p := strings.TrimSuffix(prefix, "/")
	if p == "" {
		return "/"
	}
	return p
}
