package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration parses YAML duration strings like "30s" or "5m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}

	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Config holds the client-side settings for talking to the portal backend.
type Config struct {
	ServerURL string   `yaml:"server_url"`
	Timeout   Duration `yaml:"timeout"`
	StateDir  string   `yaml:"state_dir"`
	CacheDir  string   `yaml:"cache_dir"`
}

// Default returns the configuration used when no config file is present.
// State and cache live under ~/.portalctl/.
func Default() Config {
	base := ""
	if home, err := os.UserHomeDir(); err == nil {
		base = filepath.Join(home, ".portalctl")
	}

	return Config{
		ServerURL: "http://localhost:8080",
		Timeout:   Duration(30 * time.Second),
		StateDir:  filepath.Join(base, "session"),
		CacheDir:  filepath.Join(base, "cache"),
	}
}

// Load reads a YAML config file, filling unset fields from Default.
// A missing file is not an error, the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = Default().Timeout
	}

	return cfg, nil
}
