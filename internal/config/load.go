package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load builds the effective configuration. Defaults come first, a config
// file (explicit --config path or a discovered one) overlays them, and CLI
// flags win over both.
func Load() (*Config, error) {
	cfg := Default()

	if path := resolveConfigPath(); path != "" {
		if err := mergeFile(cfg, path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	applyFlags(cfg)

	if path := *flagWriteConfig; path != "" {
		if err := cfg.SaveTo(path); err != nil {
			return nil, fmt.Errorf("writing config to %s: %w", path, err)
		}
	}

	return cfg, nil
}

// resolveConfigPath picks the config file to read: the --config flag if set,
// otherwise the first of ./config.yaml and the per-OS config dir that exists.
// Empty means run on defaults.
func resolveConfigPath() string {
	if path := ConfigPath(); path != "" {
		return path
	}
	if _, err := os.Stat("./config.yaml"); err == nil {
		return "./config.yaml"
	}
	shared := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(shared); err == nil {
		return shared
	}
	return ""
}

// ConfigDir returns the per-OS directory for this application's config.
func ConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "CubeLink")
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "CubeLink")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "cubelink")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "cubelink")
	}
}

// mergeFile overlays YAML from path onto cfg. Fields absent from the file
// keep their current values.
func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing yaml: %w", err)
	}
	return nil
}
