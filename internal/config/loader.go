package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Load merges defaults, the global file, the project file and the
// environment, in that order. A non-empty path replaces both files.
func Load(path string) (RuntimeConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return RuntimeConfig{}, fmt.Errorf("config: load .env: %w", err)
	}

	cfg := DefaultRuntimeConfig()
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return RuntimeConfig{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else {
		for _, candidate := range []string{GlobalConfigPath(), ProjectConfigPath()} {
			if candidate == "" {
				continue
			}
			if err := loadFile(candidate, &cfg); err != nil {
				if errors.Is(err, os.ErrNotExist) {
					continue
				}
				return RuntimeConfig{}, fmt.Errorf("config: read %s: %w", candidate, err)
			}
		}
	}

	cfg = RuntimeConfigFromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return RuntimeConfig{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *RuntimeConfig) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}
	return v.Unmarshal(cfg)
}

// Save writes cfg as YAML, creating parent directories.
func Save(path string, cfg RuntimeConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// GlobalConfigPath returns the path to the per-user config file.
func GlobalConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "hourline", "config.yaml")
}

// ProjectConfigPath returns the path to the config file in the working directory.
func ProjectConfigPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(cwd, ".hourline.yaml")
}
