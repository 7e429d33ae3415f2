package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

const appName = "dayboard"

// Load reads the first config file on the search path:
//
//  1. $XDG_CONFIG_HOME/dayboard/config.toml
//  2. ~/.config/dayboard/config.toml
//
// Without a file it returns DefaultConfig with env overrides applied.
func Load() (*Config, error) {
	for _, p := range SearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	cfg := DefaultConfig()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadFromFile reads path. A missing file yields the defaults.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg := DefaultConfig()
		applyEnvOverrides(cfg)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes TOML from r over the defaults.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	for _, k := range md.Undecoded() {
		cfg.Undecoded = append(cfg.Undecoded, k.String())
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	cacheDir := filepath.Join(xdgDir("XDG_CACHE_HOME", home, ".cache"), appName)

	return &Config{
		General: GeneralConfig{
			LogLevel: "info",
			LogFile:  filepath.Join(cacheDir, appName+".log"),
			CacheDir: cacheDir,
		},
		GitHub: GitHubConfig{
			DefaultCount: 30,
			UserAgent:    appName,
		},
		Clock: ClockConfig{
			Interval:     Duration{time.Second},
			Format:       "3:04:05 PM",
			StartVisible: true,
		},
		Lists: ListsConfig{
			Fruits: ListConfig{
				Title:   "Fruits",
				Seed:    []string{"apple", "banana", "grapsh"},
				Prepend: "mango",
			},
			Letters: ListConfig{
				Title:   "Clocks",
				Seed:    []string{"a", "b", "c"},
				Prepend: "d",
			},
		},
		Image: ImageConfig{
			Protocol:       "auto",
			AvatarWidth:    10,
			AvatarHeight:   5,
			MaxCacheSizeMB: 16,
			DiskCache:      true,
			Workers:        8,
		},
		Theme:  ThemeConfig{Name: "default"},
		Layout: LayoutConfig{Preset: PresetDashboard},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DAYBOARD_GITHUB_URL"); v != "" {
		cfg.GitHub.BaseURL = v
	}
	if v := os.Getenv("DAYBOARD_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.GitHub.DefaultCount = n
		}
	}
	if v := os.Getenv("DAYBOARD_PROTOCOL"); v != "" {
		cfg.Image.Protocol = v
	}
	if v := os.Getenv("DAYBOARD_THEME"); v != "" {
		cfg.Theme.Name = v
	}
	if v := os.Getenv("DAYBOARD_LAYOUT"); v != "" {
		cfg.Layout.Preset = v
		cfg.Layout.Rows = nil
	}
}

// SearchPaths returns the config file locations in lookup order.
func SearchPaths() []string {
	home, _ := os.UserHomeDir()
	fallback := filepath.Join(home, ".config")
	xdg := xdgDir("XDG_CONFIG_HOME", home, ".config")

	paths := []string{filepath.Join(xdg, appName, "config.toml")}
	if xdg != fallback {
		paths = append(paths, filepath.Join(fallback, appName, "config.toml"))
	}
	return paths
}

func xdgDir(env, home, rel string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	return filepath.Join(home, rel)
}
