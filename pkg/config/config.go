// Package config loads the dashboard's TOML configuration.
//
// Values come from DefaultConfig, then the first config file found, then
// DAYBOARD_* environment variables, then command-line flags applied by the
// caller.
package config

// Widget identifiers used by layouts.
const (
	WidgetUsers   = "users"
	WidgetClock   = "clock"
	WidgetFruits  = "fruits"
	WidgetLetters = "letters"
)

// Config is the root configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	GitHub  GitHubConfig  `toml:"github"`
	Clock   ClockConfig   `toml:"clock"`
	Lists   ListsConfig   `toml:"lists"`
	Image   ImageConfig   `toml:"image"`
	Theme   ThemeConfig   `toml:"theme"`
	Layout  LayoutConfig  `toml:"layout"`

	// Undecoded lists keys present in the file that no field consumed.
	Undecoded []string `toml:"-"`
}

type GeneralConfig struct {
	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`
	CacheDir string `toml:"cache_dir"`
}

type GitHubConfig struct {
	// BaseURL is the API root. Empty means https://api.github.com/.
	BaseURL      string `toml:"base_url"`
	DefaultCount int    `toml:"default_count"`
	UserAgent    string `toml:"user_agent"`
}

type ClockConfig struct {
	Interval     Duration `toml:"interval"`
	Format       string   `toml:"format"`
	StartVisible bool     `toml:"start_visible"`
	// LegacyTicker adds a second ticker that ignores hide/show.
	LegacyTicker bool `toml:"legacy_ticker"`
}

type ListConfig struct {
	Title   string   `toml:"title"`
	Seed    []string `toml:"seed"`
	Prepend string   `toml:"prepend"`
}

type ListsConfig struct {
	Fruits  ListConfig `toml:"fruits"`
	Letters ListConfig `toml:"letters"`
}

type ImageConfig struct {
	// Protocol is auto, halfblocks, kitty, iterm2, sixel or none.
	Protocol       string `toml:"protocol"`
	AvatarWidth    int    `toml:"avatar_width"`
	AvatarHeight   int    `toml:"avatar_height"`
	MaxCacheSizeMB int    `toml:"max_cache_size_mb"`
	DiskCache      bool   `toml:"disk_cache"`
	Workers        int    `toml:"workers"`
}

type ThemeConfig struct {
	Name string `toml:"name"`
}

// LayoutConfig selects a preset or spells out rows. Rows win when set.
type LayoutConfig struct {
	Preset string      `toml:"preset"`
	Rows   []RowConfig `toml:"rows"`
}

type RowConfig struct {
	Ratio    int           `toml:"ratio"`
	Children []ChildConfig `toml:"children"`
}

type ChildConfig struct {
	Type  string `toml:"type"`
	Ratio int    `toml:"ratio"`
}
