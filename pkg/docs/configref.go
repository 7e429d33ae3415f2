// Package docs generates the configuration reference for dayboard: a
// Markdown table per TOML section and a commented default config file.
package docs

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"gitlab.com/tinyland/lab/dayboard/pkg/config"
	"gitlab.com/tinyland/lab/dayboard/pkg/theme"
)

// ConfigRef holds the full configuration reference.
type ConfigRef struct {
	Sections []ConfigSection
}

// ConfigSection documents a single TOML table (e.g., [general]).
type ConfigSection struct {
	Name        string
	Description string
	Fields      []ConfigField
}

// ConfigField documents a single config key.
type ConfigField struct {
	Name        string
	Type        string
	Default     string
	Description string
	// Env names the environment variable that overrides the key, if any.
	Env string
}

// ConfigReference builds the reference. Defaults are read from
// config.DefaultConfig so the two cannot drift apart.
func ConfigReference() *ConfigRef {
	d := config.DefaultConfig()
	q := strconv.Quote
	return &ConfigRef{Sections: []ConfigSection{
		{
			Name:        "general",
			Description: "Logging and cache locations.",
			Fields: []ConfigField{
				{"log_level", "string", q(d.General.LogLevel), "debug, info, warn or error", ""},
				{"log_file", "string", "$XDG_CACHE_HOME/dayboard/dayboard.log", "Rotated log file; the dashboard never logs to the terminal", ""},
				{"cache_dir", "string", "$XDG_CACHE_HOME/dayboard", "Root of the avatar disk cache", ""},
			},
		},
		{
			Name:        "github",
			Description: "The users listing.",
			Fields: []ConfigField{
				{"base_url", "string", q("https://api.github.com/"), "API root; point it at `dayboard mock-server` for offline use", "DAYBOARD_GITHUB_URL"},
				{"default_count", "int", strconv.Itoa(d.GitHub.DefaultCount), "Initial value of the count field, 1-100", "DAYBOARD_COUNT"},
				{"user_agent", "string", q(d.GitHub.UserAgent), "User-Agent header sent with every request", ""},
			},
		},
		{
			Name:        "clock",
			Description: "The hideable clock panel.",
			Fields: []ConfigField{
				{"interval", "duration", q(d.Clock.Interval.String()), "Time between ticks", ""},
				{"format", "string", q(d.Clock.Format), "Go time layout of the displayed value", ""},
				{"start_visible", "bool", strconv.FormatBool(d.Clock.StartVisible), "Whether the clock starts shown", ""},
				{"legacy_ticker", "bool", strconv.FormatBool(d.Clock.LegacyTicker), "Add a second ticker that keeps running while hidden", ""},
			},
		},
		{
			Name:        "lists.fruits",
			Description: "The first prepend-only list. `[lists.letters]` takes the same keys.",
			Fields: []ConfigField{
				{"title", "string", q(d.Lists.Fruits.Title), "Panel title", ""},
				{"seed", "[]string", fmt.Sprintf("%q", d.Lists.Fruits.Seed), "Initial items, in order", ""},
				{"prepend", "string", q(d.Lists.Fruits.Prepend), "Value each increment puts in front", ""},
			},
		},
		{
			Name:        "image",
			Description: "Avatar rendering.",
			Fields: []ConfigField{
				{"protocol", "string", q(d.Image.Protocol), "auto, halfblocks, kitty, iterm2, sixel or none; the dashboard uses halfblocks unless none", "DAYBOARD_PROTOCOL"},
				{"avatar_width", "int", strconv.Itoa(d.Image.AvatarWidth), "Tile width in cells", ""},
				{"avatar_height", "int", strconv.Itoa(d.Image.AvatarHeight), "Tile height in cells", ""},
				{"max_cache_size_mb", "int", strconv.Itoa(d.Image.MaxCacheSizeMB), "In-memory budget for rendered tiles", ""},
				{"disk_cache", "bool", strconv.FormatBool(d.Image.DiskCache), "Keep downloaded avatars under cache_dir", ""},
				{"workers", "int", strconv.Itoa(d.Image.Workers), "Concurrent avatar downloads", ""},
			},
		},
		{
			Name:        "theme",
			Description: "Colour palette. Cycle at runtime with ctrl+t.",
			Fields: []ConfigField{
				{"name", "string", q(d.Theme.Name), "One of " + strings.Join(theme.Names(), ", "), "DAYBOARD_THEME"},
			},
		},
		{
			Name:        "layout",
			Description: "Panel arrangement. `[[layout.rows]]` entries with `ratio` and `children = [{type, ratio}]` replace the preset.",
			Fields: []ConfigField{
				{"preset", "string", q(d.Layout.Preset), "One of " + strings.Join(config.PresetNames, ", "), "DAYBOARD_LAYOUT"},
			},
		},
	}}
}

// RenderConfigMarkdown renders ref as Markdown, one table per section.
func RenderConfigMarkdown(ref *ConfigRef) string {
	var b strings.Builder
	b.WriteString("# Configuration Reference\n\n")
	b.WriteString("dayboard reads `$XDG_CONFIG_HOME/dayboard/config.toml`. ")
	b.WriteString("Environment variables override the file; flags override both.\n\n")

	for _, s := range ref.Sections {
		fmt.Fprintf(&b, "## `[%s]`\n\n%s\n\n", s.Name, s.Description)
		b.WriteString("| Key | Type | Default | Env | Description |\n")
		b.WriteString("|-----|------|---------|-----|-------------|\n")
		for _, f := range s.Fields {
			env := "-"
			if f.Env != "" {
				env = "`" + f.Env + "`"
			}
			fmt.Fprintf(&b, "| `%s` | %s | `%s` | %s | %s |\n", f.Name, f.Type, f.Default, env, f.Description)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// DefaultTOML encodes the built-in configuration as a config file.
func DefaultTOML() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# dayboard configuration. Every key is optional.\n\n")
	if err := toml.NewEncoder(&buf).Encode(config.DefaultConfig()); err != nil {
		return nil, fmt.Errorf("encode default config: %w", err)
	}
	return buf.Bytes(), nil
}
