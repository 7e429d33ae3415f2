package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"gitlab.com/tinyland/lab/dayboard/pkg/theme"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	protocols  = []string{"auto", "halfblocks", "kitty", "iterm2", "sixel", "none"}
	widgetKind = []string{WidgetUsers, WidgetClock, WidgetFruits, WidgetLetters}
)

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if !slices.Contains(logLevels, strings.ToLower(c.General.LogLevel)) {
		add("general.log_level: %q is not one of %v", c.General.LogLevel, logLevels)
	}

	if c.GitHub.DefaultCount <= 0 {
		add("github.default_count: must be positive, got %d", c.GitHub.DefaultCount)
	}
	if c.GitHub.BaseURL != "" {
		u, err := url.Parse(c.GitHub.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			add("github.base_url: %q is not an absolute URL", c.GitHub.BaseURL)
		}
	}

	if c.Clock.Interval.Duration <= 0 {
		add("clock.interval: must be positive")
	}
	if c.Clock.Format == "" {
		add("clock.format: must not be empty")
	}

	if !slices.Contains(protocols, strings.ToLower(c.Image.Protocol)) {
		add("image.protocol: %q is not one of %v", c.Image.Protocol, protocols)
	}
	if c.Image.AvatarWidth < 2 || c.Image.AvatarHeight < 1 {
		add("image.avatar_width/avatar_height: tile must be at least 2x1, got %dx%d",
			c.Image.AvatarWidth, c.Image.AvatarHeight)
	}
	if c.Image.Workers < 0 {
		add("image.workers: must not be negative")
	}

	if _, ok := theme.Lookup(c.Theme.Name); !ok {
		add("theme.name: unknown theme %q (have %v)", c.Theme.Name, theme.Names())
	}

	if len(c.Layout.Rows) == 0 && !slices.Contains(PresetNames, c.Layout.Preset) {
		add("layout.preset: %q is not one of %v", c.Layout.Preset, PresetNames)
	}
	for i, r := range c.Layout.Rows {
		if len(r.Children) == 0 {
			add("layout.rows[%d]: no children", i)
		}
		for _, ch := range r.Children {
			if !slices.Contains(widgetKind, ch.Type) {
				add("layout.rows[%d]: unknown widget %q", i, ch.Type)
			}
		}
	}

	return errors.Join(errs...)
}
