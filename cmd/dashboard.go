package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"gitlab.com/tinyland/lab/dayboard/pkg/app"
	"gitlab.com/tinyland/lab/dayboard/pkg/avatar"
	"gitlab.com/tinyland/lab/dayboard/pkg/clock"
	"gitlab.com/tinyland/lab/dayboard/pkg/config"
	"gitlab.com/tinyland/lab/dayboard/pkg/layout"
	"gitlab.com/tinyland/lab/dayboard/pkg/terminal"
	"gitlab.com/tinyland/lab/dayboard/pkg/theme"
	"gitlab.com/tinyland/lab/dayboard/pkg/tui"
	"gitlab.com/tinyland/lab/dayboard/pkg/widgets"
)

func runDashboard(cmd *cobra.Command, _ []string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errors.New("the dashboard needs a terminal; use `dayboard users` for plain output")
	}
	cfg, logger := globals.cfg, globals.logger
	ctx := cmd.Context()

	b, err := newBackend(cfg, logger, globals.useMocks)
	if err != nil {
		return err
	}
	defer b.Close()

	// Inline image protocols cannot share a redrawn cell grid, so the
	// dashboard always draws avatars with half blocks unless images are off.
	caps := terminal.Probe(cfg.Image.Protocol)
	proto := terminal.ProtocolHalfblocks
	if caps.Protocol == terminal.ProtocolNone {
		proto = terminal.ProtocolNone
	}
	loader, err := b.loader(cfg, proto, caps.Size, logger)
	if err != nil {
		return err
	}

	zm := zone.New()
	defer zm.Close()

	shared := widgets.Shared{Theme: theme.Get(cfg.Theme.Name), Zones: zm, Logger: logger}
	lay := cfg.Layout.Resolve()
	ws, err := buildWidgets(ctx, cfg, lay, b, loader, shared)
	if err != nil {
		return err
	}

	m := tui.New(ws,
		tui.WithRegistry(b.registry),
		tui.WithTheme(shared.Theme),
		tui.WithZones(zm),
		tui.WithLayout(layoutRows(lay)),
		tui.WithLogger(logger),
	)
	defer m.Close()

	logger.Info("dashboard starting",
		"layout", lay.Preset, "theme", shared.Theme.Name,
		"terminal", caps.Term, "size", fmt.Sprintf("%dx%d", caps.Size.Cols, caps.Size.Rows))

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("dashboard: %w", err)
	}
	logger.Info("dashboard stopped")
	return nil
}

// buildWidgets creates the widgets named by the layout, in layout order.
func buildWidgets(ctx context.Context, cfg *config.Config, lay config.LayoutConfig, b *backend, loader *avatar.Loader, shared widgets.Shared) ([]app.Widget, error) {
	var out []app.Widget
	for _, id := range lay.Widgets() {
		switch id {
		case config.WidgetUsers:
			out = append(out, widgets.NewUsersWidget(ctx, b.collector, loader, cfg.GitHub.DefaultCount, shared))
		case config.WidgetClock:
			c := clock.New(
				clock.WithInterval(cfg.Clock.Interval.Duration),
				clock.WithFormat(cfg.Clock.Format),
				clock.WithVisible(cfg.Clock.StartVisible),
				clock.WithLegacyTicker(cfg.Clock.LegacyTicker),
				clock.WithLogger(shared.Logger),
			)
			out = append(out, widgets.NewClockWidget(c, shared))
		case config.WidgetFruits:
			l := cfg.Lists.Fruits
			out = append(out, widgets.NewListWidget(id, l.Title, l.Prepend, l.Seed, shared))
		case config.WidgetLetters:
			l := cfg.Lists.Letters
			out = append(out, widgets.NewListWidget(id, l.Title, l.Prepend, l.Seed, shared))
		default:
			return nil, fmt.Errorf("unknown widget %q", id)
		}
	}
	return out, nil
}

// layoutRows converts configured rows to layout rows keyed by widget ID.
func layoutRows(l config.LayoutConfig) []layout.Row {
	rows := make([]layout.Row, 0, len(l.Rows))
	for _, r := range l.Rows {
		row := layout.Row{Weight: r.Ratio}
		for _, c := range r.Children {
			row.Cells = append(row.Cells, layout.Cell{ID: c.Type, Weight: c.Ratio})
		}
		rows = append(rows, row)
	}
	return rows
}
