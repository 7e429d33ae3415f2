package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/dayboard/pkg/app"
	"gitlab.com/tinyland/lab/dayboard/pkg/components"
	"gitlab.com/tinyland/lab/dayboard/pkg/itemlist"
	"gitlab.com/tinyland/lab/dayboard/pkg/theme"
)

// ListWidget shows a prepend-only list and an increment button that puts
// the configured value in front.
type ListWidget struct {
	id      string
	title   string
	value   string
	list    *itemlist.List
	shared  Shared
	prepend key.Binding
	zoneID  string
}

// NewListWidget returns a widget seeded with seed. Each increment prepends
// value.
func NewListWidget(id, title, value string, seed []string, shared Shared) *ListWidget {
	shared = shared.withDefaults()
	return &ListWidget{
		id:     id,
		title:  title,
		value:  value,
		list:   itemlist.New(seed...),
		shared: shared,
		prepend: key.NewBinding(
			key.WithKeys("i", "+"),
			key.WithHelp("i/+", "increment"),
		),
		zoneID: shared.newPrefix() + id + "-increment",
	}
}

func (w *ListWidget) ID() string          { return w.id }
func (w *ListWidget) Title() string       { return w.title }
func (w *ListWidget) MinSize() (int, int) { return 14, 3 }

// Items returns the current list contents.
func (w *ListWidget) Items() []string { return w.list.Items() }

// Increment prepends the configured value.
func (w *ListWidget) Increment() {
	w.list = w.list.Prepend(w.value)
	w.shared.Logger.Debug("list prepend", "list", w.id, "value", w.value, "len", w.list.Len())
}

func (w *ListWidget) Update(msg tea.Msg) tea.Cmd {
	if ev, ok := msg.(app.ThemeChangeEvent); ok {
		w.shared.Theme = theme.Get(ev.Theme)
	}
	return nil
}

func (w *ListWidget) HandleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, w.prepend) {
		w.Increment()
	}
	return nil
}

func (w *ListWidget) HandleMouse(msg tea.MouseMsg) tea.Cmd {
	if w.shared.clicked(w.zoneID, msg) {
		w.Increment()
	}
	return nil
}

// View renders the button followed by one item per line. Items that do not
// fit are summarized on the last line.
func (w *ListWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	lines := []string{w.shared.mark(w.zoneID, components.Button(w.shared.Theme, "increment", true))}

	items := w.list.Items()
	room := height - 1
	if len(items) > room && room > 0 {
		shown := room - 1
		for _, it := range items[:shown] {
			lines = append(lines, w.shared.Theme.Text().Render(it))
		}
		lines = append(lines, w.shared.Theme.Muted().Render(fmt.Sprintf("… +%d more", len(items)-shown)))
	} else {
		for _, it := range items {
			lines = append(lines, w.shared.Theme.Text().Render(it))
		}
	}
	return components.Block(strings.Join(lines, "\n"), width, height)
}
