package widgets

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/dayboard/pkg/app"
	"gitlab.com/tinyland/lab/dayboard/pkg/avatar"
	"gitlab.com/tinyland/lab/dayboard/pkg/collectors/github"
	"gitlab.com/tinyland/lab/dayboard/pkg/components"
	"gitlab.com/tinyland/lab/dayboard/pkg/theme"
)

// Tile size used when avatars are disabled and only logins are listed.
const labelOnlyWidth = 12

// UsersWidget shows a count field and a grid of GitHub users. Every edit
// that yields a valid count starts a fetch; responses are applied in the
// order they arrive, so a slow response for an old count can replace a
// newer one.
type UsersWidget struct {
	ctx       context.Context
	collector *github.Collector
	loader    *avatar.Loader
	shared    Shared

	input textinput.Model
	count int
	seq   int

	users    []github.User
	shownSeq int
	tiles    []avatar.Tile
	fetched  bool
	lastErr  error
	invalid  bool

	up, down key.Binding
}

// NewUsersWidget returns a widget that fetches count users on Init. loader
// may be nil, in which case only logins are shown.
func NewUsersWidget(ctx context.Context, collector *github.Collector, loader *avatar.Loader, count int, shared Shared) *UsersWidget {
	shared = shared.withDefaults()
	if n, err := github.ClampCount(count); err == nil {
		count = n
	} else {
		count = github.DefaultCount
	}

	ti := textinput.New()
	ti.Prompt = "count: "
	ti.CharLimit = 3
	ti.Width = 4
	ti.SetValue(strconv.Itoa(count))
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()

	return &UsersWidget{
		ctx:       ctx,
		collector: collector,
		loader:    loader,
		shared:    shared,
		input:     ti,
		count:     count,
		up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "count+1")),
		down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "count-1")),
	}
}

func (w *UsersWidget) ID() string          { return "users" }
func (w *UsersWidget) Title() string       { return "GitHub users" }
func (w *UsersWidget) MinSize() (int, int) { return 30, 8 }

// Count returns the last valid count.
func (w *UsersWidget) Count() int { return w.count }

// Seq returns the sequence number of the latest fetch request.
func (w *UsersWidget) Seq() int { return w.seq }

// Users returns the collection currently displayed.
func (w *UsersWidget) Users() []github.User { return w.users }

// ShownSeq returns the sequence number of the response being displayed.
func (w *UsersWidget) ShownSeq() int { return w.shownSeq }

// Tiles returns the avatar tiles for the displayed users.
func (w *UsersWidget) Tiles() []avatar.Tile { return w.tiles }

// Err returns the error of the latest response, nil once one succeeds. It
// is never shown in the panel; the status bar reports collector health.
func (w *UsersWidget) Err() error { return w.lastErr }

// Init fetches the initial count.
func (w *UsersWidget) Init() tea.Cmd {
	return w.fetch()
}

func (w *UsersWidget) fetch() tea.Cmd {
	w.seq++
	w.collector.SetCount(w.count)
	w.shared.Logger.Debug("users fetch", "count", w.count, "seq", w.seq)
	return w.collector.FetchCmd(w.ctx, w.count, w.seq)
}

// setCount validates n and starts a fetch when it changes the count.
func (w *UsersWidget) setCount(n int) tea.Cmd {
	clamped, err := github.ClampCount(n)
	if err != nil {
		w.invalid = true
		w.shared.Logger.Debug("count rejected", "value", n, "err", err)
		return nil
	}
	w.invalid = false
	if clamped != n {
		w.input.SetValue(strconv.Itoa(clamped))
		w.input.CursorEnd()
	}
	if clamped == w.count {
		return nil
	}
	w.count = clamped
	return w.fetch()
}

func (w *UsersWidget) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case github.UsersFetchedMsg:
		return w.applyUsers(msg)
	case app.DataUpdateEvent:
		if msg.Source != avatar.Source || msg.Err != nil {
			return nil
		}
		if b, ok := msg.Data.(avatar.Batch); ok && b.Seq == w.shownSeq {
			w.tiles = b.Tiles
		}
	case app.ThemeChangeEvent:
		w.shared.Theme = theme.Get(msg.Theme)
	}
	return nil
}

func (w *UsersWidget) applyUsers(msg github.UsersFetchedMsg) tea.Cmd {
	if msg.Err != nil {
		w.lastErr = msg.Err
		w.shared.Logger.Debug("users fetch failed", "count", msg.Count, "seq", msg.Seq, "err", msg.Err)
		return nil
	}
	w.lastErr = nil
	w.fetched = true
	w.users = msg.Users
	w.shownSeq = msg.Seq
	w.tiles = nil
	w.shared.Logger.Debug("users applied",
		"count", msg.Count, "received", len(msg.Users),
		"seq", msg.Seq, "latest", w.seq, "stale", msg.Seq != w.seq,
		"latency", msg.Latency)

	if w.loader == nil || len(msg.Users) == 0 {
		return nil
	}
	return w.loader.LoadCmd(w.ctx, msg.Seq, msg.Users)
}

// HandleKey edits the count field. Only digits, cursor movement and
// deletion reach the input; up and down step the count by one.
func (w *UsersWidget) HandleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, w.up):
		return w.step(1)
	case key.Matches(msg, w.down):
		return w.step(-1)
	}

	switch msg.Type {
	case tea.KeyRunes:
		if !allDigits(msg.Runes) {
			return nil
		}
	case tea.KeyBackspace, tea.KeyDelete, tea.KeyLeft, tea.KeyRight, tea.KeyHome, tea.KeyEnd:
	default:
		return nil
	}

	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	return tea.Batch(cmd, w.edited())
}

func (w *UsersWidget) step(delta int) tea.Cmd {
	n := w.count + delta
	if n < 1 {
		n = 1
	}
	w.input.SetValue(strconv.Itoa(n))
	w.input.CursorEnd()
	return w.setCount(n)
}

// edited reacts to a change of the field text. An empty field waits for
// more input.
func (w *UsersWidget) edited() tea.Cmd {
	v := strings.TrimSpace(w.input.Value())
	if v == "" {
		w.invalid = false
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		w.input.SetValue(strconv.Itoa(w.count))
		return nil
	}
	return w.setCount(n)
}

func allDigits(rs []rune) bool {
	if len(rs) == 0 {
		return false
	}
	for _, r := range rs {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// View renders the count field on the first line and the user grid below.
func (w *UsersWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	th := w.shared.Theme

	if !w.fetched {
		return components.Block(w.input.View()+"  "+th.Muted().Render("loading…"), width, height)
	}

	tileW, tileH := labelOnlyWidth, 0
	if w.loader != nil {
		tileW, tileH = w.loader.TileSize()
	}
	perRow := max(1, (width+1)/(tileW+1))
	rowsFit := (height - 1) / (tileH + 1)
	shown := min(len(w.users), perRow*rowsFit)

	status := th.Muted().Render(fmt.Sprintf("%d users", len(w.users)))
	if shown < len(w.users) {
		status = th.Muted().Render(fmt.Sprintf("%d of %d users", shown, len(w.users)))
	}
	if w.invalid {
		status = th.Status("warn").Render("count must be 1-100")
	}

	lines := []string{w.input.View() + "  " + status}
	if len(w.users) == 0 && height > 1 {
		lines = append(lines, placeholder(th, "no users", width, height-1))
	}
	for start := 0; start < shown; start += perRow {
		end := min(start+perRow, shown)
		parts := make([]string, 0, 2*(end-start))
		for i := start; i < end; i++ {
			if i > start {
				parts = append(parts, " ")
			}
			parts = append(parts, w.renderTile(i, tileW, tileH))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, parts...))
	}
	return components.Block(strings.Join(lines, "\n"), width, height)
}

// renderTile draws user i as its avatar (tileH lines) over its login.
func (w *UsersWidget) renderTile(i, tileW, tileH int) string {
	th := w.shared.Theme
	u := w.users[i]
	label := th.Text().Render(components.FitLine(u.Login, tileW))
	if tileH == 0 {
		return label
	}

	var body string
	if i < len(w.tiles) && w.tiles[i].Rendered != "" && w.tiles[i].Login == u.Login {
		body = components.Block(w.tiles[i].Rendered, tileW, tileH)
	} else {
		mark := "·"
		if i < len(w.tiles) && w.tiles[i].Err != nil && !errors.Is(w.tiles[i].Err, context.Canceled) {
			mark = "×"
		}
		dots := make([]string, tileH)
		for r := range dots {
			dots[r] = th.Muted().Render(strings.Repeat(mark, tileW))
		}
		body = strings.Join(dots, "\n")
	}
	return body + "\n" + label
}
