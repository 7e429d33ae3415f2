// Package avatar downloads user avatars and renders them as terminal tiles.
//
// Downloads fan out over a bounded worker pool. Raw image bytes are kept in
// an optional disk cache keyed by URL, and rendered tiles in the renderer's
// in-memory cache, so redrawing the grid after a count change only fetches
// avatars that were not seen before.
package avatar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sourcegraph/conc/pool"

	"gitlab.com/tinyland/lab/dayboard/pkg/app"
	"gitlab.com/tinyland/lab/dayboard/pkg/cache"
	"gitlab.com/tinyland/lab/dayboard/pkg/collectors/github"
	dimage "gitlab.com/tinyland/lab/dayboard/pkg/image"
)

// Source is the DataUpdateEvent source for avatar batches.
const Source = "avatars"

const (
	defaultWorkers = 8
	maxImageBytes  = 4 << 20
)

// Tile is one rendered avatar. Index is the user's position in the batch.
type Tile struct {
	Index    int
	Login    string
	Rendered string
	Err      error
}

// Batch is the payload of an avatar DataUpdateEvent.
type Batch struct {
	Seq   int
	Tiles []Tile
}

// Config configures a Loader.
type Config struct {
	HTTPClient *http.Client
	Store      *cache.Store
	Renderer   *dimage.Renderer
	Workers    int
	Cols       int
	Rows       int
	Logger     *slog.Logger
}

// Loader fetches and renders avatars.
type Loader struct {
	http     *http.Client
	store    *cache.Store
	renderer *dimage.Renderer
	workers  int
	cols     int
	rows     int
	logger   *slog.Logger
}

// NewLoader returns a Loader. Renderer is required; Store may be nil.
func NewLoader(cfg Config) (*Loader, error) {
	if cfg.Renderer == nil {
		return nil, errors.New("avatar: renderer is required")
	}
	l := &Loader{
		http:     cfg.HTTPClient,
		store:    cfg.Store,
		renderer: cfg.Renderer,
		workers:  cfg.Workers,
		cols:     cfg.Cols,
		rows:     cfg.Rows,
		logger:   cfg.Logger,
	}
	if l.http == nil {
		l.http = http.DefaultClient
	}
	if l.workers <= 0 {
		l.workers = defaultWorkers
	}
	if l.cols <= 0 {
		l.cols = 10
	}
	if l.rows <= 0 {
		l.rows = 5
	}
	if l.logger == nil {
		l.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l, nil
}

// TileSize returns the tile box in cells.
func (l *Loader) TileSize() (cols, rows int) { return l.cols, l.rows }

// Load fetches and renders every user's avatar. The result has one Tile per
// user in input order; failures are reported per tile.
func (l *Loader) Load(ctx context.Context, users []github.User) []Tile {
	tiles := make([]Tile, len(users))
	p := pool.NewWithResults[Tile]().WithMaxGoroutines(l.workers)
	for i, u := range users {
		p.Go(func() Tile {
			return l.loadOne(ctx, i, u)
		})
	}
	for _, t := range p.Wait() {
		tiles[t.Index] = t
	}
	return tiles
}

// LoadCmd runs Load off the update loop and reports an app.DataUpdateEvent
// carrying a Batch.
func (l *Loader) LoadCmd(ctx context.Context, seq int, users []github.User) tea.Cmd {
	return app.DataFetchCmd(Source, func() (interface{}, error) {
		return Batch{Seq: seq, Tiles: l.Load(ctx, users)}, nil
	})
}

func (l *Loader) loadOne(ctx context.Context, i int, u github.User) Tile {
	t := Tile{Index: i, Login: u.Login}
	if u.AvatarURL == "" {
		t.Err = errors.New("no avatar url")
		return t
	}

	src := l.sizedURL(u.AvatarURL)
	data, err := l.fetch(ctx, src)
	if err != nil {
		t.Err = err
		l.logger.Debug("avatar fetch failed", "login", u.Login, "err", err)
		return t
	}
	img, err := dimage.Decode(data)
	if err != nil {
		t.Err = err
		return t
	}
	t.Rendered, t.Err = l.renderer.Render(src, img, l.cols, l.rows)
	return t
}

// sizedURL asks the avatar host for roughly the pixel size the tile needs.
func (l *Loader) sizedURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	w, h := dimage.CellPixels(l.cols, l.rows, 0, 0)
	q := u.Query()
	q.Set("s", strconv.Itoa(max(w, h)))
	u.RawQuery = q.Encode()
	return u.String()
}

func (l *Loader) fetch(ctx context.Context, src string) ([]byte, error) {
	if l.store != nil {
		if data, ok := l.store.Get(src); ok {
			return data, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	start := time.Now()
	resp, err := l.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", src, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: status %d", src, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", src, err)
	}
	l.logger.Debug("avatar downloaded", "url", src, "bytes", len(data), "latency", time.Since(start))

	if l.store != nil {
		if err := l.store.Put(src, data); err != nil {
			l.logger.Warn("avatar cache write failed", "err", err)
		}
	}
	return data, nil
}
