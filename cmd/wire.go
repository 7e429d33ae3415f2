package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"gitlab.com/tinyland/lab/dayboard/pkg/avatar"
	"gitlab.com/tinyland/lab/dayboard/pkg/cache"
	"gitlab.com/tinyland/lab/dayboard/pkg/collectors"
	"gitlab.com/tinyland/lab/dayboard/pkg/collectors/github"
	"gitlab.com/tinyland/lab/dayboard/pkg/config"
	dimage "gitlab.com/tinyland/lab/dayboard/pkg/image"
	"gitlab.com/tinyland/lab/dayboard/pkg/mockapi"
	"gitlab.com/tinyland/lab/dayboard/pkg/terminal"
)

const (
	avatarTTL = 24 * time.Hour

	// Per-user delay of the in-process fake API. Larger counts answer
	// later, so quick edits of the count field can resolve out of order.
	mockDelayPerUser = 8 * time.Millisecond
)

// backend is the data side shared by the dashboard and the users command.
type backend struct {
	http      *http.Client
	client    *github.Client
	collector *github.Collector
	registry  *collectors.Registry
	store     *cache.Store
	closers   []func()
}

func newBackend(cfg *config.Config, logger *slog.Logger, useMocks bool) (*backend, error) {
	b := &backend{http: &http.Client{}, registry: collectors.NewRegistry()}

	baseURL := cfg.GitHub.BaseURL
	if useMocks {
		u, stop, err := startMockAPI(logger)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, stop)
		baseURL = u
	}

	client, err := github.NewClient(github.Config{
		BaseURL:   baseURL,
		UserAgent: cfg.GitHub.UserAgent,
		Logger:    logger,
	}, b.http)
	if err != nil {
		b.Close()
		return nil, err
	}
	b.client = client
	b.collector = github.NewCollector(client, b.registry, cfg.GitHub.DefaultCount)
	if err := b.registry.Register(b.collector); err != nil {
		b.Close()
		return nil, err
	}

	if cfg.Image.DiskCache {
		store, err := cache.Open(cache.Config{
			Dir: filepath.Join(cfg.General.CacheDir, "avatars"),
			TTL: avatarTTL,
		})
		if err != nil {
			logger.Warn("avatar disk cache disabled", "err", err)
		} else {
			b.store = store
			b.closers = append(b.closers, func() { _ = store.Close() })
		}
	}

	logger.Info("backend ready", "github", client.BaseURL(), "mocks", useMocks, "disk_cache", b.store != nil)
	return b, nil
}

// loader returns an avatar loader drawing with p, or nil when images are
// turned off.
func (b *backend) loader(cfg *config.Config, p terminal.Protocol, size terminal.Size, logger *slog.Logger) (*avatar.Loader, error) {
	if p == terminal.ProtocolNone {
		return nil, nil
	}
	return avatar.NewLoader(avatar.Config{
		HTTPClient: b.http,
		Store:      b.store,
		Renderer:   dimage.NewRenderer(p, size.CellW, size.CellH, cfg.Image.MaxCacheSizeMB),
		Workers:    cfg.Image.Workers,
		Cols:       cfg.Image.AvatarWidth,
		Rows:       cfg.Image.AvatarHeight,
		Logger:     logger,
	})
}

func (b *backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
	b.closers = nil
}

// startMockAPI serves the fake API on a loopback port and returns its base
// URL.
func startMockAPI(logger *slog.Logger) (string, func(), error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, fmt.Errorf("listen for mock api: %w", err)
	}
	srv := &http.Server{
		Handler: mockapi.New(mockapi.WithDelay(func(perPage int) time.Duration {
			return time.Duration(perPage) * mockDelayPerUser
		})).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("mock api stopped", "err", err)
		}
	}()

	stop := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
	url := "http://" + ln.Addr().String() + "/"
	logger.Info("mock api listening", "url", url)
	return url, stop, nil
}
