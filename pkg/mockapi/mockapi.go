// Package mockapi serves a fake GitHub /users endpoint and generated avatar
// images. It backs --use-mocks, the mock-server subcommand and HTTP tests.
package mockapi

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gorilla/mux"
)

const (
	defaultPerPage = 30
	maxPerPage     = 100
	defaultAvatar  = 100
	maxAvatar      = 460
)

// SeedLogins are the first accounts of the real listing, in id order.
var SeedLogins = []string{
	"mojombo", "defunkt", "pjhyett", "wycats", "ezmobius",
	"ivey", "evanphx", "vanpelt", "wayneeseguin", "brynary",
}

// Option configures a Server.
type Option func(*Server)

// WithLogins replaces the generated login sequence. The listing repeats
// entries verbatim, so duplicates are served as given.
func WithLogins(logins ...string) Option {
	return func(s *Server) { s.logins = logins }
}

// WithDelay delays each /users response by fn(perPage).
func WithDelay(fn func(perPage int) time.Duration) Option {
	return func(s *Server) { s.delay = fn }
}

// WithStatus makes /users fail with the given HTTP status.
func WithStatus(code int) Option {
	return func(s *Server) { s.status = code }
}

// Server is the fake API.
type Server struct {
	logins []string
	delay  func(int) time.Duration
	status int

	userRequests   atomic.Int64
	avatarRequests atomic.Int64
}

// New returns a Server with the default login sequence.
func New(opts ...Option) *Server {
	s := &Server{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.HandleFunc("/users", s.users).Methods(http.MethodGet)
	r.HandleFunc("/avatars/{file}", s.avatar).Methods(http.MethodGet)
	return r
}

// UserRequests returns how many /users requests were served.
func (s *Server) UserRequests() int64 { return s.userRequests.Load() }

// AvatarRequests returns how many avatar requests were served.
func (s *Server) AvatarRequests() int64 { return s.avatarRequests.Load() }

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

type userJSON struct {
	Login     string `json:"login"`
	ID        int64  `json:"id"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
	Type      string `json:"type"`
	SiteAdmin bool   `json:"site_admin"`
}

func (s *Server) users(w http.ResponseWriter, r *http.Request) {
	s.userRequests.Add(1)

	perPage := parseBounded(r.URL.Query().Get("per_page"), defaultPerPage, maxPerPage)
	if s.delay != nil {
		select {
		case <-time.After(s.delay(perPage)):
		case <-r.Context().Done():
			return
		}
	}

	if s.status != 0 {
		http.Error(w, `{"message":"mock failure"}`, s.status)
		return
	}

	base := "http://" + r.Host
	out := make([]userJSON, 0, perPage)
	for i := 0; i < perPage; i++ {
		login, ok := s.login(i)
		if !ok {
			break
		}
		out = append(out, userJSON{
			Login:     login,
			ID:        int64(i + 1),
			AvatarURL: base + "/avatars/" + login + ".png",
			HTMLURL:   "https://github.com/" + login,
			Type:      "User",
		})
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(out)
}

func (s *Server) login(i int) (string, bool) {
	if s.logins != nil {
		if i >= len(s.logins) {
			return "", false
		}
		return s.logins[i], true
	}
	if i < len(SeedLogins) {
		return SeedLogins[i], true
	}
	return fmt.Sprintf("user%03d", i+1), true
}

func (s *Server) avatar(w http.ResponseWriter, r *http.Request) {
	s.avatarRequests.Add(1)

	login := strings.TrimSuffix(mux.Vars(r)["file"], ".png")
	if login == "" {
		http.NotFound(w, r)
		return
	}
	size := parseBounded(r.URL.Query().Get("s"), defaultAvatar, maxAvatar)

	w.Header().Set("Content-Type", "image/png")
	if err := imaging.Encode(w, Identicon(login, size), imaging.PNG); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Identicon draws a mirrored 5x5 block pattern derived from login.
func Identicon(login string, size int) image.Image {
	sum := sha256.Sum256([]byte(login))
	fg := color.NRGBA{R: sum[0], G: sum[1], B: sum[2], A: 0xff}
	bg := color.NRGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}

	img := imaging.New(5, 5, bg)
	for y := 0; y < 5; y++ {
		for x := 0; x < 3; x++ {
			if sum[3+y*3+x]&1 == 0 {
				continue
			}
			img.Set(x, y, fg)
			img.Set(4-x, y, fg)
		}
	}
	return imaging.Resize(img, size, size, imaging.NearestNeighbor)
}

func parseBounded(raw string, def, max int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}
