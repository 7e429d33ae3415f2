package mockapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getUsers(t *testing.T, h http.Handler, query string) []userJSON {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/users"+query, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var out []userJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func TestUsersDefaultPage(t *testing.T) {
	users := getUsers(t, New().Handler(), "")
	require.Len(t, users, defaultPerPage)
	assert.Equal(t, "mojombo", users[0].Login)
	assert.Equal(t, "user011", users[10].Login)
	assert.Equal(t, "http://example.com/avatars/mojombo.png", users[0].AvatarURL)
}

func TestUsersPerPage(t *testing.T) {
	h := New().Handler()
	tests := []struct {
		query string
		want  int
	}{
		{"?per_page=5", 5},
		{"?per_page=100", 100},
		{"?per_page=250", maxPerPage},
		{"?per_page=0", defaultPerPage},
		{"?per_page=abc", defaultPerPage},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Len(t, getUsers(t, h, tt.query), tt.want)
		})
	}
}

func TestUsersCustomLogins(t *testing.T) {
	s := New(WithLogins("a", "b", "a"))
	users := getUsers(t, s.Handler(), "?per_page=10")
	require.Len(t, users, 3)
	assert.Equal(t, "a", users[2].Login)
	assert.EqualValues(t, 1, s.UserRequests())
}

func TestUsersFailure(t *testing.T) {
	h := New(WithStatus(http.StatusServiceUnavailable)).Handler()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/users", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestAvatarPNG(t *testing.T) {
	s := New()
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/avatars/defunkt.png?s=40", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))

	img, err := imaging.Decode(rr.Body)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 40, img.Bounds().Dy())
	assert.EqualValues(t, 1, s.AvatarRequests())
}

func TestIdenticonDeterministic(t *testing.T) {
	a := Identicon("wycats", 10)
	b := Identicon("wycats", 10)
	c := Identicon("ivey", 10)

	same := true
	differs := false
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if a.At(x, y) != b.At(x, y) {
				same = false
			}
			if a.At(x, y) != c.At(x, y) {
				differs = true
			}
		}
	}
	assert.True(t, same, "identicon not deterministic")
	assert.True(t, differs, "different logins produced identical identicons")
}

func TestHealth(t *testing.T) {
	rr := httptest.NewRecorder()
	New().Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestMethodNotAllowed(t *testing.T) {
	rr := httptest.NewRecorder()
	New().Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/users", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
