package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/tinyland/lab/dayboard/pkg/mockapi"
)

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL}, srv.Client())
	require.NoError(t, err)
	return c
}

func TestListUsersPerPage(t *testing.T) {
	var gotQuery, gotAgent string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotAgent = r.Header.Get("User-Agent")
		mockapi.New().Handler().ServeHTTP(w, r)
	})
	c := newTestClient(t, h)

	users, err := c.ListUsers(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "per_page=5", gotQuery)
	assert.Equal(t, defaultUserAgent, gotAgent)

	want := []string{"mojombo", "defunkt", "pjhyett", "wycats", "ezmobius"}
	require.Len(t, users, len(want))
	for i, u := range users {
		assert.Equal(t, want[i], u.Login)
		assert.Contains(t, u.AvatarURL, "/avatars/"+want[i]+".png")
	}
}

func TestListUsersDefaultCount(t *testing.T) {
	c := newTestClient(t, mockapi.New().Handler())
	users, err := c.ListUsers(context.Background(), DefaultCount)
	require.NoError(t, err)
	assert.Len(t, users, DefaultCount)
}

func TestListUsersClampsCount(t *testing.T) {
	var gotQuery string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		mockapi.New().Handler().ServeHTTP(w, r)
	})
	c := newTestClient(t, h)

	users, err := c.ListUsers(context.Background(), 500)
	require.NoError(t, err)
	assert.Equal(t, "per_page=100", gotQuery)
	assert.Len(t, users, MaxPerPage)
}

func TestListUsersInvalidCount(t *testing.T) {
	srv := mockapi.New()
	c := newTestClient(t, srv.Handler())

	for _, n := range []int{0, -1} {
		_, err := c.ListUsers(context.Background(), n)
		assert.True(t, errors.Is(err, ErrInvalidCount), "count %d: err = %v", n, err)
	}
	assert.Zero(t, srv.UserRequests(), "invalid count must not hit the network")
}

func TestListUsersDropsDuplicates(t *testing.T) {
	c := newTestClient(t, mockapi.New(mockapi.WithLogins("a", "b", "a", "c")).Handler())

	users, err := c.ListUsers(context.Background(), 10)
	require.NoError(t, err)

	var logins []string
	for _, u := range users {
		logins = append(logins, u.Login)
	}
	assert.Equal(t, []string{"a", "b", "c"}, logins)
}

func TestListUsersNeverExceedsCount(t *testing.T) {
	// A server that ignores per_page.
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.URL.RawQuery = "per_page=50"
		mockapi.New().Handler().ServeHTTP(w, r)
	})
	c := newTestClient(t, h)

	users, err := c.ListUsers(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, users, 3)
}

func TestListUsersHTTPError(t *testing.T) {
	c := newTestClient(t, mockapi.New(mockapi.WithStatus(http.StatusForbidden)).Handler())
	_, err := c.ListUsers(context.Background(), 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list users")
}

func TestListUsersMalformedJSON(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"not":"an array"`))
	})
	c := newTestClient(t, h)
	_, err := c.ListUsers(context.Background(), 5)
	assert.Error(t, err)
}

func TestNewClientBaseURL(t *testing.T) {
	c, err := NewClient(Config{}, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.BaseURL())

	c, err = NewClient(Config{BaseURL: "http://127.0.0.1:9999"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9999/", c.BaseURL())

	_, err = NewClient(Config{BaseURL: "not a url"}, nil)
	assert.Error(t, err)
}

func TestClampCount(t *testing.T) {
	tests := []struct {
		in      int
		want    int
		wantErr bool
	}{
		{1, 1, false},
		{30, 30, false},
		{100, 100, false},
		{101, 100, false},
		{0, 0, true},
		{-5, 0, true},
	}
	for _, tt := range tests {
		got, err := ClampCount(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidCount, "ClampCount(%d)", tt.in)
			continue
		}
		assert.NoError(t, err)
		assert.Equal(t, tt.want, got, "ClampCount(%d)", tt.in)
	}
}
