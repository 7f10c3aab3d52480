package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/blacktop/lipost/internal/linkedin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	method string
	uri    string
	header http.Header
	body   []byte
}

func newServer(t *testing.T, status int, reply string) (*httptest.Server, *[]captured) {
	t.Helper()
	var seen []captured
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		seen = append(seen, captured{method: r.Method, uri: r.URL.RequestURI(), header: r.Header.Clone(), body: body})
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return srv, &seen
}

func TestGet(t *testing.T) {
	srv, seen := newServer(t, http.StatusOK, `{"id":"abc"}`)
	c := New(Config{BaseURL: srv.URL + "/v2/", Token: "tok"})

	body, err := c.Get(context.Background(), "/me")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"abc"}`, string(body))

	require.Len(t, *seen, 1)
	req := (*seen)[0]
	assert.Equal(t, http.MethodGet, req.method)
	assert.Equal(t, "/v2/me", req.uri)
	assert.Equal(t, "Bearer tok", req.header.Get("Authorization"))
	assert.Equal(t, "2.0.0", req.header.Get("X-Restli-Protocol-Version"))
}

func TestPostKeepsQuery(t *testing.T) {
	srv, seen := newServer(t, http.StatusOK, `{}`)
	c := New(Config{BaseURL: srv.URL + "/v2", Token: "tok"})

	_, err := c.Post(context.Background(), "/assets?action=registerUpload", []byte(`{"a":1}`))
	require.NoError(t, err)

	req := (*seen)[0]
	assert.Equal(t, http.MethodPost, req.method)
	assert.Equal(t, "/v2/assets?action=registerUpload", req.uri)
	assert.Equal(t, "application/json", req.header.Get("Content-Type"))
	assert.Equal(t, `{"a":1}`, string(req.body))
}

func TestPostBinaryUsesAbsoluteURL(t *testing.T) {
	api, apiSeen := newServer(t, http.StatusOK, `{}`)
	upload, uploadSeen := newServer(t, http.StatusCreated, ``)
	c := New(Config{BaseURL: api.URL + "/v2", Token: "tok"})

	data := []byte{0xff, 0xd8, 0xff, 0xe0}
	_, err := c.PostBinary(context.Background(), upload.URL+"/slot/1", data, map[string]string{"Content-Type": "image/jpeg"})
	require.NoError(t, err)

	assert.Empty(t, *apiSeen)
	require.Len(t, *uploadSeen, 1)
	req := (*uploadSeen)[0]
	assert.Equal(t, "/slot/1", req.uri)
	assert.Equal(t, "Bearer tok", req.header.Get("Authorization"))
	assert.Equal(t, "image/jpeg", req.header.Get("Content-Type"))
	assert.Equal(t, data, req.body)
}

func TestErrorStatus(t *testing.T) {
	srv, seen := newServer(t, http.StatusUnprocessableEntity, `{"message":"duplicate"}`)
	c := New(Config{BaseURL: srv.URL, Token: "tok"})

	_, err := c.Post(context.Background(), "/ugcPosts", []byte(`{}`))

	var tErr *linkedin.TransportError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, http.StatusUnprocessableEntity, tErr.StatusCode)
	assert.Equal(t, `{"message":"duplicate"}`, string(tErr.Body))
	assert.Contains(t, tErr.Error(), "status 422")
	assert.Len(t, *seen, 1, "no retries")
}

func TestConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := New(Config{BaseURL: base, Token: "tok", Timeout: time.Second})
	_, err := c.Get(context.Background(), "/me")

	var tErr *linkedin.TransportError
	require.ErrorAs(t, err, &tErr)
	assert.Zero(t, tErr.StatusCode)
	assert.Error(t, tErr.Err)
}
