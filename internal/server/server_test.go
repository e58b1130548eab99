package server

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/contacts"
	"github.com/tartampluch/go-contacts/internal/engine"
)

const feed = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nEND:VCALENDAR\r\n"

// get runs one request through the handler with optional header pairs.
func get(srv *FeedServer, method string, headers ...string) *http.Response {
	req := httptest.NewRequest(method, config.RouteRoot, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	srv.handleFeed(w, req)
	return w.Result()
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestHandler_Serves(t *testing.T) {
	srv := NewFeedServer("0")
	srv.Publish([]byte(feed))

	resp := get(srv, http.MethodGet)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.MimeTextCalendar, resp.Header.Get(config.HeaderContentType))
	assert.Equal(t, config.MimeNoSniff, resp.Header.Get(config.HeaderXContentType))
	assert.Equal(t, config.CacheControlPrivate, resp.Header.Get(config.HeaderCacheControl))
	assert.NotEmpty(t, resp.Header.Get(config.HeaderLastModified))
	assert.Regexp(t, `^"[0-9a-f]{64}"$`, resp.Header.Get(config.HeaderETag))
	assert.Equal(t, feed, readBody(t, resp))
}

func TestHandler_Conditional(t *testing.T) {
	srv := NewFeedServer("0")
	srv.Publish([]byte(feed))
	etag := get(srv, http.MethodGet).Header.Get(config.HeaderETag)
	later := time.Now().Add(time.Hour).UTC().Format(http.TimeFormat)
	earlier := time.Now().Add(-time.Hour).UTC().Format(http.TimeFormat)

	tests := []struct {
		name    string
		headers []string
		want    int
	}{
		{"no validators", nil, http.StatusOK},
		{"matching etag", []string{config.HeaderIfNoneMatch, etag}, http.StatusNotModified},
		{"stale etag", []string{config.HeaderIfNoneMatch, `"old"`}, http.StatusOK},
		{"etag wins over date", []string{config.HeaderIfNoneMatch, `"old"`, config.HeaderIfModifiedSince, later}, http.StatusOK},
		{"client copy is newer", []string{config.HeaderIfModifiedSince, later}, http.StatusNotModified},
		{"client copy is older", []string{config.HeaderIfModifiedSince, earlier}, http.StatusOK},
		{"unparsable date", []string{config.HeaderIfModifiedSince, "yesterday"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := get(srv, http.MethodGet, tt.headers...)
			body := readBody(t, resp)

			assert.Equal(t, tt.want, resp.StatusCode)
			if tt.want == http.StatusNotModified {
				assert.Empty(t, body)
			}
		})
	}
}

func TestHandler_Methods(t *testing.T) {
	srv := NewFeedServer("0")
	srv.Publish([]byte(feed))

	head := get(srv, http.MethodHead)
	assert.Equal(t, http.StatusOK, head.StatusCode)
	assert.NotEmpty(t, head.Header.Get(config.HeaderETag))
	assert.Empty(t, readBody(t, head))

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		resp := get(srv, method)
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode, method)
		assert.Equal(t, config.AllowedMethods, resp.Header.Get(config.HeaderAllow), method)
	}
}

func TestHandler_BeforeFirstPublish(t *testing.T) {
	resp := get(NewFeedServer("0"), http.MethodGet)

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, config.RetryAfterSeconds, resp.Header.Get(config.HeaderRetryAfter))
}

func TestPublish(t *testing.T) {
	srv := NewFeedServer("0")

	data := []byte("FIRST")
	srv.Publish(data)
	first := srv.current.Load()
	copy(data, "XXXXX")
	assert.Equal(t, []byte("FIRST"), first.data, "Later caller writes do not leak into the feed")

	srv.Publish([]byte("FIRST"))
	assert.Same(t, first, srv.current.Load(), "Identical content keeps its validators")

	srv.Publish([]byte("SECOND"))
	assert.NotEqual(t, first.etag, srv.current.Load().etag)
}

// TestPublish_Greetings serves a calendar rendered from a directory.
func TestPublish_Greetings(t *testing.T) {
	d := contacts.NewDirectory()
	r := contacts.NewRecord("Ann")
	r.SetBirthday(contacts.NewBirthday(1990, time.June, 12))
	d.AddRecord(r)

	today := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	require.NoError(t, (&engine.CalendarWriter{}).Encode(&buf, d.UpcomingBirthdays(today, 7), today))

	srv := NewFeedServer("0")
	srv.Publish(buf.Bytes())

	body := readBody(t, get(srv, http.MethodGet))
	assert.Contains(t, body, "SUMMARY:Birthday: Ann")
	assert.Contains(t, body, "DTSTART;VALUE=DATE:20240612")
}

// TestFeedServer_ConcurrentPublishAndRead is meant for `go test -race`.
func TestFeedServer_ConcurrentPublishAndRead(t *testing.T) {
	srv := NewFeedServer("0")
	end := time.Now().Add(300 * time.Millisecond)
	var wg sync.WaitGroup

	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; time.Now().Before(end); i++ {
				srv.Publish(fmt.Appendf(nil, "FEED:%d-%d", id, i))
			}
		}(p)
	}

	for r := 0; r < 16; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) {
				resp := get(srv, http.MethodGet)
				_ = resp.Body.Close()
				if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusServiceUnavailable {
					t.Errorf("unexpected status %d", resp.StatusCode)
				}
			}
		}()
	}

	wg.Wait()
}

func TestStart_RequiresPort(t *testing.T) {
	err := NewFeedServer("").Start(context.Background())
	assert.EqualError(t, err, config.ErrPortRequired)
}

// TestStart_Lifecycle binds a real listener and shuts it down on cancel.
func TestStart_Lifecycle(t *testing.T) {
	const port = "18097"
	url := "http://" + config.LocalhostBindAddr + config.AddrSeparator + port + config.RouteRoot

	srv := NewFeedServer(port)
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusServiceUnavailable
	}, 2*time.Second, 20*time.Millisecond, "Server must answer 503 until something is published")

	srv.Publish([]byte(feed))
	resp, err := http.Get(url)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, feed, readBody(t, resp))

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err, "Graceful shutdown returns nil")
	case <-time.After(config.ShutdownTimeout + time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestHandler_Routes(t *testing.T) {
	srv := NewFeedServer("0")
	srv.Publish([]byte(feed))

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/birthdays.ics", nil))

	assert.Equal(t, http.StatusOK, w.Code, "Every path serves the feed")
	assert.Equal(t, feed, w.Body.String())
}
