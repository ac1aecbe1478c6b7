package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Fetch(t *testing.T) {
	body := bytes.Repeat([]byte{0xff, 0xd8}, 4096)
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(body)
	}))
	defer srv.Close()

	client := NewClient("")

	var lastRead int64
	resp, err := client.Fetch(context.Background(), srv.URL, func(read, total int64) {
		lastRead = read
	})
	require.NoError(t, err)
	require.NoError(t, resp.CheckStatus())

	assert.Equal(t, body, resp.Body)
	assert.Equal(t, "image/jpeg", resp.ContentType)
	assert.Equal(t, int64(len(body)), lastRead)
	assert.Equal(t, DefaultUserAgent, gotUA)
}

func TestClient_CustomUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	_, err := NewClient("collage-bot/1.0").Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "collage-bot/1.0", gotUA)
}

func TestClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient("")

	resp, err := client.Fetch(context.Background(), srv.URL, nil)
	require.NoError(t, err, "Fetch should not judge the status code")

	var statusErr *StatusError
	require.ErrorAs(t, resp.CheckStatus(), &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.Code)

	_, err = client.Get(context.Background(), srv.URL)
	assert.ErrorAs(t, err, &statusErr)
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := NewClient("")
	client.httpClient.Timeout = 50 * time.Millisecond

	_, err := client.Fetch(context.Background(), srv.URL, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTimeout), "got %v", err)
}

func TestClient_TooManyRedirects(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, srv.URL+"/again", http.StatusFound)
	}))
	defer srv.Close()

	_, err := NewClient("").Fetch(context.Background(), srv.URL, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTooManyRedirects), "got %v", err)
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient("").Fetch(context.Background(), url, nil)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, url, transportErr.URL)
	assert.False(t, errors.Is(err, ErrTimeout))
}

func TestClient_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := NewClient("").Fetch(ctx, srv.URL, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProgressWriter(t *testing.T) {
	var buf bytes.Buffer
	var calls int
	pw := &ProgressWriter{
		Writer: &buf,
		Total:  10,
		OnUpdate: func(written, total int64) {
			calls++
			assert.Equal(t, int64(10), total)
		},
	}

	pw.Write([]byte("hello"))
	pw.Write([]byte("world"))

	assert.Equal(t, int64(10), pw.Written)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "helloworld", buf.String())
}
