package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultUserAgent is sent when no User-Agent is configured.
	DefaultUserAgent = "tapmusic-cli"

	// DefaultTimeout bounds the whole request, body included.
	DefaultTimeout = 60 * time.Second

	// MaxRedirects is the number of redirects followed before giving up.
	MaxRedirects = 10
)

// Client wraps HTTP operations with tapmusic-specific configuration.
//
// Client provides:
//   - Configured User-Agent header
//   - Timeout handling
//   - A redirect limit
//   - Classified transport errors (see ErrTimeout, ErrTooManyRedirects,
//     TransportError and StatusError)
//   - Body download with progress tracking
//
// Example usage:
//
//	client := NewClient("")
//
//	resp, err := client.Fetch(ctx, collageURL, func(read, total int64) {
//	    fmt.Printf("%d / %d bytes\n", read, total)
//	})
//	if errors.Is(err, ErrTimeout) {
//	    // report and give up
//	}
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new HTTP client.
//
// The client is configured with:
//   - 60 second timeout
//   - at most 10 redirects
//   - the given User-Agent header, or "tapmusic-cli" when empty
func NewClient(userAgent string) *Client {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		httpClient: &http.Client{
			Timeout:       DefaultTimeout,
			CheckRedirect: limitRedirects,
		},
		userAgent: userAgent,
	}
}

func limitRedirects(req *http.Request, via []*http.Request) error {
	if len(via) >= MaxRedirects {
		return fmt.Errorf("%w: stopped after %d redirects", ErrTooManyRedirects, len(via))
	}
	return nil
}

// ProgressWriter wraps a writer to track download progress.
//
// Use this to monitor large downloads by providing an OnUpdate callback
// that receives the current bytes written and total expected bytes.
//
// Example:
//
//	pw := &ProgressWriter{
//	    Writer: &buf,
//	    Total:  contentLength,
//	    OnUpdate: func(written, total int64) {
//	        fmt.Printf("%d / %d bytes\n", written, total)
//	    },
//	}
//	io.Copy(pw, response.Body)
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Total is the expected total bytes (from Content-Length header).
	// -1 when unknown.
	Total int64

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with current progress.
	// Parameters are (bytesWritten, totalExpected).
	OnUpdate func(written, total int64)
}

// Write implements io.Writer, tracking progress and calling OnUpdate.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written, pw.Total)
	}
	return n, err
}

// Response is a fully read HTTP response.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Status is the status line text, e.g. "200 OK".
	Status string

	// ContentType is the Content-Type header value.
	ContentType string

	// Body is the complete response body.
	Body []byte
}

// CheckStatus returns a *StatusError unless the status code is 2xx.
func (r *Response) CheckStatus() error {
	if r.StatusCode < 200 || r.StatusCode > 299 {
		return &StatusError{Code: r.StatusCode, Status: r.Status}
	}
	return nil
}

// Fetch performs a single GET request and reads the whole body into memory.
//
// The body is streamed from the connection through an optional progress
// callback called with (bytesRead, contentLength); contentLength is -1
// when the server does not announce it. Pass nil to disable progress
// tracking.
//
// Fetch does not judge the status code; use Response.CheckStatus for that.
// Transport failures are classified:
//   - ErrTimeout when the deadline is exceeded
//   - ErrTooManyRedirects when the redirect limit is hit
//   - *TransportError for everything else (DNS, refused connections, ...)
//
// Cancellation of ctx is returned as ctx.Err(), unwrapped.
func (c *Client) Fetch(ctx context.Context, url string, onProgress func(read, total int64)) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classify(ctx, url, err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	var writer io.Writer = &buf
	if onProgress != nil {
		writer = &ProgressWriter{
			Writer:   &buf,
			Total:    resp.ContentLength,
			OnUpdate: onProgress,
		}
	}

	if _, err := io.Copy(writer, resp.Body); err != nil {
		return nil, classify(ctx, url, err)
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		Status:      resp.Status,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        buf.Bytes(),
	}, nil
}

// Get performs a GET request and returns the response body as bytes.
//
// Returns an error if:
//   - The request fails
//   - The response status is not 2xx
//   - Reading the body fails
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.Fetch(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	if err := resp.CheckStatus(); err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func classify(ctx context.Context, url string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(ctxErr, context.DeadlineExceeded) {
		return ctxErr
	}
	if errors.Is(err, ErrTooManyRedirects) {
		return err
	}

	var timeout interface{ Timeout() bool }
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &timeout) && timeout.Timeout()) {
		return fmt.Errorf("%w: %s: %v", ErrTimeout, url, err)
	}

	return &TransportError{URL: url, Err: err}
}
