package collage

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/handiism/tapmusic-cli/internal/config"
	"github.com/handiism/tapmusic-cli/internal/http"
	ioutils "github.com/handiism/tapmusic-cli/internal/io"
	"github.com/handiism/tapmusic-cli/internal/tapmusic"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a fetch progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// ErrEmptyResponse is returned when the service answers with an empty body.
var ErrEmptyResponse = errors.New("tapmusic returned an empty response")

// Result describes a saved collage.
type Result struct {
	// Path is where the collage was written.
	Path string

	// Bytes is the size of the collage in bytes.
	Bytes int64

	// ContentType is the Content-Type the service reported.
	ContentType string
}

// Fetcher downloads a collage and saves it to disk.
//
// A Fetcher makes exactly one request per Fetch call and never retries.
type Fetcher struct {
	httpClient *http.Client

	receivedBytes int64
	totalBytes    int64

	onProgress func(ProgressEvent)
}

// NewFetcher creates a new Fetcher.
func NewFetcher(settings *config.Settings, onProgress func(ProgressEvent)) *Fetcher {
	return &Fetcher{
		httpClient: http.NewClient(settings.UserAgent),
		onProgress: onProgress,
	}
}

// Fetch requests the collage for req and writes it to req.Destination.
//
// The steps are:
//  1. One GET of req.URL, reading the full body
//  2. Error-marker detection (*tapmusic.ServiceError, nothing is written)
//  3. Status check (*http.StatusError)
//  4. Exclusive create of req.Destination (ioutils.ErrFileExists if taken)
//
// Transport failures are returned as classified by the http package.
func (f *Fetcher) Fetch(ctx context.Context, req *tapmusic.Request) (*Result, error) {
	atomic.StoreInt64(&f.receivedBytes, 0)
	atomic.StoreInt64(&f.totalBytes, -1)

	f.progress(ProgressEvent{Message: fmt.Sprintf("Requesting %s collage of %s for %s", req.Size.Token(), req.Period, req.Username), Level: LevelInfo})
	f.progress(ProgressEvent{Message: fmt.Sprintf("GET %s", req.URL), Level: LevelVerbose})

	resp, err := f.httpClient.Fetch(ctx, req.URL, func(read, total int64) {
		atomic.StoreInt64(&f.receivedBytes, read)
		atomic.StoreInt64(&f.totalBytes, total)
	})
	if err != nil {
		f.progress(ProgressEvent{Message: fmt.Sprintf("Request failed: %v", err), Level: LevelError})
		return nil, err
	}

	f.progress(ProgressEvent{Message: fmt.Sprintf("Received %d bytes (%s)", len(resp.Body), resp.Status), Level: LevelVerbose})

	if err := tapmusic.DetectServiceError(resp.Body); err != nil {
		f.progress(ProgressEvent{Message: err.Error(), Level: LevelError})
		return nil, err
	}
	if err := resp.CheckStatus(); err != nil {
		f.progress(ProgressEvent{Message: err.Error(), Level: LevelError})
		return nil, err
	}
	if len(resp.Body) == 0 {
		f.progress(ProgressEvent{Message: ErrEmptyResponse.Error(), Level: LevelError})
		return nil, ErrEmptyResponse
	}

	if err := Save(ctx, req.Destination, resp.Body); err != nil {
		f.progress(ProgressEvent{Message: fmt.Sprintf("Error saving collage: %v", err), Level: LevelError})
		return nil, err
	}

	f.progress(ProgressEvent{Message: fmt.Sprintf("Saved collage to %s", req.Destination), Level: LevelSuccess})

	return &Result{
		Path:        req.Destination,
		Bytes:       int64(len(resp.Body)),
		ContentType: resp.ContentType,
	}, nil
}

// Save writes collage data to path, creating missing parent directories.
// It never overwrites: an existing file yields ioutils.ErrFileExists.
func Save(ctx context.Context, path string, data []byte) error {
	if err := ioutils.EnsureParentDir(path); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return ioutils.WriteFileExclusive(ctx, path, data)
}

// GetProgress returns the bytes received so far and the expected total,
// which is -1 while unknown.
func (f *Fetcher) GetProgress() (received, total int64) {
	return atomic.LoadInt64(&f.receivedBytes), atomic.LoadInt64(&f.totalBytes)
}

func (f *Fetcher) progress(event ProgressEvent) {
	if f.onProgress != nil {
		f.onProgress(event)
	}
}
