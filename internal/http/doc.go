// Package http provides the HTTP client used to fetch collages.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Timeout and redirect limits
//   - Classification of transport failures
//   - Body downloads with progress tracking
//
// # Basic Usage
//
//	client := http.NewClient("")
//
//	// Fetch a collage, reporting bytes as they arrive
//	resp, err := client.Fetch(ctx, collageURL, func(read, total int64) {
//	    fmt.Printf("%d bytes\n", read)
//	})
//
// # Errors
//
// Fetch returns one of:
//   - ErrTimeout (wrapped) when the request exceeds its deadline
//   - ErrTooManyRedirects (wrapped) when the redirect limit is hit
//   - *TransportError for DNS failures, refused connections, etc.
//
// Response.CheckStatus and Get return *StatusError for non-2xx responses.
//
// # Progress Tracking
//
// The ProgressWriter type can be used to wrap any io.Writer for progress tracking:
//
//	pw := &http.ProgressWriter{
//	    Writer:   file,
//	    Total:    contentLength,
//	    OnUpdate: func(written, total int64) { /* update UI */ },
//	}
package http
