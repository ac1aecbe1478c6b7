// Package collage fetches a collage from tapmusic and saves it.
//
// Fetcher ties the pieces together: the HTTP client, the service error
// detection of package tapmusic and the exclusive file write of package
// ioutils. Progress is reported through a callback:
//
//	fetcher := collage.NewFetcher(settings, func(e collage.ProgressEvent) {
//	    fmt.Println(e.Message)
//	})
//	result, err := fetcher.Fetch(ctx, req)
//
// Errors returned by Fetch keep their type, so callers can tell them apart
// with errors.Is and errors.As:
//   - *tapmusic.ServiceError: the service sent an error page
//   - http.ErrTimeout, http.ErrTooManyRedirects, *http.TransportError,
//     *http.StatusError: the request failed
//   - ioutils.ErrFileExists: the destination is taken
//   - ErrEmptyResponse: the service sent nothing
package collage
