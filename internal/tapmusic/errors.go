package tapmusic

import (
	"bytes"
	"fmt"
)

// ServiceErrorKind classifies an error page returned by tapmusic.
type ServiceErrorKind int

const (
	// NoHistory means the user has no top albums for the requested period.
	NoHistory ServiceErrorKind = iota + 1

	// UnknownUser means the Last.fm user does not exist or the Last.fm API is down.
	UnknownUser

	// PermissionDenied means the requested size needs a premium account.
	PermissionDenied
)

// String returns a short name for the kind.
func (k ServiceErrorKind) String() string {
	switch k {
	case NoHistory:
		return "no history"
	case UnknownUser:
		return "unknown user"
	case PermissionDenied:
		return "permission denied"
	}
	return fmt.Sprintf("ServiceErrorKind(%d)", int(k))
}

// marker pairs a body substring with the error kind it signals.
type marker struct {
	text []byte
	kind ServiceErrorKind
}

// markers are checked in order; the first match wins.
var markers = []marker{
	{[]byte("Error 90"), NoHistory},
	{[]byte("Error 99"), UnknownUser},
	{[]byte("You don't have permission to do this!"), PermissionDenied},
}

// ServiceError is a failure reported by tapmusic in the response body.
type ServiceError struct {
	Kind ServiceErrorKind
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	return "tapmusic: " + e.Kind.String() + ": " + e.Guidance()
}

// Guidance returns advice for the user on how to get a collage anyway.
func (e *ServiceError) Guidance() string {
	switch e.Kind {
	case NoHistory:
		return "user does not have any top albums for the selected time period; choose a different time period or listen to more music"
	case UnknownUser:
		return "Last.fm user does not exist or the Last.fm API is currently unavailable"
	case PermissionDenied:
		return "the requested collage size requires a tapmusic premium account; try size 3, 4 or 5"
	}
	return "unrecognized service error"
}

// Is makes errors.Is match any *ServiceError of the same kind.
func (e *ServiceError) Is(target error) bool {
	t, ok := target.(*ServiceError)
	return ok && t.Kind == e.Kind
}

// Sentinel values for errors.Is.
var (
	ErrNoHistory        = &ServiceError{Kind: NoHistory}
	ErrUnknownUser      = &ServiceError{Kind: UnknownUser}
	ErrPermissionDenied = &ServiceError{Kind: PermissionDenied}
)

// DetectServiceError looks for known error markers in a response body.
//
// It returns a *ServiceError for the first matching marker, checked in the
// order "Error 90", "Error 99", then the permission message. It returns nil
// when the body carries no marker and can be treated as image data.
func DetectServiceError(body []byte) error {
	for _, m := range markers {
		if bytes.Contains(body, m.text) {
			return &ServiceError{Kind: m.kind}
		}
	}
	return nil
}
