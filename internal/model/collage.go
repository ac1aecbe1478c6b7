package model

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// TimestampLayout is the layout of the timestamp in generated collage file names.
const TimestampLayout = "2006-01-02_150405"

var imageExtensions = []string{".jpg", ".jpeg", ".png"}

// Input holds the raw, unvalidated collage arguments as typed by the user.
type Input struct {
	Username  string
	Size      string
	Period    string
	Caption   string // "t" or "f"
	Playcount string // "t" or "f"

	// Dir is the output directory used when File is empty.
	Dir string

	// File is an optional custom output path. It must end in .jpg, .jpeg or .png.
	File string
}

// RequestConfig controls how a CollageRequest is validated and where it is saved.
type RequestConfig struct {
	// AllowOverall accepts "all" as a period.
	AllowOverall bool

	// Now returns the time used in generated file names. Defaults to time.Now.
	Now func() time.Time
}

// CollageRequest is a validated request for one collage.
//
// A CollageRequest only exists in a fully valid state: NewCollageRequest
// either returns a complete value or a *ValidationError. Size and Period
// always hold enumerated wire values.
//
// Example:
//
//	req, err := NewCollageRequest(Input{
//	    Username: "alice", Size: "4", Period: "1m",
//	    Caption: "t", Playcount: "f", Dir: "/tmp",
//	}, &RequestConfig{AllowOverall: true})
//	// req.Size.Token() = "4x4"
//	// req.Period       = "1month"
//	// req.Destination  = "/tmp/alice_1month_4x4_2024-05-01_134501.jpg"
type CollageRequest struct {
	// Username is the Last.fm user name. It is passed through unmodified.
	Username string

	// Size is the grid dimension.
	Size Size

	// Period is the listening-history window as a wire token.
	Period Period

	// ShowCaption asks the service to print album/artist captions.
	ShowCaption bool

	// ShowPlaycount asks the service to print playcounts.
	ShowPlaycount bool

	// Destination is the local file the collage is written to.
	Destination string
}

// NewCollageRequest validates in and builds a CollageRequest from it.
//
// Validation happens in a fixed order: size, period, caption, playcount,
// then the custom file extension or output directory. The first failing
// field is reported. The destination timestamp is taken from cfg.Now at
// the moment the destination is resolved.
func NewCollageRequest(in Input, cfg *RequestConfig) (*CollageRequest, error) {
	if cfg == nil {
		cfg = &RequestConfig{AllowOverall: true}
	}

	size, err := ParseSize(in.Size)
	if err != nil {
		return nil, err
	}
	period, err := ParsePeriod(in.Period, cfg.AllowOverall)
	if err != nil {
		return nil, err
	}
	caption, err := ParseFlag("caption", in.Caption)
	if err != nil {
		return nil, err
	}
	playcount, err := ParseFlag("playcount", in.Playcount)
	if err != nil {
		return nil, err
	}
	if err := validateDestination(in.Dir, in.File); err != nil {
		return nil, err
	}

	now := time.Now
	if cfg.Now != nil {
		now = cfg.Now
	}

	return &CollageRequest{
		Username:      in.Username,
		Size:          size,
		Period:        period,
		ShowCaption:   caption,
		ShowPlaycount: playcount,
		Destination:   ResolveDestination(in.Username, period, size, in.Dir, in.File, now()),
	}, nil
}

// ParseFlag converts a "t"/"f" argument to a bool. field names the argument
// in the returned *ValidationError.
func ParseFlag(field, raw string) (bool, error) {
	switch raw {
	case "t":
		return true, nil
	case "f":
		return false, nil
	}
	return false, &ValidationError{Field: field, Value: raw, Options: []string{"t", "f"}}
}

// IsImageFile reports whether path ends in .jpg, .jpeg or .png, ignoring case.
func IsImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range imageExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// ResolveDestination decides where a collage is saved.
//
// A custom file is returned verbatim. Otherwise the generated name
// "{user}_{period}_{NxN}_{timestamp}.jpg" is joined onto dir, which drops
// any trailing separator of dir.
func ResolveDestination(username string, period Period, size Size, dir, file string, at time.Time) string {
	if file != "" {
		return file
	}
	return filepath.Join(dir, GeneratedFileName(username, period, size, at))
}

// GeneratedFileName returns the default collage file name.
//
// Example:
//
//	GeneratedFileName("alice", PeriodMonth, Size4, t) // "alice_1month_4x4_2024-05-01_134501.jpg"
func GeneratedFileName(username string, period Period, size Size, at time.Time) string {
	return sanitizeFileName(username) + "_" + string(period) + "_" + size.Token() + "_" + at.Format(TimestampLayout) + ".jpg"
}

func validateDestination(dir, file string) error {
	if file != "" {
		if !IsImageFile(file) {
			return &ValidationError{Field: "file", Value: file, Options: imageExtensions}
		}
		return nil
	}

	if strings.TrimSpace(dir) == "" {
		return &ValidationError{Field: "dir", Value: dir, Hint: "an output directory is required"}
	}
	if IsImageFile(dir) {
		return &ValidationError{Field: "dir", Value: dir, Hint: "not a directory; use -f for a custom file name"}
	}
	return nil
}

var (
	invalidChars   = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots   = regexp.MustCompile(`\.+$`)
	repeatedSpaces = regexp.MustCompile(`\s+`)
)

// sanitizeFileName removes or replaces characters that are invalid in file names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars) are replaced with underscore
//   - Trailing dots are removed (Windows limitation)
//   - Multiple whitespace is collapsed to single space
//   - Trailing whitespace is removed
//
// Usernames made of letters, digits, '_' and '-' pass through unchanged.
func sanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = repeatedSpaces.ReplaceAllString(name, " ")
	return strings.TrimRight(name, " ")
}
