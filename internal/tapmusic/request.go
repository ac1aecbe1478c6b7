package tapmusic

import (
	"strings"
	"time"

	"github.com/handiism/tapmusic-cli/internal/model"
)

// DefaultBaseURL is the tapmusic collage endpoint.
const DefaultBaseURL = "https://tapmusic.net/collage.php"

// Options configures request building.
type Options struct {
	// BaseURL is the collage endpoint. Empty means DefaultBaseURL.
	BaseURL string

	// AllowOverall accepts "all" as a period.
	AllowOverall bool

	// Now is the clock used for generated file names. Nil means time.Now.
	Now func() time.Time
}

// DefaultOptions returns Options for the public tapmusic service.
func DefaultOptions() Options {
	return Options{
		BaseURL:      DefaultBaseURL,
		AllowOverall: true,
	}
}

// Request is a validated collage request together with its URL.
type Request struct {
	model.CollageRequest

	// URL is the full GET URL for the collage.
	URL string
}

// NewRequest validates in and builds the collage URL and destination path.
//
// It performs no I/O. Any invalid field yields a *model.ValidationError
// and no Request.
func NewRequest(in model.Input, opts Options) (*Request, error) {
	collage, err := model.NewCollageRequest(in, &model.RequestConfig{
		AllowOverall: opts.AllowOverall,
		Now:          opts.Now,
	})
	if err != nil {
		return nil, err
	}

	return &Request{
		CollageRequest: *collage,
		URL:            BuildURL(opts.BaseURL, collage),
	}, nil
}

// BuildURL assembles the collage URL for req.
//
// Parameters always come in the order user, type, size, caption, playcount.
// caption and playcount are only present when enabled; the service reads a
// missing parameter as false. Values are concatenated as they are, without
// URL encoding.
func BuildURL(base string, req *model.CollageRequest) string {
	if base == "" {
		base = DefaultBaseURL
	}

	var sb strings.Builder
	sb.WriteString(base)
	sb.WriteString("?user=")
	sb.WriteString(req.Username)
	sb.WriteString("&type=")
	sb.WriteString(string(req.Period))
	sb.WriteString("&size=")
	sb.WriteString(req.Size.Token())

	if req.ShowCaption {
		sb.WriteString("&caption=true")
	}
	if req.ShowPlaycount {
		sb.WriteString("&playcount=true")
	}

	return sb.String()
}
