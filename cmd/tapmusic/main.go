package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/handiism/tapmusic-cli/internal/collage"
	"github.com/handiism/tapmusic-cli/internal/config"
	"github.com/handiism/tapmusic-cli/internal/http"
	ioutils "github.com/handiism/tapmusic-cli/internal/io"
	"github.com/handiism/tapmusic-cli/internal/model"
	"github.com/handiism/tapmusic-cli/internal/tapmusic"
)

const (
	exitOK          = 0
	exitFailure     = 1
	exitUsage       = 2
	exitInterrupted = 130
)

func main() {
	// Handle interrupts
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one collage request and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})).
		With("run", uuid.NewString())

	// Load config
	settings := config.DefaultSettings()
	if opts.configPath != "" {
		settings, err = config.Load(opts.configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error loading config: %v\n", err)
			return exitUsage
		}
		logger.Debug("settings loaded", "path", opts.configPath, "base_url", settings.BaseURL)
	}

	// Apply flags
	caption := settings.DefaultCaption
	if opts.caption != "" {
		caption = opts.caption
	}
	playcount := settings.DefaultPlaycount
	if opts.playcount != "" {
		playcount = opts.playcount
	}

	req, err := tapmusic.NewRequest(model.Input{
		Username:  opts.user,
		Size:      opts.size,
		Period:    opts.period,
		Caption:   caption,
		Playcount: playcount,
		Dir:       opts.dir,
		File:      opts.file,
	}, settings.ToOptions())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprintln(stderr, "Run 'tapmusic -h' for usage.")
		return exitUsage
	}
	logger.Debug("request built", "url", req.URL, "destination", req.Destination, "premium", req.Size.Premium())

	if opts.dryRun {
		fmt.Fprintf(stdout, "URL:         %s\n", req.URL)
		fmt.Fprintf(stdout, "Destination: %s\n", req.Destination)
		fmt.Fprintln(stdout, "[Dry run - not fetching]")
		return exitOK
	}

	fetcher := collage.NewFetcher(settings, func(event collage.ProgressEvent) {
		if event.Level == collage.LevelVerbose && !opts.verbose {
			return
		}

		var prefix string
		switch event.Level {
		case collage.LevelError:
			// reported once by report below
			return
		case collage.LevelWarning:
			prefix = "⚠️  "
		case collage.LevelSuccess:
			prefix = "✅ "
		case collage.LevelInfo:
			prefix = "ℹ️  "
		default:
			prefix = "   "
		}

		fmt.Fprintln(stdout, prefix+event.Message)
	})

	result, err := fetcher.Fetch(ctx, req)
	if err != nil {
		code := report(stderr, err)
		logger.Debug("fetch failed", "error", err, "exit", code)
		return code
	}

	logger.Debug("collage saved", "path", result.Path, "bytes", result.Bytes, "content_type", result.ContentType)
	return exitOK
}

// report prints a human-readable explanation of a fetch error and returns
// the exit code for it.
func report(w io.Writer, err error) int {
	var (
		serviceErr   *tapmusic.ServiceError
		transportErr *http.TransportError
		statusErr    *http.StatusError
	)

	switch {
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(w, "Interrupted, no collage saved.")
		return exitInterrupted
	case errors.As(err, &serviceErr):
		fmt.Fprintf(w, "❌ tapmusic could not create the collage (%s).\n", serviceErr.Kind)
		fmt.Fprintf(w, "   %s\n", serviceErr.Guidance())
	case errors.Is(err, http.ErrTimeout):
		fmt.Fprintf(w, "❌ Request timed out, try again later. Details: %v\n", err)
	case errors.Is(err, http.ErrTooManyRedirects):
		fmt.Fprintf(w, "❌ The collage URL redirected too many times. Details: %v\n", err)
	case errors.Is(err, ioutils.ErrFileExists):
		fmt.Fprintf(w, "❌ %v\n", err)
		fmt.Fprintln(w, "   The existing file was left untouched; pick another name with -f.")
	case errors.As(err, &transportErr), errors.As(err, &statusErr):
		fmt.Fprintf(w, "❌ Error fetching collage: %v\n", err)
	default:
		fmt.Fprintf(w, "❌ tapmusic-cli encountered an error. Details: %v\n", err)
	}
	return exitFailure
}
