package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/handiism/tapmusic-cli/internal/model"
)

// errUsage marks argument errors that should print the usage text.
var errUsage = errors.New("usage error")

type options struct {
	user   string
	dir    string
	size   string
	period string

	file      string
	caption   string
	playcount string

	configPath string
	dryRun     bool
	verbose    bool
}

func newFlagSet(opts *options, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("tapmusic", flag.ContinueOnError)
	fs.SetOutput(out)

	fs.StringVar(&opts.file, "file", "", "Custom file name for the collage (.jpg, .jpeg, .png)")
	fs.StringVar(&opts.file, "f", "", "Shorthand for -file")
	fs.StringVar(&opts.caption, "caption", "", "Display album/artist captions: t or f (default t)")
	fs.StringVar(&opts.caption, "c", "", "Shorthand for -caption")
	fs.StringVar(&opts.playcount, "playcount", "", "Display playcounts: t or f (default f)")
	fs.StringVar(&opts.playcount, "pc", "", "Shorthand for -playcount")
	fs.StringVar(&opts.configPath, "config", "", "Path to settings file (.json, .yaml)")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "Print the URL and destination without fetching")
	fs.BoolVar(&opts.verbose, "verbose", false, "Show verbose output")

	fs.Usage = func() {
		fmt.Fprintln(out, "tapmusic - Save a tapmusic.net collage of your Last.fm history")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Usage:")
		fmt.Fprintln(out, "  tapmusic [options] <user> <dir> <size> <time>")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Arguments:")
		fmt.Fprintln(out, "  user   Your Last.fm username")
		fmt.Fprintln(out, "  dir    Directory where the collage is saved")
		fmt.Fprintln(out, "  size   Collage size: 3, 4, 5, 10 (premium)")
		fmt.Fprintln(out, "  time   Time period: "+strings.Join(model.PeriodOptions(true), ", "))
		fmt.Fprintln(out)
		fmt.Fprintln(out, "For interactive mode, use: tapmusic-tui")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Options:")
		fs.PrintDefaults()
	}

	return fs
}

// parseArgs parses the command line. Flags may appear anywhere between the
// positional arguments.
func parseArgs(args []string, out io.Writer) (*options, error) {
	opts := &options{}
	fs := newFlagSet(opts, out)

	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %v", errUsage, err)
		}
		args = fs.Args()
		if len(args) == 0 {
			break
		}
		positional = append(positional, args[0])
		args = args[1:]
	}

	if len(positional) != 4 {
		fs.Usage()
		return nil, fmt.Errorf("%w: expected 4 arguments (user, dir, size, time), got %d", errUsage, len(positional))
	}

	opts.user = positional[0]
	opts.dir = positional[1]
	opts.size = positional[2]
	opts.period = positional[3]

	return opts, nil
}
