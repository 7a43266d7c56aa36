// Package log builds the slog loggers used by the orgfix command.
//
// Loggers write to stderr and default to warnings only, so the per-page
// result lines on stdout stay readable. --verbose lowers the level to
// debug; --quiet raises it to errors.
//
//	logger, err := log.New(os.Stderr, log.Options{Verbose: true, Format: "json"})
package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ErrUnknownFormat is returned for an unsupported log format name.
var ErrUnknownFormat = errors.New("unknown log format")

// Supported log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options configures New.
type Options struct {
	Verbose bool   // Debug level
	Quiet   bool   // Error level; Verbose wins when both are set
	Format  string // "text" (default) or "json"
}

// Level returns the minimum level for the options.
func (o Options) Level() slog.Level {
	switch {
	case o.Verbose:
		return slog.LevelDebug
	case o.Quiet:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// New creates a logger writing to w in the requested format.
func New(w io.Writer, opts Options) (*slog.Logger, error) {
	handlerOpts := &slog.HandlerOptions{Level: opts.Level()}

	switch strings.ToLower(opts.Format) {
	case "", FormatText:
		return slog.New(slog.NewTextHandler(w, handlerOpts)), nil
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, handlerOpts)), nil
	default:
		return nil, fmt.Errorf("%w: %q (must be %s or %s)", ErrUnknownFormat, opts.Format, FormatText, FormatJSON)
	}
}
