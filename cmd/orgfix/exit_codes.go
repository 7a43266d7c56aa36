package main

import (
	"errors"
	"os"

	"github.com/alnah/go-orgfix"
	"github.com/alnah/go-orgfix/internal/config"
	"github.com/alnah/go-orgfix/internal/log"
	"github.com/alnah/go-orgfix/internal/watch"
)

// Exit codes for the orgfix CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All pages processed
	ExitGeneral = 1 // Internal error (orgfix.ErrInternal), or some pages failed
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied, watch limit
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoHTML) ||
		errors.Is(err, watch.ErrWatchLimit) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNotHTML) ||
		errors.Is(err, ErrURLNeedsFile) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, orgfix.ErrInvalidLinkLayout) ||
		errors.Is(err, orgfix.ErrInvalidMonthlyClass) ||
		errors.Is(err, orgfix.ErrInvalidWorkers) ||
		errors.Is(err, log.ErrUnknownFormat) {
		return ExitUsage
	}

	return ExitGeneral
}
