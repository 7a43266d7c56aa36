package orgfix

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyHTML  = errors.New("HTML content cannot be empty")
	ErrHTMLParse  = errors.New("HTML parsing failed")
	ErrHTMLRender = errors.New("HTML rendering failed")
	ErrInternal   = errors.New("internal error")

	// Option validation errors.
	ErrInvalidLinkLayout   = errors.New("invalid link layout")
	ErrInvalidMonthlyClass = errors.New("invalid monthly class")
	ErrInvalidWorkers      = errors.New("invalid worker count")
)
