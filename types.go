package orgfix

import (
	"log/slog"

	"github.com/alnah/go-orgfix/internal/dateutil"
	"github.com/alnah/go-orgfix/internal/pipeline"
)

// DefaultLinkLayout is the daily entry path layout of the export pipeline.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, dddd, ddd, DD, D. Text in square
// brackets is copied as is.
const DefaultLinkLayout = dateutil.DailyEntryLayout

// DefaultMonthlyClass is added to the body of every recognized monthly page.
const DefaultMonthlyClass = pipeline.DefaultMonthlyClass

// PageIdentity is the month and year a monthly page covers.
type PageIdentity = pipeline.PageIdentity

// Input contains processing parameters.
type Input struct {
	HTML string // Exported page, full document or fragment (required)
	Path string // Decoded URL path the page is served under (optional)
}

// Result contains the output of Process.
type Result struct {
	HTML             string        // Processed page; equal to Input.HTML when Changed is false
	Identity         *PageIdentity // Month and year of a monthly page, nil otherwise
	TablesNormalized int           // Tables given a thead and tbody
	LinksAdded       int           // Day cells turned into links
	Changed          bool          // Whether HTML differs from the input
}

// Option configures a Processor.
type Option func(*Processor)

// processorConfig holds internal configuration for Processor.
type processorConfig struct {
	linkLayout   string
	monthlyClass string
	tables       bool
	links        bool
}

// WithLinkLayout sets the layout used to build daily entry links.
// The layout is validated by NewProcessor.
func WithLinkLayout(layout string) Option {
	return func(p *Processor) {
		p.cfg.linkLayout = layout
	}
}

// WithMonthlyClass sets the class added to the body of monthly pages.
// The name is validated by NewProcessor.
func WithMonthlyClass(name string) Option {
	return func(p *Processor) {
		p.cfg.monthlyClass = name
	}
}

// WithTables enables or disables table normalization.
func WithTables(enabled bool) Option {
	return func(p *Processor) {
		p.cfg.tables = enabled
	}
}

// WithLinks enables or disables monthly page marking and day links.
// Page identity is still reported in Result when disabled.
func WithLinks(enabled bool) Option {
	return func(p *Processor) {
		p.cfg.links = enabled
	}
}

// WithLogger sets the logger for per-page debug events.
// Panics if logger is nil (programmer error).
func WithLogger(logger *slog.Logger) Option {
	if logger == nil {
		panic("orgfix: WithLogger logger must not be nil")
	}
	return func(p *Processor) {
		p.logger = logger
	}
}
