package orgfix

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/alnah/go-orgfix/internal/dateutil"
	"github.com/alnah/go-orgfix/internal/pipeline"
)

// classNamePattern matches a single CSS class identifier.
var classNamePattern = regexp.MustCompile(`^-?[_a-zA-Z][_a-zA-Z0-9-]*$`)

// Processor runs the post-processing stages over exported pages.
// Create with NewProcessor and call Process for each page.
type Processor struct {
	cfg    processorConfig
	layout *dateutil.Layout
	logger *slog.Logger
}

// NewProcessor creates a Processor with default configuration.
// Use options to customize behavior (e.g., WithLinkLayout, WithTables).
// Returns error if the link layout or monthly class is invalid.
func NewProcessor(opts ...Option) (*Processor, error) {
	p := &Processor{
		cfg: processorConfig{
			linkLayout:   DefaultLinkLayout,
			monthlyClass: DefaultMonthlyClass,
			tables:       true,
			links:        true,
		},
		logger: slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(p)
	}

	layout, err := dateutil.CompileLayout(p.cfg.linkLayout)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLinkLayout, err)
	}
	if !layout.HasToken("D") && !layout.HasToken("DD") {
		return nil, fmt.Errorf("%w: %q has no day token (D or DD)", ErrInvalidLinkLayout, p.cfg.linkLayout)
	}
	p.layout = layout

	if !classNamePattern.MatchString(p.cfg.monthlyClass) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMonthlyClass, p.cfg.monthlyClass)
	}

	return p, nil
}

// Process runs table normalization and, on monthly pages, the day link
// annotation over input.HTML. The context is checked between stages.
// When no stage changes the page, Result.HTML is input.HTML byte for byte.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (p *Processor) Process(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	if strings.TrimSpace(input.HTML) == "" {
		return nil, ErrEmptyHTML
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, isFragment, err := pipeline.ParseHTML(input.HTML)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTMLParse, err)
	}

	result = &Result{HTML: input.HTML}

	if p.cfg.tables {
		result.TablesNormalized = pipeline.NormalizeTables(doc)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	marked := false
	if id, ok := pipeline.ResolvePageIdentity(input.Path); ok {
		result.Identity = &id
		p.logger.Debug("monthly page", "path", input.Path, "month", id.String())

		if p.cfg.links {
			marked = pipeline.MarkMonthlyPage(doc, p.cfg.monthlyClass)
			result.LinksAdded = pipeline.AnnotateMonthlyLinks(doc, id, p.layout)
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}

	result.Changed = marked || result.TablesNormalized > 0 || result.LinksAdded > 0
	p.logger.Debug("page processed",
		"path", input.Path,
		"tables", result.TablesNormalized,
		"links", result.LinksAdded,
		"changed", result.Changed)

	if !result.Changed {
		return result, nil
	}

	out, err := pipeline.RenderHTML(doc, isFragment)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTMLRender, err)
	}
	result.HTML = out
	return result, nil
}

// ResolvePageIdentity returns the month and year covered by the page at
// the decoded URL path, or false if the page is not a monthly page.
func ResolvePageIdentity(path string) (PageIdentity, bool) {
	return pipeline.ResolvePageIdentity(path)
}

// PageIdentityFromURL is like ResolvePageIdentity but accepts a raw URL or
// an escaped path, such as "/Journal/2024/July%202024.html".
func PageIdentityFromURL(rawURL string) (PageIdentity, bool) {
	return pipeline.PageIdentityFromURL(rawURL)
}
