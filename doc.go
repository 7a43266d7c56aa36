// Package orgfix post-processes HTML pages exported from org-mode.
//
// Org-mode exports tables as flat lists of rows. When a table was written
// with a horizontal rule under its header, the export keeps that rule as a
// row of dash-only cells instead of emitting a thead. On monthly journal
// pages the first column holds bare day numbers that should link to the
// daily entry pages. orgfix repairs both.
//
// # Basic Usage
//
//	proc, err := orgfix.NewProcessor()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := proc.Process(ctx, orgfix.Input{
//	    HTML: page,
//	    Path: "/Journal/May2025.html",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("May2025.html", []byte(result.HTML), 0o644)
//
// # Table Normalization
//
// A table whose rows contain a separator row (every cell made only of
// dashes, whitespace, or non-breaking spaces) is rebuilt: rows above the
// separator become a thead with th cells, rows below it become a tbody, and
// the separator is dropped. Tables without a separator are left untouched.
//
// # Monthly Pages
//
// Page identity is derived from the page's URL path. Two layouts are
// recognized:
//
//	/Notes/<month>_<yyyy>-<n>.html        lowercase English month name
//	/Journal/[<yyyy>/]<Month>[ ]<yyyy>.html  any case
//
// On a monthly page every body row whose first cell starts with a valid day
// number gets its text wrapped in a link to the daily entry:
//
//	/Journal/2025/05-May/07-May-2025-Wednesday.html
//
// The link target layout can be changed with WithLinkLayout.
//
// # Concurrency
//
// A Processor holds no mutable state after construction and is safe for
// concurrent use. Use ResolveWorkers to size a worker pool for batch runs.
package orgfix
