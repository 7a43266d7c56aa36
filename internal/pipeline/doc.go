// Package pipeline implements the HTML post-processing stages applied to
// pages produced by an org-publish export.
//
// The stages operate on an already parsed *html.Node tree:
//   - Table normalization (separator rows become a thead/tbody boundary)
//   - Page identity resolution (month and year from the page URL path)
//   - Monthly link annotation (day cells link to daily journal entries)
//
// Parsing and rendering live here too so callers can hand over a string and
// get a string back. Each stage is a plain function over a tree handle and
// can be run on its own against a synthetic document.
package pipeline
