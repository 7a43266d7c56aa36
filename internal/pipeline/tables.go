package pipeline

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NormalizeTables restructures every table in doc whose header/body
// boundary is drawn with a separator row. Tables nested in other tables are
// handled on their own. Returns the number of tables rebuilt.
func NormalizeTables(doc *html.Node) int {
	normalized := 0
	for _, table := range findAll(doc, atom.Table) {
		if NormalizeTable(table) {
			normalized++
		}
	}
	return normalized
}

// NormalizeTable rebuilds table as a thead/tbody pair when one of its rows
// is a separator row. Rows above the first separator become header rows
// with th cells, rows below it become body rows, and the separator itself
// is dropped. Leading caption and colgroup elements are kept in front.
//
// Tables without a separator row, and tables that already carry a thead,
// are left untouched. Returns true if the table was rebuilt.
func NormalizeTable(table *html.Node) bool {
	if !isElement(table, atom.Table) {
		return false
	}
	if hasSection(table, atom.Thead) {
		return false
	}

	rows := tableRows(table)
	sepIdx := -1
	for i, row := range rows {
		if IsSeparatorRow(row) {
			sepIdx = i
			break
		}
	}
	if sepIdx < 0 {
		return false
	}

	thead := newElement(atom.Thead, nil)
	for _, row := range rows[:sepIdx] {
		thead.AppendChild(headerRow(row))
	}

	tbody := newElement(atom.Tbody, nil)
	for _, row := range rows[sepIdx+1:] {
		row.Parent.RemoveChild(row)
		tbody.AppendChild(row)
	}

	for _, child := range removeChildren(table) {
		if isElement(child, atom.Caption) || isElement(child, atom.Colgroup) {
			table.AppendChild(child)
		}
	}
	table.AppendChild(thead)
	table.AppendChild(tbody)

	return true
}

// IsSeparatorRow reports whether every cell of row holds only dashes and
// whitespace (non-breaking spaces included) with at least one dash.
// A row without cells is never a separator.
func IsSeparatorRow(row *html.Node) bool {
	cells := rowCells(row)
	if len(cells) == 0 {
		return false
	}
	for _, cell := range cells {
		if !isSeparatorText(textContent(cell)) {
			return false
		}
	}
	return true
}

// isSeparatorText matches ^[-\u00a0\s]+$ and requires a dash, so an empty
// or blank cell is not mistaken for a separator.
func isSeparatorText(s string) bool {
	if !strings.ContainsRune(s, '-') {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool {
		return r != '-' && !isPatternSpace(r)
	}) < 0
}

// isPatternSpace reports whether r is in the \s class of ECMAScript regular
// expressions. It differs from unicode.IsSpace: U+FEFF is included and
// U+0085 is not.
func isPatternSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		'\u00a0', '\u1680', '\u2028', '\u2029', '\u202f', '\u205f', '\u3000', '\ufeff':
		return true
	}
	return r >= '\u2000' && r <= '\u200a'
}

// tableRows returns the rows owned by table, in document order, without
// descending into nested tables.
func tableRows(table *html.Node) []*html.Node {
	var rows []*html.Node
	for c := table.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.DataAtom {
		case atom.Tr:
			rows = append(rows, c)
		case atom.Thead, atom.Tbody, atom.Tfoot:
			for r := c.FirstChild; r != nil; r = r.NextSibling {
				if isElement(r, atom.Tr) {
					rows = append(rows, r)
				}
			}
		}
	}
	return rows
}

// rowCells returns the td and th children of row.
func rowCells(row *html.Node) []*html.Node {
	var cells []*html.Node
	for c := row.FirstChild; c != nil; c = c.NextSibling {
		if isElement(c, atom.Td) || isElement(c, atom.Th) {
			cells = append(cells, c)
		}
	}
	return cells
}

// hasSection reports whether table has a direct child section of kind a.
func hasSection(table *html.Node, a atom.Atom) bool {
	for c := table.FirstChild; c != nil; c = c.NextSibling {
		if isElement(c, a) {
			return true
		}
	}
	return false
}

// headerRow builds a new row whose cells are th elements carrying the
// attributes and inner markup of the original cells.
func headerRow(row *html.Node) *html.Node {
	tr := newElement(atom.Tr, row.Attr)
	for _, cell := range rowCells(row) {
		th := newElement(atom.Th, cell.Attr)
		for _, child := range removeChildren(cell) {
			th.AppendChild(child)
		}
		tr.AppendChild(th)
	}
	return tr
}
