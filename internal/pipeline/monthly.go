package pipeline

import (
	"strconv"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-orgfix/internal/dateutil"
)

// DefaultMonthlyClass marks the body of a recognized monthly page.
const DefaultMonthlyClass = "monthly-page"

// defaultLayout is the daily entry path contract of the export pipeline.
var defaultLayout = dateutil.MustCompileLayout(dateutil.DailyEntryLayout)

// MarkMonthlyPage adds class to the page's body element.
// Returns false if the document has no body or already carries the class.
func MarkMonthlyPage(doc *html.Node, class string) bool {
	body := findFirst(doc, atom.Body)
	if body == nil {
		return false
	}
	return addClass(body, class)
}

// AnnotateMonthlyLinks turns the day cell of every body row into a link to
// the matching daily entry page. The day cell is the row's first cell; its
// text must start with the day number. Rows whose cell has no leading
// digits or names a day the month does not have are left as they are, and
// so are cells that already hold exactly the link this function would add.
// Any other markup in the cell is flattened into the link text.
// A nil layout uses dateutil.DailyEntryLayout.
//
// Returns the number of links added.
func AnnotateMonthlyLinks(doc *html.Node, id PageIdentity, layout *dateutil.Layout) int {
	if layout == nil {
		layout = defaultLayout
	}

	added := 0
	for _, row := range bodyRows(doc) {
		cell := firstCell(row)
		if cell == nil {
			continue
		}

		// No trimming: a cell starting with whitespace is not a day cell.
		text := textContent(cell)
		day, ok := leadingNumber(text)
		if !ok {
			continue
		}

		href, ok := DailyEntryHref(id, day, layout)
		if !ok || isDayLink(cell, text, href) {
			continue
		}

		link := newElement(atom.A, []html.Attribute{{Key: "href", Val: href}})
		link.AppendChild(&html.Node{Type: html.TextNode, Data: text})
		removeChildren(cell)
		cell.AppendChild(link)
		added++
	}
	return added
}

// DailyEntryHref returns the daily entry path for a day of the identity's
// month. Returns false when the day does not exist in that month, e.g. 31
// in April or 29 in February of a common year.
func DailyEntryHref(id PageIdentity, day int, layout *dateutil.Layout) (string, bool) {
	if layout == nil {
		layout = defaultLayout
	}
	date := time.Date(id.Year, id.Month(), day, 0, 0, 0, 0, time.UTC)
	if date.Month() != id.Month() || date.Year() != id.Year {
		return "", false
	}
	return layout.Format(date), true
}

// isDayLink reports whether cell's only child is a link to href whose
// text is the whole cell text.
func isDayLink(cell *html.Node, text, href string) bool {
	a := cell.FirstChild
	if a == nil || a.NextSibling != nil || !isElement(a, atom.A) {
		return false
	}
	got, _ := getAttr(a, "href")
	return got == href && textContent(a) == text
}

// bodyRows returns every tr below a tbody, in document order.
func bodyRows(doc *html.Node) []*html.Node {
	var rows []*html.Node
	var walk func(n *html.Node, inBody bool)
	walk = func(n *html.Node, inBody bool) {
		if isElement(n, atom.Tbody) {
			inBody = true
		} else if inBody && isElement(n, atom.Tr) {
			rows = append(rows, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inBody)
		}
	}
	walk(doc, false)
	return rows
}

// firstCell returns the row's first element child when it is a td.
func firstCell(row *html.Node) *html.Node {
	for c := row.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.DataAtom == atom.Td {
			return c
		}
		return nil
	}
	return nil
}

// leadingNumber parses the run of ASCII digits at the start of s.
func leadingNumber(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
