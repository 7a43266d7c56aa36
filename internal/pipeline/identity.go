package pipeline

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// monthNames are matched after case folding.
var monthNames = [12]string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// monthTitles holds the capitalized month names, e.g. "May".
var monthTitles = func() [12]string {
	var titles [12]string
	caser := cases.Title(language.English)
	for i, name := range monthNames {
		titles[i] = caser.String(name)
	}
	return titles
}()

// Accepted monthly page paths.
var (
	// /Notes/january_2026-173.html
	notesMonthRe = regexp.MustCompile(`/Notes/([a-z]+)_(\d{4})-\d+\.html$`)
	// /Journal/May2025.html, /Journal/2024/July 2024.html
	journalMonthRe = regexp.MustCompile(`/Journal/(?:\d{4}/)?([A-Za-z]+)\s*(\d{4})\.html$`)
)

// PageIdentity is the calendar month a monthly page summarizes.
type PageIdentity struct {
	MonthIndex int // 0 = January
	Year       int
}

// Month returns the identity's month as a time.Month.
func (p PageIdentity) Month() time.Month {
	return time.Month(p.MonthIndex + 1)
}

// MonthName returns the capitalized English month name.
func (p PageIdentity) MonthName() string {
	if p.MonthIndex < 0 || p.MonthIndex >= len(monthTitles) {
		return ""
	}
	return monthTitles[p.MonthIndex]
}

// String returns e.g. "May 2025".
func (p PageIdentity) String() string {
	return fmt.Sprintf("%s %d", p.MonthName(), p.Year)
}

// ResolvePageIdentity determines which month a page path stands for.
// The path must already be decoded. The Notes pattern is tried first; when
// it matches, its verdict is final even if the month name is unknown.
// Returns false for any page that is not a monthly page.
func ResolvePageIdentity(path string) (PageIdentity, bool) {
	if m := notesMonthRe.FindStringSubmatch(path); m != nil {
		return identityFrom(m[1], m[2])
	}
	if m := journalMonthRe.FindStringSubmatch(path); m != nil {
		return identityFrom(m[1], m[2])
	}
	return PageIdentity{}, false
}

// PageIdentityFromURL decodes the path of rawURL and resolves it.
// Accepts absolute URLs as well as bare paths.
func PageIdentityFromURL(rawURL string) (PageIdentity, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return PageIdentity{}, false
	}
	return ResolvePageIdentity(u.Path)
}

// identityFrom builds an identity from matched month name and year text.
func identityFrom(name, yearText string) (PageIdentity, bool) {
	idx := monthIndex(name)
	if idx < 0 {
		return PageIdentity{}, false
	}
	year, err := strconv.Atoi(yearText)
	if err != nil {
		return PageIdentity{}, false
	}
	return PageIdentity{MonthIndex: idx, Year: year}, true
}

// monthIndex returns the zero-based index of an English month name,
// ignoring case, or -1.
func monthIndex(name string) int {
	folded := cases.Fold().String(name)
	for i, m := range monthNames {
		if m == folded {
			return i
		}
	}
	return -1
}
