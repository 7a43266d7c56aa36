// Package dateutil formats dates through user-friendly token layouts.
package dateutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidLayout indicates an invalid date layout string.
var ErrInvalidLayout = errors.New("invalid date layout")

// MaxLayoutLength limits layout string length to prevent abuse.
const MaxLayoutLength = 200

// DailyEntryLayout is the path of a daily journal page as written by the
// export pipeline, e.g. /Journal/2025/05-May/07-May-2025-Wednesday.html.
const DailyEntryLayout = "/[Journal]/YYYY/MM-MMMM/DD-MMMM-YYYY-dddd.html"

// dateTokens maps layout tokens to their renderers.
// Ordered by length descending within each letter for greedy matching.
var dateTokens = []struct {
	token  string
	render func(t time.Time) string
}{
	{"YYYY", func(t time.Time) string { return pad(t.Year(), 4) }},
	{"YY", func(t time.Time) string { return pad(t.Year()%100, 2) }},
	{"MMMM", func(t time.Time) string { return t.Month().String() }},
	{"MMM", func(t time.Time) string { return t.Month().String()[:3] }},
	{"MM", func(t time.Time) string { return pad(int(t.Month()), 2) }},
	{"M", func(t time.Time) string { return strconv.Itoa(int(t.Month())) }},
	{"dddd", func(t time.Time) string { return t.Weekday().String() }},
	{"ddd", func(t time.Time) string { return t.Weekday().String()[:3] }},
	{"DD", func(t time.Time) string { return pad(t.Day(), 2) }},
	{"D", func(t time.Time) string { return strconv.Itoa(t.Day()) }},
}

// segment is either literal text or the index of a token in dateTokens.
type segment struct {
	literal string
	token   int
}

// Layout is a compiled date layout. Safe for concurrent use.
type Layout struct {
	raw      string
	segments []segment
}

// CompileLayout parses a layout string.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, dddd, ddd, DD, D
// Use brackets to escape literal text: [Journal] preserves "Journal" literally.
// Any non-token characters outside brackets are preserved as literals.
// Returns ErrInvalidLayout if the layout is empty, too long, or has unclosed brackets.
func CompileLayout(layout string) (*Layout, error) {
	if layout == "" {
		return nil, fmt.Errorf("%w: layout cannot be empty", ErrInvalidLayout)
	}
	if len(layout) > MaxLayoutLength {
		return nil, fmt.Errorf("%w: layout exceeds %d characters", ErrInvalidLayout, MaxLayoutLength)
	}

	l := &Layout{raw: layout}
	var literal strings.Builder

	flush := func() {
		if literal.Len() > 0 {
			l.segments = append(l.segments, segment{literal: literal.String(), token: -1})
			literal.Reset()
		}
	}

	i := 0
	for i < len(layout) {
		// Handle bracket-escaped literal text
		if layout[i] == '[' {
			end := strings.Index(layout[i+1:], "]")
			if end == -1 {
				return nil, fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidLayout, i)
			}
			literal.WriteString(layout[i+1 : i+1+end])
			i += end + 2
			continue
		}

		matched := false
		for idx, t := range dateTokens {
			if strings.HasPrefix(layout[i:], t.token) {
				flush()
				l.segments = append(l.segments, segment{token: idx})
				i += len(t.token)
				matched = true
				break
			}
		}

		if !matched {
			literal.WriteByte(layout[i])
			i++
		}
	}
	flush()

	return l, nil
}

// MustCompileLayout is like CompileLayout but panics on error.
func MustCompileLayout(layout string) *Layout {
	l, err := CompileLayout(layout)
	if err != nil {
		panic(err)
	}
	return l
}

// Format renders t through the layout.
func (l *Layout) Format(t time.Time) string {
	var sb strings.Builder
	sb.Grow(len(l.raw) + 16)
	for _, s := range l.segments {
		if s.token < 0 {
			sb.WriteString(s.literal)
			continue
		}
		sb.WriteString(dateTokens[s.token].render(t))
	}
	return sb.String()
}

// String returns the layout as it was written.
func (l *Layout) String() string {
	return l.raw
}

// HasToken reports whether the layout uses the given token.
func (l *Layout) HasToken(token string) bool {
	for _, s := range l.segments {
		if s.token >= 0 && dateTokens[s.token].token == token {
			return true
		}
	}
	return false
}

func pad(n, width int) string {
	s := strconv.Itoa(n)
	for len(s) < width {
		s = "0" + s
	}
	return s
}
