package textutil

import (
	"regexp"
	"strings"
	"unicode"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// CollapseWhitespace trims the string and replaces runs of whitespace with a single space.
func CollapseWhitespace(text string) string {
	text = strings.Trim(text, " \n\t\r")
	return whitespaceRegex.ReplaceAllString(text, " ")
}

// StripLineBreaks removes embedded line breaks the way roster cells are cleaned,
// other whitespace is left untouched.
func StripLineBreaks(text string) string {
	text = strings.ReplaceAll(text, "\r", "")
	return strings.ReplaceAll(text, "\n", "")
}

// StripQuotes removes single quotes so a value can be embedded in a
// single-quoted script literal.
func StripQuotes(text string) string {
	return strings.ReplaceAll(text, "'", "")
}

func isASCIIPunct(r rune) bool {
	return r <= unicode.MaxASCII && (unicode.IsPunct(r) || unicode.IsSymbol(r))
}

// NodeToken strips ASCII punctuation and every whitespace character from a display name
// so it can be used as a bare identifier.
func NodeToken(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || isASCIIPunct(r) {
			return -1
		}
		return r
	}, name)
}

// NormalizeName turns "Last, First" into "First Last" and collapses whitespace.
// Names without a comma are only collapsed.
func NormalizeName(name string) string {
	name = CollapseWhitespace(name)
	last, first, found := strings.Cut(name, ",")
	if !found {
		return name
	}
	last = strings.TrimSpace(last)
	first = strings.TrimSpace(first)
	if first == "" {
		return last
	}
	if last == "" {
		return first
	}
	return first + " " + last
}
