package qrz

import "strings"

// The QRZ XML interface returns a flat, single-level tag list that is
// documented as occasionally malformed, so responses are treated as text
// blobs scanned for known substrings rather than parsed as a document tree.

// Span locates the value delimited by tag inside raw response text. The tag
// carries its trailing '>' (e.g. "Key>"), so "<"+tag is the opening marker
// and "</"+tag the closing one.
//
// Span performs no existence validation. When the opening marker is absent
// the returned offsets are index sentinels shifted by the marker length and
// do not describe a usable span, so callers must verify the marker is
// present first, or go through Lookup.
func Span(tag, text string) (start, end int) {
	open := "<" + tag
	start = strings.Index(text, open) + len(open)
	if start < len(open) {
		return start, strings.Index(text, "</"+tag)
	}
	end = strings.Index(text[start:], "</"+tag)
	if end >= 0 {
		end += start
	}
	return start, end
}

// Lookup is the guarded form used by the record assembler: it checks that
// the opening marker is present before scanning and reports absence instead
// of a sentinel span. The value is returned exactly as it appears, with no
// whitespace trimming.
func Lookup(tag, text string) (string, bool) {
	if !strings.Contains(text, "<"+tag) {
		return "", false
	}
	start, end := Span(tag, text)
	if end < start {
		return "", false
	}
	return text[start:end], true
}
