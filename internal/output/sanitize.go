package output

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const hexDigits = "0123456789abcdef"

// Sanitize makes a process-controlled string safe for single-line display
// by rewriting control characters and invalid UTF-8 bytes as visible
// escape sequences. Process names and command lines can carry anything,
// including terminal escape sequences, so every string that originates
// in another process goes through here before it reaches a log line or
// a table cell. Examples:
//
//	"hi\x1b[31mred" -> `hi\x1b[31mred` (ESC becomes visible)
//	"two\nlines"    -> `two\x0alines`
//	"bad:\xff"      -> `bad:\xff` (invalid UTF-8 byte)
func Sanitize(s string) string {
	idx := 0
	// fast path: scan until the first control rune / invalid UTF-8 byte
	for idx < len(s) {
		r, size := utf8.DecodeRuneInString(s[idx:])
		if r == utf8.RuneError && size == 1 {
			break
		}
		if lineBreaking(r) {
			break
		}
		idx += size
	}
	if idx == len(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	b.WriteString(s[:idx])

	// slow path: walk the remainder and rewrite anything unprintable
	for idx < len(s) {
		r, size := utf8.DecodeRuneInString(s[idx:])
		switch {
		case r == utf8.RuneError && size == 1:
			escapeByte(&b, s[idx])
		case lineBreaking(r):
			escapeRune(&b, r)
		default:
			b.WriteString(s[idx : idx+size])
		}
		idx += size
	}

	return b.String()
}

// lineBreaking matches everything Sanitize must rewrite: the Cc controls
// plus the Unicode line and paragraph separators, which IsControl does
// not cover but which still break single-line output.
func lineBreaking(r rune) bool {
	return unicode.IsControl(r) || r == '\u2028' || r == '\u2029'
}

// Args renders an argv for display, space-separated and sanitized.
func Args(argv []string) string {
	return Sanitize(strings.Join(argv, " "))
}

func escapeByte(b *strings.Builder, bt byte) {
	b.WriteString(`\x`)
	b.WriteByte(hexDigits[bt>>4])
	b.WriteByte(hexDigits[bt&0x0f])
}

// escapeRune writes the shortest conventional escape for r:
//
//	0x1b    -> `\x1b`
//	0x2028  -> `\u2028`
//	0x1f600 -> `\U0001f600`
func escapeRune(b *strings.Builder, r rune) {
	switch {
	case r <= 0xFF:
		escapeByte(b, byte(r))
	case r <= 0xFFFF:
		b.WriteString(`\u`)
		for shift := 12; shift >= 0; shift -= 4 {
			b.WriteByte(hexDigits[(r>>shift)&0x0f])
		}
	default:
		b.WriteString(`\U`)
		for shift := 28; shift >= 0; shift -= 4 {
			b.WriteByte(hexDigits[(r>>shift)&0x0f])
		}
	}
}
