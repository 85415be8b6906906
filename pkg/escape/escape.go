package escape

import (
	"strings"
	"unicode/utf8"
)

// DoubleQuoteSpecials are the characters bash treats specially inside a
// double-quoted word. Backslash-escaping all of them makes the word
// re-parse to the original bytes.
const DoubleQuoteSpecials = "\"\\$`"

// Quote backslash-escapes every occurrence of quote in text.
// No other byte is altered, so the result is len(text) plus the number of
// occurrences of quote. Text need not be valid UTF-8.
func Quote(text string, quote rune) string {
	n := strings.Count(text, string(quote))
	if n == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + n)
	for i := 0; i < len(text); {
		ch, size := utf8.DecodeRuneInString(text[i:])
		if ch == quote && size == utf8.RuneLen(quote) {
			b.WriteByte('\\')
		}
		b.WriteString(text[i : i+size])
		i += size
	}
	return b.String()
}

// QuoteChars backslash-escapes every character of text contained in chars.
func QuoteChars(text, chars string) string {
	if !strings.ContainsAny(text, chars) {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + 8)
	for i := 0; i < len(text); {
		ch, size := utf8.DecodeRuneInString(text[i:])
		if size == utf8.RuneLen(ch) && strings.ContainsRune(chars, ch) {
			b.WriteByte('\\')
		}
		b.WriteString(text[i : i+size])
		i += size
	}
	return b.String()
}

const hexDigits = "0123456789abcdef"

// ASCII encodes text byte by byte into printable ASCII. Printable
// characters are kept, with the exception of the backslash and both quote
// characters which are escaped. Tab, carriage return and newline use their
// short forms and every other byte becomes \xNN.
func ASCII(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '\t':
			b.WriteString(`\t`)
		case c == '\r':
			b.WriteString(`\r`)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\\' || c == '\'' || c == '"':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c >= 0x20 && c < 0x7f:
			b.WriteByte(c)
		default:
			b.WriteString(`\x`)
			b.WriteByte(hexDigits[c>>4])
			b.WriteByte(hexDigits[c&0x0f])
		}
	}
	return b.String()
}

// Double returns text as a complete bash double-quoted word.
func Double(text string) string {
	return `"` + QuoteChars(text, DoubleQuoteSpecials) + `"`
}

// ANSIC returns text as a complete bash $'...' word. Bash decodes every
// escape sequence produced by ASCII inside this quoting, so the word
// expands back to the exact original bytes.
func ANSIC(text string) string {
	return "$'" + ASCII(text) + "'"
}
