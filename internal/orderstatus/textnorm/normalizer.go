// Package textnorm repairs punctuation the legacy system emits in its
// Windows-1252 heritage: the right single quotation mark arrives either as the
// raw byte 0x92 or as the C1 control character U+0092.
package textnorm

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

const (
	rawQuote     = 0x92
	controlQuote = '\u0092'
	apostrophe   = "'"
)

// Normalize replaces the known bad sequences and leaves everything else as is.
// Other bytes that are not valid UTF-8 are read as Windows-1252, so the result is
// always valid UTF-8 and Normalize(Normalize(s)) == Normalize(s). The five bytes
// Windows-1252 leaves undefined (0x81, 0x8D, 0x8F, 0x90, 0x9D) become U+FFFD.
func Normalize(s string) string {
	if utf8.ValidString(s) && !strings.ContainsRune(s, controlQuote) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			if s[i] == rawQuote {
				b.WriteString(apostrophe)
			} else {
				b.WriteRune(charmap.Windows1252.DecodeByte(s[i]))
			}
		case r == controlQuote:
			b.WriteString(apostrophe)
		default:
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

func Bytes(b []byte) []byte {
	s := string(b)
	n := Normalize(s)
	if n == s {
		return b
	}
	return []byte(n)
}

// Value normalizes strings and returns any other value unchanged.
func Value(v any) any {
	switch t := v.(type) {
	case string:
		return Normalize(t)
	case *string:
		if t == nil {
			return v
		}
		n := Normalize(*t)
		return &n
	default:
		return v
	}
}
