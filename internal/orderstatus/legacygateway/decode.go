package legacygateway

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"order-status/internal/orderstatus/textnorm"
)

var (
	errEmptyDocument    = errors.New("document has no root element")
	errContentAfterRoot = errors.New("content outside the document element")
	encodingDecl        = regexp.MustCompile(`^\s*<\?xml[^>]*?encoding\s*=\s*["']([A-Za-z0-9._:-]+)["']`)
)

// extractStatus returns the character data of the first element named element.
// The whole document must be well-formed even when the element comes early, and
// nothing but whitespace, comments or processing instructions may follow the root.
func extractStatus(body []byte, element string) (string, bool, error) {
	if isUTF8(declaredEncoding(body)) {
		body = textnorm.Bytes(body)
	}
	decoder := xml.NewDecoder(bytes.NewReader(body))
	decoder.CharsetReader = charsetReader

	var (
		text    string
		found   bool
		sawRoot bool
		closed  bool
		depth   int
	)
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", false, err //nolint:wrapcheck // wrapped by caller
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if closed {
				return "", false, errContentAfterRoot
			}
			sawRoot = true
			if !found && t.Name.Local == element {
				var value struct {
					Text string `xml:",chardata"`
				}
				if err := decoder.DecodeElement(&value, &t); err != nil {
					return "", false, err //nolint:wrapcheck // wrapped by caller
				}
				text, found = value.Text, true
				closed = depth == 0
				continue
			}
			depth++
		case xml.EndElement:
			depth--
			closed = depth == 0
		case xml.CharData:
			if depth == 0 && len(bytes.TrimSpace(t)) > 0 {
				return "", false, errContentAfterRoot
			}
		}
	}
	if !sawRoot {
		return "", false, errEmptyDocument
	}
	return text, found, nil
}

func declaredEncoding(body []byte) string {
	match := encodingDecl.FindSubmatch(body)
	if match == nil {
		return ""
	}
	return string(match[1])
}

func isUTF8(label string) bool {
	switch strings.ToLower(label) {
	case "", "utf-8", "utf8":
		return true
	}
	return false
}

// charsetReader reads ISO-8859-1 literally so that 0x92 surfaces as U+0092 and
// is repaired by the normalizer. Other labels follow the WHATWG index.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(label) {
	case "iso-8859-1", "iso8859-1", "latin1", "l1":
		return charmap.ISO8859_1.NewDecoder().Reader(input), nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, err //nolint:wrapcheck // wrapped by caller
	}
	return enc.NewDecoder().Reader(input), nil
}
