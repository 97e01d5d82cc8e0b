package legacyprotocol

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
)

const (
	SearchPlaceholder    = "[SEARCHDATA]"
	DefaultStatusElement = "message"
	ContentType          = "text/xml; charset=utf-8"
)

var ErrNoPlaceholder = errors.New("request template has no " + SearchPlaceholder + " placeholder")

// DefaultTemplate is the job order inquiry envelope used when no template file is configured.
const DefaultTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:orm="http://oracle.e1.bssv.JP420000/">
  <soapenv:Header/>
  <soapenv:Body>
    <orm:getSalesOrderStatus>
      ` + SearchPlaceholder + `
    </orm:getSalesOrderStatus>
  </soapenv:Body>
</soapenv:Envelope>
`

// Settings is the legacy integration settings document. The root element name is not checked.
type Settings struct {
	EndpointURI string `xml:"SoapOrdURI"`
}

func ParseSettings(doc []byte) (Settings, error) {
	var settings Settings
	decoder := xml.NewDecoder(bytes.NewReader(doc))
	if err := decoder.Decode(&settings); err != nil {
		return Settings{}, fmt.Errorf("failed to parse legacy settings: %w", err)
	}
	settings.EndpointURI = strings.TrimSpace(settings.EndpointURI)
	if settings.EndpointURI == "" {
		return Settings{}, errors.New("legacy settings have no SoapOrdURI")
	}
	return settings, nil
}

type Template struct {
	text string
}

func NewTemplate(text string) (Template, error) {
	if strings.Count(text, SearchPlaceholder) != 1 {
		return Template{}, ErrNoPlaceholder
	}
	return Template{text: text}, nil
}

// Render substitutes the XML-escaped search key into the template.
func (t Template) Render(searchKey string) (string, error) {
	var escaped strings.Builder
	if err := xml.EscapeText(&escaped, []byte(searchKey)); err != nil {
		return "", fmt.Errorf("failed to escape search key: %w", err)
	}
	search := "<inputArray><vendorReference>" + escaped.String() + "</vendorReference></inputArray>"
	return strings.Replace(t.text, SearchPlaceholder, search, 1), nil
}
