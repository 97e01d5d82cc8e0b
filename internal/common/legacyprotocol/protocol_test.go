package legacyprotocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSettings(t *testing.T) {
	doc := []byte(`<?xml version="1.0"?>
<SoapSettings>
  <SoapOrdURI> https://legacy.example/ws/JP420000 </SoapOrdURI>
</SoapSettings>`)
	settings, err := ParseSettings(doc)
	require.NoError(t, err)
	assert.Equal(t, "https://legacy.example/ws/JP420000", settings.EndpointURI)

	_, err = ParseSettings([]byte(`<SoapSettings></SoapSettings>`))
	assert.Error(t, err)

	_, err = ParseSettings([]byte(`<SoapSettings>`))
	assert.Error(t, err)
}

func TestTemplate(t *testing.T) {
	tmpl, err := NewTemplate(DefaultTemplate)
	require.NoError(t, err)

	body, err := tmpl.Render("PKG-1")
	require.NoError(t, err)
	assert.Contains(t, body, "<inputArray><vendorReference>PKG-1</vendorReference></inputArray>")
	assert.NotContains(t, body, SearchPlaceholder)

	body, err = tmpl.Render("A&B<1>")
	require.NoError(t, err)
	assert.Contains(t, body, "<vendorReference>A&amp;B&lt;1&gt;</vendorReference>")
}

func TestNewTemplateRequiresSinglePlaceholder(t *testing.T) {
	_, err := NewTemplate("<Envelope/>")
	assert.ErrorIs(t, err, ErrNoPlaceholder)

	_, err = NewTemplate(SearchPlaceholder + SearchPlaceholder)
	assert.ErrorIs(t, err, ErrNoPlaceholder)
}
