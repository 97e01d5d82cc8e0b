package textnorm

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain text", input: "Order shipped", expected: "Order shipped"},
		{name: "empty", input: "", expected: ""},
		{name: "control quote", input: "Customer\u0092s order", expected: "Customer's order"},
		{name: "raw byte quote", input: "Customer\x92s order", expected: "Customer's order"},
		{
			name:     "every occurrence",
			input:    "a\x92b\u0092c\x92",
			expected: "a'b'c'",
		},
		{name: "other windows-1252 byte", input: "caf\xe9", expected: "café"},
		{name: "valid unicode untouched", input: "it’s 10 €", expected: "it’s 10 €"},
		{name: "replacement char untouched", input: "bad �", expected: "bad �"},
		{name: "byte undefined in windows-1252", input: "x\x81y\x9d", expected: "x\uFFFDy\uFFFD"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Normalize(test.input)
			assert.Equal(t, test.expected, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"Work Order Raised",
		"Customer\x92s \u0092order\x92",
		"caf\xe9 \x81\x8d",
		"it’s",
	}
	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "input %q", input)
	}
}

func TestBytes(t *testing.T) {
	clean := []byte("<message>ok</message>")
	assert.Equal(t, clean, Bytes(clean))
	assert.Equal(t, []byte("<message>it's</message>"), Bytes([]byte("<message>it\x92s</message>")))
}

func TestValue(t *testing.T) {
	assert.Equal(t, "it's", Value("it\u0092s"))
	assert.Equal(t, 12.5, Value(12.5))
	assert.Equal(t, int64(3), Value(int64(3)))
	assert.Nil(t, Value(nil))

	s := "it\x92s"
	got, ok := Value(&s).(*string)
	require.True(t, ok)
	assert.Equal(t, "it's", *got)
	assert.Equal(t, "it\x92s", s)
}
