package postservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple title",
			input:    "Hello World!",
			expected: "hello-world",
		},
		{
			name:     "already a slug",
			input:    "hello-world",
			expected: "hello-world",
		},
		{
			name:     "mixed punctuation runs",
			input:    "Go 1.22 -- what's new?",
			expected: "go-1-22-what-s-new",
		},
		{
			name:     "leading and trailing junk",
			input:    "  ...Trim Me...  ",
			expected: "trim-me",
		},
		{
			name:     "uppercase and digits",
			input:    "ABC123",
			expected: "abc123",
		},
		{
			name:     "only punctuation",
			input:    "!!!",
			expected: "",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "non-ascii collapsed",
			input:    "café au lait",
			expected: "caf-au-lait",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Slugify(tc.input)
			assert.Equal(t, tc.expected, got)

			// idempotent under repeated application
			assert.Equal(t, got, Slugify(got))

			if got != "" {
				assert.Regexp(t, SlugRX, got)
			}
		})
	}
}
