package postservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeMarkdown(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain markdown untouched",
			input:    "# Heading\n\nSome **bold** text.",
			expected: "# Heading\n\nSome **bold** text.",
		},
		{
			name:     "script tag stripped",
			input:    "before<script>alert('x')</script>after",
			expected: "beforeafter",
		},
		{
			name:     "script tag with attributes",
			input:    `<script type="text/javascript">alert('x')</script>`,
			expected: "",
		},
		{
			name:     "case insensitive",
			input:    "<SCRIPT>alert('x')</SCRIPT>",
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, sanitizeMarkdown(tc.input))
		})
	}
}
