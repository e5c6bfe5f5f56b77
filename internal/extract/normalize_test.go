package extract

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "punctuation and double space", in: "Hello, World!  123", want: "Hello World 123"},
		{name: "empty", in: "", want: ""},
		{name: "only punctuation", in: "!!!...???", want: ""},
		{name: "leading and trailing punctuation", in: "--cats--", want: "cats"},
		{name: "newlines and tabs", in: "line one\n\tline two\r\n", want: "line one line two"},
		{name: "non ascii letters", in: "café naïve", want: "caf na ve"},
		{name: "digits kept", in: "E=mc^2 (1905)", want: "E mc 2 1905"},
		{name: "already normal", in: "Cats are mammals", want: "Cats are mammals"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Properties(t *testing.T) {
	allowed := regexp.MustCompile(`^[a-zA-Z0-9 ]*$`)
	inputs := []string{
		"Hello, World!  123",
		"  \t spaced\tout  ",
		"§1. Introduction — overview…",
		"a b",
		"😀 emoji 😀",
		"x",
		"  ",
	}

	for _, in := range inputs {
		out := Normalize(in)
		assert.Regexp(t, allowed, out, "input %q", in)
		assert.NotContains(t, out, "  ", "input %q", in)
		if out != "" {
			assert.NotEqual(t, byte(' '), out[0], "input %q", in)
			assert.NotEqual(t, byte(' '), out[len(out)-1], "input %q", in)
		}
		assert.Equal(t, out, Normalize(out), "normalize must be idempotent for %q", in)
	}
}
