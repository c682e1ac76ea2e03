package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizer_StripsScripts(t *testing.T) {
	s := NewSanitizer()

	out := s.SanitizeHTML(`<p>Take <b>two</b> tablets</p><script>alert("x")</script>`)
	assert.Contains(t, out, "<b>two</b>")
	assert.NotContains(t, out, "script")
	assert.NotContains(t, out, "alert")
}

func TestSanitizer_EmptyInput(t *testing.T) {
	s := NewSanitizer()
	assert.Equal(t, "", s.SanitizeHTML(""))
}

func TestSanitizer_SanitizeAndTrim(t *testing.T) {
	s := NewSanitizer()
	assert.Equal(t, "plain answer", s.SanitizeAndTrim("  plain answer \n"))
}
