// ABOUTME: HTML sanitization for bot replies before they reach the transcript
// ABOUTME: The assistant backend may emit markup; scripts and embeds are stripped

package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips dangerous markup from assistant-generated content.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a sanitizer with a policy suited to rendered chat
// replies: standard formatting tags survive, scripts and embeds do not.
func NewSanitizer() *Sanitizer {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	return &Sanitizer{
		policy: policy,
	}
}

// SanitizeHTML sanitizes the given content string.
func (s *Sanitizer) SanitizeHTML(content string) string {
	if content == "" {
		return ""
	}
	return s.policy.Sanitize(content)
}

// SanitizeAndTrim sanitizes and then trims surrounding whitespace.
func (s *Sanitizer) SanitizeAndTrim(content string) string {
	return strings.TrimSpace(s.SanitizeHTML(content))
}
