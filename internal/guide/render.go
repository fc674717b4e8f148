// Package guide loads the setup-guide template and fills in its placeholders.
//
// Placeholders are literal tokens, not a template language:
//
//	{{AUTH_CHOICE}}     → the configured auth choice, "(auto)" by default
//	{{MISSING_REASON}}  → why setup is still required
package guide

import (
	"strings"

	"github.com/clawdbot/clawd-guide/web"
)

const (
	AuthChoiceToken    = "{{AUTH_CHOICE}}"
	MissingReasonToken = "{{MISSING_REASON}}"
)

// Render replaces every AuthChoiceToken with authChoice and then every
// MissingReasonToken with missingReason. A template without tokens is
// returned unchanged.
func Render(template, authChoice, missingReason string) string {
	out := strings.ReplaceAll(template, AuthChoiceToken, authChoice)
	return strings.ReplaceAll(out, MissingReasonToken, missingReason)
}

// Fallback returns the fixed page served when the template is unreadable.
func Fallback(missingReason string) string {
	return strings.ReplaceAll(web.FallbackTemplate, MissingReasonToken, missingReason)
}
