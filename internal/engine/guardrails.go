package engine

import (
	"regexp"
	"strings"
)

// Guardrails intercept unsafe or out-of-scope input before intent
// classification. A triggered guardrail is a deliberate short-circuit, not
// an error path, and must never reach the remote provider.

type guardrail struct {
	pattern *regexp.Regexp
	message string
}

const (
	privacyRedirect = "I keep personal and account details private — but I'm happy to talk about projects, skills, or how to get in touch through the contact section!"
	safetyRedirect  = "That's outside what I can help with. For medical, legal, or safety questions please talk to a qualified professional. I can tell you about this portfolio though!"
	toneRedirect    = "Let's keep it friendly! Ask me about projects, achievements, or skills and I'll do my best."
)

var guardrails = []guardrail{
	{
		// Requests for credentials or sensitive personal data.
		pattern: regexp.MustCompile(`\b(passwords?|passcodes?|social security|ssn|credit card|bank account|home address|phone number|date of birth)\b`),
		message: privacyRedirect,
	},
	{
		// Medical / legal / unsafe requests.
		pattern: regexp.MustCompile(`\b(diagnos(e|is)|prescri(be|ption)|medical advice|legal advice|lawsuit|sue|weapons?|explosives?|self[- ]?harm)\b`),
		message: safetyRedirect,
	},
	{
		// Profanity / frustration.
		pattern: regexp.MustCompile(`\b(stupid|idiot|useless|hate you|shut up|wtf|damn|hell)\b`),
		message: toneRedirect,
	},
}

// checkGuardrails returns the redirect message for the first triggered
// guardrail, or "" when the input is clean.
func checkGuardrails(text string) string {
	lower := strings.ToLower(text)
	for _, g := range guardrails {
		if g.pattern.MatchString(lower) {
			return g.message
		}
	}
	return ""
}
