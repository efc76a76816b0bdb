package gateway

import "regexp"

// ─────────────────────────────────────────────────────────────────────────────
// PII redaction
// ─────────────────────────────────────────────────────────────────────────────

// Dutch real-estate documents carry buyer and seller PII. Redaction runs on
// every text before it leaves the process toward an AI provider.
var (
	// BSN: 9 digits, often grouped with dots or dashes.
	bsnPattern = regexp.MustCompile(`\b\d{3}[.\-]?\d{3}[.\-]?\d{3}\b`)

	// Dutch phone numbers, national or +31 notation.
	phonePattern = regexp.MustCompile(`\b(?:0|\+31[\s-]?)(?:[1-9]\d{1,2}[\s-]?\d{6,7}|\d{2}[\s-]?\d{7})\b`)

	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	ibanPattern = regexp.MustCompile(`\b[A-Z]{2}\d{2}\s?[A-Z]{4}\s?\d{4}\s?\d{4}\s?\d{2,4}\b`)
)

// Redact replaces BSN numbers, phone numbers, email addresses and IBANs with
// placeholder tokens.
func Redact(text string) string {
	text = bsnPattern.ReplaceAllString(text, "[BSN_REDACTED]")
	text = phonePattern.ReplaceAllString(text, "[PHONE_REDACTED]")
	text = emailPattern.ReplaceAllString(text, "[EMAIL_REDACTED]")
	text = ibanPattern.ReplaceAllString(text, "[IBAN_REDACTED]")
	return text
}

// Prepare redacts and truncates text for an outbound model call.
func Prepare(text string, limit int) string {
	return Redact(Truncate(text, limit))
}
