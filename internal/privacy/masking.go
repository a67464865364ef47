package privacy

import "regexp"

// maskRule is one pattern -> placeholder substitution. Rules run in slice
// order: phone masking must run before the bare 9-digit SSN fallback so a
// phone number embedded in a longer digit run is not mislabeled.
type maskRule struct {
	pattern     *regexp.Regexp
	replacement string
}

var maskRules = []maskRule{
	// Email addresses
	{regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`), "[EMAIL]"},

	// Phone numbers: +CC (AAA) BBB-CCCC and AAA-BBB-CCCC shapes
	{regexp.MustCompile(`(\+\d{1,3}[-. ]?)?\(?\d{3}\)?[-. ]?\d{3}[-.]?\d{4}`), "[PHONE]"},
	{regexp.MustCompile(`\d{3}[-.]?\d{3}[-.]?\d{4}`), "[PHONE]"},

	// SSN: dashed form, then any bare 9-digit run. The bare rule also hits
	// arbitrary 9-digit IDs; accepted collateral over-masking.
	{regexp.MustCompile(`\d{3}-\d{2}-\d{4}`), "[SSN]"},
	{regexp.MustCompile(`\d{9}`), "[SSN]"},

	// Credit cards (16 digits, with or without separators)
	{regexp.MustCompile(`\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}`), "[CARD]"},

	// Street addresses (leading number + street-suffix keyword)
	{regexp.MustCompile(`(?i)\d+\s+[\w\s]+(?:street|st|avenue|ave|road|rd|lane|ln|drive|dr|boulevard|blvd|way|circle|cir|court|ct)`), "[ADDRESS]"},

	// IPv4 addresses
	{regexp.MustCompile(`\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`), "[IP]"},

	// URLs (might contain PII in paths or query strings)
	{regexp.MustCompile(`https?://\S+`), "[URL]"},
}

// Mask redacts emails, phone numbers, SSNs, card numbers, street addresses,
// IPs and URLs from text before it leaves the system boundary. It is pure and
// never fails; text with no matches is returned unchanged.
func Mask(text string) string {
	masked := text
	for _, rule := range maskRules {
		masked = rule.pattern.ReplaceAllString(masked, rule.replacement)
	}
	return masked
}

var (
	emailPattern = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	phonePattern = regexp.MustCompile(`(\+\d{1,3}[-. ]?)?\(?\d{3}\)?[-. ]?\d{3}[-.]?\d{4}`)
	ssnPattern   = regexp.MustCompile(`\d{3}-\d{2}-\d{4}`)
	cardPattern  = regexp.MustCompile(`\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}`)
)

// HasPII reports whether text contains an email, phone, SSN or card pattern.
// It deliberately checks fewer patterns than Mask applies; it is a validation
// helper, not an exhaustive detector.
func HasPII(text string) bool {
	return emailPattern.MatchString(text) ||
		phonePattern.MatchString(text) ||
		ssnPattern.MatchString(text) ||
		cardPattern.MatchString(text)
}
