package prompts

import (
	"regexp"
	"strings"
)

// questionLeads are the words that mark a line as a question even without
// terminal punctuation.
var questionLeads = map[string]bool{
	"what": true, "how": true, "why": true, "when": true, "where": true,
	"who": true, "which": true, "can": true, "could": true, "would": true,
	"should": true, "will": true, "did": true, "do": true, "does": true,
	"is": true, "are": true, "was": true, "were": true,
}

// descriptionMarkers are substrings the model uses when it explains its own
// prompt instead of just emitting one. Ordered longest-first so the specific
// phrases go before their substrings.
var descriptionMarkers = []string{
	"this prompt is perfect for you",
	"this prompt helps you",
	"this prompt",
	"because it",
	"as a new journaler",
	"new journaler",
	"perfect for you",
	"feels completely",
	"deep soul-searching",
	"non-judgmental",
	"requires no",
}

var (
	feelsSafePattern    = regexp.MustCompile(`(?i)feels[\w\s,]*?safe`)
	requiresDeepPattern = regexp.MustCompile(`(?i)requires[\w\s,]*?deep`)
	bulletLead          = regexp.MustCompile(`^[\s]*[-\x{2013}\x{2014}]+[\s]*`)
	// Marker words that, appearing right after a mid-text question mark,
	// indicate trailing self-description rather than a second question.
	trailingMarkerLead = regexp.MustCompile(`(?i)^(feels|requires|because|this|as a|new)\b|^[-\x{2013}\x{2014}]`)
)

// Clean reduces a raw model response to a single question. The generator is
// not trusted to obey the one-question constraint, so the response goes
// through an ordered heuristic filter: find the question line, cut trailing
// sentences, strip self-description, repair the question mark. This is a
// best-effort filter over a non-deterministic upstream, not a parser.
func Clean(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return text
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) == 0 {
		return ""
	}

	result := ""
	for _, line := range lines {
		if looksLikeQuestion(line) {
			result = forceQuestion(truncateAtSentenceEnd(line))
			break
		}
	}
	if result == "" {
		line := lines[0]
		if idx := strings.IndexAny(line, "?."); idx >= 0 {
			result = line[:idx+1]
		} else {
			result = stripMarkers(line)
		}
	}

	result = stripMarkers(result)
	result = truncateDanglingDescription(result)
	result = strings.TrimSpace(result)

	if !strings.HasSuffix(result, "?") && !strings.HasSuffix(result, ".") && !strings.HasSuffix(result, "!") {
		if containsQuestionWord(result) {
			result += "?"
		}
	}
	return result
}

func looksLikeQuestion(line string) bool {
	if strings.HasSuffix(line, "?") || strings.HasSuffix(line, ".") {
		return true
	}
	words := strings.Fields(strings.ToLower(bulletLead.ReplaceAllString(line, "")))
	return len(words) > 0 && questionLeads[bareWord(words[0])]
}

// truncateAtSentenceEnd cuts the line at its first question mark or period,
// dropping anything after.
func truncateAtSentenceEnd(line string) string {
	if idx := strings.IndexAny(line, "?."); idx >= 0 {
		return line[:idx]
	}
	return line
}

func forceQuestion(line string) string {
	return strings.TrimSpace(line) + "?"
}

// stripMarkers removes self-description phrasing and leading bullet dashes.
func stripMarkers(text string) string {
	for _, marker := range descriptionMarkers {
		for {
			idx := strings.Index(strings.ToLower(text), marker)
			if idx < 0 {
				break
			}
			text = text[:idx] + text[idx+len(marker):]
		}
	}
	text = feelsSafePattern.ReplaceAllString(text, "")
	text = requiresDeepPattern.ReplaceAllString(text, "")
	text = bulletLead.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// truncateDanglingDescription cuts at a mid-text question mark when what
// follows reads like self-description rather than a second question.
func truncateDanglingDescription(text string) string {
	idx := strings.Index(text, "?")
	if idx < 0 || idx == len(text)-1 {
		return text
	}
	rest := strings.TrimSpace(text[idx+1:])
	if trailingMarkerLead.MatchString(rest) {
		return text[:idx+1]
	}
	return text
}

func containsQuestionWord(text string) bool {
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if questionLeads[bareWord(word)] {
			return true
		}
	}
	return false
}

// bareWord strips quotes, punctuation, and contraction suffixes so "What's"
// still reads as "what".
func bareWord(word string) string {
	word = strings.Trim(word, `"',.!?`)
	if idx := strings.IndexAny(word, "'’"); idx >= 0 {
		word = word[:idx]
	}
	return word
}
