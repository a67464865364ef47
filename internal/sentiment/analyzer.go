package sentiment

import (
	"strings"

	"github.com/lumenjournal/insights/internal/models"
)

// Analyze scores the emotional tone of text against the affect lexicon. It
// always succeeds: empty or neutral text yields a zero comparative, a
// "neutral" label and a zero score.
//
// Comparative is the mean per-token polarity and is not bounded to [-1, 1];
// a short intense text like "amazing" scores 4.0. The final Score is always
// clamped to [-5, 5].
func Analyze(text string) models.SentimentResult {
	tokens := tokenize(text)

	var sum int
	var positive, negative []string
	for _, token := range tokens {
		polarity, ok := affectLexicon[token]
		if !ok {
			continue
		}
		sum += polarity
		if polarity > 0 {
			positive = append(positive, token)
		} else if polarity < 0 {
			negative = append(negative, token)
		}
	}

	comparative := 0.0
	if len(tokens) > 0 {
		comparative = float64(sum) / float64(len(tokens))
	}

	return models.SentimentResult{
		Score:         clamp(comparative*5, -5, 5),
		Label:         labelFor(comparative),
		PositiveWords: positive,
		NegativeWords: negative,
		Comparative:   comparative,
	}
}

// labelFor buckets a comparative value into the five ordinal labels.
func labelFor(comparative float64) models.SentimentLabel {
	switch {
	case comparative > 0.4:
		return models.SentimentVeryHappy
	case comparative > 0.1:
		return models.SentimentHappy
	case comparative >= -0.1:
		return models.SentimentNeutral
	case comparative >= -0.4:
		return models.SentimentSad
	default:
		return models.SentimentDepressed
	}
}

// tokenize lowercases text and splits it into alphanumeric runs.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '\'')
	})
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
