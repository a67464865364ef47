package themes

import (
	"regexp"
	"sort"
	"strings"

	"github.com/lumenjournal/insights/internal/models"
	"github.com/sirupsen/logrus"
)

// stopWords is the fixed discard list applied to candidate phrases.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"from": {}, "as": {}, "is": {}, "was": {}, "are": {}, "were": {},
	"been": {}, "be": {}, "have": {}, "has": {}, "had": {}, "do": {},
	"does": {}, "did": {}, "will": {}, "would": {}, "could": {},
	"should": {}, "may": {}, "might": {}, "must": {}, "can": {}, "this": {},
	"that": {}, "these": {}, "those": {},
}

// functionWords are skipped by the noun-phrase heuristic: pronouns,
// determiners, prepositions, auxiliaries, and the common verbs and adverbs of
// journaling prose. Everything else is treated as a noun-phrase candidate.
var functionWords = map[string]struct{}{
	"i": {}, "me": {}, "my": {}, "mine": {}, "we": {}, "our": {}, "ours": {},
	"you": {}, "your": {}, "yours": {}, "he": {}, "him": {}, "his": {},
	"she": {}, "her": {}, "hers": {}, "they": {}, "them": {}, "their": {},
	"theirs": {}, "it": {}, "its": {}, "us": {}, "myself": {},

	"about": {}, "above": {}, "after": {}, "again": {}, "against": {},
	"all": {}, "also": {}, "am": {}, "any": {}, "because": {}, "before": {},
	"below": {}, "between": {}, "both": {}, "down": {}, "during": {},
	"each": {}, "else": {}, "even": {}, "every": {}, "few": {}, "how": {},
	"if": {}, "into": {}, "just": {}, "like": {}, "more": {}, "most": {},
	"much": {}, "never": {}, "no": {}, "not": {}, "now": {}, "off": {},
	"once": {}, "only": {}, "other": {}, "out": {}, "over": {}, "own": {},
	"quite": {}, "really": {}, "same": {}, "since": {}, "so": {},
	"some": {}, "somehow": {}, "still": {}, "such": {}, "than": {},
	"then": {}, "there": {}, "though": {}, "through": {}, "too": {},
	"under": {}, "until": {}, "up": {}, "very": {}, "what": {}, "when": {},
	"where": {}, "which": {}, "while": {}, "who": {}, "whom": {}, "why": {},
	"yes": {}, "yet": {},

	"went": {}, "go": {}, "goes": {}, "going": {}, "gone": {}, "get": {},
	"gets": {}, "got": {}, "getting": {}, "make": {}, "makes": {},
	"made": {}, "making": {}, "take": {}, "takes": {}, "took": {},
	"taking": {}, "come": {}, "came": {}, "coming": {}, "want": {},
	"wants": {}, "wanted": {}, "need": {}, "needs": {}, "needed": {},
	"know": {}, "knows": {}, "knew": {}, "think": {}, "thinks": {},
	"thought": {}, "feel": {}, "feels": {}, "felt": {}, "say": {},
	"says": {}, "said": {}, "see": {}, "sees": {}, "saw": {}, "seem": {},
	"seems": {}, "seemed": {}, "keep": {}, "keeps": {}, "kept": {},
	"let": {}, "lets": {}, "trying": {}, "tried": {}, "try": {},

	"today": {}, "yesterday": {}, "tomorrow": {}, "tonight": {},
}

// sentimentSuffix maps a non-neutral sentiment label to the emotion word
// appended to single-word themes ("work" + sad -> "work stress").
var sentimentSuffix = map[models.SentimentLabel]string{
	models.SentimentVeryHappy: "joy",
	models.SentimentHappy:     "happiness",
	models.SentimentSad:       "stress",
	models.SentimentDepressed: "struggle",
}

var (
	segmentSplitter  = regexp.MustCompile(`[.,;:!?()\[\]"\n\r]+`)
	punctuationCheck = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	alphanumCheck    = regexp.MustCompile(`[a-zA-Z0-9]`)
	bareArticleLead  = regexp.MustCompile(`^(a|an|the|it|its|this|that|these|those)\s`)
)

// candidate is a raw extracted phrase with its mention count in the text.
type candidate struct {
	phrase string
	count  int
}

// ExtractThemes maps entry text onto at most two canonical themes. The
// sentiment label is optional; pass "" when sentiment has not been computed.
// Extraction never fails: if the noun-phrase pass blows up, a naive tokenizer
// supplies the candidates instead, so an entry save is never blocked here.
func ExtractThemes(text string, label models.SentimentLabel) models.ThemeResult {
	candidates := safeCandidates(text)

	type scoredTheme struct {
		theme  string
		mapped bool
		score  int
	}

	frequency := make(map[string]int)
	mapped := make(map[string]bool)
	var order []string

	for _, cand := range candidates {
		cleaned := cleanPhrase(cand.phrase)
		if len(cleaned) <= 2 {
			continue
		}
		if _, stop := stopWords[cleaned]; stop {
			continue
		}

		theme, ok := CanonicalTheme(cleaned)
		if !ok {
			theme = cleaned
		}
		if !passesQualityGate(theme) {
			continue
		}

		if _, seen := frequency[theme]; !seen {
			order = append(order, theme)
		}
		frequency[theme] += cand.count
		if ok {
			mapped[theme] = true
		}
	}

	scored := make([]scoredTheme, 0, len(order))
	for _, theme := range order {
		score := frequency[theme]
		if mapped[theme] {
			score += 10
		}
		switch len(strings.Fields(theme)) {
		case 1:
			score += 5
		case 2:
			score += 2
		}
		scored = append(scored, scoredTheme{theme: theme, mapped: mapped[theme], score: score})
	}

	// Stable sort keeps first-seen order as the tie-break.
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
	if len(scored) > 2 {
		scored = scored[:2]
	}

	themes := make([]string, 0, len(scored))
	for _, st := range scored {
		themes = append(themes, compoundWithSentiment(st.theme, label))
	}

	keyPhrases := make([]string, 0, 5)
	for _, cand := range candidates {
		if len(keyPhrases) == 5 {
			break
		}
		keyPhrases = append(keyPhrases, cand.phrase)
	}

	return models.ThemeResult{
		Themes:         themes,
		ThemeFrequency: frequency,
		KeyPhrases:     keyPhrases,
	}
}

// compoundWithSentiment appends the sentiment emotion word to single-word
// themes when a non-neutral label is present.
func compoundWithSentiment(theme string, label models.SentimentLabel) string {
	if label == "" || label == models.SentimentNeutral {
		return theme
	}
	if strings.Contains(theme, " ") {
		return theme
	}
	suffix, ok := sentimentSuffix[label]
	if !ok {
		return theme
	}
	return theme + " " + suffix
}

// passesQualityGate rejects themes that would read as noise: punctuation,
// more than 3 words, under 2 characters, a dangling article lead-in, or no
// alphanumeric content at all.
func passesQualityGate(theme string) bool {
	if len(theme) < 2 {
		return false
	}
	if punctuationCheck.MatchString(theme) {
		return false
	}
	if len(strings.Fields(theme)) > 3 {
		return false
	}
	if bareArticleLead.MatchString(theme) {
		return false
	}
	if !alphanumCheck.MatchString(theme) {
		return false
	}
	return true
}

// safeCandidates runs the noun-phrase pass and falls back to the naive
// tokenizer if it panics.
func safeCandidates(text string) (cands []candidate) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Warnf("Noun phrase extraction failed, using naive tokenizer: %v", r)
			cands = naiveCandidates(text)
		}
	}()
	return nounPhraseCandidates(text)
}

// nounPhraseCandidates extracts single nouns and adjacent two-word noun
// phrases per punctuation-delimited segment, counting mentions and keeping
// first-seen order. A shallow heuristic, not a parser: any non-function word
// longer than two characters counts as a noun candidate.
func nounPhraseCandidates(text string) []candidate {
	counts := make(map[string]int)
	var order []string

	add := func(phrase string) {
		if _, seen := counts[phrase]; !seen {
			order = append(order, phrase)
		}
		counts[phrase]++
	}

	for _, segment := range segmentSplitter.Split(strings.ToLower(text), -1) {
		words := strings.Fields(segment)
		content := make([]bool, len(words))
		for i, word := range words {
			word = strings.Trim(word, "'-")
			words[i] = word
			if len(word) <= 2 {
				continue
			}
			if _, fn := functionWords[word]; fn {
				continue
			}
			if _, stop := stopWords[word]; stop {
				continue
			}
			content[i] = true
		}

		for i := range words {
			if !content[i] {
				continue
			}
			add(words[i])
			if i+1 < len(words) && content[i+1] {
				add(words[i] + " " + words[i+1])
			}
		}
	}

	cands := make([]candidate, 0, len(order))
	for _, phrase := range order {
		cands = append(cands, candidate{phrase: phrase, count: counts[phrase]})
	}
	return cands
}

// naiveCandidates is the recovery path: whitespace split, words longer than
// three characters, deduplicated, capped at ten.
func naiveCandidates(text string) []candidate {
	seen := make(map[string]struct{})
	var cands []candidate
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, `.,;:!?()[]"'`)
		if len(word) <= 3 {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		cands = append(cands, candidate{phrase: word, count: 1})
		if len(cands) == 10 {
			break
		}
	}
	return cands
}
