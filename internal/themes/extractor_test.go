package themes

import (
	"strings"
	"testing"

	"github.com/lumenjournal/insights/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestExtractThemes_AtMostTwoCleanThemes(t *testing.T) {
	texts := []string{
		"Work was busy, the gym was packed, dinner with family, then a movie and some reading before bed.",
		"Emailed john.doe@example.com about the project!!! ### so much going on",
		"My dog chased cats in the park while I thought about money, travel, school, and sleep.",
	}

	for _, text := range texts {
		result := ExtractThemes(text, "")
		assert.LessOrEqual(t, len(result.Themes), 2)
		for _, theme := range result.Themes {
			assert.NotRegexp(t, `[^a-z0-9\s]`, theme)
			assert.LessOrEqual(t, len(strings.Fields(theme)), 3)
		}
	}
}

func TestExtractThemes_SentimentCompounding(t *testing.T) {
	text := "Work, work, work."

	withLabel := ExtractThemes(text, models.SentimentHappy)
	assert.Equal(t, []string{"work happiness"}, withLabel.Themes)

	withoutLabel := ExtractThemes(text, "")
	assert.Equal(t, []string{"work"}, withoutLabel.Themes)

	neutral := ExtractThemes(text, models.SentimentNeutral)
	assert.Equal(t, []string{"work"}, neutral.Themes)

	sad := ExtractThemes(text, models.SentimentSad)
	assert.Equal(t, []string{"work stress"}, sad.Themes)
}

func TestExtractThemes_FrequencyMapIsPreCompounding(t *testing.T) {
	result := ExtractThemes("Work meetings and more meetings", models.SentimentSad)

	// "work", "work meetings" and two "meetings" mentions all canonicalize
	// to work; the frequency map keys stay uncompounded.
	assert.Equal(t, 4, result.ThemeFrequency["work"])
	assert.Equal(t, []string{"work stress"}, result.Themes)
}

func TestExtractThemes_MappedThemesOutrankPseudoThemes(t *testing.T) {
	// "xylophone" appears twice, "gym" once; the dictionary bonus still wins.
	result := ExtractThemes("Played xylophone, cleaned the xylophone, went to the gym.", "")

	assert.Len(t, result.Themes, 2)
	assert.Equal(t, "health", result.Themes[0])
	assert.Equal(t, "xylophone", result.Themes[1])
}

func TestExtractThemes_StopWordOnlyText(t *testing.T) {
	result := ExtractThemes("It was what it was", "")
	assert.Empty(t, result.Themes)
	assert.Empty(t, result.ThemeFrequency)
}

func TestExtractThemes_KeyPhrasesCapped(t *testing.T) {
	result := ExtractThemes(
		"Guitar practice, sourdough baking, marathon training, pottery class, chess puzzles, birdwatching walks.",
		"",
	)
	assert.LessOrEqual(t, len(result.KeyPhrases), 5)
	assert.NotEmpty(t, result.KeyPhrases)
}

func TestNaiveCandidates(t *testing.T) {
	cands := naiveCandidates("the quick quick brown fox ran off")
	phrases := make([]string, 0, len(cands))
	for _, c := range cands {
		phrases = append(phrases, c.phrase)
	}
	// Words of three characters or fewer are dropped, duplicates collapse.
	assert.Equal(t, []string{"quick", "brown"}, phrases)
}

func TestNaiveCandidates_CapsAtTen(t *testing.T) {
	cands := naiveCandidates(
		"alpha bravo charlie delta echo foxtrot golf… hotel india juliet kilo lima mike november",
	)
	assert.LessOrEqual(t, len(cands), 10)
}
