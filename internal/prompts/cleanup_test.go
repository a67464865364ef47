package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean_AlreadyCleanQuestionIsUnchanged(t *testing.T) {
	clean := "What made you smile today?"
	assert.Equal(t, clean, Clean(clean))
	// Running the filter twice must be a no-op.
	assert.Equal(t, clean, Clean(Clean(clean)))
}

func TestClean_StripsTrailingSelfDescription(t *testing.T) {
	raw := "What made you smile today? This prompt is perfect for you because it feels completely safe."
	assert.Equal(t, "What made you smile today?", Clean(raw))
}

func TestClean_PicksQuestionLineFromMultilineResponse(t *testing.T) {
	raw := "Here is a great journaling prompt for you\n\n- What small victory are you celebrating today?"
	assert.Equal(t, "What small victory are you celebrating today?", Clean(raw))
}

func TestClean_ForcesQuestionMarkOnStatementLine(t *testing.T) {
	assert.Equal(t, "Reflect on a moment of growth?", Clean("Reflect on a moment of growth."))
}

func TestClean_QuestionWordLineWithoutPunctuation(t *testing.T) {
	assert.Equal(t, "What's one thing you noticed today?", Clean("What's one thing you noticed today"))
}

func TestClean_TruncatesAtFirstSentenceEnd(t *testing.T) {
	raw := "How far have you truly come? Write about it. It requires no deep soul-searching."
	assert.Equal(t, "How far have you truly come?", Clean(raw))
}

func TestClean_StripsDescriptionMarkers(t *testing.T) {
	for raw, want := range map[string]string{
		"As a new journaler, what feels easiest to write about":     ", what feels easiest to write about?",
		"- What are you grateful for right now?":                    "What are you grateful for right now?",
		"What patterns do you notice? Because it matters to growth": "What patterns do you notice?",
	} {
		assert.Equal(t, want, Clean(raw), "input: %q", raw)
	}
}

func TestClean_EmptyInput(t *testing.T) {
	assert.Equal(t, "", Clean(""))
	assert.Equal(t, "", Clean("   \n\n  "))
}
