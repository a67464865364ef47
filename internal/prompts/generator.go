package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/lumenjournal/insights/internal/llm"
	"github.com/lumenjournal/insights/internal/models"
	"github.com/lumenjournal/insights/internal/privacy"
)

const (
	promptMaxTokens   = 50
	promptTemperature = 0.8
	snippetLength     = 200
)

// coachSystem is the fixed system instruction for prompt generation. The model
// is asked for exactly one short question; the cleanup pass still runs on
// every response because the constraint is not reliably obeyed.
const coachSystem = `You are an inspiring and motivational journaling coach. Your goal is to generate concise, exciting, and encouraging prompts (8-12 words) that make the user eager to write.

Respond with exactly one question and nothing else. No explanations, no bullet points, no meta-commentary about the prompt itself.

Acceptable responses:
- "What small victory are you celebrating today?"
- "What made you smile today?"
- "Start with just one sentence. What's on your mind?"
- "You often write about family. What's a small moment with them that made you smile?"
- "It's been 3 days since your last entry. What's one moment worth remembering?"
- "Your mood has been improving. What's contributing to that?"

Unacceptable responses (never answer like this):
- "Here's a great prompt for you: What made you smile today?"
- "What made you smile today? This prompt is perfect for you because it feels completely safe and requires no deep soul-searching."
- "- Reflect on your day
- Write about your feelings"

Your prompts should be:
- Reassuring and non-intimidating
- Low-barrier and accessible
- Specific enough to spark ideas but open enough for any response
- Personalized when patterns are provided: reference recurring themes naturally, acknowledge gaps gently, build on sentiment trends

Keep prompts concise (8-12 words), warm, and valuable. Make users feel understood and motivated to write.`

// Generator builds a context-aware journaling prompt: it picks a narrative
// framing from the user's entry count and historical patterns, asks the text
// generator for a prompt, and cleans the response down to a single question.
type Generator struct {
	gen llm.TextGenerator
}

// NewGenerator creates a prompt generator using the given text generator.
func NewGenerator(gen llm.TextGenerator) *Generator {
	return &Generator{gen: gen}
}

// Generate produces a prompt for the given context. The returned prompt has
// its text, entry count, related entry id, and context snapshot filled in;
// the caller assigns identity and expiry before storing it.
func (g *Generator) Generate(ctx context.Context, pc models.PromptContext) (*models.GeneratedPrompt, error) {
	userContent := framingFor(pc)

	if pc.LastEntry != nil && pc.EntryCount > 1 {
		// Entry text leaves the system boundary here, so it is masked and
		// trimmed to a short snippet first.
		snippet := []rune(privacy.Mask(pc.LastEntry.Content))
		if len(snippet) > snippetLength {
			snippet = snippet[:snippetLength]
		}
		userContent = fmt.Sprintf("%s\n\nLast entry snippet (for context only, do not repeat): %q",
			userContent, string(snippet)+"...")
	}

	raw, err := g.gen.Complete(ctx, []llm.Message{{
		Role: "user",
		Content: fmt.Sprintf("Generate a motivational and inspiring journaling prompt for today. %s Make it concise and exciting (8-12 words maximum).",
			userContent),
	}}, llm.Options{
		MaxTokens:   promptMaxTokens,
		Temperature: promptTemperature,
		System:      coachSystem,
	})
	if err != nil {
		return nil, fmt.Errorf("generate prompt: %w", err)
	}

	prompt := &models.GeneratedPrompt{
		UserID:     pc.UserID,
		PromptText: Clean(raw),
		EntryCount: pc.EntryCount,
		Context:    snapshotOf(pc),
	}
	if pc.LastEntry != nil {
		prompt.RelatedEntryID = pc.LastEntry.ID
	}
	return prompt, nil
}

// framingFor picks the narrative framing paragraph. Branch priority is fixed:
// first entry of the day sub-branches on how established the user is, then
// gap, then known patterns; later entries build on what was already written.
func framingFor(pc models.PromptContext) string {
	hp := pc.HistoricalPatterns

	switch {
	case pc.EntryCount == 1:
		switch {
		case hp == nil || hp.TotalEntries == 0:
			return "This is the user's first entry ever. They may be experiencing blank page anxiety. Create a warm, reassuring prompt that explicitly gives permission to start small. Make it feel safe, non-judgmental, and low-barrier."
		case hp.TotalEntries < 5:
			return "This is a new user (less than 5 total entries) writing their first entry of the day. They have already started journaling, so do not treat them as a complete beginner. Create a warm, welcoming prompt that builds their journaling habit and helps them see the value of reflecting regularly."
		case hp.GapDays > 2:
			return fmt.Sprintf("The user hasn't written since %s. Create a gentle, non-judgmental prompt that welcomes them back and encourages them to share what's been on their mind. Make it feel supportive and understanding, not demanding.", gapPhrase(hp.GapDays))
		case len(hp.CommonThemes) > 0:
			sentimentContext := ""
			if hp.SentimentTrend != models.TrendUnknown {
				sentimentContext = fmt.Sprintf(" Their overall sentiment has been %s recently.", hp.SentimentTrend)
			}
			return fmt.Sprintf("This is the user's first entry today. They often write about: %s.%s Create a prompt that acknowledges their interests while encouraging them to explore something new or reflect on their patterns. Make it feel personalized and relevant to their journaling style.",
				themeList(hp.CommonThemes, 3), sentimentContext)
		default:
			return "This is the user's first entry of the day. Create a warm, encouraging prompt that helps them process their day. Make it feel natural and inviting."
		}

	case pc.EntryCount == 2 && pc.LastEntry != nil:
		sentiment := pc.LastEntry.SentimentLabel
		if sentiment == "" {
			sentiment = models.SentimentNeutral
		}
		patternContext := ""
		if hp != nil && len(hp.CommonThemes) > 0 {
			if matching := intersect(hp.CommonThemes, pc.LastEntry.Themes); len(matching) > 0 {
				patternContext = fmt.Sprintf(" This aligns with their usual topics (%s).", strings.Join(matching, ", "))
			}
		}
		if hp != nil && hp.TotalEntries == 1 {
			// The brand-new framing already ran for their first entry.
			patternContext += " This is only their second entry ever, but do not use new-journaler language; they have already begun."
		}
		return fmt.Sprintf("The user just wrote their second entry today. Their first entry was about: %s, with a %s sentiment.%s Create a prompt that builds on this and encourages them to explore deeper or related thoughts.",
			themeList(pc.LastEntry.Themes, 3), sentiment, patternContext)

	case pc.EntryCount >= 3 && pc.LastEntry != nil:
		var todayThemes []string
		for _, entry := range pc.RecentEntries {
			todayThemes = append(todayThemes, entry.Themes...)
		}
		patternContext := ""
		if hp != nil && len(hp.CommonThemes) > 0 {
			patternContext = fmt.Sprintf(" Their recurring themes include: %s.", themeList(hp.CommonThemes, 3))
		}
		return fmt.Sprintf("The user has written %d entries today. Their most recent entry was about: %s. Overall themes today include: %s.%s Create a prompt that encourages deeper reflection, pattern recognition, or exploring connections between their thoughts.",
			pc.EntryCount, themeList(pc.LastEntry.Themes, 3), themeList(todayThemes, 5), patternContext)

	default:
		if hp != nil && hp.GapDays > 2 {
			return fmt.Sprintf("The user hasn't written in %d days. Create a gentle, welcoming prompt that helps them get back into journaling.", hp.GapDays)
		}
		return "Create a short, powerful journaling prompt that excites the user and sparks their desire to write."
	}
}

func gapPhrase(gapDays int) string {
	if gapDays == 1 {
		return "yesterday"
	}
	return fmt.Sprintf("%d days ago", gapDays)
}

// themeList joins up to limit themes, falling back to a neutral placeholder
// for entries that produced no themes.
func themeList(themes []string, limit int) string {
	if len(themes) > limit {
		themes = themes[:limit]
	}
	if len(themes) == 0 {
		return "various topics"
	}
	return strings.Join(themes, ", ")
}

func intersect(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, v := range b {
		inB[v] = true
	}
	var out []string
	for _, v := range a {
		if inB[v] {
			out = append(out, v)
		}
	}
	return out
}

// snapshotOf captures the generation inputs for storage alongside the prompt.
// The snapshot is audit data only and is never re-parsed by the pipeline.
func snapshotOf(pc models.PromptContext) models.PromptContextSnapshot {
	snapshot := models.PromptContextSnapshot{
		EntryCount:         pc.EntryCount,
		RecentEntriesCount: len(pc.RecentEntries),
	}
	if pc.LastEntry != nil {
		snapshot.LastEntryThemes = pc.LastEntry.Themes
		snapshot.LastEntrySentiment = pc.LastEntry.SentimentLabel
	}
	if hp := pc.HistoricalPatterns; hp != nil {
		snapshot.HistoricalPatterns = &models.PatternSnapshot{
			CommonThemes:     hp.CommonThemes,
			AvgSentiment:     hp.AvgSentiment,
			WritingFrequency: hp.WritingFrequency,
			GapDays:          hp.GapDays,
			TotalEntries:     hp.TotalEntries,
			SentimentTrend:   hp.SentimentTrend,
		}
	}
	return snapshot
}
