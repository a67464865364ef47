package models

import "time"

// SentimentLabel is one of five ordinal emotional buckets assigned to an entry.
type SentimentLabel string

const (
	SentimentVeryHappy SentimentLabel = "very happy"
	SentimentHappy     SentimentLabel = "happy"
	SentimentNeutral   SentimentLabel = "neutral"
	SentimentSad       SentimentLabel = "sad"
	SentimentDepressed SentimentLabel = "depressed"
)

// SentimentTrend describes the direction of a user's recent sentiment.
type SentimentTrend string

const (
	TrendImproving SentimentTrend = "improving"
	TrendDeclining SentimentTrend = "declining"
	TrendStable    SentimentTrend = "stable"
	TrendUnknown   SentimentTrend = "unknown"
)

// Entry is a journal entry as persisted by the entry store. The AllowAI and
// AllowAnalytics flags record the privacy settings in force when the entry was
// written and never change afterwards, even if the user later flips a toggle.
type Entry struct {
	ID             string         `json:"id"`
	UserID         string         `json:"user_id"`
	Content        string         `json:"content"`
	WordCount      int            `json:"word_count"`
	SentimentScore *float64       `json:"sentiment_score"` // [-5, 5], nil until analyzed
	SentimentLabel SentimentLabel `json:"sentiment_label,omitempty"`
	Themes         []string       `json:"themes"`
	AllowAI        bool           `json:"allow_ai"`
	AllowAnalytics bool           `json:"allow_analytics"`
	CreatedAt      time.Time      `json:"created_at"`
}

// SentimentResult is the transient output of the sentiment scorer.
// Score is always Comparative*5 clamped to [-5, 5]; Comparative itself is
// unbounded and can exceed +-1 for short intense texts.
type SentimentResult struct {
	Score         float64        `json:"score"`
	Label         SentimentLabel `json:"label"`
	PositiveWords []string       `json:"positive_words"`
	NegativeWords []string       `json:"negative_words"`
	Comparative   float64        `json:"comparative"`
}

// ThemeResult is the transient output of theme extraction.
type ThemeResult struct {
	Themes         []string       `json:"themes"`          // at most 2, ranked
	ThemeFrequency map[string]int `json:"theme_frequency"` // canonical theme -> mentions, pre-compounding
	KeyPhrases     []string       `json:"key_phrases"`     // up to 5, display only
}

// HistoricalPatterns aggregates a user's recent entries into behavioral
// signals. It is recomputed on every prompt request and never persisted.
type HistoricalPatterns struct {
	CommonThemes     []string       `json:"common_themes"` // top 5 by mention count
	AvgSentiment     float64        `json:"avg_sentiment"`
	WritingFrequency float64        `json:"writing_frequency"` // entries per 7 days
	LastEntryDate    *time.Time     `json:"last_entry_date"`
	GapDays          int            `json:"gap_days"`
	TotalEntries     int            `json:"total_entries"`
	SentimentTrend   SentimentTrend `json:"sentiment_trend"`
}

// PromptContext is the input to context-aware prompt generation.
type PromptContext struct {
	EntryCount         int
	LastEntry          *Entry
	RecentEntries      []Entry
	UserID             string
	HistoricalPatterns *HistoricalPatterns
}

// PatternSnapshot is the audit copy of historical patterns stored alongside a
// generated prompt. Closed struct on purpose: it is written for debugging and
// never re-parsed by the pipeline.
type PatternSnapshot struct {
	CommonThemes     []string       `json:"common_themes"`
	AvgSentiment     float64        `json:"avg_sentiment"`
	WritingFrequency float64        `json:"writing_frequency"`
	GapDays          int            `json:"gap_days"`
	TotalEntries     int            `json:"total_entries"`
	SentimentTrend   SentimentTrend `json:"sentiment_trend"`
}

// PromptContextSnapshot captures the inputs that shaped a generated prompt.
type PromptContextSnapshot struct {
	EntryCount         int              `json:"entry_count"`
	RecentEntriesCount int              `json:"recent_entries_count"`
	LastEntryThemes    []string         `json:"last_entry_themes,omitempty"`
	LastEntrySentiment SentimentLabel   `json:"last_entry_sentiment,omitempty"`
	HistoricalPatterns *PatternSnapshot `json:"historical_patterns,omitempty"`
}

// GeneratedPrompt is a stored AI prompt. Rows are never mutated; a forced
// regeneration deletes today's rows and inserts a new one.
type GeneratedPrompt struct {
	ID             string                `json:"id"`
	UserID         string                `json:"user_id"`
	PromptText     string                `json:"prompt_text"`
	EntryCount     int                   `json:"entry_count"`
	RelatedEntryID string                `json:"related_entry_id,omitempty"`
	Context        PromptContextSnapshot `json:"context"`
	GeneratedAt    time.Time             `json:"generated_at"`
	ExpiresAt      time.Time             `json:"expires_at"`
}

// WeeklySummary is a stored narrative summary of one week of journaling,
// generated from aggregated signals only (never raw entry text).
type WeeklySummary struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	WeekStart      time.Time `json:"week_start"`
	WeekEnd        time.Time `json:"week_end"`
	Summary        string    `json:"summary"`
	TopThemes      []string  `json:"top_themes"`
	AvgSentiment   float64   `json:"avg_sentiment"`
	EntryCount     int       `json:"entry_count"`
	SentimentTrend []float64 `json:"sentiment_trend"` // chronological score series
	Regenerated    bool      `json:"regenerated"`
	CreatedAt      time.Time `json:"created_at"`
}

// PrivacySettings are a user's current privacy toggles. Both default to true
// when the user has never saved settings.
type PrivacySettings struct {
	AllowAI        bool `json:"allow_ai"`
	AllowAnalytics bool `json:"allow_analytics"`
}

// DefaultPrivacySettings returns the settings applied to users who have never
// touched the privacy controls.
func DefaultPrivacySettings() PrivacySettings {
	return PrivacySettings{AllowAI: true, AllowAnalytics: true}
}
