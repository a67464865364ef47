package store

import (
	"context"
	"time"

	"github.com/lumenjournal/insights/internal/models"
)

// DateRange bounds a query window. Both ends are inclusive.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// EntryStore is the persistence contract for journal entries. When onlyAllowAI
// is true, queries are filtered to entries whose creation-time AI permission
// flag was set.
type EntryStore interface {
	CreateEntry(ctx context.Context, entry *models.Entry) error
	ListEntries(ctx context.Context, userID string) ([]models.Entry, error)
	FindEntriesByUser(ctx context.Context, userID string, window *DateRange, onlyAllowAI bool) ([]models.Entry, error)
	CountEntriesByUser(ctx context.Context, userID string, window *DateRange, onlyAllowAI bool) (int, error)
	FindMostRecentEntry(ctx context.Context, userID string, onlyAllowAI bool) (*models.Entry, error)
}

// PromptStore is the persistence contract for generated prompts. Prompt rows
// are immutable; forced regeneration deletes today's rows and inserts anew.
type PromptStore interface {
	FindTodaysPrompt(ctx context.Context, userID string) (*models.GeneratedPrompt, error)
	SavePrompt(ctx context.Context, prompt *models.GeneratedPrompt) error
	DeleteTodaysPrompts(ctx context.Context, userID string) error
}

// SummaryStore is the persistence contract for weekly summaries.
type SummaryStore interface {
	FindWeeklySummary(ctx context.Context, userID string, weekStart time.Time) (*models.WeeklySummary, error)
	SaveWeeklySummary(ctx context.Context, summary *models.WeeklySummary) error
	DeleteWeeklySummaries(ctx context.Context, userID string, weekStart time.Time) error
	ListUserIDsWithEntriesSince(ctx context.Context, since time.Time) ([]string, error)
}

// UserStore holds current privacy settings. Users with no saved settings get
// the defaults (both toggles on).
type UserStore interface {
	GetPrivacySettings(ctx context.Context, userID string) (models.PrivacySettings, error)
	UpdatePrivacySettings(ctx context.Context, userID string, settings models.PrivacySettings) error
}

// Maintenance covers housekeeping run by the scheduler.
type Maintenance interface {
	PurgeExpiredPrompts(ctx context.Context) (int64, error)
}
