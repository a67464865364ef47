package patterns

import (
	"context"
	"testing"
	"time"

	"github.com/lumenjournal/insights/internal/models"
	"github.com/lumenjournal/insights/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockEntryStore struct {
	mock.Mock
}

func (m *mockEntryStore) CreateEntry(ctx context.Context, entry *models.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockEntryStore) ListEntries(ctx context.Context, userID string) ([]models.Entry, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Entry), args.Error(1)
}

func (m *mockEntryStore) FindEntriesByUser(ctx context.Context, userID string, window *store.DateRange, onlyAllowAI bool) ([]models.Entry, error) {
	args := m.Called(ctx, userID, window, onlyAllowAI)
	return args.Get(0).([]models.Entry), args.Error(1)
}

func (m *mockEntryStore) CountEntriesByUser(ctx context.Context, userID string, window *store.DateRange, onlyAllowAI bool) (int, error) {
	args := m.Called(ctx, userID, window, onlyAllowAI)
	return args.Int(0), args.Error(1)
}

func (m *mockEntryStore) FindMostRecentEntry(ctx context.Context, userID string, onlyAllowAI bool) (*models.Entry, error) {
	args := m.Called(ctx, userID, onlyAllowAI)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Entry), args.Error(1)
}

func scorePtr(v float64) *float64 {
	return &v
}

func entryWithScore(score float64, age time.Duration, themes ...string) models.Entry {
	return models.Entry{
		ID:             "e-" + time.Now().Add(-age).Format("150405.000"),
		UserID:         "user-1",
		Content:        "test entry",
		SentimentScore: scorePtr(score),
		Themes:         themes,
		AllowAI:        true,
		CreatedAt:      time.Now().Add(-age),
	}
}

func TestAnalyze_EmptyWindowFallsBackToMostRecent(t *testing.T) {
	entries := new(mockEntryStore)
	tenDaysAgo := models.Entry{
		ID:        "old",
		UserID:    "user-1",
		CreatedAt: time.Now().AddDate(0, 0, -10),
	}
	entries.On("FindEntriesByUser", mock.Anything, "user-1", mock.Anything, true).
		Return([]models.Entry{}, nil)
	entries.On("FindMostRecentEntry", mock.Anything, "user-1", true).
		Return(&tenDaysAgo, nil)

	analyzer := NewAnalyzer(entries)
	patterns, err := analyzer.Analyze(context.Background(), "user-1", 7, true)

	assert.NoError(t, err)
	assert.Equal(t, 0, patterns.TotalEntries)
	assert.Equal(t, 10, patterns.GapDays)
	assert.Empty(t, patterns.CommonThemes)
	assert.Equal(t, models.TrendUnknown, patterns.SentimentTrend)
	assert.Equal(t, 0.0, patterns.AvgSentiment)
	entries.AssertExpectations(t)
}

func TestAnalyze_NoEntriesAtAll(t *testing.T) {
	entries := new(mockEntryStore)
	entries.On("FindEntriesByUser", mock.Anything, "user-1", mock.Anything, true).
		Return([]models.Entry{}, nil)
	entries.On("FindMostRecentEntry", mock.Anything, "user-1", true).
		Return(nil, nil)

	analyzer := NewAnalyzer(entries)
	patterns, err := analyzer.Analyze(context.Background(), "user-1", 14, true)

	assert.NoError(t, err)
	assert.Equal(t, 0, patterns.TotalEntries)
	assert.Nil(t, patterns.LastEntryDate)
	assert.Equal(t, 0, patterns.GapDays)
}

func TestAnalyze_ImprovingTrend(t *testing.T) {
	entries := new(mockEntryStore)
	// Newest first: newer half [4, 3] (mean 3.5) vs older half [-3, -4]
	// (mean -3.5). Difference 7 is well past the threshold.
	window := []models.Entry{
		entryWithScore(4, 1*time.Hour, "work"),
		entryWithScore(3, 24*time.Hour, "work"),
		entryWithScore(-3, 48*time.Hour, "health"),
		entryWithScore(-4, 72*time.Hour),
	}
	entries.On("FindEntriesByUser", mock.Anything, "user-1", mock.Anything, true).
		Return(window, nil)

	analyzer := NewAnalyzer(entries)
	patterns, err := analyzer.Analyze(context.Background(), "user-1", 14, true)

	assert.NoError(t, err)
	assert.Equal(t, models.TrendImproving, patterns.SentimentTrend)
	assert.Equal(t, 4, patterns.TotalEntries)
	assert.Equal(t, 0, patterns.GapDays)
	assert.InDelta(t, 0.0, patterns.AvgSentiment, 0.001)
	assert.InDelta(t, 2.0, patterns.WritingFrequency, 0.001)
	assert.Equal(t, []string{"work", "health"}, patterns.CommonThemes)
}

func TestAnalyze_DecliningTrend(t *testing.T) {
	entries := new(mockEntryStore)
	window := []models.Entry{
		entryWithScore(-2, 1*time.Hour),
		entryWithScore(-1, 24*time.Hour),
		entryWithScore(2, 48*time.Hour),
		entryWithScore(3, 72*time.Hour),
	}
	entries.On("FindEntriesByUser", mock.Anything, "user-1", mock.Anything, true).
		Return(window, nil)

	analyzer := NewAnalyzer(entries)
	patterns, err := analyzer.Analyze(context.Background(), "user-1", 14, true)

	assert.NoError(t, err)
	assert.Equal(t, models.TrendDeclining, patterns.SentimentTrend)
}

func TestAnalyze_TooFewScoredEntriesForTrend(t *testing.T) {
	entries := new(mockEntryStore)
	window := []models.Entry{
		entryWithScore(5, 1*time.Hour),
		entryWithScore(-5, 24*time.Hour),
		{ID: "unscored", UserID: "user-1", CreatedAt: time.Now().Add(-36 * time.Hour)},
	}
	entries.On("FindEntriesByUser", mock.Anything, "user-1", mock.Anything, true).
		Return(window, nil)

	analyzer := NewAnalyzer(entries)
	patterns, err := analyzer.Analyze(context.Background(), "user-1", 14, true)

	assert.NoError(t, err)
	assert.Equal(t, models.TrendUnknown, patterns.SentimentTrend)
	assert.InDelta(t, 0.0, patterns.AvgSentiment, 0.001)
	assert.Equal(t, 3, patterns.TotalEntries)
}

func TestAnalyze_CommonThemesRankedWithStableTies(t *testing.T) {
	entries := new(mockEntryStore)
	window := []models.Entry{
		entryWithScore(1, 1*time.Hour, "work", "family"),
		entryWithScore(1, 24*time.Hour, "work", "health"),
		entryWithScore(1, 48*time.Hour, "work", "family", "travel"),
		entryWithScore(1, 72*time.Hour, "pets", "food"),
	}
	entries.On("FindEntriesByUser", mock.Anything, "user-1", mock.Anything, true).
		Return(window, nil)

	analyzer := NewAnalyzer(entries)
	patterns, err := analyzer.Analyze(context.Background(), "user-1", 14, true)

	assert.NoError(t, err)
	// work x3, family x2, then the four singletons in first-seen order,
	// capped at five.
	assert.Equal(t, []string{"work", "family", "health", "travel", "pets"}, patterns.CommonThemes)
}
