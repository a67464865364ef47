package summary

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lumenjournal/insights/internal/llm"
	"github.com/lumenjournal/insights/internal/models"
	"github.com/lumenjournal/insights/internal/store"
	"github.com/sirupsen/logrus"
)

// ErrNoEntries is returned when the user wrote nothing (with analytics
// enabled) in the past week.
var ErrNoEntries = errors.New("no entries found for this week")

const summarySystem = "You are an empathetic journaling coach that helps users understand their emotional patterns through thoughtful summaries."

// Service generates weekly narrative summaries. Only aggregated signals reach
// the text generator: theme frequencies, average sentiment, and the score
// series. Raw entry text never leaves the process from here.
type Service struct {
	entries   store.EntryStore
	summaries store.SummaryStore
	gen       llm.TextGenerator
	archiver  Archiver
	notifier  Notifier
}

// NewService creates the summary service. archiver and notifier are optional;
// nil disables report archiving and digest delivery respectively.
func NewService(entries store.EntryStore, summaries store.SummaryStore, gen llm.TextGenerator, archiver Archiver, notifier Notifier) *Service {
	return &Service{
		entries:   entries,
		summaries: summaries,
		gen:       gen,
		archiver:  archiver,
		notifier:  notifier,
	}
}

// GetWeeklySummary returns the current week's summary, generating one if it
// does not exist yet.
func (s *Service) GetWeeklySummary(ctx context.Context, userID string) (*models.WeeklySummary, error) {
	weekStart := currentWeekStart()
	existing, err := s.summaries.FindWeeklySummary(ctx, userID, weekStart)
	if err != nil {
		return nil, fmt.Errorf("find weekly summary: %w", err)
	}
	if existing != nil {
		return existing, nil
	}
	return s.generate(ctx, userID, weekStart, false)
}

// RegenerateWeeklySummary discards the current week's summary and creates a
// new one marked as regenerated.
func (s *Service) RegenerateWeeklySummary(ctx context.Context, userID string) (*models.WeeklySummary, error) {
	weekStart := currentWeekStart()
	if err := s.summaries.DeleteWeeklySummaries(ctx, userID, weekStart); err != nil {
		return nil, fmt.Errorf("delete weekly summaries: %w", err)
	}
	return s.generate(ctx, userID, weekStart, true)
}

// RunForAllUsers generates this week's summary for every user who wrote in
// the past seven days and sends out digests. Per-user failures are logged
// and skipped; the run continues.
func (s *Service) RunForAllUsers(ctx context.Context) error {
	since := time.Now().AddDate(0, 0, -7)
	userIDs, err := s.summaries.ListUserIDsWithEntriesSince(ctx, since)
	if err != nil {
		return fmt.Errorf("list users with recent entries: %w", err)
	}
	logrus.Infof("Weekly summary run covering %d users", len(userIDs))

	for _, userID := range userIDs {
		weeklySummary, err := s.GetWeeklySummary(ctx, userID)
		if err != nil {
			if errors.Is(err, ErrNoEntries) {
				continue
			}
			logrus.Errorf("Weekly summary failed for user %s: %v", userID, err)
			continue
		}
		if s.notifier != nil {
			if err := s.notifier.SendWeeklyDigest(ctx, userID, weeklySummary); err != nil {
				logrus.Errorf("Weekly digest delivery failed for user %s: %v", userID, err)
			}
		}
	}
	return nil
}

func (s *Service) generate(ctx context.Context, userID string, weekStart time.Time, regenerated bool) (*models.WeeklySummary, error) {
	now := time.Now()
	window := &store.DateRange{Start: now.AddDate(0, 0, -7), End: now}

	entries, err := s.entries.FindEntriesByUser(ctx, userID, window, false)
	if err != nil {
		return nil, fmt.Errorf("load entries for weekly summary: %w", err)
	}
	analyticsEntries := entries[:0:0]
	for _, entry := range entries {
		if entry.AllowAnalytics {
			analyticsEntries = append(analyticsEntries, entry)
		}
	}
	if len(analyticsEntries) == 0 {
		return nil, ErrNoEntries
	}

	topThemes := topThemes(analyticsEntries, 5)
	avgSentiment := averageSentiment(analyticsEntries)
	trend := scoreSeries(analyticsEntries)

	summaryText, err := s.gen.Complete(ctx, []llm.Message{{
		Role:    "user",
		Content: summaryRequest(len(analyticsEntries), avgSentiment, topThemes, trend),
	}}, llm.Options{
		MaxTokens:   300,
		Temperature: 0.7,
		System:      summarySystem,
	})
	if err != nil {
		return nil, fmt.Errorf("generate weekly summary: %w", err)
	}

	weeklySummary := &models.WeeklySummary{
		ID:             uuid.New().String(),
		UserID:         userID,
		WeekStart:      weekStart,
		WeekEnd:        weekStart.AddDate(0, 0, 7),
		Summary:        summaryText,
		TopThemes:      topThemes,
		AvgSentiment:   avgSentiment,
		EntryCount:     len(analyticsEntries),
		SentimentTrend: trend,
		Regenerated:    regenerated,
		CreatedAt:      now,
	}

	if err := s.summaries.SaveWeeklySummary(ctx, weeklySummary); err != nil {
		return nil, fmt.Errorf("save weekly summary: %w", err)
	}
	logrus.Infof("Generated weekly summary for user %s (%d entries, avg sentiment %.2f)",
		userID, weeklySummary.EntryCount, avgSentiment)

	if s.archiver != nil {
		if err := s.archiver.StoreWeeklyReport(ctx, weeklySummary); err != nil {
			logrus.Errorf("Failed to archive weekly report for user %s: %v", userID, err)
		}
	}
	return weeklySummary, nil
}

func summaryRequest(entryCount int, avgSentiment float64, topThemes []string, trend []float64) string {
	series := make([]string, len(trend))
	for i, score := range trend {
		series[i] = fmt.Sprintf("%.1f", score)
	}
	return fmt.Sprintf(`Generate a thoughtful weekly summary based on this aggregated journaling data:
- Total entries: %d
- Average sentiment: %.2f
- Top themes: %s
- Sentiment trend: %s

Create a narrative summary (3-4 sentences) that helps the user understand their emotional patterns and themes from the week. Be supportive and insightful.`,
		entryCount, avgSentiment, strings.Join(topThemes, ", "), strings.Join(series, ", "))
}

// topThemes ranks theme mentions across the week. Ties keep first-seen order.
func topThemes(entries []models.Entry, limit int) []string {
	counts := make(map[string]int)
	var order []string
	for _, entry := range entries {
		for _, theme := range entry.Themes {
			if _, seen := counts[theme]; !seen {
				order = append(order, theme)
			}
			counts[theme]++
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > limit {
		order = order[:limit]
	}
	if order == nil {
		order = []string{}
	}
	return order
}

// averageSentiment averages over all entries, counting unscored ones as zero.
func averageSentiment(entries []models.Entry) float64 {
	var sum float64
	for _, entry := range entries {
		if entry.SentimentScore != nil {
			sum += *entry.SentimentScore
		}
	}
	return sum / float64(len(entries))
}

// scoreSeries returns the week's sentiment scores oldest-first.
func scoreSeries(entries []models.Entry) []float64 {
	ordered := make([]models.Entry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})
	series := make([]float64, len(ordered))
	for i, entry := range ordered {
		if entry.SentimentScore != nil {
			series[i] = *entry.SentimentScore
		}
	}
	return series
}

// currentWeekStart is local midnight on the most recent Sunday.
func currentWeekStart() time.Time {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start.AddDate(0, 0, -int(start.Weekday()))
}
