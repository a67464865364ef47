package patterns

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/lumenjournal/insights/internal/models"
	"github.com/lumenjournal/insights/internal/store"
	"github.com/sirupsen/logrus"
)

// Trend thresholds on the difference between the newer and older half of the
// window's sentiment scores.
const (
	trendThreshold  = 0.3
	minTrendEntries = 4
)

// Analyzer aggregates a user's recent entries into behavioral signals used by
// prompt generation and weekly summaries. Patterns are recomputed on demand
// and never persisted.
type Analyzer struct {
	entries store.EntryStore
}

// NewAnalyzer creates a pattern analyzer backed by the given entry store.
func NewAnalyzer(entries store.EntryStore) *Analyzer {
	return &Analyzer{entries: entries}
}

// Analyze reads the user's entries from the last windowDays days and derives
// historical patterns. When onlyPermitted is true only entries written with
// the AI permission flag set are considered. A user with no entries in the
// window still gets lastEntryDate/gapDays from their most recent entry
// overall; everything else stays at zero values.
func (a *Analyzer) Analyze(ctx context.Context, userID string, windowDays int, onlyPermitted bool) (*models.HistoricalPatterns, error) {
	now := time.Now()
	window := &store.DateRange{Start: now.AddDate(0, 0, -windowDays), End: now}

	entries, err := a.entries.FindEntriesByUser(ctx, userID, window, onlyPermitted)
	if err != nil {
		return nil, fmt.Errorf("load entries for pattern analysis: %w", err)
	}

	patterns := &models.HistoricalPatterns{
		CommonThemes:   []string{},
		SentimentTrend: models.TrendUnknown,
		TotalEntries:   len(entries),
	}

	if len(entries) == 0 {
		recent, err := a.entries.FindMostRecentEntry(ctx, userID, onlyPermitted)
		if err != nil {
			return nil, fmt.Errorf("find most recent entry: %w", err)
		}
		if recent != nil {
			created := recent.CreatedAt
			patterns.LastEntryDate = &created
			patterns.GapDays = int(now.Sub(created).Hours() / 24)
		}
		return patterns, nil
	}

	// Entries come back newest-first.
	last := entries[0].CreatedAt
	patterns.LastEntryDate = &last
	patterns.GapDays = int(now.Sub(last).Hours() / 24)
	patterns.WritingFrequency = float64(len(entries)) / float64(windowDays) * 7

	var scores []float64
	for _, entry := range entries {
		if entry.SentimentScore != nil {
			scores = append(scores, *entry.SentimentScore)
		}
	}
	if len(scores) > 0 {
		patterns.AvgSentiment = mean(scores)
	}
	patterns.SentimentTrend = trendOf(scores)
	patterns.CommonThemes = commonThemes(entries, 5)

	logrus.Debugf("Analyzed %d entries for user %s: avg sentiment %.2f, trend %s",
		len(entries), userID, patterns.AvgSentiment, patterns.SentimentTrend)
	return patterns, nil
}

// trendOf compares the newer half of the scores against the older half.
// Scores are ordered newest-first; fewer than four scored entries is not
// enough signal to call a direction.
func trendOf(scores []float64) models.SentimentTrend {
	if len(scores) < minTrendEntries {
		return models.TrendUnknown
	}
	mid := len(scores) / 2
	newer := mean(scores[:mid])
	older := mean(scores[mid:])
	diff := newer - older
	switch {
	case diff > trendThreshold:
		return models.TrendImproving
	case diff < -trendThreshold:
		return models.TrendDeclining
	default:
		return models.TrendStable
	}
}

// commonThemes counts theme mentions across the window's entries and returns
// the top limit themes. Ties keep first-seen order; the sort is stable so
// equally frequent themes come out in the order they first appeared.
func commonThemes(entries []models.Entry, limit int) []string {
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

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
