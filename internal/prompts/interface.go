package prompts

import (
	"context"

	"github.com/lumenjournal/insights/internal/models"
)

// PatternAnalyzer derives historical behavioral signals for a user.
type PatternAnalyzer interface {
	Analyze(ctx context.Context, userID string, windowDays int, onlyPermitted bool) (*models.HistoricalPatterns, error)
}
