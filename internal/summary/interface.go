package summary

import (
	"context"

	"github.com/lumenjournal/insights/internal/models"
)

// Archiver persists a durable copy of a weekly summary report.
type Archiver interface {
	StoreWeeklyReport(ctx context.Context, summary *models.WeeklySummary) error
}

// Notifier delivers a weekly digest to the user.
type Notifier interface {
	SendWeeklyDigest(ctx context.Context, userID string, summary *models.WeeklySummary) error
}
