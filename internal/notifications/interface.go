package notifications

import (
	"context"

	"github.com/lumenjournal/insights/internal/models"
)

// NotificationInterface defines the contract for digest delivery.
type NotificationInterface interface {
	SendWeeklyDigest(ctx context.Context, userID string, summary *models.WeeklySummary) error
}
