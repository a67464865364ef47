package archive

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lumenjournal/insights/internal/models"
)

// Reporter archives weekly summaries as JSON blobs, one per user per week.
type Reporter struct {
	store BlobStore
}

// NewReporter creates a reporter writing to the given blob store.
func NewReporter(store BlobStore) *Reporter {
	return &Reporter{store: store}
}

// StoreWeeklyReport serializes the summary and stores it under
// reports/<user>/<week-start>.json.
func (r *Reporter) StoreWeeklyReport(ctx context.Context, summary *models.WeeklySummary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal weekly report: %w", err)
	}

	filename := fmt.Sprintf("reports/%s/%s.json", summary.UserID, summary.WeekStart.Format("2006-01-02"))
	if err := r.store.Store(filename, data); err != nil {
		return fmt.Errorf("store weekly report: %w", err)
	}
	return nil
}
