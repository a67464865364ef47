package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lumenjournal/insights/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// Store is the sqlite-backed implementation of the persistence contracts.
type Store struct {
	db *sql.DB
}

var (
	_ EntryStore   = (*Store)(nil)
	_ PromptStore  = (*Store)(nil)
	_ SummaryStore = (*Store)(nil)
	_ UserStore    = (*Store)(nil)
	_ Maintenance  = (*Store)(nil)
)

// New opens (or creates) the database at dbPath and applies the schema.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateEntry inserts an entry, assigning an ID and creation time when unset.
func (s *Store) CreateEntry(ctx context.Context, entry *models.Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	themes, err := json.Marshal(entry.Themes)
	if err != nil {
		return fmt.Errorf("marshal themes: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO entries (id, user_id, content, word_count, sentiment_score, sentiment_label, themes, allow_ai, allow_analytics, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.UserID, entry.Content, entry.WordCount,
		entry.SentimentScore, nullableString(string(entry.SentimentLabel)),
		string(themes), entry.AllowAI, entry.AllowAnalytics, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

// ListEntries returns all of a user's entries, newest first.
func (s *Store) ListEntries(ctx context.Context, userID string) ([]models.Entry, error) {
	return s.queryEntries(ctx,
		`SELECT id, user_id, content, word_count, sentiment_score, sentiment_label, themes, allow_ai, allow_analytics, created_at
		 FROM entries WHERE user_id = ? ORDER BY created_at DESC`, userID)
}

// FindEntriesByUser returns a user's entries in the window, newest first.
func (s *Store) FindEntriesByUser(ctx context.Context, userID string, window *DateRange, onlyAllowAI bool) ([]models.Entry, error) {
	query := `SELECT id, user_id, content, word_count, sentiment_score, sentiment_label, themes, allow_ai, allow_analytics, created_at
	          FROM entries WHERE user_id = ?`
	args := []interface{}{userID}
	if window != nil {
		query += " AND created_at >= ? AND created_at <= ?"
		args = append(args, window.Start, window.End)
	}
	if onlyAllowAI {
		query += " AND allow_ai = 1"
	}
	query += " ORDER BY created_at DESC"
	return s.queryEntries(ctx, query, args...)
}

// CountEntriesByUser counts a user's entries in the window.
func (s *Store) CountEntriesByUser(ctx context.Context, userID string, window *DateRange, onlyAllowAI bool) (int, error) {
	query := "SELECT COUNT(*) FROM entries WHERE user_id = ?"
	args := []interface{}{userID}
	if window != nil {
		query += " AND created_at >= ? AND created_at <= ?"
		args = append(args, window.Start, window.End)
	}
	if onlyAllowAI {
		query += " AND allow_ai = 1"
	}

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return count, nil
}

// FindMostRecentEntry returns the user's newest entry, or nil when none exist.
func (s *Store) FindMostRecentEntry(ctx context.Context, userID string, onlyAllowAI bool) (*models.Entry, error) {
	query := `SELECT id, user_id, content, word_count, sentiment_score, sentiment_label, themes, allow_ai, allow_analytics, created_at
	          FROM entries WHERE user_id = ?`
	if onlyAllowAI {
		query += " AND allow_ai = 1"
	}
	query += " ORDER BY created_at DESC LIMIT 1"

	entries, err := s.queryEntries(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

func (s *Store) queryEntries(ctx context.Context, query string, args ...interface{}) ([]models.Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []models.Entry
	for rows.Next() {
		var e models.Entry
		var label sql.NullString
		var themes string
		if err := rows.Scan(&e.ID, &e.UserID, &e.Content, &e.WordCount,
			&e.SentimentScore, &label, &themes, &e.AllowAI, &e.AllowAnalytics, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.SentimentLabel = models.SentimentLabel(label.String)
		if err := json.Unmarshal([]byte(themes), &e.Themes); err != nil {
			return nil, fmt.Errorf("decode themes: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// FindTodaysPrompt returns today's newest non-expired prompt, or nil.
func (s *Store) FindTodaysPrompt(ctx context.Context, userID string) (*models.GeneratedPrompt, error) {
	now := time.Now()
	start, end := dayBounds(now)

	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, prompt_text, entry_count, related_entry_id, context, generated_at, expires_at
		 FROM prompts
		 WHERE user_id = ? AND generated_at >= ? AND generated_at < ? AND expires_at > ?
		 ORDER BY generated_at DESC LIMIT 1`,
		userID, start, end, now,
	)

	var p models.GeneratedPrompt
	var related sql.NullString
	var contextJSON string
	err := row.Scan(&p.ID, &p.UserID, &p.PromptText, &p.EntryCount, &related, &contextJSON, &p.GeneratedAt, &p.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find prompt: %w", err)
	}
	p.RelatedEntryID = related.String
	if err := json.Unmarshal([]byte(contextJSON), &p.Context); err != nil {
		return nil, fmt.Errorf("decode prompt context: %w", err)
	}
	return &p, nil
}

// SavePrompt inserts a generated prompt, assigning an ID when unset.
func (s *Store) SavePrompt(ctx context.Context, prompt *models.GeneratedPrompt) error {
	if prompt.ID == "" {
		prompt.ID = uuid.New().String()
	}

	contextJSON, err := json.Marshal(prompt.Context)
	if err != nil {
		return fmt.Errorf("marshal prompt context: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO prompts (id, user_id, prompt_text, entry_count, related_entry_id, context, generated_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		prompt.ID, prompt.UserID, prompt.PromptText, prompt.EntryCount,
		nullableString(prompt.RelatedEntryID), string(contextJSON),
		prompt.GeneratedAt, prompt.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("insert prompt: %w", err)
	}
	return nil
}

// DeleteTodaysPrompts removes today's prompts for forced regeneration.
func (s *Store) DeleteTodaysPrompts(ctx context.Context, userID string) error {
	start, end := dayBounds(time.Now())
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM prompts WHERE user_id = ? AND generated_at >= ? AND generated_at < ?",
		userID, start, end,
	)
	if err != nil {
		return fmt.Errorf("delete prompts: %w", err)
	}
	return nil
}

// PurgeExpiredPrompts deletes prompts past their expiry.
func (s *Store) PurgeExpiredPrompts(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM prompts WHERE expires_at <= ?", time.Now())
	if err != nil {
		return 0, fmt.Errorf("purge prompts: %w", err)
	}
	return res.RowsAffected()
}

// FindWeeklySummary returns the summary whose week starts at weekStart, or nil.
func (s *Store) FindWeeklySummary(ctx context.Context, userID string, weekStart time.Time) (*models.WeeklySummary, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, week_start, week_end, summary, top_themes, avg_sentiment, entry_count, sentiment_trend, regenerated, created_at
		 FROM weekly_summaries WHERE user_id = ? AND week_start = ? LIMIT 1`,
		userID, weekStart,
	)

	var w models.WeeklySummary
	var themes, trend string
	err := row.Scan(&w.ID, &w.UserID, &w.WeekStart, &w.WeekEnd, &w.Summary,
		&themes, &w.AvgSentiment, &w.EntryCount, &trend, &w.Regenerated, &w.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find summary: %w", err)
	}
	if err := json.Unmarshal([]byte(themes), &w.TopThemes); err != nil {
		return nil, fmt.Errorf("decode summary themes: %w", err)
	}
	if err := json.Unmarshal([]byte(trend), &w.SentimentTrend); err != nil {
		return nil, fmt.Errorf("decode summary trend: %w", err)
	}
	return &w, nil
}

// SaveWeeklySummary inserts a summary, assigning an ID when unset.
func (s *Store) SaveWeeklySummary(ctx context.Context, summary *models.WeeklySummary) error {
	if summary.ID == "" {
		summary.ID = uuid.New().String()
	}
	if summary.CreatedAt.IsZero() {
		summary.CreatedAt = time.Now()
	}

	themes, err := json.Marshal(summary.TopThemes)
	if err != nil {
		return fmt.Errorf("marshal summary themes: %w", err)
	}
	trend, err := json.Marshal(summary.SentimentTrend)
	if err != nil {
		return fmt.Errorf("marshal summary trend: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO weekly_summaries (id, user_id, week_start, week_end, summary, top_themes, avg_sentiment, entry_count, sentiment_trend, regenerated, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.ID, summary.UserID, summary.WeekStart, summary.WeekEnd, summary.Summary,
		string(themes), summary.AvgSentiment, summary.EntryCount, string(trend),
		summary.Regenerated, summary.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert summary: %w", err)
	}
	return nil
}

// DeleteWeeklySummaries removes the summaries for one week, for regeneration.
func (s *Store) DeleteWeeklySummaries(ctx context.Context, userID string, weekStart time.Time) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM weekly_summaries WHERE user_id = ? AND week_start = ?",
		userID, weekStart,
	)
	if err != nil {
		return fmt.Errorf("delete summaries: %w", err)
	}
	return nil
}

// ListUserIDsWithEntriesSince returns users who wrote at least one entry after
// the cutoff; the scheduler uses it to pick weekly-summary candidates.
func (s *Store) ListUserIDsWithEntriesSince(ctx context.Context, since time.Time) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT user_id FROM entries WHERE created_at >= ?", since)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetPrivacySettings returns the user's current settings, defaulting both
// toggles to true when the user has never saved any.
func (s *Store) GetPrivacySettings(ctx context.Context, userID string) (models.PrivacySettings, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT allow_ai, allow_analytics FROM user_settings WHERE user_id = ?", userID)

	var settings models.PrivacySettings
	err := row.Scan(&settings.AllowAI, &settings.AllowAnalytics)
	if err == sql.ErrNoRows {
		return models.DefaultPrivacySettings(), nil
	}
	if err != nil {
		return models.PrivacySettings{}, fmt.Errorf("get settings: %w", err)
	}
	return settings, nil
}

// UpdatePrivacySettings upserts the user's settings.
func (s *Store) UpdatePrivacySettings(ctx context.Context, userID string, settings models.PrivacySettings) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_settings (user_id, allow_ai, allow_analytics, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET allow_ai = excluded.allow_ai,
		     allow_analytics = excluded.allow_analytics, updated_at = excluded.updated_at`,
		userID, settings.AllowAI, settings.AllowAnalytics, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}

// dayBounds returns local midnight today and midnight tomorrow.
func dayBounds(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
