package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lumenjournal/insights/internal/models"
	"github.com/lumenjournal/insights/internal/sentiment"
	"github.com/lumenjournal/insights/internal/store"
	"github.com/lumenjournal/insights/internal/themes"
	"github.com/sirupsen/logrus"
)

// ErrEmptyContent is returned when an entry has no content.
var ErrEmptyContent = errors.New("entry content is required")

// refreshTimeout bounds the detached prompt refresh after an entry save.
const refreshTimeout = 30 * time.Second

// PromptRefresher regenerates the user's daily prompt after a new entry.
type PromptRefresher interface {
	RefreshAfterEntry(ctx context.Context, userID string) error
}

// Service handles journal entry creation and listing. Sentiment and themes
// are computed locally at save time; entry text never goes to the LLM here.
type Service struct {
	entries   store.EntryStore
	users     store.UserStore
	refresher PromptRefresher
}

// NewService creates the journal service. refresher may be nil, in which case
// entries are saved without triggering a prompt refresh.
func NewService(entries store.EntryStore, users store.UserStore, refresher PromptRefresher) *Service {
	return &Service{entries: entries, users: users, refresher: refresher}
}

// CreateEntry analyzes and persists a new entry. The user's privacy settings
// at this moment are stamped onto the entry and stay fixed for its lifetime.
// The entry save succeeds or fails on its own; the prompt refresh afterwards
// is detached and can only ever produce a log line.
func (s *Service) CreateEntry(ctx context.Context, userID, content string) (*models.Entry, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	settings, err := s.users.GetPrivacySettings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load privacy settings: %w", err)
	}

	sentimentResult := sentiment.Analyze(content)
	themeResult := themes.ExtractThemes(content, sentimentResult.Label)
	score := sentimentResult.Score

	entry := &models.Entry{
		ID:             uuid.New().String(),
		UserID:         userID,
		Content:        content,
		WordCount:      len(strings.Fields(content)),
		SentimentScore: &score,
		SentimentLabel: sentimentResult.Label,
		Themes:         themeResult.Themes,
		AllowAI:        settings.AllowAI,
		AllowAnalytics: settings.AllowAnalytics,
		CreatedAt:      time.Now(),
	}

	if err := s.entries.CreateEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("save entry: %w", err)
	}
	logrus.Infof("Created entry %s for user %s (%d words, sentiment %s)",
		entry.ID, userID, entry.WordCount, entry.SentimentLabel)

	if s.refresher != nil {
		go s.refreshPrompt(userID)
	}
	return entry, nil
}

// refreshPrompt runs detached from the entry save with its own deadline. The
// request context is not reused: the save response has usually already been
// written by the time this runs.
func (s *Service) refreshPrompt(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	if err := s.refresher.RefreshAfterEntry(ctx, userID); err != nil {
		logrus.Errorf("Prompt refresh after entry save failed for user %s: %v", userID, err)
	}
}

// ListEntries returns all of the user's entries, newest first.
func (s *Service) ListEntries(ctx context.Context, userID string) ([]models.Entry, error) {
	entries, err := s.entries.ListEntries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}
