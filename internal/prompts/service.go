package prompts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lumenjournal/insights/internal/llm"
	"github.com/lumenjournal/insights/internal/models"
	"github.com/lumenjournal/insights/internal/store"
	"github.com/sirupsen/logrus"
)

const (
	// Pattern analysis looks back two weeks.
	patternWindowDays = 14
	// Stored prompts expire a day after generation.
	promptTTL = 24 * time.Hour
	// Suggestions need enough text to react to.
	minSuggestionLength = 100
)

var (
	// ErrAIDisabled is returned when the user has switched AI features off.
	ErrAIDisabled = errors.New("AI features are disabled for this user")
	// ErrTextTooShort is returned when suggestion input is below the minimum.
	ErrTextTooShort = fmt.Errorf("text must be at least %d characters", minSuggestionLength)
)

// Service owns the daily prompt lifecycle and inline writing suggestions.
type Service struct {
	entries   store.EntryStore
	prompts   store.PromptStore
	users     store.UserStore
	analyzer  PatternAnalyzer
	generator *Generator
	gen       llm.TextGenerator
}

// NewService creates the prompt service. gen is used directly for
// suggestions; daily prompts go through the context-aware generator.
func NewService(entries store.EntryStore, prompts store.PromptStore, users store.UserStore, analyzer PatternAnalyzer, gen llm.TextGenerator) *Service {
	return &Service{
		entries:   entries,
		prompts:   prompts,
		users:     users,
		analyzer:  analyzer,
		generator: NewGenerator(gen),
		gen:       gen,
	}
}

// GetDailyPrompt returns today's prompt for the user, generating one if none
// exists. With force set, today's prompts are deleted and regenerated.
// Once-per-day is best effort: two concurrent requests may both generate,
// which wastes a generation call but is otherwise harmless.
func (s *Service) GetDailyPrompt(ctx context.Context, userID string, force bool) (*models.GeneratedPrompt, error) {
	settings, err := s.users.GetPrivacySettings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load privacy settings: %w", err)
	}
	if !settings.AllowAI {
		return nil, ErrAIDisabled
	}

	if force {
		if err := s.prompts.DeleteTodaysPrompts(ctx, userID); err != nil {
			return nil, fmt.Errorf("delete today's prompts: %w", err)
		}
	} else {
		existing, err := s.prompts.FindTodaysPrompt(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("find today's prompt: %w", err)
		}
		if existing != nil {
			return existing, nil
		}
	}

	return s.generateAndStore(ctx, userID)
}

// RefreshAfterEntry regenerates today's prompt so it reflects the entry that
// was just saved. Called fire-and-forget from entry creation; the error is
// for the caller to log, never to propagate.
func (s *Service) RefreshAfterEntry(ctx context.Context, userID string) error {
	settings, err := s.users.GetPrivacySettings(ctx, userID)
	if err != nil {
		return fmt.Errorf("load privacy settings: %w", err)
	}
	if !settings.AllowAI {
		return nil
	}
	if err := s.prompts.DeleteTodaysPrompts(ctx, userID); err != nil {
		return fmt.Errorf("delete today's prompts: %w", err)
	}
	_, err = s.generateAndStore(ctx, userID)
	return err
}

func (s *Service) generateAndStore(ctx context.Context, userID string) (*models.GeneratedPrompt, error) {
	pc, err := s.buildContext(ctx, userID)
	if err != nil {
		return nil, err
	}

	prompt, err := s.generator.Generate(ctx, pc)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	prompt.ID = uuid.New().String()
	prompt.GeneratedAt = now
	prompt.ExpiresAt = now.Add(promptTTL)

	if err := s.prompts.SavePrompt(ctx, prompt); err != nil {
		return nil, fmt.Errorf("save prompt: %w", err)
	}
	logrus.Infof("Generated daily prompt for user %s (entry count %d)", userID, prompt.EntryCount)
	return prompt, nil
}

// buildContext assembles the generation inputs: today's entry count, the most
// relevant last entry, today's recent entries, and two weeks of patterns. All
// lookups honor the creation-time AI permission flag.
func (s *Service) buildContext(ctx context.Context, userID string) (models.PromptContext, error) {
	pc := models.PromptContext{UserID: userID}
	today := todayRange()

	count, err := s.entries.CountEntriesByUser(ctx, userID, today, true)
	if err != nil {
		return pc, fmt.Errorf("count today's entries: %w", err)
	}
	pc.EntryCount = count

	recent, err := s.entries.FindEntriesByUser(ctx, userID, today, true)
	if err != nil {
		return pc, fmt.Errorf("load today's entries: %w", err)
	}
	if len(recent) > 5 {
		recent = recent[:5]
	}
	pc.RecentEntries = recent

	// Prefer today's latest entry; fall back to the latest entry overall.
	if len(recent) > 0 {
		pc.LastEntry = &recent[0]
	} else {
		last, err := s.entries.FindMostRecentEntry(ctx, userID, true)
		if err != nil {
			return pc, fmt.Errorf("find most recent entry: %w", err)
		}
		pc.LastEntry = last
	}

	patterns, err := s.analyzer.Analyze(ctx, userID, patternWindowDays, true)
	if err != nil {
		return pc, err
	}
	pc.HistoricalPatterns = patterns
	return pc, nil
}

// Suggest produces one gentle follow-up question for in-progress entry text.
func (s *Service) Suggest(ctx context.Context, userID, text string) (string, error) {
	if len(text) < minSuggestionLength {
		return "", ErrTextTooShort
	}
	settings, err := s.users.GetPrivacySettings(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("load privacy settings: %w", err)
	}
	if !settings.AllowAI {
		return "", ErrAIDisabled
	}

	suggestion, err := s.gen.Complete(ctx, []llm.Message{{
		Role: "user",
		Content: fmt.Sprintf("You are an empathetic journaling coach. The user wrote: %q. Generate ONE gentle follow-up question (max 15 words) to encourage deeper reflection. Be supportive and non-judgmental.",
			text),
	}}, llm.Options{
		MaxTokens:   200,
		Temperature: 0.7,
		System:      "You are a helpful, empathetic journaling companion that encourages self-reflection through gentle questions.",
	})
	if err != nil {
		return "", fmt.Errorf("generate suggestion: %w", err)
	}
	return suggestion, nil
}

// todayRange covers local midnight through end of day.
func todayRange() *store.DateRange {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return &store.DateRange{Start: start, End: start.Add(24*time.Hour - time.Nanosecond)}
}
