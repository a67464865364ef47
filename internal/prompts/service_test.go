package prompts

import (
	"context"
	"strings"
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

type mockPromptStore struct {
	mock.Mock
}

func (m *mockPromptStore) FindTodaysPrompt(ctx context.Context, userID string) (*models.GeneratedPrompt, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GeneratedPrompt), args.Error(1)
}

func (m *mockPromptStore) SavePrompt(ctx context.Context, prompt *models.GeneratedPrompt) error {
	args := m.Called(ctx, prompt)
	return args.Error(0)
}

func (m *mockPromptStore) DeleteTodaysPrompts(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) GetPrivacySettings(ctx context.Context, userID string) (models.PrivacySettings, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.PrivacySettings), args.Error(1)
}

func (m *mockUserStore) UpdatePrivacySettings(ctx context.Context, userID string, settings models.PrivacySettings) error {
	args := m.Called(ctx, userID, settings)
	return args.Error(0)
}

type mockAnalyzer struct {
	mock.Mock
}

func (m *mockAnalyzer) Analyze(ctx context.Context, userID string, windowDays int, onlyPermitted bool) (*models.HistoricalPatterns, error) {
	args := m.Called(ctx, userID, windowDays, onlyPermitted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HistoricalPatterns), args.Error(1)
}

func newTestService(entries *mockEntryStore, promptStore *mockPromptStore, users *mockUserStore, analyzer *mockAnalyzer, gen *mockTextGenerator) *Service {
	return NewService(entries, promptStore, users, analyzer, gen)
}

func TestGetDailyPrompt_ReturnsStoredPrompt(t *testing.T) {
	users := new(mockUserStore)
	promptStore := new(mockPromptStore)
	gen := new(mockTextGenerator)

	stored := &models.GeneratedPrompt{
		ID:         "prompt-1",
		UserID:     "user-1",
		PromptText: "What made you smile today?",
		ExpiresAt:  time.Now().Add(12 * time.Hour),
	}
	users.On("GetPrivacySettings", mock.Anything, "user-1").
		Return(models.DefaultPrivacySettings(), nil)
	promptStore.On("FindTodaysPrompt", mock.Anything, "user-1").Return(stored, nil)

	svc := newTestService(new(mockEntryStore), promptStore, users, new(mockAnalyzer), gen)
	prompt, err := svc.GetDailyPrompt(context.Background(), "user-1", false)

	assert.NoError(t, err)
	assert.Equal(t, stored, prompt)
	gen.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetDailyPrompt_AIDisabled(t *testing.T) {
	users := new(mockUserStore)
	users.On("GetPrivacySettings", mock.Anything, "user-1").
		Return(models.PrivacySettings{AllowAI: false, AllowAnalytics: true}, nil)

	svc := newTestService(new(mockEntryStore), new(mockPromptStore), users, new(mockAnalyzer), new(mockTextGenerator))
	_, err := svc.GetDailyPrompt(context.Background(), "user-1", false)

	assert.ErrorIs(t, err, ErrAIDisabled)
}

func TestGetDailyPrompt_GeneratesAndStoresWhenMissing(t *testing.T) {
	users := new(mockUserStore)
	promptStore := new(mockPromptStore)
	entries := new(mockEntryStore)
	analyzer := new(mockAnalyzer)
	gen := new(mockTextGenerator)

	users.On("GetPrivacySettings", mock.Anything, "user-1").
		Return(models.DefaultPrivacySettings(), nil)
	promptStore.On("FindTodaysPrompt", mock.Anything, "user-1").Return(nil, nil)
	entries.On("CountEntriesByUser", mock.Anything, "user-1", mock.Anything, true).Return(1, nil)
	entries.On("FindEntriesByUser", mock.Anything, "user-1", mock.Anything, true).
		Return([]models.Entry{{ID: "entry-1", Content: "today", Themes: []string{"work"}}}, nil)
	analyzer.On("Analyze", mock.Anything, "user-1", patternWindowDays, true).
		Return(patternsWith(0, []string{}, 0), nil)
	gen.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return("What's one thing you noticed today?", nil)
	promptStore.On("SavePrompt", mock.Anything, mock.MatchedBy(func(p *models.GeneratedPrompt) bool {
		return p.ID != "" &&
			p.PromptText == "What's one thing you noticed today?" &&
			p.ExpiresAt.Sub(p.GeneratedAt) == 24*time.Hour
	})).Return(nil)

	svc := newTestService(entries, promptStore, users, analyzer, gen)
	prompt, err := svc.GetDailyPrompt(context.Background(), "user-1", false)

	assert.NoError(t, err)
	assert.Equal(t, "What's one thing you noticed today?", prompt.PromptText)
	assert.Equal(t, 1, prompt.EntryCount)
	promptStore.AssertExpectations(t)
}

func TestGetDailyPrompt_ForceDeletesBeforeRegenerating(t *testing.T) {
	users := new(mockUserStore)
	promptStore := new(mockPromptStore)
	entries := new(mockEntryStore)
	analyzer := new(mockAnalyzer)
	gen := new(mockTextGenerator)

	users.On("GetPrivacySettings", mock.Anything, "user-1").
		Return(models.DefaultPrivacySettings(), nil)
	promptStore.On("DeleteTodaysPrompts", mock.Anything, "user-1").Return(nil)
	entries.On("CountEntriesByUser", mock.Anything, "user-1", mock.Anything, true).Return(0, nil)
	entries.On("FindEntriesByUser", mock.Anything, "user-1", mock.Anything, true).
		Return([]models.Entry{}, nil)
	entries.On("FindMostRecentEntry", mock.Anything, "user-1", true).Return(nil, nil)
	analyzer.On("Analyze", mock.Anything, "user-1", patternWindowDays, true).
		Return(patternsWith(0, []string{}, 0), nil)
	gen.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return("What are you grateful for right now?", nil)
	promptStore.On("SavePrompt", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(entries, promptStore, users, analyzer, gen)
	_, err := svc.GetDailyPrompt(context.Background(), "user-1", true)

	assert.NoError(t, err)
	promptStore.AssertCalled(t, "DeleteTodaysPrompts", mock.Anything, "user-1")
	promptStore.AssertNotCalled(t, "FindTodaysPrompt", mock.Anything, "user-1")
}

func TestRefreshAfterEntry_SkipsWhenAIDisabled(t *testing.T) {
	users := new(mockUserStore)
	promptStore := new(mockPromptStore)

	users.On("GetPrivacySettings", mock.Anything, "user-1").
		Return(models.PrivacySettings{AllowAI: false}, nil)

	svc := newTestService(new(mockEntryStore), promptStore, users, new(mockAnalyzer), new(mockTextGenerator))
	err := svc.RefreshAfterEntry(context.Background(), "user-1")

	assert.NoError(t, err)
	promptStore.AssertNotCalled(t, "DeleteTodaysPrompts", mock.Anything, "user-1")
}

func TestSuggest_RejectsShortText(t *testing.T) {
	svc := newTestService(new(mockEntryStore), new(mockPromptStore), new(mockUserStore), new(mockAnalyzer), new(mockTextGenerator))
	_, err := svc.Suggest(context.Background(), "user-1", "too short")

	assert.ErrorIs(t, err, ErrTextTooShort)
}

func TestSuggest_ReturnsFollowUpQuestion(t *testing.T) {
	users := new(mockUserStore)
	gen := new(mockTextGenerator)

	users.On("GetPrivacySettings", mock.Anything, "user-1").
		Return(models.DefaultPrivacySettings(), nil)
	gen.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return("What part of that felt most difficult?", nil)

	svc := newTestService(new(mockEntryStore), new(mockPromptStore), users, new(mockAnalyzer), gen)
	text := strings.Repeat("Today was a long day and I kept thinking about it. ", 3)
	suggestion, err := svc.Suggest(context.Background(), "user-1", text)

	assert.NoError(t, err)
	assert.Equal(t, "What part of that felt most difficult?", suggestion)
	assert.Contains(t, gen.lastUserContent(), "ONE gentle follow-up question")
}
