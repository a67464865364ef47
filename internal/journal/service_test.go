package journal

import (
	"context"
	"sync"
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

// recordingRefresher tracks refresh calls without testify's mock machinery so
// the fire-and-forget goroutine can be awaited deterministically.
type recordingRefresher struct {
	mu    sync.Mutex
	calls []string
	err   error
	done  chan struct{}
}

func newRecordingRefresher(err error) *recordingRefresher {
	return &recordingRefresher{err: err, done: make(chan struct{}, 1)}
}

func (r *recordingRefresher) RefreshAfterEntry(ctx context.Context, userID string) error {
	r.mu.Lock()
	r.calls = append(r.calls, userID)
	r.mu.Unlock()
	r.done <- struct{}{}
	return r.err
}

func (r *recordingRefresher) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.done:
	case <-time.After(2 * time.Second):
		t.Fatal("prompt refresh was never triggered")
	}
}

func TestCreateEntry_AnalyzesAndPersists(t *testing.T) {
	entries := new(mockEntryStore)
	users := new(mockUserStore)
	refresher := newRecordingRefresher(nil)

	users.On("GetPrivacySettings", mock.Anything, "user-1").
		Return(models.DefaultPrivacySettings(), nil)

	var saved *models.Entry
	entries.On("CreateEntry", mock.Anything, mock.AnythingOfType("*models.Entry")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*models.Entry)
		}).
		Return(nil)

	svc := NewService(entries, users, refresher)
	entry, err := svc.CreateEntry(context.Background(), "user-1", "Good day at work today")

	assert.NoError(t, err)
	assert.Equal(t, saved, entry)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "user-1", entry.UserID)
	assert.Equal(t, 5, entry.WordCount)
	assert.NotNil(t, entry.SentimentScore)
	assert.Equal(t, models.SentimentHappy, entry.SentimentLabel)
	assert.True(t, entry.AllowAI)
	assert.True(t, entry.AllowAnalytics)
	assert.LessOrEqual(t, len(entry.Themes), 2)

	refresher.wait(t)
	assert.Equal(t, []string{"user-1"}, refresher.calls)
}

func TestCreateEntry_StampsCurrentPrivacySettings(t *testing.T) {
	entries := new(mockEntryStore)
	users := new(mockUserStore)

	users.On("GetPrivacySettings", mock.Anything, "user-1").
		Return(models.PrivacySettings{AllowAI: false, AllowAnalytics: true}, nil)
	entries.On("CreateEntry", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(entries, users, nil)
	entry, err := svc.CreateEntry(context.Background(), "user-1", "Quiet evening at home")

	assert.NoError(t, err)
	assert.False(t, entry.AllowAI)
	assert.True(t, entry.AllowAnalytics)
}

func TestCreateEntry_RejectsEmptyContent(t *testing.T) {
	svc := NewService(new(mockEntryStore), new(mockUserStore), nil)

	_, err := svc.CreateEntry(context.Background(), "user-1", "   \n ")
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestCreateEntry_RefreshFailureDoesNotAffectSave(t *testing.T) {
	entries := new(mockEntryStore)
	users := new(mockUserStore)
	refresher := newRecordingRefresher(assert.AnError)

	users.On("GetPrivacySettings", mock.Anything, "user-1").
		Return(models.DefaultPrivacySettings(), nil)
	entries.On("CreateEntry", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(entries, users, refresher)
	entry, err := svc.CreateEntry(context.Background(), "user-1", "An ordinary day with small moments")

	assert.NoError(t, err)
	assert.NotNil(t, entry)
	refresher.wait(t)
}

func TestListEntries(t *testing.T) {
	entries := new(mockEntryStore)
	stored := []models.Entry{{ID: "a"}, {ID: "b"}}
	entries.On("ListEntries", mock.Anything, "user-1").Return(stored, nil)

	svc := NewService(entries, new(mockUserStore), nil)
	got, err := svc.ListEntries(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.Equal(t, stored, got)
}
