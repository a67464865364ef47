package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/lumenjournal/insights/internal/journal"
	"github.com/lumenjournal/insights/internal/models"
	"github.com/lumenjournal/insights/internal/prompts"
	"github.com/lumenjournal/insights/internal/store"
	"github.com/lumenjournal/insights/internal/summary"
	"github.com/sirupsen/logrus"
)

// userIDKey is the request-context key for the authenticated user id.
type contextKey string

const userIDKey contextKey = "userID"

// server bundles the services behind the HTTP handlers.
type server struct {
	journal   *journal.Service
	prompts   *prompts.Service
	summaries *summary.Service
	users     store.UserStore

	startedAt       time.Time
	entriesCreated  int64
	promptsServed   int64
	summariesServed int64
}

func newServer(journalService *journal.Service, promptService *prompts.Service, summaryService *summary.Service, users store.UserStore) *server {
	return &server{
		journal:   journalService,
		prompts:   promptService,
		summaries: summaryService,
		users:     users,
		startedAt: time.Now(),
	}
}

// requireUser extracts the gateway-authenticated user id. Authentication
// itself happens upstream; a missing header means the request bypassed the
// gateway.
func (s *server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-ID")
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "missing X-User-ID header")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	})
}

func userID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}

func (s *server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"uptime_seconds":   int(time.Since(s.startedAt).Seconds()),
		"entries_created":  atomic.LoadInt64(&s.entriesCreated),
		"prompts_served":   atomic.LoadInt64(&s.promptsServed),
		"summaries_served": atomic.LoadInt64(&s.summariesServed),
	})
}

func (s *server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := s.journal.CreateEntry(r.Context(), userID(r), body.Content)
	if err != nil {
		if errors.Is(err, journal.ErrEmptyContent) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		logrus.Errorf("Failed to create entry: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create entry")
		return
	}

	atomic.AddInt64(&s.entriesCreated, 1)
	writeJSON(w, http.StatusCreated, map[string]interface{}{"entry": entry})
}

func (s *server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.journal.ListEntries(r.Context(), userID(r))
	if err != nil {
		logrus.Errorf("Failed to list entries: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch entries")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

func (s *server) handleGetPrompt(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("force") == "1"

	prompt, err := s.prompts.GetDailyPrompt(r.Context(), userID(r), force)
	if err != nil {
		if errors.Is(err, prompts.ErrAIDisabled) {
			writeError(w, http.StatusForbidden, err.Error())
			return
		}
		logrus.Errorf("Failed to get daily prompt: %v", err)
		writeError(w, http.StatusBadGateway, "failed to generate prompt")
		return
	}

	atomic.AddInt64(&s.promptsServed, 1)
	writeJSON(w, http.StatusOK, map[string]interface{}{"prompt": prompt.PromptText, "generated_at": prompt.GeneratedAt})
}

func (s *server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	suggestion, err := s.prompts.Suggest(r.Context(), userID(r), body.Text)
	if err != nil {
		switch {
		case errors.Is(err, prompts.ErrTextTooShort):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, prompts.ErrAIDisabled):
			writeError(w, http.StatusForbidden, err.Error())
		default:
			logrus.Errorf("Failed to generate suggestion: %v", err)
			writeError(w, http.StatusBadGateway, "failed to generate suggestion")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"suggestion": suggestion})
}

func (s *server) handleGetWeeklySummary(w http.ResponseWriter, r *http.Request) {
	s.serveSummary(w, r, s.summaries.GetWeeklySummary)
}

func (s *server) handleRegenerateWeeklySummary(w http.ResponseWriter, r *http.Request) {
	s.serveSummary(w, r, s.summaries.RegenerateWeeklySummary)
}

func (s *server) serveSummary(w http.ResponseWriter, r *http.Request, fetch func(context.Context, string) (*models.WeeklySummary, error)) {
	weeklySummary, err := fetch(r.Context(), userID(r))
	if err != nil {
		if errors.Is(err, summary.ErrNoEntries) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		logrus.Errorf("Failed to produce weekly summary: %v", err)
		writeError(w, http.StatusBadGateway, "failed to generate weekly summary")
		return
	}

	atomic.AddInt64(&s.summariesServed, 1)
	writeJSON(w, http.StatusOK, map[string]interface{}{"summary": weeklySummary})
}

func (s *server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	settings, err := s.users.GetPrivacySettings(r.Context(), userID(r))
	if err != nil {
		logrus.Errorf("Failed to load preferences: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch preferences")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"preferences": settings})
}

func (s *server) handleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var body models.PrivacySettings
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.users.UpdatePrivacySettings(r.Context(), userID(r), body); err != nil {
		logrus.Errorf("Failed to update preferences: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to update preferences")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"preferences": body})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.Errorf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
