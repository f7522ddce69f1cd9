// Package convo holds per-session conversation state: bounded message
// history, the periodic topic summarization loop, and user preferences.
// A Session is explicit (created, passed into every call, closed), so
// there is no hidden package-level conversation state.
package convo

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kittclouds/foliobot/internal/knowledge"
	"github.com/kittclouds/foliobot/internal/store"
)

// Message roles.
const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// Config bounds the session. Empirically chosen values; override with
// evidence, not taste.
type Config struct {
	// SummarizeEvery triggers summarization on every exact multiple of
	// this many recorded messages.
	SummarizeEvery int
	// MaxHistory and TrimTo bound stored history: once the count exceeds
	// MaxHistory, the oldest entries are dropped down to TrimTo.
	MaxHistory int
	TrimTo     int
}

// DefaultConfig returns the tuned bounds.
func DefaultConfig() Config {
	return Config{
		SummarizeEvery: 6,
		MaxHistory:     50,
		TrimTo:         30,
	}
}

// Session is one conversation. Not safe for concurrent use; the engine
// serializes access on the UI thread.
type Session struct {
	ID    string
	cfg   Config
	kb    *knowledge.Base
	store store.Storer
	prefs *PrefStore
	log   *zap.Logger

	count       int
	detailed    bool
	lastSummary *Summary
}

// NewSession creates a session backed by the given store. prefs may be nil
// when no durable preference storage is available.
func NewSession(kb *knowledge.Base, st store.Storer, prefs *PrefStore, cfg Config, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{
		ID:    uuid.NewString(),
		cfg:   cfg,
		kb:    kb,
		store: st,
		prefs: prefs,
		log:   log,
	}

	// Load persisted preferences; failure means default (not detailed).
	if prefs != nil {
		s.detailed = prefs.Load().DetailedMode
	}
	return s
}

// Detailed reports the current verbosity preference.
func (s *Session) Detailed() bool { return s.detailed }

// SetDetailed updates the verbosity preference in memory. It is persisted
// at the next summarization point.
func (s *Session) SetDetailed(v bool) { s.detailed = v }

// Record appends a message, fires summarization on every exact multiple of
// SummarizeEvery, and enforces the history bound. Returns whether a
// summarization ran.
func (s *Session) Record(role, content string) (bool, error) {
	msg := &store.Message{
		ID:        uuid.NewString(),
		ThreadID:  s.ID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UnixMilli(),
	}
	if err := s.store.AddMessage(msg); err != nil {
		return false, fmt.Errorf("convo: failed to add message: %w", err)
	}
	s.count++

	summarized := false
	if s.cfg.SummarizeEvery > 0 && s.count%s.cfg.SummarizeEvery == 0 {
		if err := s.summarize(); err != nil {
			// Summaries are derived state; log and move on.
			s.log.Warn("summarization failed", zap.Error(err))
		} else {
			summarized = true
		}
		s.persistPrefs()
	}

	if count, err := s.store.CountMessages(s.ID); err == nil && count > s.cfg.MaxHistory {
		if err := s.store.TrimMessages(s.ID, s.cfg.TrimTo); err != nil {
			s.log.Warn("history trim failed", zap.Error(err))
		}
	}

	return summarized, nil
}

// Messages returns the stored history snapshot, oldest first.
func (s *Session) Messages() ([]*store.Message, error) {
	return s.store.GetMessages(s.ID)
}

// LastSummary returns the most recent summary, or nil before the first
// summarization point.
func (s *Session) LastSummary() *Summary {
	return s.lastSummary
}

// Close releases nothing today but keeps the lifecycle explicit.
func (s *Session) Close() error {
	s.persistPrefs()
	return nil
}

func (s *Session) summarize() error {
	msgs, err := s.store.GetMessages(s.ID)
	if err != nil {
		return fmt.Errorf("convo: failed to load messages: %w", err)
	}

	window := msgs
	if len(window) > s.cfg.SummarizeEvery {
		window = window[len(window)-s.cfg.SummarizeEvery:]
	}

	sum := Summarize(window, s.kb)
	s.lastSummary = sum

	rec := &store.SummaryRecord{
		ThreadID:    s.ID,
		TopicCounts: sum.RenderTopicCounts(),
		Synthesis:   sum.RenderSynthesis(),
		Turn:        s.count,
		UpdatedAt:   time.Now().UnixMilli(),
	}
	if err := s.store.UpsertSummary(rec); err != nil {
		return fmt.Errorf("convo: failed to save summary: %w", err)
	}
	return nil
}

func (s *Session) persistPrefs() {
	p := store.Preferences{DetailedMode: s.detailed}
	if s.prefs != nil {
		s.prefs.Save(p)
	}
	// Mirror into the session store; ignore failure the same way.
	if err := s.store.SavePreferences(&p); err != nil {
		s.log.Debug("preference mirror failed", zap.Error(err))
	}
}
