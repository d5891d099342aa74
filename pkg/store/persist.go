package store

import (
	"os"

	"github.com/akili-ai/akili-cli/pkg/api"
	"github.com/akili-ai/akili-cli/pkg/config"
	"github.com/akili-ai/akili-cli/pkg/guest"
	"github.com/akili-ai/akili-cli/pkg/logger"
	json "github.com/json-iterator/go"
)

// persistedState is the slice of store state that survives restarts,
// serialized as one namespaced JSON document. The server stays the
// source of truth for everything in it; this is a cache.
type persistedState struct {
	GuestToken      string                       `json:"guest_token,omitempty"`
	Sessions        []api.SessionInfo            `json:"sessions"`
	ActiveSessionID string                       `json:"active_session_id"`
	ChatHistories   map[string][]api.ChatMessage `json:"chat_histories"`
	IsPaid          bool                         `json:"is_paid"`
	XP              int                          `json:"xp"`
	Coins           int                          `json:"coins"`
	Streak          int                          `json:"streak"`
	Mode            string                       `json:"mode"`
}

// persistLocked mirrors the persisted slice to disk. Callers hold the
// store lock. Persistence failure is logged, never fatal.
func (s *Store) persistLocked() {
	state := persistedState{
		GuestToken:      guest.Token(),
		Sessions:        s.sessions,
		ActiveSessionID: s.activeSessionID,
		ChatHistories:   s.chatHistories,
		IsPaid:          s.isPaid,
		XP:              s.xp,
		Coins:           s.coins,
		Streak:          s.streak,
		Mode:            s.mode,
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		logger.Error("Failed to serialize state", "error", err)
		return
	}

	if err := os.WriteFile(config.GetStatePath(), data, 0600); err != nil {
		logger.Error("Failed to persist state", "error", err)
	}
}

// hydrate seeds the store from the persisted state file, once, before
// the store is handed to anyone.
func (s *Store) hydrate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	defer func() { s.hasHydrated = true }()

	data, err := os.ReadFile(config.GetStatePath())
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Error("Failed to read persisted state", "error", err)
		}
		return
	}

	var state persistedState
	if err := json.Unmarshal(data, &state); err != nil {
		logger.Error("Could not load persisted state", "error", err)
		return
	}

	s.sessions = state.Sessions
	s.activeSessionID = state.ActiveSessionID
	if state.ChatHistories != nil {
		s.chatHistories = state.ChatHistories
	}
	s.isPaid = state.IsPaid
	s.xp = state.XP
	s.coins = state.Coins
	s.streak = state.Streak
	if state.Mode != "" {
		s.mode = state.Mode
	}

	// Enforce the membership invariant against whatever was on disk
	if s.activeSessionID != "" && s.findSessionLocked(s.activeSessionID) == nil {
		s.activeSessionID = ""
	}
}

// removePersistedLocked deletes the state file outright so stale data
// can't resurrect on the next load.
func (s *Store) removePersistedLocked() {
	if err := os.Remove(config.GetStatePath()); err != nil && !os.IsNotExist(err) {
		logger.Error("Failed to remove persisted state", "error", err)
	}
}
