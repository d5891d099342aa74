// Package store holds all client-side session state: the session list,
// the active session, per-session transcripts, mode, gamification
// counters and the guest-merge flag. Every mutation goes through a
// typed action method; subscribers are notified per state slice.
package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/akili-ai/akili-cli/pkg/api"
	"github.com/akili-ai/akili-cli/pkg/guest"
	"github.com/akili-ai/akili-cli/pkg/logger"
)

// PlaceholderTitle is the document name a freshly provisioned chat
// session carries until the server assigns a real one.
const PlaceholderTitle = "New Chat"

// uploadErrorTTL is how long the upload error banner stays up
const uploadErrorTTL = 5 * time.Second

const noActiveSessionMsg = "No active session. Please upload a document first."

// AuthTokenFunc supplies a fresh authenticated (never guest) token for
// the merge workflow; "" when no delegated session exists.
type AuthTokenFunc func() string

// Store is the application state container. It is constructed once at
// startup and injected into everything that needs it.
type Store struct {
	mu      sync.Mutex
	backend Backend
	authTok AuthTokenFunc
	subs    subscribers

	sessions        []api.SessionInfo
	activeSessionID string
	chatHistories   map[string][]api.ChatMessage
	mode            string

	isLoading   bool
	uploadError string
	chatError   string

	pendingMerge bool

	isPaid bool
	xp     int
	coins  int
	streak int

	hasHydrated  bool
	sendInFlight map[string]bool

	uploadErrTimer *time.Timer
}

// New builds a store, hydrating persisted state before first use
func New(backend Backend, authTok AuthTokenFunc) *Store {
	s := &Store{
		backend:       backend,
		authTok:       authTok,
		chatHistories: make(map[string][]api.ChatMessage),
		mode:          api.ModeChat,
		sendInFlight:  make(map[string]bool),
	}
	s.hydrate()
	return s
}

// HasHydrated reports whether persisted state has been loaded. It flips
// to true exactly once, before New returns.
func (s *Store) HasHydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasHydrated
}

// Sessions returns a copy of the session list, newest first
func (s *Store) Sessions() []api.SessionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.SessionInfo, len(s.sessions))
	copy(out, s.sessions)
	return out
}

// ActiveSessionID returns the active session id, "" when none
func (s *Store) ActiveSessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeSessionID
}

// ActiveTranscript returns a copy of the active session's transcript
func (s *Store) ActiveTranscript() []api.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeSessionID == "" {
		return nil
	}
	hist := s.chatHistories[s.activeSessionID]
	out := make([]api.ChatMessage, len(hist))
	copy(out, hist)
	return out
}

// Transcript returns a copy of one session's cached transcript and
// whether it has been fetched.
func (s *Store) Transcript(sessionID string) ([]api.ChatMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hist, ok := s.chatHistories[sessionID]
	if !ok {
		return nil, false
	}
	out := make([]api.ChatMessage, len(hist))
	copy(out, hist)
	return out, true
}

// Mode returns the global mode (chat or study)
func (s *Store) Mode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// IsLoading reports whether a transcript fetch or chat send is running
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isLoading
}

// ChatError returns the current chat error banner, "" when none
func (s *Store) ChatError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chatError
}

// UploadError returns the current upload error banner, "" when none
func (s *Store) UploadError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploadError
}

// PendingMerge reports whether a guest merge decision is pending
func (s *Store) PendingMerge() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingMerge
}

// IsPaid reports the cached paid flag
func (s *Store) IsPaid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isPaid
}

// Progress returns the cached gamification counters
func (s *Store) Progress() (xp, coins, streak int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.xp, s.coins, s.streak
}

// SetChatError sets or clears the chat error banner
func (s *Store) SetChatError(msg string) {
	s.mu.Lock()
	s.chatError = msg
	s.mu.Unlock()
	s.subs.notify(SliceFlags)
}

// SetUploadError sets the upload error banner; a non-empty banner
// clears itself after 5 seconds.
func (s *Store) SetUploadError(msg string) {
	s.mu.Lock()
	s.uploadError = msg
	if s.uploadErrTimer != nil {
		s.uploadErrTimer.Stop()
		s.uploadErrTimer = nil
	}
	if msg != "" {
		s.uploadErrTimer = time.AfterFunc(uploadErrorTTL, func() {
			s.mu.Lock()
			cleared := s.uploadError == msg
			if cleared {
				s.uploadError = ""
			}
			s.mu.Unlock()
			if cleared {
				s.subs.notify(SliceFlags)
			}
		})
	}
	s.mu.Unlock()
	s.subs.notify(SliceFlags)
}

// FetchSessions replaces the session list from the backend. On failure
// the existing list is left untouched.
func (s *Store) FetchSessions() error {
	sessions, err := s.backend.ListSessions()
	if err != nil {
		logger.Error("Failed to fetch sessions", "error", err)
		return err
	}

	s.mu.Lock()
	s.sessions = sessions
	// The active id must stay a member of the list
	if s.activeSessionID != "" && s.findSessionLocked(s.activeSessionID) == nil {
		s.activeSessionID = ""
	}
	s.persistLocked()
	s.mu.Unlock()

	s.subs.notify(SliceSessions)
	return nil
}

// SetActiveSession activates a session by id, or clears the active
// session when id is "". Activating an unknown id is a logged no-op.
// The transcript is fetched only when not already cached.
func (s *Store) SetActiveSession(id string) error {
	if id == "" {
		s.mu.Lock()
		if s.activeSessionID == "" {
			s.mu.Unlock()
			return nil
		}
		s.activeSessionID = ""
		s.persistLocked()
		s.mu.Unlock()
		s.subs.notify(SliceSessions)
		return nil
	}

	s.mu.Lock()
	sess := s.findSessionLocked(id)
	if sess == nil {
		s.mu.Unlock()
		logger.Error("Cannot activate unknown session", "session_id", id)
		return nil
	}

	s.activeSessionID = id
	if sess.Mode != "" {
		s.mode = sess.Mode
	}
	_, cached := s.chatHistories[id]
	if !cached {
		s.isLoading = true
	}
	s.persistLocked()
	s.mu.Unlock()
	s.subs.notify(SliceSessions, SliceFlags)

	if cached {
		return nil
	}

	// Cache miss: fetch once. The write is keyed by the id captured
	// here, so a fetch finishing after the user moved on is harmless.
	history, err := s.backend.GetSessionHistory(id)

	s.mu.Lock()
	if err != nil {
		logger.Error("Failed to fetch session history", "session_id", id, "error", err)
	} else {
		if history == nil {
			history = []api.ChatMessage{}
		}
		s.chatHistories[id] = history
	}
	s.isLoading = false
	s.persistLocked()
	s.mu.Unlock()

	s.subs.notify(SliceTranscript, SliceFlags)
	return err
}

// StartNewSession prepends a session, activates it and seeds its
// transcript with exactly the given message (none when nil).
func (s *Store) StartNewSession(info api.SessionInfo, initial *api.ChatMessage) {
	s.mu.Lock()
	s.sessions = append([]api.SessionInfo{info}, s.sessions...)
	s.activeSessionID = info.ID
	if info.Mode != "" {
		s.mode = info.Mode
	}
	seed := []api.ChatMessage{}
	if initial != nil {
		seed = append(seed, *initial)
	}
	s.chatHistories[info.ID] = seed
	s.uploadError = ""
	s.chatError = ""
	s.persistLocked()
	s.mu.Unlock()

	s.subs.notify(SliceSessions, SliceTranscript, SliceFlags)
}

// CreateNewChatSession provisions an empty chat session on the backend
// and activates it; the global mode switches to chat.
func (s *Store) CreateNewChatSession() (*api.SessionInfo, error) {
	info, err := s.backend.NewChatSession()
	if err != nil {
		logger.Error("Failed to create chat session", "error", err)
		return nil, err
	}

	if info.DocumentName == "" {
		info.DocumentName = PlaceholderTitle
	}
	info.Mode = api.ModeChat
	s.StartNewSession(*info, nil)
	return info, nil
}

// ClearSession deletes a session on the backend, then removes it and
// its cached transcript locally. On backend failure local state is
// untouched so the UI never loses a session to a failed delete.
func (s *Store) ClearSession(id string) error {
	if err := s.backend.DeleteSession(id); err != nil {
		logger.Error("Failed to delete session", "session_id", id, "error", err)
		return err
	}

	s.mu.Lock()
	for i, sess := range s.sessions {
		if sess.ID == id {
			s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
			break
		}
	}
	delete(s.chatHistories, id)
	if s.activeSessionID == id {
		s.activeSessionID = ""
	}
	s.persistLocked()
	s.mu.Unlock()

	s.subs.notify(SliceSessions, SliceTranscript)
	return nil
}

// AddMessage appends to the active transcript; no-op without an active
// session. Messages are append-only.
func (s *Store) AddMessage(msg api.ChatMessage) {
	s.mu.Lock()
	if s.activeSessionID == "" {
		s.mu.Unlock()
		return
	}
	s.chatHistories[s.activeSessionID] = append(s.chatHistories[s.activeSessionID], msg)
	s.persistLocked()
	s.mu.Unlock()

	s.subs.notify(SliceTranscript)
}

// SendChatMessage appends the user message, calls the chat API and
// appends the reply. Failures append an [Error] entry and set the chat
// error banner; the loading flag always clears. A second send for the
// same session while one is in flight fails fast instead of racing.
func (s *Store) SendChatMessage(text string) error {
	s.mu.Lock()
	if s.activeSessionID == "" {
		s.chatError = noActiveSessionMsg
		s.mu.Unlock()
		s.subs.notify(SliceFlags)
		return errors.New(noActiveSessionMsg)
	}

	id := s.activeSessionID
	if s.sendInFlight[id] {
		s.chatError = "A reply is still pending for this session."
		s.mu.Unlock()
		s.subs.notify(SliceFlags)
		return fmt.Errorf("send already in flight for session %s", id)
	}

	wasEmpty := len(s.chatHistories[id]) == 0
	var title string
	if sess := s.findSessionLocked(id); sess != nil {
		title = sess.DocumentName
	}

	s.sendInFlight[id] = true
	s.isLoading = true
	s.chatError = ""
	s.chatHistories[id] = append(s.chatHistories[id], api.ChatMessage{Role: api.RoleUser, Text: text})
	s.persistLocked()
	s.mu.Unlock()
	s.subs.notify(SliceTranscript, SliceFlags)

	reply, err := s.backend.SendChatMessage(id, text)

	s.mu.Lock()
	if err != nil {
		s.chatError = "Chat Failed: " + err.Error()
		s.chatHistories[id] = append(s.chatHistories[id], api.ChatMessage{
			Role: api.RoleModel,
			Text: "[Error] " + err.Error(),
		})
	} else {
		s.chatHistories[id] = append(s.chatHistories[id], api.ChatMessage{
			Role: api.RoleModel,
			Text: reply,
		})
	}
	s.isLoading = false
	delete(s.sendInFlight, id)
	s.persistLocked()
	s.mu.Unlock()
	s.subs.notify(SliceTranscript, SliceFlags)

	// First message of a fresh chat session: the server assigns a real
	// title, refetch so the placeholder gets replaced.
	if err == nil && wasEmpty && title == PlaceholderTitle {
		if ferr := s.FetchSessions(); ferr != nil {
			logger.Warn("Title refresh failed", "error", ferr)
		}
	}

	return err
}

// UploadDocument uploads a file and starts a session from the result.
// Failures surface on the upload error banner; prior session state is
// untouched.
func (s *Store) UploadDocument(filePath string) (*api.SessionInfo, error) {
	resp, err := s.backend.UploadDocument(filePath)
	if err != nil {
		s.SetUploadError("Upload Failed: " + err.Error())
		return nil, err
	}

	info := api.SessionInfo{
		ID:           resp.SessionID,
		DocumentName: resp.DocumentName,
		CreatedAt:    resp.CreatedAt,
		Mode:         resp.Mode,
	}
	text := resp.Response
	if text == "" {
		text = "Document uploaded successfully. Ready to begin!"
	}
	s.StartNewSession(info, &api.ChatMessage{Role: api.RoleModel, Text: text, IsInitial: true})
	return &info, nil
}

// SetMode switches the global mode. An active session of the other
// mode is deactivated to keep mode and session consistent.
func (s *Store) SetMode(mode string) {
	s.mu.Lock()
	if s.mode == mode {
		s.mu.Unlock()
		return
	}
	s.mode = mode
	if s.activeSessionID != "" {
		if sess := s.findSessionLocked(s.activeSessionID); sess != nil && sess.Mode != "" && sess.Mode != mode {
			s.activeSessionID = ""
		}
	}
	s.persistLocked()
	s.mu.Unlock()

	s.subs.notify(SliceSessions)
}

// SetPendingMerge flags that a guest-merge decision is required
func (s *Store) SetPendingMerge(pending bool) {
	s.mu.Lock()
	if s.pendingMerge == pending {
		s.mu.Unlock()
		return
	}
	s.pendingMerge = pending
	s.mu.Unlock()

	s.subs.notify(SliceMerge)
}

// MergeGuestData merges guest data into the signed-in account. On
// success guest state is cleared and the session list refetched; on
// failure the pending flag still clears (logged only) so the user is
// never stuck. No-op when no merge is pending.
func (s *Store) MergeGuestData() error {
	s.mu.Lock()
	if !s.pendingMerge {
		s.mu.Unlock()
		return nil
	}
	s.pendingMerge = false
	s.mu.Unlock()
	s.subs.notify(SliceMerge)

	token := ""
	if s.authTok != nil {
		token = s.authTok()
	}
	if token == "" {
		logger.Error("Cannot merge guest data without an authenticated token")
		return nil
	}

	guestToken := guest.Token()
	if guestToken == "" {
		logger.Warn("No guest token to merge")
		return nil
	}

	if err := s.backend.MergeGuestSession(token, guestToken); err != nil {
		logger.Error("Guest merge failed", "error", err)
		return nil
	}

	if err := guest.Clear(); err != nil {
		logger.Error("Failed to clear guest state", "error", err)
	}

	return s.FetchSessions()
}

// DiscardGuestData abandons guest data locally without calling the
// backend. No-op when no merge is pending.
func (s *Store) DiscardGuestData() error {
	s.mu.Lock()
	if !s.pendingMerge {
		s.mu.Unlock()
		return nil
	}
	s.pendingMerge = false
	s.mu.Unlock()
	s.subs.notify(SliceMerge)

	if err := guest.Clear(); err != nil {
		logger.Error("Failed to clear guest state", "error", err)
		return err
	}
	return nil
}

// StartFocusSession reports the start of a focus session to the
// backend. The mode switch is the caller's decision.
func (s *Store) StartFocusSession(sessionID string) error {
	if err := s.backend.StartStudySession(sessionID); err != nil {
		logger.Error("Failed to start focus session", "session_id", sessionID, "error", err)
		return err
	}
	return nil
}

// CompleteFocusSession reports a finished focus session and applies the
// server's updated counters. Counters only move forward.
func (s *Store) CompleteFocusSession(sessionID string) (*api.StudyEndResponse, error) {
	resp, err := s.backend.EndStudySession(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if resp.NewXP > s.xp {
		s.xp = resp.NewXP
	}
	if resp.NewCoins > s.coins {
		s.coins = resp.NewCoins
	}
	if resp.NewStreak > s.streak {
		s.streak = resp.NewStreak
	}
	s.persistLocked()
	s.mu.Unlock()

	s.subs.notify(SliceProgress)
	return resp, nil
}

// GrantAccess caches a successful payment locally
func (s *Store) GrantAccess() {
	s.mu.Lock()
	s.isPaid = true
	s.persistLocked()
	s.mu.Unlock()

	s.subs.notify(SliceProgress)
}

// Reset returns the store to initial values and removes the persisted
// state file. Used on sign-out.
func (s *Store) Reset() {
	s.mu.Lock()
	s.sessions = nil
	s.activeSessionID = ""
	s.chatHistories = make(map[string][]api.ChatMessage)
	s.mode = api.ModeChat
	s.isLoading = false
	s.uploadError = ""
	s.chatError = ""
	s.pendingMerge = false
	s.isPaid = false
	s.xp = 0
	s.coins = 0
	s.streak = 0
	s.sendInFlight = make(map[string]bool)
	s.removePersistedLocked()
	s.mu.Unlock()

	s.subs.notify(SliceSessions, SliceTranscript, SliceFlags, SliceMerge, SliceProgress)
}

// findSessionLocked returns the session with the given id, nil if absent
func (s *Store) findSessionLocked(id string) *api.SessionInfo {
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			return &s.sessions[i]
		}
	}
	return nil
}
