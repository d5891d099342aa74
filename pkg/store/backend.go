package store

import "github.com/akili-ai/akili-cli/pkg/api"

// Backend is the slice of the remote API the store depends on. The
// default implementation delegates to pkg/api; tests substitute fakes.
type Backend interface {
	ListSessions() ([]api.SessionInfo, error)
	GetSessionHistory(sessionID string) ([]api.ChatMessage, error)
	NewChatSession() (*api.SessionInfo, error)
	DeleteSession(sessionID string) error
	SendChatMessage(sessionID, message string) (string, error)
	UploadDocument(filePath string) (*api.UploadResponse, error)
	StartStudySession(sessionID string) error
	EndStudySession(sessionID string) (*api.StudyEndResponse, error)
	MergeGuestSession(authToken, guestToken string) error
}

type apiBackend struct{}

// NewBackend returns the Backend backed by the live API client
func NewBackend() Backend {
	return apiBackend{}
}

func (apiBackend) ListSessions() ([]api.SessionInfo, error) {
	return api.ListSessions()
}

func (apiBackend) GetSessionHistory(sessionID string) ([]api.ChatMessage, error) {
	return api.GetSessionHistory(sessionID)
}

func (apiBackend) NewChatSession() (*api.SessionInfo, error) {
	return api.NewChatSession()
}

func (apiBackend) DeleteSession(sessionID string) error {
	return api.DeleteSession(sessionID)
}

func (apiBackend) SendChatMessage(sessionID, message string) (string, error) {
	return api.SendChatMessage(sessionID, message)
}

func (apiBackend) UploadDocument(filePath string) (*api.UploadResponse, error) {
	return api.UploadDocument(filePath)
}

func (apiBackend) StartStudySession(sessionID string) error {
	return api.StartStudySession(sessionID)
}

func (apiBackend) EndStudySession(sessionID string) (*api.StudyEndResponse, error) {
	return api.EndStudySession(sessionID)
}

func (apiBackend) MergeGuestSession(authToken, guestToken string) error {
	return api.MergeGuestSession(authToken, guestToken)
}
