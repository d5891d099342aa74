package api

import (
	"fmt"

	"github.com/akili-ai/akili-cli/pkg/client"
	"github.com/akili-ai/akili-cli/pkg/logger"
	json "github.com/json-iterator/go"
)

// ListSessions fetches the session list for the current credential.
// Older deployments expose the list under /session/history; a 404 on
// the current route falls through to the legacy one.
func ListSessions() ([]SessionInfo, error) {
	logger.Debug("Fetching session list")

	resp, err := client.GetClient().
		R().
		Get("/sessions")

	if cerr := CheckResponse(resp, err); cerr != nil {
		if !IsNotFound(cerr) {
			return nil, cerr
		}
		logger.Debug("Falling back to legacy session history route")
		resp, err = client.GetClient().
			R().
			Get("/session/history")
		if cerr := CheckResponse(resp, err); cerr != nil {
			return nil, cerr
		}
	}

	var sessions []SessionInfo
	if err := json.Unmarshal(resp.Body(), &sessions); err != nil {
		return nil, err
	}
	for i := range sessions {
		if sessions[i].ID == "" {
			return nil, &MalformedResponseError{Endpoint: "/sessions", Field: "session_id"}
		}
	}

	logger.Debug("Session list fetched", "count", len(sessions))
	return sessions, nil
}

// GetSessionHistory fetches the transcript for one session
func GetSessionHistory(sessionID string) ([]ChatMessage, error) {
	logger.Debug("Fetching session history", "session_id", sessionID)

	resp, err := client.GetClient().
		R().
		Get(fmt.Sprintf("/sessions/%s", sessionID))

	if cerr := CheckResponse(resp, err); cerr != nil {
		return nil, cerr
	}

	var history HistoryResponse
	if err := json.Unmarshal(resp.Body(), &history); err != nil {
		return nil, err
	}

	// The server nests the transcript; an absent list means an empty one
	if history.History == nil {
		history.History = []ChatMessage{}
	}

	return history.History, nil
}

// NewChatSession provisions a new empty chat-mode session
func NewChatSession() (*SessionInfo, error) {
	logger.Debug("Creating new chat session")

	resp, err := client.GetClient().
		R().
		SetHeader("Content-Type", "application/json").
		SetBody("{}").
		Post("/sessions/new-chat")

	if cerr := CheckResponse(resp, err); cerr != nil {
		return nil, cerr
	}

	var info SessionInfo
	if err := json.Unmarshal(resp.Body(), &info); err != nil {
		return nil, err
	}
	if info.ID == "" {
		return nil, &MalformedResponseError{Endpoint: "/sessions/new-chat", Field: "session_id"}
	}
	if info.Mode == "" {
		info.Mode = ModeChat
	}

	logger.Debug("Chat session created", "session_id", info.ID)
	return &info, nil
}

// DeleteSession removes a session and its server-side data
func DeleteSession(sessionID string) error {
	logger.Debug("Deleting session", "session_id", sessionID)

	resp, err := client.GetClient().
		R().
		Delete(fmt.Sprintf("/sessions/%s", sessionID))

	return CheckResponse(resp, err)
}
