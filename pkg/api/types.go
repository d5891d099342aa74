package api

import (
	"time"

	json "github.com/json-iterator/go"
)

// Message roles
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Session modes
const (
	ModeChat  = "chat"
	ModeStudy = "study"
)

// ChatMessage is one transcript entry. Text is either a plain string or,
// for summary/quiz payloads, an arbitrary JSON object the server sends;
// structured payloads are kept verbatim as their JSON encoding.
type ChatMessage struct {
	Role      string `json:"role"`
	Text      string `json:"text"`
	IsInitial bool   `json:"isInitial,omitempty"`
}

// UnmarshalJSON accepts both string and structured "text" fields.
func (m *ChatMessage) UnmarshalJSON(data []byte) error {
	var raw struct {
		Role      string          `json:"role"`
		Text      json.RawMessage `json:"text"`
		IsInitial bool            `json:"isInitial"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.Role = raw.Role
	m.IsInitial = raw.IsInitial
	if len(raw.Text) == 0 {
		m.Text = ""
		return nil
	}
	if raw.Text[0] == '"' {
		var s string
		if err := json.Unmarshal(raw.Text, &s); err != nil {
			return err
		}
		m.Text = s
		return nil
	}
	m.Text = string(raw.Text)
	return nil
}

// SessionInfo describes one study or chat session as the server reports it
type SessionInfo struct {
	ID           string `json:"session_id"`
	DocumentName string `json:"document_name"`
	CreatedAt    string `json:"created_at"`
	Mode         string `json:"mode"`
}

// CreatedTime parses the server timestamp, zero time if unparseable
func (s *SessionInfo) CreatedTime() time.Time {
	t, err := time.Parse(time.RFC3339, s.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// UploadResponse is returned by POST /upload/document
type UploadResponse struct {
	SessionID    string `json:"session_id"`
	DocumentName string `json:"document_name"`
	CreatedAt    string `json:"created_at"`
	Mode         string `json:"mode"`
	Response     string `json:"response"`
}

// ChatResponse is returned by POST /upload/chat
type ChatResponse struct {
	Response string `json:"response"`
}

// HistoryResponse is returned by GET /sessions/{id}
type HistoryResponse struct {
	History []ChatMessage `json:"history"`
}

// StudyEndResponse is returned by POST /study/end. The coin and streak
// fields are optional; servers that don't report them leave the local
// counters alone.
type StudyEndResponse struct {
	NewXP     int `json:"new_xp"`
	NewCoins  int `json:"new_coins,omitempty"`
	NewStreak int `json:"new_streak,omitempty"`
}

// MpesaResponse is returned by POST /payments/initialize-mpesa
type MpesaResponse struct {
	Status      string `json:"status"`
	Reference   string `json:"reference"`
	DisplayText string `json:"display_text"`
}

// ErrorResponse is the server's error envelope
type ErrorResponse struct {
	Detail string `json:"detail"`
}
