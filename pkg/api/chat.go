package api

import (
	"github.com/akili-ai/akili-cli/pkg/client"
	"github.com/akili-ai/akili-cli/pkg/logger"
	json "github.com/json-iterator/go"
)

// ChatRequest is the payload for POST /upload/chat
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// SendChatMessage sends one chat turn and returns the model's reply text
func SendChatMessage(sessionID, message string) (string, error) {
	logger.Debug("Sending chat message", "session_id", sessionID)

	reqBody, err := json.Marshal(ChatRequest{
		SessionID: sessionID,
		Message:   message,
	})
	if err != nil {
		return "", err
	}

	resp, err := client.GetClient().
		R().
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		Post("/upload/chat")

	if cerr := CheckResponse(resp, err); cerr != nil {
		return "", cerr
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(resp.Body(), &chatResp); err != nil {
		return "", err
	}

	// An empty reply is still a reply; don't surface it as broken
	if chatResp.Response == "" {
		return "Received empty response from Akili AI.", nil
	}

	return chatResp.Response, nil
}
