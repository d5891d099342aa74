package api

import (
	"github.com/akili-ai/akili-cli/pkg/client"
	"github.com/akili-ai/akili-cli/pkg/logger"
	json "github.com/json-iterator/go"
)

// StudyRequest is the payload for the focus-timer endpoints
type StudyRequest struct {
	SessionID string `json:"session_id"`
}

// StartStudySession marks the beginning of a focus session
func StartStudySession(sessionID string) error {
	logger.Debug("Starting study session", "session_id", sessionID)

	reqBody, err := json.Marshal(StudyRequest{SessionID: sessionID})
	if err != nil {
		return err
	}

	resp, err := client.GetClient().
		R().
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		Post("/study/start")

	return CheckResponse(resp, err)
}

// EndStudySession marks the end of a focus session and returns the
// updated gamification counters.
func EndStudySession(sessionID string) (*StudyEndResponse, error) {
	logger.Debug("Ending study session", "session_id", sessionID)

	reqBody, err := json.Marshal(StudyRequest{SessionID: sessionID})
	if err != nil {
		return nil, err
	}

	resp, err := client.GetClient().
		R().
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		Post("/study/end")

	if cerr := CheckResponse(resp, err); cerr != nil {
		return nil, cerr
	}

	var result StudyEndResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, err
	}

	logger.Debug("Study session ended", "new_xp", result.NewXP)
	return &result, nil
}
