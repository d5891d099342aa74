package api

import (
	"github.com/akili-ai/akili-cli/pkg/client"
	"github.com/akili-ai/akili-cli/pkg/logger"
	json "github.com/json-iterator/go"
)

// MergeRequest is the payload for POST /auth/merge-guest-session
type MergeRequest struct {
	GuestToken string `json:"guest_token"`
}

// MergeGuestSession folds guest data into the authenticated account.
// The request must carry the freshly refreshed authenticated bearer
// token; the guest token rides in the body.
func MergeGuestSession(authToken, guestToken string) error {
	logger.Debug("Merging guest session")

	reqBody, err := json.Marshal(MergeRequest{GuestToken: guestToken})
	if err != nil {
		return err
	}

	resp, err := client.GetClient().
		R().
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+authToken).
		SetBody(reqBody).
		Post("/auth/merge-guest-session")

	return CheckResponse(resp, err)
}
