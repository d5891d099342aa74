package api

import (
	"github.com/akili-ai/akili-cli/pkg/client"
	"github.com/akili-ai/akili-cli/pkg/logger"
	json "github.com/json-iterator/go"
)

// MpesaRequest is the payload for POST /payments/initialize-mpesa
type MpesaRequest struct {
	PlanName    string `json:"plan_name"`
	PhoneNumber string `json:"phone_number"`
}

// InitializeMpesaPayment starts a mobile-money payment for a plan
func InitializeMpesaPayment(planName, phoneNumber string) (*MpesaResponse, error) {
	logger.Debug("Initializing M-Pesa payment", "plan", planName)

	reqBody, err := json.Marshal(MpesaRequest{
		PlanName:    planName,
		PhoneNumber: phoneNumber,
	})
	if err != nil {
		return nil, err
	}

	resp, err := client.GetClient().
		R().
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		Post("/payments/initialize-mpesa")

	if cerr := CheckResponse(resp, err); cerr != nil {
		return nil, cerr
	}

	var result MpesaResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, err
	}
	if result.Status == "" {
		return nil, &MalformedResponseError{Endpoint: "/payments/initialize-mpesa", Field: "status"}
	}

	logger.Debug("Payment initialized", "status", result.Status, "reference", result.Reference)
	return &result, nil
}
