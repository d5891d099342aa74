package provider

import (
	"fmt"

	"github.com/go-resty/resty/v2"
	json "github.com/json-iterator/go"
)

// ProviderError is an error response from the identity provider
type ProviderError struct {
	StatusCode int
	Detail     string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("identity provider error (%d): %s", e.StatusCode, e.Detail)
}

// IsUnauthorized reports whether the provider rejected the credential
func IsUnauthorized(err error) bool {
	if perr, ok := err.(*ProviderError); ok {
		return perr.StatusCode == 401 || perr.StatusCode == 400
	}
	return false
}

func checkProviderResponse(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("no response from identity provider: %w", err)
	}
	if resp.IsSuccess() {
		return nil
	}

	var envelope struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
		Message          string `json:"msg"`
	}
	detail := resp.Status()
	if jerr := json.Unmarshal(resp.Body(), &envelope); jerr == nil {
		switch {
		case envelope.ErrorDescription != "":
			detail = envelope.ErrorDescription
		case envelope.Message != "":
			detail = envelope.Message
		case envelope.Error != "":
			detail = envelope.Error
		}
	}
	return &ProviderError{StatusCode: resp.StatusCode(), Detail: detail}
}
