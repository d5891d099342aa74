package client

import (
	"net/http"
	"time"

	"github.com/akili-ai/akili-cli/pkg/config"
	"github.com/akili-ai/akili-cli/pkg/logger"
	"github.com/go-resty/resty/v2"
)

var httpClient *resty.Client

// TokenSource supplies the bearer token for outgoing requests. It may
// return an empty string, in which case the request goes out
// unauthenticated and the server decides what to do with it.
type TokenSource func() string

var tokenSource TokenSource

// Init initializes the HTTP client
func Init() {
	httpClient = resty.New()

	baseURL := config.GetString("api.base_url")
	timeout := time.Duration(config.GetInt("api.timeout")) * time.Second

	httpClient.SetBaseURL(baseURL)
	httpClient.SetTimeout(timeout)
	httpClient.SetHeader("User-Agent", "Akili-CLI/0.1.0")

	// One retry policy for every call: 3 attempts, 1s/2s/4s, and only
	// for server errors and rate limiting. Transport failures and 4xx
	// are terminal on the first attempt.
	httpClient.SetRetryCount(3)
	httpClient.SetRetryWaitTime(1 * time.Second)
	httpClient.SetRetryMaxWaitTime(4 * time.Second)
	httpClient.AddRetryCondition(func(resp *resty.Response, err error) bool {
		if err != nil || resp == nil {
			return false
		}
		code := resp.StatusCode()
		return code >= 500 || code == http.StatusTooManyRequests
	})
	httpClient.AddRetryHook(func(resp *resty.Response, err error) {
		if resp != nil {
			logger.Warn("Retrying request", "url", resp.Request.URL, "status", resp.StatusCode())
		}
	})

	// Add request/response logging
	httpClient.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		logger.Debug("HTTP Request", "method", req.Method, "url", req.URL)

		// Attach the best available credential unless the request
		// already carries one explicitly
		if tokenSource != nil && req.Header.Get("Authorization") == "" {
			if token := tokenSource(); token != "" {
				req.Header.Set("Authorization", "Bearer "+token)
			}
		}

		return nil
	})

	httpClient.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logger.Debug("HTTP Response", "status", resp.StatusCode())
		return nil
	})
}

// GetClient returns the HTTP client
func GetClient() *resty.Client {
	if httpClient == nil {
		Init()
	}
	return httpClient
}

// SetTokenSource installs the credential provider used for every request
func SetTokenSource(src TokenSource) {
	tokenSource = src
}

// SetAuthToken sets a fixed authorization token
func SetAuthToken(token string) {
	if httpClient == nil {
		Init()
	}
	httpClient.SetHeader("Authorization", "Bearer "+token)
}

// ClearAuthToken clears the authorization token and the token source
func ClearAuthToken() {
	tokenSource = nil
	// Re-init the client to clear auth headers
	Init()
}

// SetBaseURL overrides the API base URL (used by tests)
func SetBaseURL(url string) {
	if httpClient == nil {
		Init()
	}
	httpClient.SetBaseURL(url)
}

// DisableRetries turns retries off (used by tests that assert terminal errors)
func DisableRetries() {
	if httpClient == nil {
		Init()
	}
	httpClient.SetRetryCount(0)
}
