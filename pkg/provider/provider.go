// Package provider talks to the delegated identity provider. The
// provider owns users and sessions; this client only exchanges, reviews
// and revokes them.
package provider

import (
	"context"
	"time"

	"github.com/akili-ai/akili-cli/pkg/config"
	"github.com/akili-ai/akili-cli/pkg/logger"
	"github.com/go-resty/resty/v2"
	json "github.com/json-iterator/go"
)

// User is the provider's view of an account, mirrored for display
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// Session is a delegated session: a capability to call the backend and
// to refresh itself.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         User   `json:"user"`
}

// ExpiresAt converts the relative expiry to an absolute instant
func (s *Session) ExpiresAt() time.Time {
	return time.Now().Add(time.Duration(s.ExpiresIn) * time.Second)
}

// Provider is the identity-provider surface the app consumes
type Provider interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	RefreshSession(ctx context.Context, refreshToken string) (*Session, error)
	SignOut(ctx context.Context, accessToken string) error
}

// HTTPProvider implements Provider against the provider's REST API
type HTTPProvider struct {
	http *resty.Client
}

// NewHTTP creates a provider client from configuration
func NewHTTP() *HTTPProvider {
	c := resty.New()
	c.SetBaseURL(config.GetString("auth.base_url"))
	c.SetTimeout(time.Duration(config.GetInt("api.timeout")) * time.Second)
	c.SetHeader("User-Agent", "Akili-CLI/0.1.0")
	return &HTTPProvider{http: c}
}

type passwordGrant struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshGrant struct {
	RefreshToken string `json:"refresh_token"`
}

// SignIn exchanges email+password for a delegated session
func (p *HTTPProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	logger.Debug("Provider sign-in", "email", email)

	reqBody, err := json.Marshal(passwordGrant{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	resp, err := p.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		Post("/token?grant_type=password")
	if err := checkProviderResponse(resp, err); err != nil {
		return nil, err
	}

	return parseSession(resp.Body())
}

// RefreshSession trades a refresh token for a new session
func (p *HTTPProvider) RefreshSession(ctx context.Context, refreshToken string) (*Session, error) {
	logger.Debug("Provider session refresh")

	reqBody, err := json.Marshal(refreshGrant{RefreshToken: refreshToken})
	if err != nil {
		return nil, err
	}

	resp, err := p.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		Post("/token?grant_type=refresh_token")
	if err := checkProviderResponse(resp, err); err != nil {
		return nil, err
	}

	return parseSession(resp.Body())
}

// SignOut revokes the session at the provider
func (p *HTTPProvider) SignOut(ctx context.Context, accessToken string) error {
	logger.Debug("Provider sign-out")

	resp, err := p.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+accessToken).
		Post("/logout")
	return checkProviderResponse(resp, err)
}

func parseSession(body []byte) (*Session, error) {
	var sess Session
	if err := json.Unmarshal(body, &sess); err != nil {
		return nil, err
	}
	if sess.AccessToken == "" {
		return nil, &ProviderError{StatusCode: 200, Detail: "session response missing access_token"}
	}
	return &sess, nil
}
