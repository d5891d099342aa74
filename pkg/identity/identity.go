// Package identity decides which credential authorizes API calls: a
// delegated provider session when one exists, the device guest token
// otherwise. Exactly one of the two is active at a time; both coexist
// only while a guest merge is pending.
package identity

import (
	"context"
	"sync"
	"time"

	"github.com/akili-ai/akili-cli/pkg/config"
	"github.com/akili-ai/akili-cli/pkg/credentials"
	"github.com/akili-ai/akili-cli/pkg/guest"
	"github.com/akili-ai/akili-cli/pkg/logger"
	"github.com/akili-ai/akili-cli/pkg/provider"
)

// State is the resolver's identity state
type State int

const (
	StateUninitialized State = iota
	StateGuest
	StateAuthenticated
)

// Resolver owns the guest/authenticated decision and the auth-event
// subscription for the life of the app.
type Resolver struct {
	provider provider.Provider
	watcher  *provider.Watcher

	mu    sync.Mutex
	state State
	user  *provider.User
}

// New creates a resolver over the given provider
func New(p provider.Provider) *Resolver {
	r := &Resolver{provider: p}
	interval := time.Duration(config.GetInt("auth.poll_interval")) * time.Second
	r.watcher = provider.NewWatcher(persistedSession, interval)
	return r
}

// persistedSession adapts the on-disk credentials to the watcher
func persistedSession() *provider.Session {
	creds, err := credentials.Load()
	if err != nil || creds == nil || creds.AccessToken == "" {
		return nil
	}
	return &provider.Session{
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
		User: provider.User{
			ID:          creds.UserID,
			Email:       creds.Email,
			DisplayName: creds.DisplayName,
		},
	}
}

// Initialize adopts the persisted provider session if one exists, or
// ensures a guest identity otherwise, then starts the auth watcher.
func (r *Resolver) Initialize(ctx context.Context) error {
	creds, err := credentials.Load()
	if err != nil {
		return err
	}

	r.mu.Lock()
	if creds != nil && creds.AccessToken != "" {
		r.state = StateAuthenticated
		r.user = &provider.User{ID: creds.UserID, Email: creds.Email, DisplayName: creds.DisplayName}
		logger.Debug("Existing provider session found", "user_id", creds.UserID)
	} else {
		r.state = StateGuest
		r.user = nil
	}
	state := r.state
	r.mu.Unlock()

	if state == StateGuest {
		token, err := guest.GetOrCreateToken()
		if err != nil {
			return err
		}
		if err := guest.SetSessionActive(true); err != nil {
			return err
		}
		prefix := token
		if len(prefix) > 8 {
			prefix = prefix[:8]
		}
		logger.Debug("Guest identity active", "token_prefix", prefix)
	}

	r.watcher.Start()
	return nil
}

// OnAuthChange registers a listener for sign-in/sign-out transitions;
// returns an unsubscribe func.
func (r *Resolver) OnAuthChange(l provider.Listener) func() {
	return r.watcher.Subscribe(l)
}

// State returns the current identity state
func (r *Resolver) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// CurrentUser returns the mirrored profile, nil for guests
func (r *Resolver) CurrentUser() *provider.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.user
}

// GetToken returns the best available credential: the delegated token
// (refreshed when inside the 60s expiry skew), else the guest token,
// else "". Callers treat "" as unauthenticated; it is not an error.
func (r *Resolver) GetToken(ctx context.Context) string {
	creds, err := credentials.Load()
	if err != nil {
		logger.Error("Failed to load credentials", "error", err)
		return guest.Token()
	}

	if creds == nil || creds.AccessToken == "" {
		return guest.Token()
	}

	if creds.NeedsRefresh() {
		refreshed, err := r.refresh(ctx, creds)
		if err != nil {
			logger.Warn("Token refresh failed", "error", err)
			if creds.IsExpired() {
				return guest.Token()
			}
			return creds.AccessToken
		}
		return refreshed.AccessToken
	}

	return creds.AccessToken
}

// AuthenticatedToken is GetToken without the guest fallback; "" when no
// delegated session exists. The merge workflow needs a token that is
// definitely the account's, never the guest's.
func (r *Resolver) AuthenticatedToken(ctx context.Context) string {
	creds, err := credentials.Load()
	if err != nil || creds == nil || creds.AccessToken == "" {
		return ""
	}
	if creds.NeedsRefresh() {
		refreshed, err := r.refresh(ctx, creds)
		if err != nil {
			logger.Warn("Token refresh failed", "error", err)
			if creds.IsExpired() {
				return ""
			}
			return creds.AccessToken
		}
		return refreshed.AccessToken
	}
	return creds.AccessToken
}

func (r *Resolver) refresh(ctx context.Context, creds *credentials.Credentials) (*credentials.Credentials, error) {
	sess, err := r.provider.RefreshSession(ctx, creds.RefreshToken)
	if err != nil {
		if provider.IsUnauthorized(err) {
			// Refresh token revoked; the delegated session is gone
			_ = credentials.Delete()
		}
		return nil, err
	}

	creds.AccessToken = sess.AccessToken
	if sess.RefreshToken != "" {
		creds.RefreshToken = sess.RefreshToken
	}
	creds.ExpiresAt = sess.ExpiresAt()
	if err := credentials.Save(creds); err != nil {
		logger.Error("Failed to save refreshed credentials", "error", err)
	}
	return creds, nil
}

// SignIn exchanges email+password for a delegated session, persists it
// and announces the transition to auth listeners.
func (r *Resolver) SignIn(ctx context.Context, email, password string) (*provider.User, error) {
	sess, err := r.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	creds := &credentials.Credentials{
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		ExpiresAt:    sess.ExpiresAt(),
		UserID:       sess.User.ID,
		Email:        sess.User.Email,
		DisplayName:  sess.User.DisplayName,
	}
	if err := credentials.Save(creds); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.state = StateAuthenticated
	r.user = &sess.User
	r.mu.Unlock()

	r.watcher.Emit(provider.EventSignedIn, sess)
	return &sess.User, nil
}

// SignOut revokes the provider session and resets every persisted
// identity key. Session-store state is reset by the sign-out listener.
func (r *Resolver) SignOut(ctx context.Context) error {
	creds, err := credentials.Load()
	if err != nil {
		return err
	}

	if creds != nil && creds.AccessToken != "" {
		// Revocation failure is not fatal; local state goes regardless
		if err := r.provider.SignOut(ctx, creds.AccessToken); err != nil {
			logger.Warn("Provider sign-out failed", "error", err)
		}
	}

	if err := credentials.Delete(); err != nil {
		return err
	}
	if err := guest.Clear(); err != nil {
		return err
	}

	r.mu.Lock()
	r.state = StateGuest
	r.user = nil
	r.mu.Unlock()

	r.watcher.Emit(provider.EventSignedOut, nil)
	return nil
}

// Close stops the auth watcher
func (r *Resolver) Close() {
	r.watcher.Stop()
}
