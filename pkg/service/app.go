package service

import (
	"context"

	"github.com/akili-ai/akili-cli/pkg/client"
	"github.com/akili-ai/akili-cli/pkg/errors"
	"github.com/akili-ai/akili-cli/pkg/guest"
	"github.com/akili-ai/akili-cli/pkg/identity"
	"github.com/akili-ai/akili-cli/pkg/logger"
	"github.com/akili-ai/akili-cli/pkg/provider"
	"github.com/akili-ai/akili-cli/pkg/store"
)

// App is the application context: the resolver, the store and the
// wiring between them. It is constructed once at startup and passed to
// every service; nothing here is an ambient global.
type App struct {
	Resolver *identity.Resolver
	Store    *store.Store
}

// NewApp builds and wires the application context
func NewApp(ctx context.Context) (*App, error) {
	return newApp(ctx, provider.NewHTTP(), store.NewBackend())
}

func newApp(ctx context.Context, p provider.Provider, backend store.Backend) (*App, error) {
	res := identity.New(p)

	st := store.New(backend, func() string {
		return res.AuthenticatedToken(context.Background())
	})

	// Every API request carries the best available credential
	client.SetTokenSource(func() string {
		return res.GetToken(context.Background())
	})

	// Auth transitions drive the merge workflow and the store lifecycle.
	// The listener runs on the watcher goroutine, so the session fetch
	// is dispatched off it.
	res.OnAuthChange(func(event provider.Event, sess *provider.Session) {
		switch event {
		case provider.EventSignedIn:
			if guest.Token() != "" && guest.SessionActive() {
				logger.Info("Sign-in with an active guest session, merge decision pending")
				st.SetPendingMerge(true)
			}
			go func() {
				if err := st.FetchSessions(); err != nil {
					logger.Warn("Session fetch after sign-in failed", "error", err)
				}
			}()
		case provider.EventSignedOut:
			st.Reset()
		}
	})

	if err := res.Initialize(ctx); err != nil {
		return nil, err
	}

	// An adopted provider session triggers a list fetch right away;
	// guests fetch lazily on first use.
	if res.State() == identity.StateAuthenticated {
		if err := st.FetchSessions(); err != nil {
			logger.Warn("Initial session fetch failed", "error", err)
		}
	}

	return &App{Resolver: res, Store: st}, nil
}

// RequireCredential fails fast when the resolver cannot produce any
// token, so credential-gated flows never hit the network without one.
func (a *App) RequireCredential(ctx context.Context) error {
	if a.Resolver.GetToken(ctx) == "" {
		return errors.TokenNotFoundError()
	}
	return nil
}

// Close releases the app's background resources
func (a *App) Close() {
	a.Resolver.Close()
}
