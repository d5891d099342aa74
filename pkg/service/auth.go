package service

import (
	"context"

	"github.com/akili-ai/akili-cli/pkg/errors"
	"github.com/akili-ai/akili-cli/pkg/formatter"
	"github.com/akili-ai/akili-cli/pkg/identity"
	"github.com/akili-ai/akili-cli/pkg/logger"
	"github.com/akili-ai/akili-cli/pkg/prompter"
)

// AuthService handles sign-in, sign-out and the guest-merge decision
type AuthService struct {
	app *App
}

// NewAuthService creates a new auth service
func NewAuthService(app *App) *AuthService {
	return &AuthService{app: app}
}

// Login signs the user in via the identity provider
func (s *AuthService) Login(ctx context.Context) error {
	if s.app.Resolver.State() == identity.StateAuthenticated {
		user := s.app.Resolver.CurrentUser()
		formatter.PrintWarning("Already logged in as %s", user.Email)
		confirm, err := prompter.PromptConfirm("Continue with new login?")
		if err != nil {
			return err
		}
		if !confirm {
			return nil
		}
	}

	email, err := prompter.PromptString("Email: ")
	if err != nil {
		return err
	}
	if email == "" {
		return errors.ValidationError("email", "cannot be empty")
	}

	password, err := prompter.PromptPassword("Password: ")
	if err != nil {
		return err
	}
	if password == "" {
		return errors.ValidationError("password", "cannot be empty")
	}

	formatter.PrintInfo("Authenticating...")
	user, err := s.app.Resolver.SignIn(ctx, email, password)
	if err != nil {
		formatter.PrintError("Login failed: %v", err)
		return err
	}

	formatter.PrintSuccess("Logged in as %s", formatter.Bold.Sprint(user.Email))

	// A sign-in over an active guest session surfaces the merge choice
	// immediately; the pending flag blocks nothing else.
	if s.app.Store.PendingMerge() {
		return s.promptMerge()
	}

	return nil
}

func (s *AuthService) promptMerge() error {
	formatter.PrintWarning("A guest session with unsaved chats and progress exists on this device.")
	merge, err := prompter.PromptConfirm("Merge this data into your account?")
	if err != nil {
		return err
	}

	if merge {
		return s.Merge()
	}
	return s.Discard()
}

// Merge folds guest data into the signed-in account
func (s *AuthService) Merge() error {
	if !s.app.Store.PendingMerge() {
		formatter.PrintInfo("No guest data waiting to be merged.")
		return nil
	}

	formatter.PrintInfo("Merging guest data...")
	if err := s.app.Store.MergeGuestData(); err != nil {
		// Merge failures are deliberately non-fatal; the flag cleared
		logger.Error("Merge finished with error", "error", err)
	}
	formatter.PrintSuccess("Done.")
	return nil
}

// Discard abandons guest data without touching the backend
func (s *AuthService) Discard() error {
	if !s.app.Store.PendingMerge() {
		formatter.PrintInfo("No guest data waiting to be merged.")
		return nil
	}

	if err := s.app.Store.DiscardGuestData(); err != nil {
		formatter.PrintError("Failed to discard guest data: %v", err)
		return err
	}
	formatter.PrintSuccess("Guest data discarded.")
	return nil
}

// Logout revokes the provider session and resets all local state
func (s *AuthService) Logout(ctx context.Context) error {
	if s.app.Resolver.State() != identity.StateAuthenticated {
		formatter.PrintWarning("Not logged in")
		return nil
	}

	confirm, err := prompter.PromptConfirm("Logout?")
	if err != nil {
		return err
	}
	if !confirm {
		return nil
	}

	if err := s.app.Resolver.SignOut(ctx); err != nil {
		formatter.PrintError("Logout failed: %v", err)
		return err
	}

	formatter.PrintSuccess("Logged out successfully")
	return nil
}

// WhoAmI prints the current identity
func (s *AuthService) WhoAmI() error {
	if user := s.app.Resolver.CurrentUser(); user != nil {
		formatter.PrintKeyValue(map[string]interface{}{
			"User ID": user.ID,
			"Email":   user.Email,
			"Name":    user.DisplayName,
		})
		return nil
	}

	xp, coins, streak := s.app.Store.Progress()
	formatter.PrintInfo("Browsing as guest")
	formatter.PrintKeyValue(map[string]interface{}{
		"XP":     xp,
		"Coins":  coins,
		"Streak": streak,
	})
	return nil
}
