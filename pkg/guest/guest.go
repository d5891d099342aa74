// Package guest owns the device-local guest identity: an opaque token
// generated once per config dir, plus a marker recording that the guest
// has unmerged activity. Both exist independently of any account.
package guest

import (
	"os"
	"strings"

	"github.com/akili-ai/akili-cli/pkg/config"
	"github.com/google/uuid"
)

// Token returns the persisted guest token, or "" if none exists
func Token() string {
	data, err := os.ReadFile(config.GetGuestTokenPath())
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// GetOrCreateToken returns the guest token, generating and persisting
// one if missing.
func GetOrCreateToken() (string, error) {
	if token := Token(); token != "" {
		return token, nil
	}

	token := uuid.NewString()
	if err := os.WriteFile(config.GetGuestTokenPath(), []byte(token), 0600); err != nil {
		return "", err
	}
	return token, nil
}

// SetSessionActive marks or clears the unmerged-guest-activity flag
func SetSessionActive(active bool) error {
	path := config.GetGuestFlagPath()
	if !active {
		err := os.Remove(path)
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return os.WriteFile(path, []byte("true"), 0600)
}

// SessionActive reports whether an unmerged guest session exists
func SessionActive() bool {
	data, err := os.ReadFile(config.GetGuestFlagPath())
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(data)) == "true"
}

// Clear removes the guest token and the active flag
func Clear() error {
	if err := SetSessionActive(false); err != nil {
		return err
	}
	err := os.Remove(config.GetGuestTokenPath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
