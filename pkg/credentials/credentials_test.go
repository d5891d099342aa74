package credentials

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/akili-ai/akili-cli/pkg/config"
)

func initTestConfig(t *testing.T) {
	t.Helper()
	tempDir := t.TempDir()
	if err := config.Init(filepath.Join(tempDir, "config.toml")); err != nil {
		t.Fatalf("Failed to initialize config: %v", err)
	}
}

// TestCredentialsIsExpired validates token expiration check
func TestCredentialsIsExpired(t *testing.T) {
	testCases := []struct {
		expiresAt time.Time
		expect    bool
		name      string
	}{
		{time.Now().Add(-1 * time.Hour), true, "past expiration"},
		{time.Now().Add(1 * time.Hour), false, "future expiration"},
		{time.Now().Add(-1 * time.Minute), true, "recently expired"},
		{time.Now().Add(5 * time.Minute), false, "expiring soon"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			creds := &Credentials{
				AccessToken: "test_token",
				ExpiresAt:   tc.expiresAt,
			}

			if got := creds.IsExpired(); got != tc.expect {
				t.Errorf("Expected IsExpired=%v, got %v", tc.expect, got)
			}
		})
	}
}

// TestCredentialsNeedsRefresh validates the skew window before expiry
func TestCredentialsNeedsRefresh(t *testing.T) {
	testCases := []struct {
		expiresAt time.Time
		expect    bool
		name      string
	}{
		{time.Now().Add(-1 * time.Hour), true, "already expired"},
		{time.Now().Add(30 * time.Second), true, "inside skew window"},
		{time.Now().Add(RefreshSkew + time.Minute), false, "comfortably valid"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			creds := &Credentials{
				AccessToken: "test_token",
				ExpiresAt:   tc.expiresAt,
			}

			if got := creds.NeedsRefresh(); got != tc.expect {
				t.Errorf("Expected NeedsRefresh=%v, got %v", tc.expect, got)
			}
		})
	}
}

// TestCredentialsIsValid validates credential validity check
func TestCredentialsIsValid(t *testing.T) {
	testCases := []struct {
		accessToken string
		expiresAt   time.Time
		expect      bool
		name        string
	}{
		{"valid_token", time.Now().Add(1 * time.Hour), true, "valid credentials"},
		{"", time.Now().Add(1 * time.Hour), false, "empty access token"},
		{"valid_token", time.Now().Add(-1 * time.Hour), false, "expired token"},
		{"", time.Now().Add(-1 * time.Hour), false, "empty and expired"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			creds := &Credentials{
				AccessToken: tc.accessToken,
				ExpiresAt:   tc.expiresAt,
			}

			if got := creds.IsValid(); got != tc.expect {
				t.Errorf("Expected IsValid=%v, got %v", tc.expect, got)
			}
		})
	}
}

// TestSaveAndLoad validates the disk round trip
func TestSaveAndLoad(t *testing.T) {
	initTestConfig(t)

	creds := &Credentials{
		AccessToken:  "access_123",
		RefreshToken: "refresh_123",
		ExpiresAt:    time.Now().Add(1 * time.Hour).Truncate(time.Second),
		UserID:       "user_id_123",
		Email:        "test@example.com",
		DisplayName:  "Test User",
	}

	if err := Save(creds); err != nil {
		t.Fatalf("Failed to save credentials: %v", err)
	}

	// File must be owner-only
	info, err := os.Stat(config.GetCredentialsPath())
	if err != nil {
		t.Fatalf("Credentials file should exist: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected mode 0600, got %v", info.Mode().Perm())
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Failed to load credentials: %v", err)
	}
	if loaded == nil {
		t.Fatal("Loaded credentials should not be nil")
	}

	if loaded.AccessToken != creds.AccessToken {
		t.Errorf("AccessToken mismatch: %s != %s", loaded.AccessToken, creds.AccessToken)
	}
	if loaded.RefreshToken != creds.RefreshToken {
		t.Errorf("RefreshToken mismatch: %s != %s", loaded.RefreshToken, creds.RefreshToken)
	}
	if loaded.Email != creds.Email {
		t.Errorf("Email mismatch: %s != %s", loaded.Email, creds.Email)
	}
	if !loaded.ExpiresAt.Equal(creds.ExpiresAt) {
		t.Errorf("ExpiresAt mismatch: %v != %v", loaded.ExpiresAt, creds.ExpiresAt)
	}
}

// TestLoadMissing validates absent credentials load as nil, nil
func TestLoadMissing(t *testing.T) {
	initTestConfig(t)

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Loading missing credentials should not error: %v", err)
	}
	if loaded != nil {
		t.Error("Loading missing credentials should return nil")
	}
}

// TestDelete validates deletion, including of absent credentials
func TestDelete(t *testing.T) {
	initTestConfig(t)

	// Deleting nothing is fine
	if err := Delete(); err != nil {
		t.Fatalf("Deleting absent credentials should not error: %v", err)
	}

	if err := Save(&Credentials{AccessToken: "tok", ExpiresAt: time.Now().Add(time.Hour)}); err != nil {
		t.Fatalf("Failed to save credentials: %v", err)
	}
	if err := Delete(); err != nil {
		t.Fatalf("Failed to delete credentials: %v", err)
	}

	loaded, err := Load()
	if err != nil || loaded != nil {
		t.Errorf("Credentials should be gone after delete, got %v, %v", loaded, err)
	}
}
