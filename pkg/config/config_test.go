package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestInitWithCustomPath validates custom config path
func TestInitWithCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	customConfigPath := filepath.Join(tempDir, "custom", "path", "config.toml")

	if err := Init(customConfigPath); err != nil {
		t.Fatalf("Failed to initialize with custom path: %v", err)
	}

	configDir := GetConfigDir()
	expectedDir := filepath.Join(tempDir, "custom", "path")

	if configDir != expectedDir {
		t.Errorf("Expected config dir %s, got %s", expectedDir, configDir)
	}

	// Directory should have been created
	if _, err := os.Stat(configDir); err != nil {
		t.Errorf("Config directory should exist: %v", err)
	}
}

// TestDefaults validates development default values
func TestDefaults(t *testing.T) {
	tempDir := t.TempDir()
	if err := Init(filepath.Join(tempDir, "config.toml")); err != nil {
		t.Fatalf("Failed to initialize config: %v", err)
	}

	testCases := []struct {
		key    string
		expect string
		name   string
	}{
		{"api.base_url", "http://localhost:8000", "api base url"},
		{"auth.base_url", "http://localhost:9999", "auth base url"},
		{"output.format", "text", "output format"},
		{"ui.theme", "dark", "ui theme"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := GetString(tc.key); got != tc.expect {
				t.Errorf("Expected %s=%s, got %s", tc.key, tc.expect, got)
			}
		})
	}

	if GetInt("api.timeout") != 30 {
		t.Errorf("Expected api.timeout=30, got %d", GetInt("api.timeout"))
	}
	if GetInt("auth.poll_interval") != 5 {
		t.Errorf("Expected auth.poll_interval=5, got %d", GetInt("auth.poll_interval"))
	}
}

// TestStatePaths validates the derived file paths live in the config dir
func TestStatePaths(t *testing.T) {
	tempDir := t.TempDir()
	if err := Init(filepath.Join(tempDir, "config.toml")); err != nil {
		t.Fatalf("Failed to initialize config: %v", err)
	}

	testCases := []struct {
		path   string
		expect string
		name   string
	}{
		{GetCredentialsPath(), "credentials", "credentials path"},
		{GetStatePath(), "akili_state.json", "state path"},
		{GetGuestTokenPath(), "guest_token", "guest token path"},
		{GetGuestFlagPath(), "guest_session_active", "guest flag path"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if filepath.Dir(tc.path) != tempDir {
				t.Errorf("Expected path under %s, got %s", tempDir, tc.path)
			}
			if filepath.Base(tc.path) != tc.expect {
				t.Errorf("Expected file name %s, got %s", tc.expect, filepath.Base(tc.path))
			}
		})
	}
}

// TestSetDoesNotPersist validates runtime-only values stay off disk
func TestSetDoesNotPersist(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.toml")
	if err := Init(configPath); err != nil {
		t.Fatalf("Failed to initialize config: %v", err)
	}

	Set("output.format", "json")

	if got := GetString("output.format"); got != "json" {
		t.Errorf("Expected output.format=json after Set, got %s", got)
	}

	// Set must not write the config file
	if _, err := os.Stat(configPath); !os.IsNotExist(err) {
		t.Error("Set should not create the config file")
	}
}

// TestSetStringPersists validates SetString writes the config file
func TestSetStringPersists(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.toml")
	if err := Init(configPath); err != nil {
		t.Fatalf("Failed to initialize config: %v", err)
	}

	if err := SetString("ui.theme", "light"); err != nil {
		t.Fatalf("Failed to persist config value: %v", err)
	}

	if _, err := os.Stat(configPath); err != nil {
		t.Errorf("Config file should exist after SetString: %v", err)
	}
	if got := GetString("ui.theme"); got != "light" {
		t.Errorf("Expected ui.theme=light, got %s", got)
	}
}

// TestUserConfigOverridesDefaults validates config file values win
func TestUserConfigOverridesDefaults(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.toml")

	content := "[api]\nbase_url = \"https://api.akili.example\"\n"
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if err := Init(configPath); err != nil {
		t.Fatalf("Failed to initialize config: %v", err)
	}

	if got := GetString("api.base_url"); got != "https://api.akili.example" {
		t.Errorf("Expected config file to override default, got %s", got)
	}
}
