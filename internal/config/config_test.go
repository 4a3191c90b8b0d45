package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadProfile_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CREDFLOW_CONFIG_DIR", dir)
	t.Setenv("CREDFLOW_URL", "")

	content := []byte("base_url: https://file.example.com\noutput_format: json\npage_size: 50\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o600); err != nil {
		t.Fatal(err)
	}

	profile, err := LoadProfile()
	if err != nil {
		t.Fatalf("LoadProfile() error = %v", err)
	}
	if profile.BaseURL != "https://file.example.com" {
		t.Errorf("BaseURL = %q", profile.BaseURL)
	}
	if profile.OutputFormat != "json" || profile.PageSize != 50 {
		t.Errorf("profile = %+v", profile)
	}

	t.Setenv("CREDFLOW_URL", "https://env.example.com")
	profile, err = LoadProfile()
	if err != nil {
		t.Fatalf("LoadProfile() error = %v", err)
	}
	if profile.BaseURL != "https://env.example.com" {
		t.Errorf("env override ignored, BaseURL = %q", profile.BaseURL)
	}
}

func TestLoadProfile_MissingURL(t *testing.T) {
	t.Setenv("CREDFLOW_CONFIG_DIR", t.TempDir())
	t.Setenv("CREDFLOW_URL", "")

	if _, err := LoadProfile(); err == nil {
		t.Fatal("expected error when no backend URL is configured")
	}
}

func TestSaveProfile_RoundTrip(t *testing.T) {
	t.Setenv("CREDFLOW_CONFIG_DIR", t.TempDir())
	t.Setenv("CREDFLOW_URL", "")

	original := &Profile{BaseURL: "https://api.example.com", OutputFormat: "html", PageSize: 10}
	if err := SaveProfile(original); err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}

	loaded, err := LoadProfile()
	if err != nil {
		t.Fatalf("LoadProfile() error = %v", err)
	}
	if loaded.BaseURL != original.BaseURL || loaded.OutputFormat != original.OutputFormat || loaded.PageSize != original.PageSize {
		t.Errorf("round trip mismatch: got %+v, want %+v", loaded, original)
	}
}

func TestCredentials_Lifecycle(t *testing.T) {
	t.Setenv("CREDFLOW_CONFIG_DIR", t.TempDir())
	t.Setenv("CREDFLOW_TOKEN", "")

	creds, err := LoadCredentials()
	if err != nil {
		t.Fatalf("LoadCredentials() error = %v", err)
	}
	if creds != nil {
		t.Fatalf("expected no cached session, got %+v", creds)
	}

	if err := SaveCredentials(&Credentials{Token: "tok-1", Username: "admin", Role: "ADMIN"}); err != nil {
		t.Fatalf("SaveCredentials() error = %v", err)
	}

	creds, err = LoadCredentials()
	if err != nil {
		t.Fatalf("LoadCredentials() error = %v", err)
	}
	if creds == nil || creds.Token != "tok-1" || creds.Role != "ADMIN" {
		t.Errorf("got %+v", creds)
	}

	if err := ClearCredentials(); err != nil {
		t.Fatalf("ClearCredentials() error = %v", err)
	}
	creds, err = LoadCredentials()
	if err != nil || creds != nil {
		t.Errorf("after clear: creds = %+v, err = %v", creds, err)
	}

	// Clearing twice is not an error.
	if err := ClearCredentials(); err != nil {
		t.Errorf("second ClearCredentials() error = %v", err)
	}
}

func TestCredentials_TokenEnvOverride(t *testing.T) {
	t.Setenv("CREDFLOW_CONFIG_DIR", t.TempDir())
	t.Setenv("CREDFLOW_TOKEN", "env-token")

	creds, err := LoadCredentials()
	if err != nil {
		t.Fatalf("LoadCredentials() error = %v", err)
	}
	if creds == nil || creds.Token != "env-token" {
		t.Errorf("got %+v, want env token", creds)
	}
}
