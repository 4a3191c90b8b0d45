package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Credentials is the cached session written after a successful login. The
// token is a backend-issued JWT; Role mirrors the backend's answer at login
// time so command groups can warn early, the backend still enforces it.
type Credentials struct {
	Token    string `yaml:"token"`
	Username string `yaml:"username"`
	Role     string `yaml:"role"`
}

// LoadCredentials reads the cached session. CREDFLOW_TOKEN overrides the
// cache for scripted use. Returns nil without error when no session exists.
func LoadCredentials() (*Credentials, error) {
	if token := os.Getenv("CREDFLOW_TOKEN"); token != "" {
		return &Credentials{Token: token}, nil
	}

	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(dir, credentialsFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var creds Credentials
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}
	if creds.Token == "" {
		return nil, nil
	}
	return &creds, nil
}

// SaveCredentials caches a session after login or register.
func SaveCredentials(creds *Credentials) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(creds)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, credentialsFileName), data, 0o600)
}

// ClearCredentials removes the cached session. Used on logout and when the
// backend rejects the token.
func ClearCredentials() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(dir, credentialsFileName))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
