package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Profile is the operator's persistent connection configuration, stored as
// YAML under the config directory.
type Profile struct {
	BaseURL       string `yaml:"base_url"`
	OutputFormat  string `yaml:"output_format,omitempty"`
	PageSize      int    `yaml:"page_size,omitempty"`
	ExportBucket  string `yaml:"export_bucket,omitempty"`
	ExportPrefix  string `yaml:"export_prefix,omitempty"`
	RequestRetries int   `yaml:"request_retries,omitempty"`
}

const (
	configFileName      = "config.yaml"
	credentialsFileName = "credentials.yaml"

	defaultOutputFormat = "text"
	defaultPageSize     = 20
)

// Dir returns the config directory, creating it if needed. Override with
// CREDFLOW_CONFIG_DIR.
func Dir() (string, error) {
	if dir := os.Getenv("CREDFLOW_CONFIG_DIR"); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return "", err
		}
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve home directory: %w", err)
	}
	dir := filepath.Join(home, ".credflow")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// LoadProfile reads the stored profile and applies environment overrides.
// CREDFLOW_URL always wins over the file so scripts can retarget without
// touching the operator's config.
func LoadProfile() (*Profile, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	profile := &Profile{
		OutputFormat: defaultOutputFormat,
		PageSize:     defaultPageSize,
	}

	data, err := os.ReadFile(filepath.Join(dir, configFileName))
	if err == nil {
		if err := yaml.Unmarshal(data, profile); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if url := os.Getenv("CREDFLOW_URL"); url != "" {
		profile.BaseURL = url
	}
	if profile.OutputFormat == "" {
		profile.OutputFormat = defaultOutputFormat
	}
	if profile.PageSize <= 0 {
		profile.PageSize = defaultPageSize
	}

	if profile.BaseURL == "" {
		return nil, fmt.Errorf("no backend URL configured\n\n" +
			"Examples:\n" +
			"  # One-off override\n" +
			"  export CREDFLOW_URL=\"https://credflow.example.com\"\n\n" +
			"  # Persistent profile\n" +
			"  credflow-console configure --url https://credflow.example.com")
	}

	return profile, nil
}

// SaveProfile writes the profile to the config directory.
func SaveProfile(profile *Profile) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(profile)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, configFileName), data, 0o600)
}
