package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ExportConfig describes one timeline-report export run.
type ExportConfig struct {
	Bucket        string
	Prefix        string
	RunID         string
	JSONFile      string
	HTMLFile      string
	TextFile      string
	OutputFormats []string
	Manifest      *ExportManifest
}

// ExportManifest records what a run produced, stored alongside the report
// files so past exports are self-describing.
type ExportManifest struct {
	Timestamp   string `json:"timestamp"`
	RunID       string `json:"run_id"`
	TotalRules  int    `json:"total_rules"`
	ActiveRules int    `json:"active_rules"`
	MaxDay      int    `json:"max_day"`
	BackendURL  string `json:"backend_url,omitempty"`
	Files       struct {
		JSON     string `json:"json,omitempty"`
		HTML     string `json:"html,omitempty"`
		Text     string `json:"text,omitempty"`
		Manifest string `json:"manifest"`
	} `json:"files"`
}

// UploadExport pushes the generated report files and their manifest to S3
// under exports/<run-id>/. A run id is minted when the config leaves it empty.
func UploadExport(config ExportConfig) (string, error) {
	s3Client, err := NewS3ClientForExport(config.Bucket, config.Prefix)
	if err != nil {
		return "", fmt.Errorf("failed to create S3 client: %w", err)
	}

	runID := config.RunID
	if runID == "" {
		runID = uuid.New().String()
	}

	s3Prefix := fmt.Sprintf("exports/%s", runID)

	if config.Manifest == nil {
		config.Manifest = &ExportManifest{}
	}
	config.Manifest.RunID = runID
	if config.Manifest.Timestamp == "" {
		config.Manifest.Timestamp = time.Now().Format(time.RFC3339)
	}

	if config.JSONFile != "" && formatSelected(config.OutputFormats, "json") {
		s3Key := fmt.Sprintf("%s/timeline.json", s3Prefix)
		if err := s3Client.UploadFile(config.JSONFile, s3Key); err != nil {
			return "", fmt.Errorf("failed to upload JSON report: %w", err)
		}
		config.Manifest.Files.JSON = s3Key
		fmt.Printf("Uploaded JSON report to %s\n", s3Client.S3URI(s3Key))
	}

	if config.HTMLFile != "" && formatSelected(config.OutputFormats, "html") {
		s3Key := fmt.Sprintf("%s/timeline.html", s3Prefix)
		if err := s3Client.UploadFile(config.HTMLFile, s3Key); err != nil {
			return "", fmt.Errorf("failed to upload HTML report: %w", err)
		}
		config.Manifest.Files.HTML = s3Key
		fmt.Printf("Uploaded HTML report to %s\n", s3Client.S3URI(s3Key))
	}

	if config.TextFile != "" && formatSelected(config.OutputFormats, "text") {
		s3Key := fmt.Sprintf("%s/timeline.txt", s3Prefix)
		if err := s3Client.UploadFile(config.TextFile, s3Key); err != nil {
			return "", fmt.Errorf("failed to upload text report: %w", err)
		}
		config.Manifest.Files.Text = s3Key
		fmt.Printf("Uploaded text report to %s\n", s3Client.S3URI(s3Key))
	}

	manifestS3Key := fmt.Sprintf("%s/manifest.json", s3Prefix)
	config.Manifest.Files.Manifest = manifestS3Key
	manifestData, err := json.MarshalIndent(config.Manifest, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := s3Client.UploadContent(manifestData, manifestS3Key); err != nil {
		return "", fmt.Errorf("failed to upload manifest: %w", err)
	}
	fmt.Printf("Uploaded manifest to %s\n", s3Client.S3URI(manifestS3Key))

	fmt.Printf("\nExport package: s3://%s/%s/\n", s3Client.Bucket(), s3Prefix)
	fmt.Printf("  Run ID: %s\n", runID)
	fmt.Printf("  Timestamp: %s\n", config.Manifest.Timestamp)
	fmt.Printf("  Rules: %d (%d active)\n", config.Manifest.TotalRules, config.Manifest.ActiveRules)

	return runID, nil
}

// FetchManifest downloads the manifest of a past export run, along with the
// object keys the run left under its export prefix.
func FetchManifest(bucket, prefix, runID string) (*ExportManifest, []string, error) {
	s3Client, err := NewS3ClientForExport(bucket, prefix)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	manifestKey := fmt.Sprintf("exports/%s/manifest.json", runID)
	exists, err := s3Client.KeyExists(manifestKey)
	if err != nil {
		return nil, nil, err
	}
	if !exists {
		return nil, nil, fmt.Errorf("export run %s not found in s3://%s", runID, s3Client.Bucket())
	}

	data, err := s3Client.DownloadContent(manifestKey)
	if err != nil {
		return nil, nil, err
	}

	var manifest ExportManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	keys, err := s3Client.ListKeys(fmt.Sprintf("exports/%s/", runID))
	if err != nil {
		return nil, nil, err
	}
	return &manifest, keys, nil
}

// ListExportRuns returns the distinct run IDs that have objects under the
// exports/ prefix, in key order.
func ListExportRuns(bucket, prefix string) ([]string, error) {
	s3Client, err := NewS3ClientForExport(bucket, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	keys, err := s3Client.ListKeys("exports/")
	if err != nil {
		return nil, err
	}
	return runIDsFromKeys(keys), nil
}

// runIDsFromKeys extracts the run-ID path segment following "exports/" from
// each object key, deduplicated and in first-seen order. Keys may carry the
// client's configured prefix in front.
func runIDsFromKeys(keys []string) []string {
	seen := make(map[string]bool)
	var runIDs []string
	for _, key := range keys {
		idx := strings.Index(key, "exports/")
		if idx < 0 {
			continue
		}
		rest := key[idx+len("exports/"):]
		slash := strings.IndexByte(rest, '/')
		if slash <= 0 {
			continue
		}
		runID := rest[:slash]
		if !seen[runID] {
			seen[runID] = true
			runIDs = append(runIDs, runID)
		}
	}
	return runIDs
}

func formatSelected(formats []string, format string) bool {
	for _, f := range formats {
		if f == format {
			return true
		}
	}
	return false
}
