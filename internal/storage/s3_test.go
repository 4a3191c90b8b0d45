package storage

import (
	"os"
	"testing"
)

func TestNewS3Client(t *testing.T) {
	tests := []struct {
		name        string
		bucket      string
		prefix      string
		region      string
		expectError bool
	}{
		{
			name:        "valid configuration",
			bucket:      "credflow-exports",
			prefix:      "reports",
			region:      "eu-west-1",
			expectError: false,
		},
		{
			name:        "empty bucket",
			bucket:      "",
			prefix:      "reports",
			region:      "eu-west-1",
			expectError: true,
		},
		{
			name:        "empty prefix is valid",
			bucket:      "credflow-exports",
			prefix:      "",
			region:      "eu-west-1",
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewS3Client(tt.bucket, tt.prefix, tt.region)
			if tt.expectError {
				if err == nil {
					t.Errorf("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if client.Bucket() != tt.bucket {
				t.Errorf("bucket = %v, want %v", client.Bucket(), tt.bucket)
			}
			if client.Prefix() != tt.prefix {
				t.Errorf("prefix = %v, want %v", client.Prefix(), tt.prefix)
			}
		})
	}
}

func TestNewS3ClientForExport_EnvFallback(t *testing.T) {
	origBucket := os.Getenv("CREDFLOW_EXPORT_BUCKET")
	origPrefix := os.Getenv("CREDFLOW_EXPORT_PREFIX")
	defer func() {
		os.Setenv("CREDFLOW_EXPORT_BUCKET", origBucket)
		os.Setenv("CREDFLOW_EXPORT_PREFIX", origPrefix)
	}()

	os.Setenv("CREDFLOW_EXPORT_BUCKET", "env-bucket")
	os.Setenv("CREDFLOW_EXPORT_PREFIX", "env-prefix")

	client, err := NewS3ClientForExport("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Bucket() != "env-bucket" || client.Prefix() != "env-prefix" {
		t.Errorf("got %s/%s, want env values", client.Bucket(), client.Prefix())
	}

	// Explicit values win over the environment.
	client, err = NewS3ClientForExport("arg-bucket", "arg-prefix")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Bucket() != "arg-bucket" || client.Prefix() != "arg-prefix" {
		t.Errorf("got %s/%s, want argument values", client.Bucket(), client.Prefix())
	}

	os.Setenv("CREDFLOW_EXPORT_BUCKET", "")
	if _, err := NewS3ClientForExport("", ""); err == nil {
		t.Errorf("expected error when no bucket is configured")
	}
}

func TestBuildKey(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{
			name:   "with prefix",
			prefix: "reports",
			key:    "exports/run-1/timeline.html",
			want:   "reports/exports/run-1/timeline.html",
		},
		{
			name:   "empty prefix",
			prefix: "",
			key:    "exports/run-1/timeline.html",
			want:   "exports/run-1/timeline.html",
		},
		{
			name:   "key with leading slash",
			prefix: "reports",
			key:    "/exports/run-1/manifest.json",
			want:   "reports/exports/run-1/manifest.json",
		},
		{
			name:   "nested prefix",
			prefix: "prod/reports",
			key:    "manifest.json",
			want:   "prod/reports/manifest.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &S3Client{
				bucket: "credflow-exports",
				prefix: tt.prefix,
			}
			got := client.buildKey(tt.key)
			if got != tt.want {
				t.Errorf("buildKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestS3URI(t *testing.T) {
	client := &S3Client{
		bucket: "credflow-exports",
		prefix: "reports",
	}

	got := client.S3URI("exports/run-1/timeline.html")
	want := "s3://credflow-exports/reports/exports/run-1/timeline.html"
	if got != want {
		t.Errorf("S3URI() = %v, want %v", got, want)
	}
}
