package storage

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestFormatSelected(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		format  string
		want    bool
	}{
		{"selected", []string{"html", "json"}, "json", true},
		{"not selected", []string{"html"}, "json", false},
		{"empty list", nil, "json", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatSelected(tt.formats, tt.format); got != tt.want {
				t.Errorf("formatSelected() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRunIDsFromKeys(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want []string
	}{
		{
			name: "dedupes and keeps order",
			keys: []string{
				"exports/run-a/timeline.html",
				"exports/run-a/manifest.json",
				"exports/run-b/manifest.json",
			},
			want: []string{"run-a", "run-b"},
		},
		{
			name: "keys carry the client prefix",
			keys: []string{"team/reports/exports/run-c/manifest.json"},
			want: []string{"run-c"},
		},
		{
			name: "ignores unrelated and truncated keys",
			keys: []string{"other/run-x/manifest.json", "exports/", "exports/orphan"},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runIDsFromKeys(tt.keys)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("runIDsFromKeys() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExportManifest_JSONShape(t *testing.T) {
	manifest := ExportManifest{
		Timestamp:   "2026-09-01T10:00:00Z",
		RunID:       "run-1",
		TotalRules:  4,
		ActiveRules: 3,
		MaxDay:      20,
	}
	manifest.Files.HTML = "exports/run-1/timeline.html"
	manifest.Files.Manifest = "exports/run-1/manifest.json"

	data, err := json.Marshal(manifest)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}

	var decoded ExportManifest
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if decoded.RunID != "run-1" || decoded.ActiveRules != 3 || decoded.Files.HTML != "exports/run-1/timeline.html" {
		t.Errorf("round trip mismatch: %+v", decoded)
	}

	// JSON export is skipped, so its key is omitted from the manifest.
	var raw map[string]interface{}
	json.Unmarshal(data, &raw)
	files := raw["files"].(map[string]interface{})
	if _, present := files["json"]; present {
		t.Errorf("expected empty json key to be omitted, got %v", files)
	}
}
