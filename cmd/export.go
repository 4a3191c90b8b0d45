package cmd

import (
	"fmt"
	"log"

	"credflow-console/internal/config"
	"credflow-console/internal/storage"

	"github.com/spf13/cobra"
)

var (
	exportS3Bucket string
	exportS3Prefix string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Inspect past timeline exports in S3",
}

var exportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List export run IDs",
	Run: func(cmd *cobra.Command, args []string) {
		runExportList()
	},
}

var exportShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the manifest and files of one export run",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runExportShow(args[0])
	},
}

func init() {
	exportCmd.AddCommand(exportListCmd)
	exportCmd.AddCommand(exportShowCmd)

	exportCmd.PersistentFlags().StringVar(&exportS3Bucket, "s3-bucket", "", "S3 bucket (or profile export_bucket, or CREDFLOW_EXPORT_BUCKET)")
	exportCmd.PersistentFlags().StringVar(&exportS3Prefix, "s3-prefix", "", "S3 key prefix (or profile export_prefix)")
}

// exportLocation resolves the bucket/prefix pair from flags, then the saved
// profile. A missing profile is fine: the storage layer still falls back to
// the CREDFLOW_EXPORT_* environment variables.
func exportLocation() (string, string) {
	bucket := exportS3Bucket
	prefix := exportS3Prefix
	if profile, err := config.LoadProfile(); err == nil {
		if bucket == "" {
			bucket = profile.ExportBucket
		}
		if prefix == "" {
			prefix = profile.ExportPrefix
		}
	}
	return bucket, prefix
}

func runExportList() {
	bucket, prefix := exportLocation()
	runIDs, err := storage.ListExportRuns(bucket, prefix)
	if err != nil {
		log.Fatalf("Error listing exports: %v", err)
	}

	if len(runIDs) == 0 {
		fmt.Println("No export runs found")
		return
	}
	fmt.Printf("Export runs (%d)\n", len(runIDs))
	for _, runID := range runIDs {
		fmt.Printf("  %s\n", runID)
	}
}

func runExportShow(runID string) {
	bucket, prefix := exportLocation()
	manifest, keys, err := storage.FetchManifest(bucket, prefix, runID)
	if err != nil {
		log.Fatalf("Error fetching export: %v", err)
	}

	fmt.Printf("Run ID:    %s\n", manifest.RunID)
	fmt.Printf("Timestamp: %s\n", manifest.Timestamp)
	fmt.Printf("Rules:     %d (%d active)\n", manifest.TotalRules, manifest.ActiveRules)
	fmt.Printf("Max day:   %d\n", manifest.MaxDay)
	if manifest.BackendURL != "" {
		fmt.Printf("Backend:   %s\n", manifest.BackendURL)
	}
	fmt.Printf("Files (%d)\n", len(keys))
	for _, key := range keys {
		fmt.Printf("  %s\n", key)
	}
}
