package cmd

import (
	"fmt"
	"log"

	"credflow-console/internal/config"

	"github.com/spf13/cobra"
)

var (
	configureURL     string
	configureOutput  string
	configurePage    int
	configureBucket  string
	configurePrefix  string
	configureRetries int
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Set the backend URL and output preferences",
	Long: `Write the persistent operator profile.

Examples:
  credflow-console configure --url https://credflow.example.com
  credflow-console configure --url https://credflow.example.com --output json --page-size 50
  credflow-console configure --export-bucket credflow-exports --export-prefix reports`,
	Run: func(cmd *cobra.Command, args []string) {
		runConfigure()
	},
}

func init() {
	configureCmd.Flags().StringVar(&configureURL, "url", "", "Backend base URL (required on first run)")
	configureCmd.Flags().StringVar(&configureOutput, "output", "", "Default output format: text, json or html")
	configureCmd.Flags().IntVar(&configurePage, "page-size", 0, "Default page size for paginated listings")
	configureCmd.Flags().StringVar(&configureBucket, "export-bucket", "", "S3 bucket for timeline report exports")
	configureCmd.Flags().StringVar(&configurePrefix, "export-prefix", "", "S3 key prefix for timeline report exports")
	configureCmd.Flags().IntVar(&configureRetries, "retries", 0, "Retry attempts for transient backend errors")
}

func runConfigure() {
	profile, err := config.LoadProfile()
	if err != nil {
		// First run: start from an empty profile.
		profile = &config.Profile{}
	}

	if configureURL != "" {
		profile.BaseURL = configureURL
	}
	if configureOutput != "" {
		if configureOutput != "text" && configureOutput != "json" && configureOutput != "html" {
			log.Fatalf("Error: Unknown output format: %s. Valid formats: text, json, html", configureOutput)
		}
		profile.OutputFormat = configureOutput
	}
	if configurePage > 0 {
		profile.PageSize = configurePage
	}
	if configureBucket != "" {
		profile.ExportBucket = configureBucket
	}
	if configurePrefix != "" {
		profile.ExportPrefix = configurePrefix
	}
	if configureRetries > 0 {
		profile.RequestRetries = configureRetries
	}

	if profile.BaseURL == "" {
		log.Fatal("Error: --url is required on first configure")
	}

	if err := config.SaveProfile(profile); err != nil {
		log.Fatalf("Error saving profile: %v", err)
	}

	fmt.Printf("Profile saved\n")
	fmt.Printf("  Backend URL: %s\n", profile.BaseURL)
	fmt.Printf("  Output: %s, page size %d\n", profile.OutputFormat, profile.PageSize)
	if profile.ExportBucket != "" {
		fmt.Printf("  Export bucket: s3://%s/%s\n", profile.ExportBucket, profile.ExportPrefix)
	}
}
