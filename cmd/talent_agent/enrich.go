package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmtong/talentpipe/internal/config"
	"github.com/jmtong/talentpipe/internal/enrich"
)

var (
	enrichProfileURL string
	enrichName       string
	enrichCompany    string
	enrichLocation   string
	enrichTitle      string
	enrichIndustry   string
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Look up contact details for a candidate",
	Long:  "Resolve work email, personal emails, and phone for a candidate, by LinkedIn profile URL or by person search.",
	RunE:  runEnrich,
}

func init() {
	enrichCmd.Flags().StringVar(&enrichProfileURL, "profile-url", "", "LinkedIn profile URL")
	enrichCmd.Flags().StringVar(&enrichName, "name", "", "Candidate full name")
	enrichCmd.Flags().StringVar(&enrichCompany, "company", "", "Current company")
	enrichCmd.Flags().StringVar(&enrichLocation, "location", "", "Location")
	enrichCmd.Flags().StringVar(&enrichTitle, "title", "", "Job title")
	enrichCmd.Flags().StringVar(&enrichIndustry, "industry", "", "Industry")
	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if enrichProfileURL == "" && enrichName == "" {
		return fmt.Errorf("either --profile-url or --name must be provided")
	}

	cfg := config.FromEnv()
	if cfg.EnrichAPIKey == "" || cfg.EnrichBaseURL == "" {
		return fmt.Errorf("ENRICH_API_KEY and ENRICH_BASE_URL environment variables are required")
	}

	client, err := enrich.NewClient(cfg.EnrichBaseURL, cfg.EnrichAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create enrichment client: %w", err)
	}

	var contact *enrich.Contact
	if enrichProfileURL != "" {
		contact, err = client.LookupByProfile(ctx, enrichProfileURL)
	} else {
		contact, err = client.SearchPerson(ctx, enrich.PersonSearch{
			Name:     enrichName,
			Company:  enrichCompany,
			Location: enrichLocation,
			Title:    enrichTitle,
			Industry: enrichIndustry,
		})
	}
	if err != nil {
		return fmt.Errorf("enrichment failed: %w", err)
	}

	if !contact.HasContactInfo {
		fmt.Fprintln(os.Stdout, "No contact info found.")
		return nil
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(contact)
}
