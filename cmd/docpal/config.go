package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ConfigCmd creates the config command
func ConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadConfig()

			fmt.Println("docpal Configuration")
			fmt.Println("====================")
			fmt.Printf("Data Directory: %s\n", cfg.DataDir)
			fmt.Printf("Database:       %s\n", cfg.DBPath())
			fmt.Printf("Profile:        %s\n", cfg.ProfilePath())
			fmt.Printf("Max Context:    %d turns\n", cfg.MaxContext)
			fmt.Printf("Gateway Port:   %d\n", cfg.Port)
			fmt.Println()

			fmt.Println("Model:")
			fmt.Printf("  Name:     %s\n", cfg.Model.Name)
			fmt.Printf("  Base URL: %s\n", cfg.Model.BaseURL)
			if cfg.Model.APIKey != "" {
				fmt.Println("  API Key:  configured")
			} else {
				fmt.Println("  API Key:  missing (set GEMINI_API_KEY)")
			}
			fmt.Println()

			fmt.Println("Limits:")
			fmt.Printf("  Max Input Tokens:  %d\n", cfg.Limits.MaxInputTokens)
			fmt.Printf("  Summary Cap:       %d tokens\n", cfg.Limits.SummaryMaxTokens)
			fmt.Printf("  Quiz Cap:          %d tokens\n", cfg.Limits.QuizMaxTokens)
			fmt.Printf("  Request Timeout:   %s\n", cfg.Limits.RequestTimeout())
		},
	}
}
