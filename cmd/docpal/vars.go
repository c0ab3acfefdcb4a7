package cli

import (
	"github.com/spf13/cobra"
)

// Shared CLI flags (used across multiple command files)
var (
	cfgFile    string
	sessionKey string
	verbose    bool
)

// SetupRootCmd configures the root command with all subcommands and flags
func SetupRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "docpal",
		Short: "docpal - PDF assistant",
		Long: `docpal is a conversational assistant for PDF documents: it extracts text,
writes summaries, and generates quizzes, remembering what you tell it about
yourself along the way.

Run 'docpal chat' to talk to it, or 'docpal serve' to start the HTTP gateway.`,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.docpal/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&sessionKey, "session", "s", "default", "session key for conversation history")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(ChatCmd())
	rootCmd.AddCommand(ServeCmd())
	rootCmd.AddCommand(ConfigCmd())

	return rootCmd
}
