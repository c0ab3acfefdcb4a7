package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/docpal/docpal/internal/server"
)

// ServeCmd creates the serve command
func ServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP gateway",
		Long: `Start the HTTP gateway for UI clients.

Endpoints:
  POST /api/chat     {"message": "..."}   one assistant turn
  POST /api/upload   multipart "file"     stage a PDF and extract its text
  POST /api/summary  {"text": "..."}      summarize a document
  POST /api/quiz     {"text": "..."}      generate a quiz
  GET  /healthz`,
		Run: func(cmd *cobra.Command, args []string) {
			runServe(port)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (default from config)")
	return cmd
}

func runServe(port int) {
	cfg := loadConfig()
	if port != 0 {
		cfg.Port = port
	}

	agent, store, err := buildAgent(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Printf("\nReceived signal: %v - shutting down...\n", sig)
		cancel()
	}()

	if err := server.New(agent, cfg.Port).Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
