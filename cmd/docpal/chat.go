package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/docpal/docpal/internal/logging"
)

// ChatCmd creates the chat command
func ChatCmd() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Talk to the PDF assistant",
		Long: `Send a message to the assistant and print its reply.

The assistant routes your message to its operations as needed: PDF text
extraction, summarization, quiz generation, and profile memory.

Examples:
  docpal chat "Please extract all text from the PDF file located at: /tmp/doc.pdf"
  docpal chat "Summarize the following document: ..."
  docpal chat --interactive`,
		Run: func(cmd *cobra.Command, args []string) {
			runChat(args, interactive)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "start an interactive chat session")
	return cmd
}

func runChat(args []string, interactive bool) {
	if !verbose {
		logging.Disable()
	}

	cfg := loadConfig()
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
		<-sigCh
		cancel()
	}()

	if !interactive {
		message := strings.TrimSpace(strings.Join(args, " "))
		if message == "" {
			fmt.Fprintln(os.Stderr, "Usage: docpal chat \"message\" (or --interactive)")
			os.Exit(1)
		}
		reply, err := agent.Process(ctx, sessionKey, message)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(reply.Reply)
		return
	}

	fmt.Println("docpal interactive chat (type 'exit' to quit)")
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}
		if message == "exit" || message == "quit" {
			break
		}

		reply, err := agent.Process(ctx, sessionKey, message)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		fmt.Println(reply.Reply)
	}
}
