// ai-bot: command line AI assistant backed by the OpenAI chat API.
//
// Usage:
//
//	ai-bot setup
//	ai-bot chat
//	ai-bot ask "What is Go?"
//	ai-bot code "a simple web scraper" --lang go
package main

import (
	"os"

	"github.com/thiagozs/go-aibot/internal/cli"
)

func main() {
	if err := cli.NewRootCommand(cli.NewApp()).Execute(); err != nil {
		os.Exit(1)
	}
}
