package cli

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/thiagozs/go-aibot/internal/chat"
)

func newChatCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start interactive chat mode",
		Long: `Start an interactive conversation with the AI.

Type 'exit', 'quit' or 'q' to leave (Ctrl+C and Ctrl+D also work),
'clear' to clear the history and 'help' for help.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			sess := a.newSession()
			a.render.Banner()

			lr, err := a.NewLineReader()
			if err != nil {
				a.render.Error(err)
				return
			}
			defer lr.Close()

			a.repl(cmd.Context(), lr, sess)
		},
	}
}

// repl runs the interactive loop until an exit word, Ctrl+C or EOF.
func (a *App) repl(ctx context.Context, lr LineReader, sess *chat.Session) {
	a.render.Note("\nInteractive Chat Mode")
	a.render.Note("Type 'exit' to quit, 'clear' to clear history, 'help' for help")

	for {
		line, err := lr.Prompt("\nYou: ")
		if err != nil {
			if !errors.Is(err, liner.ErrPromptAborted) && !errors.Is(err, io.EOF) {
				a.Log.WithError(err).Error("read error")
			}
			a.render.Note("\nGoodbye! 👋")
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		lr.AppendHistory(input)

		switch strings.ToLower(strings.TrimPrefix(input, "/")) {
		case "exit", "quit", "q":
			a.render.Note("Goodbye! 👋")
			return
		case "clear":
			sess.Clear()
			a.render.Note("Conversation history cleared.")
			continue
		case "help":
			a.render.Help()
			continue
		}

		reply, err := sess.Send(ctx, input)
		if err != nil {
			a.render.Error(err)
			continue
		}
		a.render.Result("AI Bot", reply, true)
	}
}
