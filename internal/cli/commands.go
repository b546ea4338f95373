package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thiagozs/go-aibot/internal/chat"
	"github.com/thiagozs/go-aibot/internal/credentials"
)

// Each command renders its own failures and returns nil, so the exit code
// is non-zero only when cobra rejects the arguments.

func newAskCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a single question to the AI",
		Long: `Ask a single question to the AI.

With no argument the question is read from piped stdin:
  echo "What is Go?" | ai-bot ask`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !isPiped(a.In) {
				return errors.New("requires a question argument or piped stdin")
			}
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			question := strings.TrimSpace(strings.Join(args, " "))
			if question == "" {
				var err error
				if question, err = readAll(a.In); err != nil {
					a.render.Error(err)
					return
				}
			}

			sess := a.newSession()
			a.render.Banner()
			a.render.Label("Question", question)

			answer, err := sess.Send(cmd.Context(), question)
			if err != nil {
				a.render.Error(err)
				return
			}
			a.render.Result("Answer", answer, true)
		},
	}
}

func newCodeCommand(a *App) *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "code <description>",
		Short: "Generate code from a description",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			description := strings.Join(args, " ")
			if lang == "" {
				lang = chat.DefaultLanguage
			}

			sess := a.newSession()
			a.render.Banner()
			a.render.Label(fmt.Sprintf("Generating %s code for", lang), description)

			code, err := sess.GenerateCode(cmd.Context(), description, lang)
			if err != nil {
				a.render.Error(err)
				return
			}
			a.render.Result("Generated Code", code, false)
		},
	}
	cmd.Flags().StringVarP(&lang, "lang", "l", chat.DefaultLanguage, "programming language")
	return cmd
}

func newAnalyzeCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <file_path>",
		Short: "Analyze a file and provide insights",
		Long: fmt.Sprintf(`Analyze a file and provide insights.

Only the first %d characters of the file are sent to the model.`, chat.MaxExcerptChars),
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			path := args[0]

			sess := a.newSession()
			a.render.Banner()
			a.render.Label("Analyzing file", path)

			analysis, err := sess.AnalyzeFile(cmd.Context(), path)
			if err != nil {
				a.render.Error(err)
				return
			}
			a.render.Result("Analysis", analysis, false)
		},
	}
}

func newSearchCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search the web for information (not implemented)",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			query := strings.Join(args, " ")

			sess := a.newSession()
			a.render.Banner()
			a.render.Label("Searching for", query)
			a.render.Result("Search Results", sess.SearchWeb(query), false)
		},
	}
}

func newClearCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear conversation history",
		Long: `Clear conversation history.

History lives only for the duration of one command, so outside of chat
mode there is never anything to clear. Inside chat, type 'clear'.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			a.newSession().Clear()
			a.render.Note("Conversation history cleared.")
		},
	}
}

func newHelpCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "help [command]",
		Short: "Show help information",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) > 0 {
				if sub, _, err := cmd.Root().Find(args); err == nil && sub != cmd.Root() {
					_ = sub.Help()
					return
				}
			}
			a.render.Help()
		},
	}
}

func newSetupCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Interactively configure your OpenAI API key",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			a.render.Banner()

			flow := &credentials.Flow{
				File:        credentials.KeyFile{Path: a.envFile},
				Checker:     a.NewKeyChecker(a.settings),
				Reader:      a.SecretReader,
				OpenBrowser: a.OpenBrowser,
				Out:         a.Out,
				Log:         a.Log,
			}
			if err := flow.Run(cmd.Context()); err != nil {
				a.Log.WithField("state", flow.State()).Debug("setup stopped")
				a.render.Error(err)
				a.render.Note("Setup failed.")
				return
			}
			a.render.Note("Setup complete. Try: ai-bot chat")
		},
	}
}
