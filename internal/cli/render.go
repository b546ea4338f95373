package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/thiagozs/go-aibot/internal/chat"
	"github.com/thiagozs/go-aibot/internal/config"
)

const banner = `🤖 AI Bot Agent v` + version + `
Your intelligent command line assistant`

const helpText = `Available Commands:

  chat     - Start interactive chat mode
  ask      - Ask a single question
  code     - Generate code from description
  analyze  - Analyze a file
  search   - Search the web
  setup    - Configure your OpenAI API key
  clear    - Clear conversation history
  help     - Show this help message
  exit     - Exit the bot (inside chat: exit, quit or q)

Examples:
  ai-bot chat
  ai-bot ask "What is Python?"
  ai-bot code "Create a simple web scraper" --lang go
  ai-bot analyze main.py`

// renderer prints banners, labels and responses. Markdown rendering is
// used for "markdown", or by default when out is a terminal.
type renderer struct {
	out      io.Writer
	markdown *glamour.TermRenderer

	bannerStyle lipgloss.Style
	helpStyle   lipgloss.Style
	labelStyle  lipgloss.Style
	replyStyle  lipgloss.Style
	errorStyle  lipgloss.Style
	noteStyle   lipgloss.Style
}

func newRenderer(out io.Writer, format string) *renderer {
	lr := lipgloss.NewRenderer(out)
	r := &renderer{
		out:         out,
		bannerStyle: lr.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("12")).Padding(0, 2),
		helpStyle:   lr.NewStyle().Foreground(lipgloss.Color("10")).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("10")).Padding(0, 2),
		labelStyle:  lr.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		replyStyle:  lr.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		errorStyle:  lr.NewStyle().Foreground(lipgloss.Color("9")),
		noteStyle:   lr.NewStyle().Foreground(lipgloss.Color("11")),
	}

	if format == "markdown" || (format == "" && isTerminal(out)) {
		md, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
		if err == nil {
			r.markdown = md
		}
	}
	return r
}

func (r *renderer) Banner() {
	fmt.Fprintln(r.out, r.bannerStyle.Render(banner))
}

func (r *renderer) Help() {
	fmt.Fprintln(r.out, r.helpStyle.Render(helpText))
}

// Label prints "label: value" on one line.
func (r *renderer) Label(label, value string) {
	fmt.Fprintf(r.out, "\n%s %s\n", r.labelStyle.Render(label+":"), value)
}

// Result prints the labeled model response.
func (r *renderer) Result(label, body string, inline bool) {
	sep := "\n"
	if inline {
		sep = " "
	}
	fmt.Fprintf(r.out, "\n%s%s%s\n", r.replyStyle.Render(label+":"), sep, r.markdownOrPlain(body))
}

func (r *renderer) Note(msg string) {
	fmt.Fprintln(r.out, r.noteStyle.Render(msg))
}

// Error renders err inline; commands keep running after it.
func (r *renderer) Error(err error) {
	msg := "Error: " + err.Error()
	if errors.Is(err, chat.ErrClientNotConfigured) {
		msg += fmt.Sprintf(" (run '%s setup')", config.AppName)
	}
	fmt.Fprintln(r.out, r.errorStyle.Render(msg))
}

func (r *renderer) markdownOrPlain(body string) string {
	if r.markdown == nil {
		return body
	}
	out, err := r.markdown.Render(body)
	if err != nil {
		return body
	}
	return strings.TrimRight(out, "\n")
}
