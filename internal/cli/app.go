// Package cli wires the cobra command tree to the chat session and the
// credential setup flow.
package cli

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/thiagozs/go-aibot/internal/chat"
	"github.com/thiagozs/go-aibot/internal/config"
	"github.com/thiagozs/go-aibot/internal/credentials"
	"github.com/thiagozs/go-aibot/internal/provider"
)

// LineReader is the line editor used by the chat loop.
// *liner.State satisfies it.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	Close() error
}

// App carries the I/O streams and the collaborators the commands use.
// Tests replace the collaborators with fakes.
type App struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	NewCompleter  func(config.Settings) (chat.Completer, error)
	NewKeyChecker func(config.Settings) credentials.KeyChecker
	NewLineReader func() (LineReader, error)
	SecretReader  credentials.SecretReader
	OpenBrowser   func(url string) error

	Log      *logrus.Logger
	viper    *viper.Viper
	settings config.Settings
	envFile  string
	render   *renderer
}

// NewApp returns an App bound to the process's standard streams and the
// OpenAI provider.
func NewApp() *App {
	return &App{
		In:  os.Stdin,
		Out: os.Stdout,
		Err: os.Stderr,
		NewCompleter: func(s config.Settings) (chat.Completer, error) {
			return provider.New(provider.Options{APIKey: s.APIKey, BaseURL: s.BaseURL, Proxy: s.Proxy})
		},
		NewKeyChecker: func(s config.Settings) credentials.KeyChecker {
			return provider.KeyChecker{BaseURL: s.BaseURL, Proxy: s.Proxy}
		},
		NewLineReader: newLiner,
		SecretReader:  terminalSecretReader{in: os.Stdin, out: os.Stderr},
		OpenBrowser:   openBrowser,
	}
}

// newSession builds a fresh session from the resolved settings. A missing
// key is only a warning: the session fails lazily on first use.
func (a *App) newSession() *chat.Session {
	var c chat.Completer
	if a.settings.APIKey == "" {
		a.Log.Warnf("%s not found in environment or %s; run '%s setup'", config.EnvAPIKey, a.envFile, config.AppName)
	} else {
		var err error
		c, err = a.NewCompleter(a.settings)
		if err != nil {
			a.Log.WithError(err).Error("could not initialize OpenAI client")
			c = nil
		} else if isTerminal(a.Err) {
			c = &spinningCompleter{inner: c, w: a.Err, msg: "Thinking"}
		}
	}

	return chat.NewSession(c,
		chat.WithModel(a.settings.Model),
		chat.WithMaxTokens(a.settings.MaxTokens),
		chat.WithTemperature(a.settings.Temperature),
		chat.WithTimeout(a.settings.Timeout),
		chat.WithLogger(a.Log),
	)
}
