package credentials

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/thiagozs/go-aibot/internal/config"
)

// KeysURL is the provider's key management page.
const KeysURL = "https://platform.openai.com/api-keys"

type State string

const (
	StateCheckEnv       State = "check_env"
	StatePromptForKey   State = "prompt_for_key"
	StateValidateFormat State = "validate_format"
	StateValidateLive   State = "validate_live"
	StatePersist        State = "persist"
	StateDone           State = "done"
)

// KeyChecker performs one authenticated call with a candidate key.
type KeyChecker interface {
	CheckKey(ctx context.Context, key string) error
}

// SecretReader reads a line without echoing it.
type SecretReader interface {
	ReadSecret(prompt string) (string, error)
}

// Flow walks the setup states once. There are no retries: the first
// failure ends the run and is returned.
type Flow struct {
	File        KeyFile
	Checker     KeyChecker
	Reader      SecretReader
	OpenBrowser func(url string) error
	Out         io.Writer
	Log         logrus.FieldLogger

	state State
}

// State is where the last Run stopped.
func (f *Flow) State() State { return f.state }

func (f *Flow) Run(ctx context.Context) error {
	if f.Log == nil {
		f.Log = logrus.StandardLogger()
	}
	if f.Out == nil {
		f.Out = io.Discard
	}

	f.enter(StateCheckEnv)
	created, err := f.File.Ensure()
	if err != nil {
		return fmt.Errorf("%w: creating %s: %w", ErrIO, f.File.Path, err)
	}
	if created {
		fmt.Fprintf(f.Out, "Created %s with a placeholder key.\n", f.File.Path)
	}

	f.enter(StatePromptForKey)
	fmt.Fprintf(f.Out, "Get an API key at %s\n", KeysURL)
	if f.OpenBrowser != nil {
		if err := f.OpenBrowser(KeysURL); err != nil {
			f.Log.WithError(err).Warn("could not open browser")
		}
	}
	key, err := f.Reader.ReadSecret("Enter your OpenAI API key: ")
	if err != nil {
		return fmt.Errorf("reading key: %w", err)
	}
	key = strings.TrimSpace(key)

	f.enter(StateValidateFormat)
	if err := ValidateFormat(key); err != nil {
		return err
	}

	f.enter(StateValidateLive)
	fmt.Fprintln(f.Out, "Validating key...")
	if err := f.Checker.CheckKey(ctx, key); err != nil {
		return fmt.Errorf("%w: %w", ErrAuth, err)
	}

	f.enter(StatePersist)
	if err := f.File.Write(key); err != nil {
		fmt.Fprintf(f.Out, "Could not save the key. Add this line to %s yourself:\n%s=%s\n",
			f.File.Path, config.EnvAPIKey, key)
		return fmt.Errorf("%w: writing %s: %w", ErrIO, f.File.Path, err)
	}
	if err := os.Setenv(config.EnvAPIKey, key); err != nil {
		f.Log.WithError(err).Warn("could not export key to environment")
	}
	fmt.Fprintf(f.Out, "API key saved to %s\n", f.File.Path)

	f.enter(StateDone)
	return nil
}

func (f *Flow) enter(s State) {
	f.state = s
	f.Log.WithField("state", s).Debug("setup")
}
