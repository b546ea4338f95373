package credentials

import (
	"errors"
	"fmt"
	"strings"

	"github.com/thiagozs/go-aibot/internal/config"
)

// KeyPrefix is the documented prefix of OpenAI secret keys.
const KeyPrefix = "sk-"

var (
	ErrInvalidFormat = errors.New("invalid API key format")
	ErrAuth          = errors.New("API key rejected")
	ErrIO            = errors.New("key file error")
)

// ValidateFormat rejects empty keys, the placeholder and keys without the
// sk- prefix.
func ValidateFormat(key string) error {
	switch {
	case key == "":
		return fmt.Errorf("%w: no key entered", ErrInvalidFormat)
	case key == config.PlaceholderKey:
		return fmt.Errorf("%w: placeholder value", ErrInvalidFormat)
	case !strings.HasPrefix(key, KeyPrefix):
		return fmt.Errorf("%w: key should start with %q", ErrInvalidFormat, KeyPrefix)
	}
	return nil
}
