package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/thiagozs/go-aibot/internal/chat"
)

var spinChars = []rune{'|', '/', '-', '\\'}

// spinningCompleter draws a spinner on w while the wrapped call blocks.
type spinningCompleter struct {
	inner chat.Completer
	w     io.Writer
	msg   string
}

func (s *spinningCompleter) Complete(ctx context.Context, req chat.Request) (string, error) {
	type result struct {
		reply string
		err   error
	}
	done := make(chan result, 1)
	go func() {
		reply, err := s.inner.Complete(ctx, req)
		done <- result{reply, err}
	}()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	i := 0
	fmt.Fprintf(s.w, "%s... ", s.msg)
	for {
		select {
		case r := <-done:
			fmt.Fprint(s.w, "\r\033[K")
			return r.reply, r.err
		case <-ticker.C:
			fmt.Fprintf(s.w, "\r%s... %c", s.msg, spinChars[i%len(spinChars)])
			i++
		}
	}
}
