package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"
)

// ===================== TTY helpers =====================

func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// isPiped reports whether r carries piped data. Readers that are not files
// count as piped.
func isPiped(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return r != nil
	}
	st, err := f.Stat()
	if err != nil {
		return false
	}
	return (st.Mode() & os.ModeCharDevice) == 0
}

func readAll(r io.Reader) (string, error) {
	if !isPiped(r) {
		return "", errors.New("stdin is not a pipe")
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// ===================== Input =====================

func newLiner() (LineReader, error) {
	l := liner.NewLiner()
	l.SetCtrlCAborts(true)
	return l, nil
}

// terminalSecretReader reads without echo on a terminal and falls back to a
// plain line read otherwise.
type terminalSecretReader struct {
	in  *os.File
	out io.Writer
}

func (r terminalSecretReader) ReadSecret(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	fd := int(r.in.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(r.out)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}
	line, err := bufio.NewReader(r.in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// openBrowser starts the platform URL handler without waiting for it.
func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux", "freebsd", "openbsd", "netbsd":
		cmd = exec.Command("xdg-open", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}
