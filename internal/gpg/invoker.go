package gpg

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/term"
)

// ErrBinaryNotFound is returned when the gpg binary cannot be resolved on PATH.
var ErrBinaryNotFound = errors.New("gpg binary not found")

// Invoker runs the external gpg binary. It holds the resolved binary path and
// the fixed settings; each invocation is a single blocking subprocess with
// inherited stdio, so pinentry prompts and diagnostics reach the terminal
// unmodified.
type Invoker struct {
	binary   string
	settings Settings
}

// NewInvoker resolves binary on PATH and returns an Invoker with the given
// settings.
func NewInvoker(binary string, settings Settings) (*Invoker, error) {
	path, err := exec.LookPath(binary)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrBinaryNotFound, binary, err)
	}

	return &Invoker{binary: path, settings: settings}, nil
}

// Binary returns the resolved path of the gpg binary.
func (i *Invoker) Binary() string {
	return i.binary
}

// Command returns the full argument list for one invocation: the fixed prefix
// followed by extra in the order given, with no validation or transformation.
func (i *Invoker) Command(extra ...string) []string {
	return append(i.settings.Args(), extra...)
}

// Run invokes gpg with the fixed prefix plus extra arguments and blocks until
// the subprocess exits. The returned error carries the subprocess exit status
// unwrapped so callers can forward it via ExitCode. Failures are not retried
// or interpreted.
func (i *Invoker) Run(extra ...string) error {
	cmd := exec.Command(i.binary, i.Command(extra...)...) //nolint:gosec // arguments are forwarded verbatim by contract

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

// PinentryAdvisory reports a warning when gpg will have to prompt for a
// passphrase over loopback pinentry but GPG_TTY is not exported. Returns ""
// when no warning applies. Advisory only: the wrapper never captures the
// passphrase itself, since that would change the security model.
func (i *Invoker) PinentryAdvisory() string {
	if i.settings.PassphraseFile != "" {
		return ""
	}

	if os.Getenv("GPG_TTY") != "" {
		return ""
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return ""
	}

	return `GPG_TTY is not set; pinentry may fail to locate the terminal (try: export GPG_TTY=$(tty))`
}

// ExitCode extracts the subprocess exit status carried by err. It returns -1
// when err does not stem from a subprocess exit, so wrapper-side failures can
// be told apart from gpg's own.
func ExitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}

	return -1
}
