// gpgenc wraps the gpg binary for symmetric file encryption with a fixed,
// hardened option set.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/gpgenc/internal/commands"
	"github.com/idelchi/gpgenc/internal/gpg"
)

// version is set at build time.
var version = "dev" //nolint:gochecknoglobals

func main() {
	if err := commands.NewRootCommand(version).Execute(); err != nil {
		// gpg failures already printed their diagnostics on the inherited
		// stderr; forward the exit code and say nothing more.
		if code := gpg.ExitCode(err); code > 0 {
			os.Exit(code)
		}

		fmt.Fprintf(os.Stderr, "gpgenc: %v\n", err)
		os.Exit(1)
	}
}
