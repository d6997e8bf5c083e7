package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/gpgenc/internal/gpg"
)

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(version string) *cobra.Command {
	root := cobraext.NewDefaultRootCommand(version)

	root.Use = "gpgenc [flags] command [flags]"
	root.Short = "Symmetric file encryption front end for gpg"
	root.Long = `A front end over the gpg binary for symmetric (passphrase-based) file
encryption. Every invocation carries a fixed, hardened option set; everything
after "--" is forwarded to gpg verbatim, and gpg's exit code becomes the
process exit code.`

	// gpg prints its own diagnostics on the inherited stderr; a second error
	// line from cobra would only duplicate them.
	root.SilenceErrors = true
	root.SilenceUsage = true

	root.PersistentFlags().String("gpg", "gpg", "Name or path of the gpg binary")
	root.PersistentFlags().IntP("parallel", "j", 1, "Number of parallel workers, honored only with --passphrase-file")
	root.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-error output")
	root.PersistentFlags().Bool("delete", false, "Delete the original file after successful processing")
	root.PersistentFlags().BoolP("dry-run", "n", false, "Preview what would be processed without invoking gpg")
	root.PersistentFlags().Bool("stats", false, "Print a processing summary")
	root.PersistentFlags().BoolP("show", "s", false, "Show the configuration and the assembled gpg arguments, then exit")
	root.PersistentFlags().BoolP("force", "f", false, "Overwrite existing output files")
	root.PersistentFlags().Bool("preserve-timestamps", false, "Copy the input's timestamps onto the output")

	root.PersistentFlags().StringP("output", "o", "", "Explicit output path (single input file only)")
	root.PersistentFlags().String("encrypt-ext", "", `Suffix appended to encrypted files (default ".gpg", ".asc" with --armor)`)
	root.PersistentFlags().String("decrypt-ext", "", "Suffix appended to decrypted files, after stripping the encrypt suffix")

	root.PersistentFlags().BoolP("armor", "a", false, "Produce ASCII-armored output")
	root.PersistentFlags().String("passphrase-file", "", "File gpg reads the passphrase from (opened by gpg, not by gpgenc)")

	root.PersistentFlags().String("cipher-algo", "AES256", "Symmetric cipher algorithm")
	root.PersistentFlags().String("digest-algo", "SHA256", "Message digest algorithm")
	root.PersistentFlags().String("s2k-digest-algo", "SHA512", "Passphrase-derivation digest algorithm")
	root.PersistentFlags().String("cert-digest-algo", "SHA256", "Certification digest algorithm")
	root.PersistentFlags().Int("s2k-count", gpg.S2KCountMax, "S2K iteration count")

	root.PersistentFlags().StringSlice("include", nil, "Include patterns for directory arguments")
	root.PersistentFlags().StringSlice("exclude", nil, "Exclude patterns for directory arguments")
	root.PersistentFlags().String("include-from", "", "JSONC file with include patterns")
	root.PersistentFlags().String("exclude-from", "", "JSONC file with exclude patterns")

	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		viper.SetEnvPrefix("GPGENC")
		viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
		viper.AutomaticEnv()

		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}

		return viper.BindPFlags(cmd.InheritedFlags())
	}

	root.AddCommand(NewEncryptCommand(), NewDecryptCommand(), NewCheckCommand())

	return root
}
