package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/gpgenc/internal/logic"
)

// NewEncryptCommand creates a new cobra command for the encrypt subcommand.
func NewEncryptCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "encrypt [flags] files... [-- gpg-args...]",
		Aliases: []string{"enc"},
		Short:   "Encrypt files with gpg symmetric mode",
		Long: `Encrypt files by invoking gpg with a hardened symmetric option set:
AES-256, SHA-256 digests, SHA-512 passphrase derivation, compression off,
maximum S2K iteration count, no passphrase caching, forced MDC.

The passphrase is prompted by gpg itself over loopback pinentry; gpgenc never
reads or stores it. Arguments after "--" are forwarded to gpg verbatim.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := parse(cmd, args)
			if err != nil {
				return err
			}

			return logic.Run(cfg)
		},
	}

	return cmd
}
