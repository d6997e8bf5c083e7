package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/gpgenc/internal/logic"
)

// NewDecryptCommand creates a new cobra command for the decrypt subcommand.
func NewDecryptCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "decrypt [flags] [files...] [-- gpg-args...]",
		Aliases: []string{"dec"},
		Short:   "Decrypt files",
		Long: `Decrypt gpg containers. Without explicit includes, directories default to
files carrying the encrypt suffix. The encrypt suffix is stripped from each
output name and the decrypt suffix, if any, appended.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := parse(cmd, args)
			if err != nil {
				return err
			}

			cfg.Decrypt = true

			return logic.Run(cfg)
		},
	}
}
