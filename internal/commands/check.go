package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/gpgenc/internal/logic"
)

// NewCheckCommand creates a new cobra command for the check subcommand.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [flags] [paths/patterns...]",
		Short: "Validate that include/exclude patterns match files",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := parse(cmd, args)
			if err != nil {
				return err
			}

			return logic.RunCheck(cfg)
		},
	}
}
