package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/gpgenc/internal/config"
)

// parse unmarshals all config (from env vars and flags) into a struct,
// resolves positional args, and validates the result. Arguments after "--"
// are split off for verbatim forwarding to gpg.
func parse(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := &config.Config{}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if at := cmd.ArgsLenAtDash(); at >= 0 {
		cfg.Files, cfg.GPGArgs = args[:at], args[at:]
	} else {
		cfg.Files = args
	}

	if len(cfg.Files) == 0 {
		cfg.Files = []string{"."}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
