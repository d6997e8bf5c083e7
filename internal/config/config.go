// Package config holds the runtime configuration for gpgenc.
package config

import (
	"errors"
	"fmt"
)

// Config is populated from flags and GPGENC_* environment variables via viper.
type Config struct {
	// Common flags
	GPG                string `mapstructure:"gpg"                 validate:"required"`
	Parallel           int    `mapstructure:"parallel"            validate:"min=1"`
	Quiet              bool   `mapstructure:"quiet"`
	Delete             bool   `mapstructure:"delete"`
	Dry                bool   `mapstructure:"dry-run"`
	Stats              bool   `mapstructure:"stats"`
	Show               bool   `mapstructure:"show"`
	Force              bool   `mapstructure:"force"`
	PreserveTimestamps bool   `mapstructure:"preserve-timestamps"`

	// Output naming. An explicit output path and a custom encrypt suffix are
	// mutually exclusive ways of naming the result.
	Output     string `mapstructure:"output"      validate:"exclusive=EncryptExt" label:"output"`
	EncryptExt string `mapstructure:"encrypt-ext"                                 label:"encrypt-ext"`
	DecryptExt string `mapstructure:"decrypt-ext"`

	// Algorithm selection, forwarded to gpg as-is. Names are not validated
	// here: gpg is the authority on what it accepts.
	Cipher     string `mapstructure:"cipher-algo"      validate:"required"`
	Digest     string `mapstructure:"digest-algo"      validate:"required"`
	S2KDigest  string `mapstructure:"s2k-digest-algo"  validate:"required"`
	CertDigest string `mapstructure:"cert-digest-algo" validate:"required"`
	S2KCount   int    `mapstructure:"s2k-count"        validate:"min=1024,max=65011712"`

	Armor          bool   `mapstructure:"armor"`
	PassphraseFile string `mapstructure:"passphrase-file"`

	// File selection
	Include     []string `mapstructure:"include"`
	Exclude     []string `mapstructure:"exclude"`
	IncludeFrom string   `mapstructure:"include-from"`
	ExcludeFrom string   `mapstructure:"exclude-from"`

	// Command-specific state
	Decrypt bool

	// Positional arguments
	Files []string `validate:"min=1"`

	// Arguments after "--", forwarded to gpg verbatim.
	GPGArgs []string
}

// Validate validates the configuration against the struct tags plus the
// cross-field rules that tags cannot express.
func (c Config) Validate() error {
	validate, err := newValidator()
	if err != nil {
		return err
	}

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	if c.Output != "" && len(c.Files) > 1 {
		return errors.New("--output requires exactly one input file")
	}

	return nil
}
