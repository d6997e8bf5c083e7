// Package commands provides the command-line interface for the gpgenc tool.
//
// It implements commands for:
//   - encryption
//   - decryption
//   - pattern checking
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands
