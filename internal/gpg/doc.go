// Package gpg invokes the external gpg binary for symmetric file encryption.
// It assembles a fixed, hardened argument prefix, appends caller arguments
// verbatim, and runs gpg as a synchronous subprocess with inherited stdio.
// No cryptographic operation happens in-process; gpg owns the passphrase
// prompt, the container format, and the error reporting.
package gpg
