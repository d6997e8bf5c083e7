package gpg

import "strconv"

// S2KCountMax is the largest iteration count gpg accepts for iterated+salted S2K.
const S2KCountMax = 65011712

// Settings describes the options placed ahead of any caller-supplied
// arguments. A Settings value is assembled once from the configuration and
// never mutated afterwards.
type Settings struct {
	// Decrypt switches the invocation from --symmetric to --decrypt.
	Decrypt bool

	// Armor requests ASCII-armored output.
	Armor bool

	// Cipher is the symmetric cipher algorithm (--cipher-algo).
	Cipher string

	// Digest is the message digest algorithm (--digest-algo).
	Digest string

	// S2KDigest is the passphrase-derivation digest (--s2k-digest-algo).
	// Note that the default differs from Digest: SHA512 here, SHA256 there.
	S2KDigest string

	// CertDigest is the certification digest algorithm (--cert-digest-algo).
	CertDigest string

	// S2KCount is the iteration count for iterated+salted S2K (--s2k-count).
	S2KCount int

	// PassphraseFile, when set, is forwarded to gpg together with --batch so
	// gpg reads the passphrase itself. The wrapper never opens this file.
	PassphraseFile string
}

// DefaultSettings returns the hardened option set for symmetric encryption:
// AES-256, SHA-256 digests, SHA-512 passphrase derivation, compression off,
// maximum S2K iteration count, no passphrase caching, forced MDC.
func DefaultSettings() Settings {
	return Settings{
		Cipher:     "AES256",
		Digest:     "SHA256",
		S2KDigest:  "SHA512",
		CertDigest: "SHA256",
		S2KCount:   S2KCountMax,
	}
}

// Args assembles the fixed argument prefix. The same Settings value always
// yields the same list; caller arguments are appended after it, untouched.
func (s Settings) Args() []string {
	args := []string{"--quiet"}

	if s.Decrypt {
		args = append(args, "--decrypt")
	} else {
		args = append(args,
			"--symmetric",
			"--cipher-algo", s.Cipher,
			"--digest-algo", s.Digest,
			"--s2k-digest-algo", s.S2KDigest,
			"--cert-digest-algo", s.CertDigest,
			"--compress-algo", "none",
			"--s2k-mode", "3",
			"--s2k-count", strconv.Itoa(s.S2KCount),
			"--force-mdc",
		)

		if s.Armor {
			args = append(args, "--armor")
		}
	}

	args = append(args, "--no-symkey-cache", "--pinentry-mode", "loopback")

	if s.PassphraseFile != "" {
		// gpg refuses --passphrase-file without --batch.
		args = append(args, "--batch", "--passphrase-file", s.PassphraseFile)
	}

	return args
}
