package logic

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/idelchi/gpgenc/internal/config"
	"github.com/idelchi/gpgenc/internal/gpg"
)

// fakeGPG writes a shell script that records its arguments and honors
// --output by creating the file, standing in for the real gpg binary.
func fakeGPG(t *testing.T) (bin, argsFile string) {
	t.Helper()

	bin = filepath.Join(t.TempDir(), "gpg")
	argsFile = bin + ".args"

	script := `#!/bin/sh
printf '%s\n' "$@" > "` + argsFile + `"
out=""
prev=""
for a in "$@"; do
  if [ "$prev" = "--output" ]; then out="$a"; fi
  prev="$a"
done
if [ -n "$out" ]; then printf 'ciphertext' > "$out"; fi
exit 0
`

	if err := os.WriteFile(bin, []byte(script), 0o755); err != nil { //nolint:gosec // test helper must be executable
		t.Fatalf("writing fake gpg: %v", err)
	}

	return bin, argsFile
}

func recordedArgs(t *testing.T, argsFile string) []string {
	t.Helper()

	data, err := os.ReadFile(argsFile) //nolint:gosec // test helper reads its own temp file
	if err != nil {
		t.Fatalf("reading recorded args: %v", err)
	}

	trimmed := strings.TrimSuffix(string(data), "\n")
	if trimmed == "" {
		return nil
	}

	return strings.Split(trimmed, "\n")
}

func workdir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}

	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatalf("restoring working directory: %v", err)
		}
	})

	return dir
}

func baseConfig(bin string, files ...string) config.Config {
	return config.Config{
		GPG:        bin,
		Parallel:   1,
		Quiet:      true,
		Cipher:     "AES256",
		Digest:     "SHA256",
		S2KDigest:  "SHA512",
		CertDigest: "SHA256",
		S2KCount:   gpg.S2KCountMax,
		Files:      files,
	}
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}

	slices.Sort(names)

	return names
}

func TestRunEncryptsSingleFile(t *testing.T) {
	dir := workdir(t)
	bin, _ := fakeGPG(t)

	if err := os.WriteFile("notes.txt", []byte("plaintext"), 0o600); err != nil {
		t.Fatalf("writing input: %v", err)
	}

	cfg := baseConfig(bin, "notes.txt")
	if err := Run(&cfg); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Exactly one new file, input untouched.
	if got := listDir(t, dir); !slices.Equal(got, []string{"notes.txt", "notes.txt.gpg"}) {
		t.Fatalf("directory after run: %v", got)
	}
}

func TestRunRefusesExistingOutput(t *testing.T) {
	workdir(t)
	bin, _ := fakeGPG(t)

	for _, name := range []string{"notes.txt", "notes.txt.gpg"} {
		if err := os.WriteFile(name, []byte("x"), 0o600); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}

	cfg := baseConfig(bin, "notes.txt")
	if err := Run(&cfg); err == nil {
		t.Fatal("Run() should refuse to overwrite without --force")
	}

	cfg = baseConfig(bin, "notes.txt")
	cfg.Force = true

	if err := Run(&cfg); err != nil {
		t.Fatalf("Run() with force error = %v", err)
	}
}

func TestRunDeleteRemovesInput(t *testing.T) {
	dir := workdir(t)
	bin, _ := fakeGPG(t)

	if err := os.WriteFile("notes.txt", []byte("plaintext"), 0o600); err != nil {
		t.Fatalf("writing input: %v", err)
	}

	cfg := baseConfig(bin, "notes.txt")
	cfg.Delete = true

	if err := Run(&cfg); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := listDir(t, dir); !slices.Equal(got, []string{"notes.txt.gpg"}) {
		t.Fatalf("directory after run: %v", got)
	}
}

func TestRunDryRunTouchesNothing(t *testing.T) {
	dir := workdir(t)
	bin, _ := fakeGPG(t)

	if err := os.WriteFile("notes.txt", []byte("plaintext"), 0o600); err != nil {
		t.Fatalf("writing input: %v", err)
	}

	cfg := baseConfig(bin, "notes.txt")
	cfg.Dry = true

	if err := Run(&cfg); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := listDir(t, dir); !slices.Equal(got, []string{"notes.txt"}) {
		t.Fatalf("dry run created files: %v", got)
	}
}

func TestRunExplicitOutput(t *testing.T) {
	workdir(t)
	bin, _ := fakeGPG(t)

	if err := os.WriteFile("notes.txt", []byte("plaintext"), 0o600); err != nil {
		t.Fatalf("writing input: %v", err)
	}

	cfg := baseConfig(bin, "notes.txt")
	cfg.Output = "sealed.bin"

	if err := Run(&cfg); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if _, err := os.Stat("sealed.bin"); err != nil {
		t.Fatalf("explicit output missing: %v", err)
	}
}

func TestRunPassThroughArgumentOrder(t *testing.T) {
	workdir(t)
	bin, argsFile := fakeGPG(t)

	if err := os.WriteFile("notes.txt", []byte("plaintext"), 0o600); err != nil {
		t.Fatalf("writing input: %v", err)
	}

	cfg := baseConfig(bin, "notes.txt")
	cfg.GPGArgs = []string{"--yes", "--comment", "sealed by gpgenc"}

	if err := Run(&cfg); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Fixed prefix, then pass-through args in order, then the derived output
	// option and the input file.
	want := settingsFromConfig(&cfg).Args()
	want = append(want, "--yes", "--comment", "sealed by gpgenc")
	want = append(want, "--output", "notes.txt.gpg", "notes.txt")

	if got := recordedArgs(t, argsFile); !slices.Equal(got, want) {
		t.Fatalf("subprocess received:\n%q\nwant:\n%q", got, want)
	}
}

func TestRunMissingBinary(t *testing.T) {
	workdir(t)

	if err := os.WriteFile("notes.txt", []byte("plaintext"), 0o600); err != nil {
		t.Fatalf("writing input: %v", err)
	}

	cfg := baseConfig("gpg-binary-that-does-not-exist", "notes.txt")
	if err := Run(&cfg); err == nil {
		t.Fatal("Run() should fail when the gpg binary is missing")
	}
}
