// Package logic implements the orchestration around gpg invocations:
// file resolution, dry runs, the parallel pipeline, and stats reporting.
package logic

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/gpgenc/internal/config"
	"github.com/idelchi/gpgenc/internal/fileutil"
	"github.com/idelchi/gpgenc/internal/filter"
	"github.com/idelchi/gpgenc/internal/gpg"
)

// Run is the main logic of the application.
//
//nolint:cyclop,gocognit // parallel processing pipeline with printer goroutine
func Run(cfg *config.Config) error {
	invoker, err := gpg.NewInvoker(cfg.GPG, settingsFromConfig(cfg))
	if err != nil {
		return err
	}

	if cfg.Show {
		printShow(cfg, invoker)

		return nil
	}

	scanned, excluded, start, done, err := preamble(cfg)
	if done || err != nil {
		return err
	}

	if msg := invoker.PinentryAdvisory(); msg != "" && !cfg.Quiet {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", msg)
	}

	type result struct {
		input      string
		output     string
		outputSize int64
		err        error
	}

	results := make(chan result, len(cfg.Files))

	group := errgroup.Group{}
	group.SetLimit(effectiveParallel(cfg))

	printed := make(chan struct{})

	var processed, errored int

	var totalSize int64

	go func() {
		defer close(printed)

		for res := range results {
			if res.err != nil {
				errored++

				fmt.Fprintf(os.Stderr, "Error processing %q: %v\n", res.input, res.err)
			} else {
				processed++

				totalSize += res.outputSize

				if !cfg.Quiet {
					fmt.Printf("Processed %q -> %q\n", res.input, res.output) //nolint:forbidigo
				}
			}

			if cfg.Delete && res.err == nil {
				if err := os.Remove(res.input); err != nil {
					fmt.Fprintf(os.Stderr, "Error deleting %q: %v\n", res.input, err)
				} else if !cfg.Quiet {
					fmt.Printf("Deleted %q\n", res.input) //nolint:forbidigo
				}
			}
		}
	}()

	for _, file := range cfg.Files {
		group.Go(func() error {
			outPath := outputPath(file, cfg)

			size, err := processFile(invoker, file, outPath, cfg)
			if err != nil {
				results <- result{input: file, err: err}

				return err
			}

			results <- result{input: file, output: outPath, outputSize: size}

			return nil
		})
	}

	err = group.Wait()

	close(results)

	<-printed

	if cfg.Stats {
		printStats(scanned, excluded, processed, errored, totalSize, time.Since(start))
	}

	if err != nil {
		return fmt.Errorf("processing files: %w", err)
	}

	return nil
}

// processFile runs one gpg invocation for file. The fixed prefix comes from
// the invoker; pass-through args keep their order, then the output option and
// the input file.
func processFile(invoker *gpg.Invoker, file, outPath string, cfg *config.Config) (int64, error) {
	if err := fileutil.CheckOverwrite(outPath, cfg.Force); err != nil {
		return 0, err
	}

	info, err := os.Stat(file)
	if err != nil {
		return 0, fmt.Errorf("stat %q: %w", file, err)
	}

	args := append([]string{}, cfg.GPGArgs...)
	args = append(args, "--output", outPath, file)

	if err := invoker.Run(args...); err != nil {
		return 0, err
	}

	size, err := fileutil.FinalizeOutput(outPath, cfg.PreserveTimestamps, info.ModTime())
	if err != nil {
		return 0, fmt.Errorf("finalizing output: %w", err)
	}

	return size, nil
}

// effectiveParallel caps the worker count at 1 for interactive passphrase
// entry: concurrent loopback pinentry prompts interleave on the tty.
func effectiveParallel(cfg *config.Config) int {
	if cfg.PassphraseFile == "" {
		return 1
	}

	return cfg.Parallel
}

// preamble resolves files and handles dry run. Returns done=true if dry run was executed.
func preamble(cfg *config.Config) (int, int, time.Time, bool, error) {
	start := time.Now()

	scanned, err := resolveFiles(cfg)
	if err != nil {
		return 0, 0, start, false, fmt.Errorf("resolving files: %w", err)
	}

	excluded := scanned - len(cfg.Files)

	if cfg.Dry {
		return scanned, excluded, start, true, dryRun(cfg, scanned, excluded, start)
	}

	return scanned, excluded, start, false, nil
}

// resolveFiles normalizes positional args, expands directories, and applies
// include/exclude filtering. Returns the total number of files scanned.
func resolveFiles(cfg *config.Config) (int, error) {
	includes := append([]string{}, cfg.Include...)
	excludes := append([]string{}, cfg.Exclude...)

	if cfg.IncludeFrom != "" {
		patterns, err := filter.LoadPatterns(cfg.IncludeFrom)
		if err != nil {
			return 0, fmt.Errorf("loading include patterns: %w", err)
		}

		includes = append(includes, patterns...)
	}

	if cfg.ExcludeFrom != "" {
		patterns, err := filter.LoadPatterns(cfg.ExcludeFrom)
		if err != nil {
			return 0, fmt.Errorf("loading exclude patterns: %w", err)
		}

		excludes = append(excludes, patterns...)
	}

	hasIncludes := len(cfg.Include) > 0 || cfg.IncludeFrom != ""

	if cfg.Decrypt && !hasIncludes {
		includes = append(includes, "*"+encryptExt(cfg))
		hasIncludes = true
	}

	files, scanned, err := filter.Resolve(cfg.Files, includes, excludes, hasIncludes)
	if err != nil {
		return scanned, fmt.Errorf("filtering files: %w", err)
	}

	cfg.Files = files

	return scanned, nil
}

// dryRun previews what would be processed without invoking gpg.
//
//nolint:unparam // signature kept for consistency with Run callers
func dryRun(cfg *config.Config, scanned, excluded int, start time.Time) error {
	var totalSize int64

	processed := len(cfg.Files)

	for _, file := range cfg.Files {
		if !cfg.Quiet {
			fmt.Printf("Processed %q -> %q\n", file, outputPath(file, cfg)) //nolint:forbidigo
		}

		if cfg.Stats {
			if info, err := os.Stat(file); err == nil {
				totalSize += info.Size()
			}
		}
	}

	if cfg.Stats {
		printStats(scanned, excluded, processed, 0, totalSize, time.Since(start))
	}

	return nil
}

// encryptExt returns the suffix appended to encrypted files. The default
// follows gpg's own naming: .gpg for binary output, .asc under --armor.
func encryptExt(cfg *config.Config) string {
	if cfg.EncryptExt != "" {
		return cfg.EncryptExt
	}

	if cfg.Armor {
		return ".asc"
	}

	return ".gpg"
}

// outputPath derives where gpg writes the result for one input file.
func outputPath(filename string, cfg *config.Config) string {
	if cfg.Output != "" {
		return cfg.Output
	}

	ext := encryptExt(cfg)

	if cfg.Decrypt {
		filename = strings.TrimSuffix(filename, encryptExt(cfg))
		ext = cfg.DecryptExt
	}

	return filepath.Join(filepath.Dir(filename), filepath.Base(filename)+ext)
}

// settingsFromConfig maps the configuration onto the fixed gpg option set.
func settingsFromConfig(cfg *config.Config) gpg.Settings {
	return gpg.Settings{
		Decrypt:        cfg.Decrypt,
		Armor:          cfg.Armor,
		Cipher:         cfg.Cipher,
		Digest:         cfg.Digest,
		S2KDigest:      cfg.S2KDigest,
		CertDigest:     cfg.CertDigest,
		S2KCount:       cfg.S2KCount,
		PassphraseFile: cfg.PassphraseFile,
	}
}

// printShow prints the effective configuration and the assembled gpg
// invocation prefix, then does nothing else.
func printShow(cfg *config.Config, invoker *gpg.Invoker) {
	fmt.Printf("binary:       %s\n", invoker.Binary())                     //nolint:forbidigo
	fmt.Printf("encrypt-ext:  %s\n", encryptExt(cfg))                      //nolint:forbidigo
	fmt.Printf("parallel:     %d\n", effectiveParallel(cfg))               //nolint:forbidigo
	fmt.Printf("arguments:    %s\n", strings.Join(invoker.Command(), " ")) //nolint:forbidigo
	fmt.Printf("pass-through: %s\n", strings.Join(cfg.GPGArgs, " "))       //nolint:forbidigo
}

func printStats(scanned, excluded, processed, errored int, totalSize int64, duration time.Duration) {
	fmt.Fprintf(os.Stderr, "\nStats\n")
	fmt.Fprintf(os.Stderr, "  Scanned:   %d\n", scanned)
	fmt.Fprintf(os.Stderr, "  Excluded:  %d\n", excluded)
	fmt.Fprintf(os.Stderr, "  Processed: %d\n", processed)
	fmt.Fprintf(os.Stderr, "  Errors:    %d\n", errored)
	//nolint:gosec // totalSize is always non-negative (sum of file sizes)
	fmt.Fprintf(os.Stderr, "  Size:      %s\n", humanize.IBytes(uint64(max(0, totalSize))))
	fmt.Fprintf(os.Stderr, "  Duration:  %s\n", duration.Round(time.Millisecond))
}
