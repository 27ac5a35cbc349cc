package converter

import (
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// DefaultPDFVersion is substituted when --pdfversion fails validation.
const DefaultPDFVersion = "1.4"

var pdfVersionPattern = regexp.MustCompile(`^1\.[0-9]$`)

// NormalizePDFVersion validates a requested PDF compatibility level.
// Anything outside 1.0–1.9 falls back to the default with a warning on
// warnTo; the run is never aborted over it.
func NormalizePDFVersion(version string, warnTo io.Writer) string {
	version = strings.TrimSpace(version)
	if version == "" {
		return DefaultPDFVersion
	}
	if !pdfVersionPattern.MatchString(version) {
		fmt.Fprintf(warnTo, "Warning: invalid PDF version %q, using %s\n", version, DefaultPDFVersion)
		return DefaultPDFVersion
	}
	return version
}

// ResolveInputs builds the ordered input-file list from the positional
// arguments, expanding the --all glob over dir when requested.
// Duplicates (repeated arguments, or explicit names also matched by the
// glob) are dropped, keeping first-seen order. Arguments without a
// .ps/.eps extension are reported on warnTo and skipped; existence is
// checked later, per file, by the orchestrator.
func ResolveInputs(args []string, all bool, dir string, warnTo io.Writer) ([]string, error) {
	var inputs []string
	seen := make(map[string]bool)
	add := func(path string) {
		// Dedupe on the extension-less base so x.ps and x.eps
		// resolve to a single conversion job.
		key := strings.TrimSuffix(path, filepath.Ext(path))
		if !seen[key] {
			seen[key] = true
			inputs = append(inputs, path)
		}
	}

	for _, arg := range args {
		if !hasPSExt(arg) {
			fmt.Fprintf(warnTo, "Warning: ignoring %q (not a .ps or .eps file)\n", arg)
			continue
		}
		add(arg)
	}

	if all {
		if dir == "" {
			dir = "."
		}
		var matches []string
		for _, pattern := range []string{"*.ps", "*.eps"} {
			found, err := filepath.Glob(filepath.Join(dir, pattern))
			if err != nil {
				return nil, fmt.Errorf("failed to scan %s for %s: %w", dir, pattern, err)
			}
			matches = append(matches, found...)
		}
		sort.Strings(matches)
		for _, m := range matches {
			add(m)
		}
	}

	return inputs, nil
}

func hasPSExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ps", ".eps":
		return true
	}
	return false
}
