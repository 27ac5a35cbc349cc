package converter

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var pagesComment = regexp.MustCompile(`^%%Pages:\s*(\d+)`)

// ResolveSource maps an input argument to the concrete file to convert.
// A .ps file takes precedence over a .eps file with the same base name;
// if neither exists the job is skipped upstream.
func ResolveSource(path string) (string, bool) {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	for _, candidate := range []string{base + ".ps", base + ".eps"} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}

// CountPages scans a PostScript file's DSC comments for %%Pages.
// The header form is often "%%Pages: (atend)" with the real count in
// the trailer, so the last numeric occurrence wins. A file without the
// comment, or with fewer than one page declared, counts as one page.
func CountPages(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	pages := 1
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		m := pagesComment.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 1 {
			pages = n
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("failed to scan %s: %w", path, err)
	}
	return pages, nil
}
