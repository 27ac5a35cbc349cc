package converter

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Options holds the configuration for one conversion run. It is built
// once by the CLI layer and read-only afterwards.
type Options struct {
	InputFiles    []string
	Formats       []Format
	DPI           int    // raster resolution, default 300
	PDFVersion    string // pdfwrite compatibility level, e.g. "1.4"
	Crop          bool   // crop output to the page bounding box
	LegacyEPSCrop bool   // use the interpreter's native EPS crop instead of the probe pipeline
	Rotate        bool   // orient landscape pages
	Verbose       bool   // echo external command lines
	// CommandTimeout kills any single external invocation that runs
	// longer; the file's remaining formats are then skipped. Zero
	// means no limit.
	CommandTimeout time.Duration
	Embedded       *EmbeddedOptions
	Out            io.Writer // progress output, defaults to os.Stdout
}

// EmbeddedOptions adjusts behavior when the converter runs inside a
// larger batch tool. Callers state what they need explicitly; nothing
// is inferred from who invoked us.
type EmbeddedOptions struct {
	// GroupOutputs writes each file's outputs into a subdirectory
	// named after the file.
	GroupOutputs bool
	// ForcePageBox always runs the page-box pre-pass when PDF output
	// is requested, even for single-page uncropped input.
	ForcePageBox bool
	// NoRotate suppresses the rotation default.
	NoRotate bool
}

// Output records one produced file.
type Output struct {
	Format Format
	Path   string
}

// Convert processes every input file in order, producing every
// requested format for each. Per-file and per-format failures are
// reported and skipped; Convert only returns an error for misuse
// (no formats requested).
func Convert(opts Options) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if len(opts.Formats) == 0 {
		return fmt.Errorf("no output formats requested")
	}
	if opts.DPI <= 0 {
		opts.DPI = 300
	}
	if opts.PDFVersion == "" {
		opts.PDFVersion = DefaultPDFVersion
	}

	if len(opts.InputFiles) == 0 {
		fmt.Fprintln(opts.Out, "Nothing to convert.")
		return nil
	}

	for _, input := range opts.InputFiles {
		job := newJob(opts, input)
		if err := job.run(); err != nil {
			fmt.Fprintf(opts.Out, "Warning: %s: %v\n", input, err)
		}
	}
	return nil
}

// rotateEnabled folds the embedded-mode override into the CLI toggle.
func (o *Options) rotateEnabled() bool {
	if o.Embedded != nil && o.Embedded.NoRotate {
		return false
	}
	return o.Rotate
}

func (o *Options) groupOutputs() bool {
	return o.Embedded != nil && o.Embedded.GroupOutputs
}

func (o *Options) forcePageBox() bool {
	return o.Embedded != nil && o.Embedded.ForcePageBox
}

func (o *Options) wantsFormat(f Format) bool {
	for _, have := range o.Formats {
		if have == f {
			return true
		}
	}
	return false
}
