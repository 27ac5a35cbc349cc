package converter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"epsconv/converter/gs"
	"epsconv/converter/runner"
	"epsconv/converter/vector"
)

// job converts one input file into every requested format. It owns the
// intermediate PDF for its lifetime; nothing is shared between jobs.
type job struct {
	id   uuid.UUID
	opts Options
	out  io.Writer

	input     string
	source    string
	baseName  string // source path without extension
	outDir    string
	pageCount int
	multiPage bool

	// set by the pre-pass; doubles as the PDF output
	intermediatePDF string

	// set when an invocation hits the command timeout; the rest of
	// this file's formats are skipped
	timedOut bool

	outputs []Output
}

func newJob(opts Options, input string) *job {
	return &job{
		id:    uuid.New(),
		opts:  opts,
		out:   opts.Out,
		input: input,
	}
}

// run walks the file through resolution, the optional crop/rotate
// pre-pass, and the per-format loop. External failures are reported
// and skipped; only filesystem failures abort the job.
func (j *job) run() error {
	src, ok := ResolveSource(j.input)
	if !ok {
		fmt.Fprintf(j.out, "Skipping %s: no .ps or .eps file found\n", j.input)
		return nil
	}
	j.source = src
	j.baseName = strings.TrimSuffix(src, filepath.Ext(src))

	pages, err := CountPages(src)
	if err != nil {
		// unreadable DSC header is not fatal, treat as single page
		fmt.Fprintf(j.out, "Warning: could not scan %s for page count: %v\n", src, err)
		pages = 1
	}
	j.pageCount = pages
	j.multiPage = pages >= 2

	if err := j.resolveOutDir(); err != nil {
		return err
	}

	fmt.Fprintf(j.out, "Converting %s (%d page(s))...\n", src, pages)

	if j.prePassNeeded() {
		if err := j.prePass(); err != nil {
			fmt.Fprintf(j.out, "  Warning: PDF pre-pass failed: %v\n", err)
		}
	}

	for _, f := range j.opts.Formats {
		if j.timedOut {
			fmt.Fprintf(j.out, "  Skipping %s output: an earlier command timed out\n", f)
			continue
		}
		if err := j.produce(f); err != nil {
			fmt.Fprintf(j.out, "  Warning: %s output failed: %v\n", f, err)
		}
	}
	return nil
}

// prePassNeeded reports whether the crop/rotate pre-pass has to run.
// The interpreter's single-shot EPS crop is only correct on genuinely
// single-page input, so outside legacy mode any cropped or multi-page
// PDF goes through the probe+crop-box pipeline.
func (j *job) prePassNeeded() bool {
	if !j.opts.wantsFormat(FormatPDF) {
		return false
	}
	if j.multiPage {
		return true
	}
	if j.opts.Crop && !j.opts.LegacyEPSCrop {
		return true
	}
	return j.opts.forcePageBox()
}

// prePass probes the bounding box, renders a cropped PDF to a
// temporary path, optionally rotates it in a second pass, and renames
// the result into place as the job's PDF output. Crop and rotation are
// deliberately separate invocations; combining them leaks the
// pre-rotation bounding box into the final page box.
func (j *job) prePass() error {
	probe := gs.BBoxProbe(j.source)
	var probeOut bytes.Buffer
	probe.CombinedOutput = &probeOut
	if err := j.exec(probe); err != nil {
		return fmt.Errorf("bounding-box probe: %w", err)
	}
	box, err := gs.ParseBoundingBox(probeOut.String())
	if err != nil {
		return fmt.Errorf("bounding-box probe: %w", err)
	}

	pdfOut := j.outputPath(FormatPDF, false)
	tmp := fmt.Sprintf("%s.tmp-%s.pdf", pdfOut, j.shortID())

	if err := j.exec(gs.CropPDF(j.source, tmp, j.opts.PDFVersion, box)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("crop pass: %w", err)
	}

	if j.opts.rotateEnabled() {
		rotated := fmt.Sprintf("%s.rot-%s.pdf", pdfOut, j.shortID())
		if err := j.exec(gs.RotatePDF(tmp, rotated, j.opts.PDFVersion)); err != nil {
			os.Remove(tmp)
			os.Remove(rotated)
			return fmt.Errorf("rotate pass: %w", err)
		}
		os.Remove(tmp)
		tmp = rotated
	}

	// The writer has fully exited by now, so the final path is never
	// observed half-written.
	if err := os.Rename(tmp, pdfOut); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to finalize %s: %w", pdfOut, err)
	}

	j.intermediatePDF = pdfOut
	j.record(FormatPDF, pdfOut)

	pages := j.pageCount
	if n, err := api.PageCountFile(pdfOut); err == nil {
		pages = n
	}
	fmt.Fprintf(j.out, "  -> %s (PDF %s, %d page(s))\n", pdfOut, j.opts.PDFVersion, pages)
	return nil
}

// produce creates one requested output format, reusing the
// intermediate PDF when the pre-pass produced one.
func (j *job) produce(f Format) error {
	switch {
	case f == FormatPDF:
		return j.producePDF()
	case f.IsRaster():
		return j.produceRaster(f)
	case f.IsVectorExport():
		return j.produceVector(f)
	}
	return fmt.Errorf("unsupported format %q", f)
}

func (j *job) producePDF() error {
	// Satisfied by the pre-pass: re-encoding the PDF onto its own
	// path would truncate it mid-read.
	if j.intermediatePDF != "" {
		return nil
	}
	out := j.outputPath(FormatPDF, false)
	epsCrop := j.opts.Crop && j.opts.LegacyEPSCrop
	cmd := gs.RenderPDF(j.source, out, j.opts.PDFVersion, epsCrop, j.opts.rotateEnabled())
	if err := j.exec(cmd); err != nil {
		return err
	}
	j.record(FormatPDF, out)
	fmt.Fprintf(j.out, "  -> %s (PDF %s)\n", out, j.opts.PDFVersion)
	return nil
}

func (j *job) produceRaster(f Format) error {
	src := j.conversionSource()
	out := j.outputPath(f, j.multiPage)

	var device string
	switch f {
	case FormatPNG:
		device = gs.DevicePNG
	case FormatPNGTrn:
		device = gs.DevicePNGAlpha
	case FormatJPG:
		device = gs.DeviceJPEG
	}

	// EPSCrop only applies when rendering the original PostScript;
	// the intermediate PDF is already cropped. Same for rotation.
	fromSource := src == j.source
	epsCrop := fromSource && j.opts.Crop
	rotate := fromSource && j.opts.rotateEnabled()

	cmd := gs.RenderRaster(src, out, device, j.opts.DPI, epsCrop, rotate)
	if err := j.exec(cmd); err != nil {
		return err
	}
	j.record(f, out)
	fmt.Fprintf(j.out, "  -> %s (%s, %d dpi)\n", out, strings.ToUpper(f.Ext()), j.opts.DPI)
	return nil
}

func (j *job) produceVector(f Format) error {
	out := j.outputPath(f, false)
	cmd := vector.Export(j.conversionSource(), out, f.Ext())
	if err := j.exec(cmd); err != nil {
		return err
	}
	j.record(f, out)
	fmt.Fprintf(j.out, "  -> %s (%s)\n", out, strings.ToUpper(f.Ext()))
	return nil
}

// conversionSource is the intermediate PDF when the pre-pass ran,
// otherwise the original file.
func (j *job) conversionSource() string {
	if j.intermediatePDF != "" {
		return j.intermediatePDF
	}
	return j.source
}

// resolveOutDir picks (and in grouped mode creates) the output
// directory for this job's files.
func (j *job) resolveOutDir() error {
	j.outDir = filepath.Dir(j.source)
	if !j.opts.groupOutputs() {
		return nil
	}
	j.outDir = filepath.Join(j.outDir, filepath.Base(j.baseName))
	if err := os.MkdirAll(j.outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", j.outDir, err)
	}
	return nil
}

// outputPath names one output file:
// {base}[-%03d if paged]{format suffix}.{ext}.
func (j *job) outputPath(f Format, paged bool) string {
	name := filepath.Base(j.baseName)
	if paged {
		name += "-%03d"
	}
	name += f.Suffix() + "." + f.Ext()
	return filepath.Join(j.outDir, name)
}

// exec echoes the command in verbose mode, then runs it with the
// configured timeout. On failure any captured tool output is folded
// into the error; a timeout additionally marks the job so its
// remaining formats are skipped.
func (j *job) exec(cmd *runner.Command) error {
	var captured bytes.Buffer
	if cmd.CombinedOutput == nil {
		cmd.CombinedOutput = &captured
	} else {
		cmd.CombinedOutput = io.MultiWriter(cmd.CombinedOutput, &captured)
	}
	cmd.Timeout = j.opts.CommandTimeout
	if j.opts.Verbose {
		fmt.Fprintf(j.out, "  $ %s\n", cmd.String())
	}
	if err := cmd.Run(); err != nil {
		if errors.Is(err, runner.ErrTimeout) {
			j.timedOut = true
		}
		if msg := strings.TrimSpace(captured.String()); msg != "" {
			return fmt.Errorf("%s: %w\n%s", cmd.Name, err, msg)
		}
		return fmt.Errorf("%s: %w", cmd.Name, err)
	}
	return nil
}

func (j *job) record(f Format, path string) {
	j.outputs = append(j.outputs, Output{Format: f, Path: path})
}

func (j *job) shortID() string {
	return j.id.String()[:8]
}
