// Package gs builds Ghostscript invocations for the conversion
// pipeline. Builders only assemble runner.Commands; the orchestrator
// decides ordering and runs them, which keeps every flag decision
// testable without a Ghostscript install.
package gs

import (
	"fmt"

	"epsconv/converter/runner"
)

// Bin is the Ghostscript binary name, overridable for systems where it
// is installed as gswin64c or similar.
var Bin = "gs"

// Raster and vector devices used by the pipeline.
const (
	DevicePNG      = "png16m"
	DevicePNGAlpha = "pngalpha"
	DeviceJPEG     = "jpeg"
	DevicePDF      = "pdfwrite"
	DeviceBBox     = "bbox"
)

// rotateOverride asks pdfwrite to orient each page individually, so a
// landscape plot ends up landscape in the output.
const rotateOverride = "<</AutoRotatePages /PageByPage>> setpagedevice"

func base(device string) []string {
	return []string{"-dSAFER", "-dBATCH", "-dNOPAUSE", "-q", "-sDEVICE=" + device}
}

func pdfArgs(version string) []string {
	return []string{
		"-dCompatibilityLevel=" + version,
		"-dEmbedAllFonts=true",
		"-dSubsetFonts=true",
	}
}

// BBoxProbe builds the bounding-box probe for src. The bbox device
// prints %%BoundingBox/%%HiResBoundingBox comments on stderr; callers
// capture combined output and hand it to ParseBoundingBox.
func BBoxProbe(src string) *runner.Command {
	args := base(DeviceBBox)
	args = append(args, "-f", src)
	return &runner.Command{Name: Bin, Args: args}
}

// CropPDF builds the pdfwrite pass that renders src to out with box as
// the page crop box. Rotation must never ride along on this call: a
// simultaneous AutoRotatePages override makes the pre-rotation box leak
// into the final page box.
func CropPDF(src, out, version string, box BoundingBox) *runner.Command {
	args := base(DevicePDF)
	args = append(args, pdfArgs(version)...)
	args = append(args,
		"-sOutputFile="+out,
		"-c", fmt.Sprintf("[/CropBox [%s %s %s %s] /PAGES pdfmark",
			trim(box.LLX), trim(box.LLY), trim(box.URX), trim(box.URY)),
		"-f", src,
	)
	return &runner.Command{Name: Bin, Args: args}
}

// RotatePDF builds the second pdfwrite pass that re-emits src with the
// per-page rotation override applied.
func RotatePDF(src, out, version string) *runner.Command {
	args := base(DevicePDF)
	args = append(args, pdfArgs(version)...)
	args = append(args,
		"-sOutputFile="+out,
		"-c", rotateOverride,
		"-f", src,
	)
	return &runner.Command{Name: Bin, Args: args}
}

// RenderPDF builds a single-shot pdfwrite conversion of src, used when
// no intermediate crop pass is needed. epsCrop selects the
// interpreter's native EPS crop, which is only correct on genuinely
// single-page input; rotate applies the page-device override inline.
func RenderPDF(src, out, version string, epsCrop, rotate bool) *runner.Command {
	args := base(DevicePDF)
	args = append(args, pdfArgs(version)...)
	if epsCrop {
		args = append(args, "-dEPSCrop")
	}
	args = append(args, "-sOutputFile="+out)
	if rotate {
		args = append(args, "-c", rotateOverride)
	}
	args = append(args, "-f", src)
	return &runner.Command{Name: Bin, Args: args}
}

// RenderRaster builds a raster conversion of src on the given device
// at the given DPI, with text and graphics antialiasing on.
func RenderRaster(src, out, device string, dpi int, epsCrop, rotate bool) *runner.Command {
	args := base(device)
	args = append(args,
		"-dTextAlphaBits=4",
		"-dGraphicsAlphaBits=4",
		fmt.Sprintf("-r%d", dpi),
	)
	if device == DeviceJPEG {
		args = append(args, "-dJPEGQ=95")
	}
	if epsCrop {
		args = append(args, "-dEPSCrop")
	}
	args = append(args, "-sOutputFile="+out)
	if rotate {
		args = append(args, "-c", rotateOverride)
	}
	args = append(args, "-f", src)
	return &runner.Command{Name: Bin, Args: args}
}
