package gs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func joined(args []string) string {
	return strings.Join(args, " ")
}

func TestBBoxProbe(t *testing.T) {
	cmd := BBoxProbe("fig.eps")
	assert.Equal(t, "gs", cmd.Name)
	assert.Equal(t,
		[]string{"-dSAFER", "-dBATCH", "-dNOPAUSE", "-q", "-sDEVICE=bbox", "-f", "fig.eps"},
		cmd.Args)
}

func TestCropPDFCarriesBoxNotRotation(t *testing.T) {
	box := BoundingBox{LLX: 14.3, LLY: 14, URX: 580.2, URY: 766.8}
	cmd := CropPDF("fig.eps", "fig.tmp.pdf", "1.5", box)

	args := joined(cmd.Args)
	assert.Contains(t, args, "-sDEVICE=pdfwrite")
	assert.Contains(t, args, "-dCompatibilityLevel=1.5")
	assert.Contains(t, args, "[/CropBox [14.3 14 580.2 766.8] /PAGES pdfmark")
	assert.Contains(t, cmd.Args, "-sOutputFile=fig.tmp.pdf")
	assert.NotContains(t, args, "AutoRotatePages")
	assert.Equal(t, "fig.eps", cmd.Args[len(cmd.Args)-1])
}

func TestRotatePDFCarriesRotationNotBox(t *testing.T) {
	cmd := RotatePDF("fig.tmp.pdf", "fig.rot.pdf", "1.4")
	args := joined(cmd.Args)
	assert.Contains(t, args, "AutoRotatePages")
	assert.NotContains(t, args, "CropBox")
	assert.Contains(t, cmd.Args, "-sOutputFile=fig.rot.pdf")
}

func TestRenderPDFOptions(t *testing.T) {
	cmd := RenderPDF("fig.eps", "fig.pdf", "1.4", true, true)
	args := joined(cmd.Args)
	assert.Contains(t, args, "-dEPSCrop")
	assert.Contains(t, args, "-dEmbedAllFonts=true")
	assert.Contains(t, args, "-dSubsetFonts=true")
	assert.Contains(t, args, "AutoRotatePages")

	plain := joined(RenderPDF("fig.eps", "fig.pdf", "1.4", false, false).Args)
	assert.NotContains(t, plain, "-dEPSCrop")
	assert.NotContains(t, plain, "AutoRotatePages")
}

func TestRenderRasterDevices(t *testing.T) {
	png := RenderRaster("fig.eps", "fig.png", DevicePNG, 300, false, false)
	assert.Contains(t, png.Args, "-sDEVICE=png16m")
	assert.Contains(t, png.Args, "-r300")
	assert.Contains(t, png.Args, "-dTextAlphaBits=4")
	assert.Contains(t, png.Args, "-dGraphicsAlphaBits=4")
	assert.NotContains(t, joined(png.Args), "-dJPEGQ")

	jpg := RenderRaster("fig.eps", "fig.jpg", DeviceJPEG, 600, true, false)
	assert.Contains(t, jpg.Args, "-sDEVICE=jpeg")
	assert.Contains(t, jpg.Args, "-r600")
	assert.Contains(t, jpg.Args, "-dJPEGQ=95")
	assert.Contains(t, jpg.Args, "-dEPSCrop")
}

func TestInputIsLastArgument(t *testing.T) {
	// every builder feeds the input through -f as the final argument
	box := BoundingBox{LLX: 0, LLY: 0, URX: 1, URY: 1}
	for _, cmd := range []struct {
		name string
		args []string
	}{
		{"probe", BBoxProbe("in.ps").Args},
		{"crop", CropPDF("in.ps", "out.pdf", "1.4", box).Args},
		{"rotate", RotatePDF("in.pdf", "out.pdf", "1.4").Args},
		{"pdf", RenderPDF("in.ps", "out.pdf", "1.4", false, true).Args},
		{"raster", RenderRaster("in.ps", "out.png", DevicePNG, 300, true, true).Args},
	} {
		n := len(cmd.args)
		require.GreaterOrEqual(t, n, 2, cmd.name)
		assert.Equal(t, "-f", cmd.args[n-2], cmd.name)
	}
}
