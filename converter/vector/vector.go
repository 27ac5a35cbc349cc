// Package vector builds Inkscape invocations for the SVG/EMF/WMF
// export formats. Inkscape exports these natively, so each format is a
// single call writing straight to the final output file.
package vector

import (
	"epsconv/converter/runner"
)

// Bin is the Inkscape binary name.
var Bin = "inkscape"

// Export builds the export of src to out in the given format
// ("svg", "emf" or "wmf").
func Export(src, out, format string) *runner.Command {
	return &runner.Command{
		Name: Bin,
		Args: []string{
			src,
			"--export-type=" + format,
			"--export-filename=" + out,
		},
	}
}
