package converter

import (
	"fmt"
	"strings"
)

// Format identifies one requested output format.
type Format string

const (
	FormatPNG    Format = "png"     // 24-bit PNG
	FormatPNGTrn Format = "png_trn" // PNG with alpha background
	FormatJPG    Format = "jpg"
	FormatPDF    Format = "pdf"
	FormatSVG    Format = "svg"
	FormatEMF    Format = "emf"
	FormatWMF    Format = "wmf"
)

// AllFormats lists every supported format in canonical order.
var AllFormats = []Format{
	FormatPNG, FormatPNGTrn, FormatJPG, FormatPDF, FormatSVG, FormatEMF, FormatWMF,
}

// DefaultFormats is what an unspecified --fmt resolves to.
var DefaultFormats = []Format{FormatPNG, FormatPDF}

// IsRaster reports whether the format is produced by a raster device.
func (f Format) IsRaster() bool {
	switch f {
	case FormatPNG, FormatPNGTrn, FormatJPG:
		return true
	}
	return false
}

// IsVectorExport reports whether the format is produced by the vector
// export tool rather than the interpreter.
func (f Format) IsVectorExport() bool {
	switch f {
	case FormatSVG, FormatEMF, FormatWMF:
		return true
	}
	return false
}

// Ext returns the output file extension, without the dot.
func (f Format) Ext() string {
	if f == FormatPNGTrn {
		return "png"
	}
	return string(f)
}

// Suffix returns the format-specific token appended to the base name
// before the extension. Only the transparent PNG variant carries one,
// so that base.png and the alpha render never collide.
func (f Format) Suffix() string {
	if f == FormatPNGTrn {
		return "-trn"
	}
	return ""
}

// ParseFormats turns a comma-separated --fmt value into an ordered,
// de-duplicated format list. "all" expands to every supported format;
// "jpeg" is accepted as an alias for jpg. An empty value yields the
// default set.
func ParseFormats(spec string) ([]Format, error) {
	if strings.TrimSpace(spec) == "" {
		return append([]Format(nil), DefaultFormats...), nil
	}

	var out []Format
	seen := make(map[Format]bool)
	add := func(f Format) {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}

	for _, token := range strings.Split(spec, ",") {
		token = strings.ToLower(strings.TrimSpace(token))
		switch token {
		case "":
			continue
		case "all":
			for _, f := range AllFormats {
				add(f)
			}
		case "jpeg":
			add(FormatJPG)
		case string(FormatPNG), string(FormatPNGTrn), string(FormatJPG),
			string(FormatPDF), string(FormatSVG), string(FormatEMF), string(FormatWMF):
			add(Format(token))
		default:
			return nil, fmt.Errorf("unknown output format: %q", token)
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no output formats in %q", spec)
	}
	return out, nil
}
