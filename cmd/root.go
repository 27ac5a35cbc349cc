package cmd

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"epsconv/converter"
)

var (
	fmtSpec    string
	dpi        int
	pdfVersion string
	timeout    time.Duration
	noCrop     bool
	legacyCrop bool
	noRotate   bool
	verbose    bool
	noPause    bool
	allFiles   bool
)

var rootCmd = &cobra.Command{
	Use:   "epsconv [flags] file [file ...]",
	Short: "Convert PostScript/EPS files to raster and vector formats",
	Long: `epsconv converts PostScript and EPS files to PNG, transparent PNG,
JPEG, PDF, SVG, EMF and WMF by driving Ghostscript and Inkscape.

By default each file is cropped to its bounding box, landscape pages
are rotated upright, and png + pdf outputs are produced. Multi-page
files get one raster image per page (-001, -002, ...).`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Bare invocation is a help request, not an error.
		if len(args) == 0 && cmd.Flags().NFlag() == 0 {
			return cmd.Help()
		}

		formats, err := converter.ParseFormats(fmtSpec)
		if err != nil {
			return err
		}

		if len(args) == 0 && !allFiles {
			return fmt.Errorf("no input files given (use --all to convert the current directory)")
		}

		inputs, err := converter.ResolveInputs(args, allFiles, "", os.Stderr)
		if err != nil {
			return err
		}

		opts := converter.Options{
			InputFiles:     inputs,
			Formats:        formats,
			DPI:            dpi,
			PDFVersion:     converter.NormalizePDFVersion(pdfVersion, os.Stderr),
			Crop:           !noCrop,
			LegacyEPSCrop:  legacyCrop,
			Rotate:         !noRotate,
			Verbose:        verbose,
			CommandTimeout: timeout,
		}

		start := time.Now()
		if err := converter.Convert(opts); err != nil {
			return err
		}
		fmt.Printf("Done in %s.\n", time.Since(start).Round(10*time.Millisecond))

		if !noPause {
			pauseForEnter()
		}
		return nil
	},
}

func pauseForEnter() {
	fmt.Print("Press Enter to exit...")
	reader := bufio.NewReader(os.Stdin)
	_, _ = reader.ReadString('\n')
}

func init() {
	rootCmd.Flags().StringVar(&fmtSpec, "fmt", "", "Comma-separated output formats: all, png, png_trn, jpg, pdf, svg, emf, wmf (default: png,pdf)")
	rootCmd.Flags().IntVar(&dpi, "dpi", 300, "Resolution for raster outputs")
	rootCmd.Flags().StringVar(&pdfVersion, "pdfversion", converter.DefaultPDFVersion, "PDF compatibility level (1.0-1.9)")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 0, "Kill an external command after this long, skipping the file's remaining formats (0 = no limit)")
	rootCmd.Flags().BoolVar(&noCrop, "nocrop", false, "Do not crop output to the bounding box")
	rootCmd.Flags().BoolVar(&legacyCrop, "legacy_epscrop", false, "Crop with the interpreter's native EPS crop (single-page input only)")
	rootCmd.Flags().BoolVar(&noRotate, "norotate", false, "Do not rotate landscape pages upright")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Echo every external command before running it")
	rootCmd.Flags().BoolVar(&noPause, "nopause", false, "Skip the \"press enter\" prompt at exit")
	rootCmd.Flags().BoolVarP(&allFiles, "all", "a", false, "Convert every *.ps/*.eps file in the current directory")
}

// SetVersionInfo wires build-time version metadata into --version.
func SetVersionInfo(version, buildTime, gitCommit string) {
	rootCmd.Version = fmt.Sprintf("%s (built %s, commit %s)", version, buildTime, gitCommit)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
