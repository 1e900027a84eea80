package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/benoitkugler/cadsvg/caddraw"
	"github.com/benoitkugler/cadsvg/cadpdf"
	"github.com/benoitkugler/cadsvg/cadpdf/alt"
	"github.com/benoitkugler/cadsvg/cadraster"
	_ "github.com/benoitkugler/cadsvg/cadsvg"
	"github.com/spf13/cobra"
)

var (
	outputPath string
	format     string
	symbols    bool
	workers    int
	fit        bool
	scale      float64
)

var renderCmd = &cobra.Command{
	Use:   "render <input>",
	Short: "Render a drawing",
	Long: `Render the drawing read from <input> ("-" for stdin).

The output format is given by --format, or else by the extension
of the output file, and defaults to SVG.

Examples:
  cadsvg render drawing.json -o drawing.svg
  cadsvg render drawing.json -o drawing.png --scale 4
  cadsvg render drawing.json --format pdf --fit -o drawing.pdf
  cadsvg render drawing.json --format pdf-alt -o drawing.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (stdout by default)")
	renderCmd.Flags().StringVarP(&format, "format", "f", "", "output format: "+strings.Join(caddraw.Drivers(), ", "))
	renderCmd.Flags().BoolVar(&symbols, "symbols", false, "also write block definitions as symbols (SVG only)")
	renderCmd.Flags().IntVarP(&workers, "workers", "j", 1, "number of goroutines rendering the entities")
	renderCmd.Flags().BoolVar(&fit, "fit", false, "size the document to the rendered geometry, including block instances")
	renderCmd.Flags().Float64Var(&scale, "scale", 0, "pixels (PNG) or points (PDF, PDF-ALT) per drawing unit, 0 to fit a default size")
}

// outputFormat returns the explicit format, or the one
// deduced from the output file extension
func outputFormat(format, output string) string {
	if format != "" {
		return strings.ToLower(format)
	}
	if ext := strings.TrimPrefix(filepath.Ext(output), "."); ext != "" {
		return strings.ToLower(ext)
	}
	return "svg"
}

// driverFactory resolves format, so that unknown names are
// reported before the output file is created
func driverFactory(format string) (caddraw.DriverFactory, error) {
	if scale > 0 {
		switch format {
		case "png":
			return func(w io.Writer) caddraw.Driver {
				return cadraster.NewDriver(w, cadraster.Options{PixelsPerUnit: scale})
			}, nil
		case "pdf":
			return func(w io.Writer) caddraw.Driver {
				return cadpdf.NewDriver(w, cadpdf.Options{PointsPerUnit: scale})
			}, nil
		case alt.Name:
			return func(w io.Writer) caddraw.Driver {
				return alt.NewDriver(w, alt.Options{PointsPerUnit: scale})
			}, nil
		}
	}
	return caddraw.Lookup(format)
}

func runRender(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(cmd, args[0])
	if err != nil {
		return err
	}

	factory, err := driverFactory(outputFormat(format, outputPath))
	if err != nil {
		return err
	}

	out, err := createOutput(cmd, outputPath)
	if err != nil {
		return err
	}
	defer out.Close()

	d := factory(out)
	opts := caddraw.Options{Symbols: symbols, Workers: workers, Fit: fit}
	if err := caddraw.Draw(doc, d, opts); err != nil {
		return fmt.Errorf("rendering %s: %w", args[0], err)
	}
	return out.Close()
}
