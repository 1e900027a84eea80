package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/benoitkugler/cadsvg/caddraw"
	"github.com/benoitkugler/cadsvg/cadmodel"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
	charset string
)

var rootCmd = &cobra.Command{
	Use:   "cadsvg",
	Short: "CAD drawing to SVG converter",
	Long: `Convert the entity list extracted from a CAD drawing (a JSON array,
or one JSON object per line) to a vector or raster document.

Examples:
  cadsvg render drawing.json -o drawing.svg      # Render as SVG
  cadsvg render drawing.json -o drawing.png      # Format from the extension
  cadsvg render drawing.json --format pdf > d.pdf
  cadsvg blocks drawing.json                     # Empty and unused blocks
  cadsvg types drawing.json                      # Entity count per type`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		caddraw.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "also log skipped entities")
	rootCmd.PersistentFlags().StringVar(&charset, "charset", "", "encoding of the input (like windows-1252), UTF-8 by default")
}

// loadDocument reads the input file, or stdin for "-"
func loadDocument(cmd *cobra.Command, path string) (*cadmodel.Document, error) {
	opts := cadmodel.DecodeOptions{Charset: charset}
	if path == "-" {
		return cadmodel.ReadDocument(cmd.InOrStdin(), opts)
	}
	return cadmodel.ReadFile(path, opts)
}

// createOutput returns the destination named by path,
// or the command output if path is empty or "-"
func createOutput(cmd *cobra.Command, path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{cmd.OutOrStdout()}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
