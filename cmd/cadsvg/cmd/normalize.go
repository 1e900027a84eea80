package cmd

import (
	"github.com/benoitkugler/cadsvg/cadmodel"
	"github.com/spf13/cobra"
)

var normalizeOutput string

var normalizeCmd = &cobra.Command{
	Use:   "normalize <input>",
	Short: "Write the drawing as JSON lines, with explicit defaults",
	Long: `Decode the drawing and write it back, one JSON object per line:
block definitions first, then the top-level entities. Optional
fields are written with their default value.`,
	Args: cobra.ExactArgs(1),
	RunE: runNormalize,
}

func init() {
	rootCmd.AddCommand(normalizeCmd)

	normalizeCmd.Flags().StringVarP(&normalizeOutput, "output", "o", "", "output file (stdout by default)")
}

func runNormalize(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(cmd, args[0])
	if err != nil {
		return err
	}
	out, err := createOutput(cmd, normalizeOutput)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := cadmodel.WriteJSONL(out, doc); err != nil {
		return err
	}
	return out.Close()
}
