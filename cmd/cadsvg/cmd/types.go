package cmd

import (
	"fmt"
	"sort"

	"github.com/benoitkugler/cadsvg/cadmodel"
	"github.com/spf13/cobra"
)

var typesCmd = &cobra.Command{
	Use:   "types <input>",
	Short: "Count the entities of each type",
	Long: `Count the entities of each type, in block definitions and at top level.
Types not supported by the renderer are listed too.`,
	Args: cobra.ExactArgs(1),
	RunE: runTypes,
}

func init() {
	rootCmd.AddCommand(typesCmd)
}

func runTypes(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(cmd, args[0])
	if err != nil {
		return err
	}
	counts := cadmodel.CountKinds(doc)
	kinds := make([]cadmodel.Kind, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	out := cmd.OutOrStdout()
	for _, kind := range kinds {
		fmt.Fprintf(out, "%-10s %d\n", kind, counts[kind])
	}
	return nil
}
