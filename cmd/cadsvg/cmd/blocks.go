package cmd

import (
	"fmt"

	"github.com/benoitkugler/cadsvg/cadmodel"
	"github.com/spf13/cobra"
)

var blocksCmd = &cobra.Command{
	Use:   "blocks <input>",
	Short: "List empty and unused block definitions",
	Long: `List the blocks of the drawing which have no entity, and the
blocks never instanced (directly or through other blocks) by the
top-level entities.`,
	Args: cobra.ExactArgs(1),
	RunE: runBlocks,
}

func init() {
	rootCmd.AddCommand(blocksCmd)
}

func runBlocks(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(cmd, args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d block(s)\n", doc.Blocks.Len())
	for _, name := range cadmodel.EmptyBlocks(doc) {
		fmt.Fprintf(out, "empty\t%s\n", name)
	}
	for _, name := range cadmodel.UnusedBlocks(doc) {
		fmt.Fprintf(out, "unused\t%s\n", name)
	}
	return nil
}
