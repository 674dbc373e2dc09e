package main

import (
	"fmt"
	"text/tabwriter"

	"jobplanner/internal/models"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List job categories",
	Long:  "Prints every category tag with its label. Either form is accepted by `filter --category`.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "TAG\tLABEL")
		for _, code := range models.Categories() {
			fmt.Fprintf(tw, "%s\t%s\n", code, code.Label())
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
