package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/okian/admitcheck/internal/domain/cutoff"
)

func newProgramsCmd(e *env) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "programs",
		Short: "List programs and cutoffs for a sponsorship category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := cutoff.ParseCategory(category)
			if err != nil {
				return err
			}
			entries, err := e.svc.Programs(cat)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "%s\tCUTOFF\n", cat.Label())
			for _, en := range entries {
				fmt.Fprintf(tw, "%s\t%g\n", en.Program, en.Threshold)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "sponsorship category: self or government")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}
