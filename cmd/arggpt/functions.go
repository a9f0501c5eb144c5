package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newFunctionsCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "functions",
		Short: "List the functions offered to the model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tools, err := o.functions.Tools()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPARAMETERS\tDESCRIPTION")
			for _, t := range tools {
				fn := t.Function
				count := 0
				if fn.Parameters.Properties != nil {
					count = fn.Parameters.Properties.Len()
				}
				params := fmt.Sprint(count)
				if len(fn.Parameters.Required) != count {
					params = fmt.Sprintf("%d (%d required)", count, len(fn.Parameters.Required))
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", fn.Name, params, fn.Description)
			}
			return w.Flush()
		},
	}
}
