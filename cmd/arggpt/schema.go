package main

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func newSchemaCmd(o *rootOptions) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the tool schemas sent to the model as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tools, err := o.functions.Tools()
			if err != nil {
				return err
			}

			var v any = tools
			if name != "" {
				v = nil
				for _, t := range tools {
					if t.Function.Name == name {
						v = t
						break
					}
				}
				if v == nil {
					return fmt.Errorf("function %s not found", name)
				}
			}

			b, err := json.MarshalIndent(v, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "print only this function")
	return cmd
}
