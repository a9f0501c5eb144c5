package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// newReplCmd answers prompts read line by line. Every prompt starts a new
// conversation.
func newReplCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Answer prompts read from stdin until exit or EOF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := o.newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprintf(out, "%s: ", color.CyanString("User"))
				if !scanner.Scan() {
					fmt.Fprintln(out)
					return scanner.Err()
				}

				input := strings.TrimSpace(scanner.Text())
				if input == "" {
					continue
				}
				if strings.EqualFold(input, "exit") {
					return nil
				}

				if err := a.answer(ctx, out, input); err != nil {
					if errors.Is(err, context.Canceled) {
						return nil
					}
					fmt.Fprintf(out, "Error: %v\n", err)
				}
			}
		},
	}
}
