package main

import (
	"strings"

	"github.com/spf13/cobra"
)

func newRunCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run <prompt>",
		Short: "Answer a single prompt",
		Example: `  arggpt run "spell the word sky"
  ARGGPT_PROVIDER=groq arggpt run --model llama-3.3-70b-versatile "what time is it?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := o.newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			return a.answer(cmd.Context(), cmd.OutOrStdout(), strings.Join(args, " "))
		},
	}
}
