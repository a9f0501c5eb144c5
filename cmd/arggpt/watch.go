package main

import (
	"cmp"
	"fmt"
	"os"

	"github.com/casualjim/arggpt/internal/broker"
	"github.com/casualjim/arggpt/internal/config"
	"github.com/casualjim/arggpt/internal/msgfmt"
	"github.com/casualjim/arggpt/pkg/natsx"
	"github.com/spf13/cobra"
)

// newWatchCmd prints the events published by other arggpt processes until
// interrupted.
func newWatchCmd() *cobra.Command {
	var url, subject string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the interpretation events published to NATS",
		Example: `  NATS_URL=nats://localhost:4222 arggpt watch
  arggpt watch --url nats://localhost:4222 --subject arggpt.events`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			subject = cmp.Or(subject, os.Getenv("ARGGPT_NATS_SUBJECT"), config.DefaultSubject)

			nc, err := natsx.Connect(url)
			if err != nil {
				return fmt.Errorf("failed to connect to nats: %w", err)
			}
			defer nc.Close()

			ctx := cmd.Context()
			sub, err := broker.NATS(nc).Topic(ctx, subject).Subscribe(ctx, msgfmt.Console(cmd.OutOrStdout()))
			if err != nil {
				return err
			}
			defer sub.Unsubscribe()

			fmt.Fprintf(cmd.ErrOrStderr(), "watching %s\n", subject)
			<-ctx.Done()
			return nil
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "NATS server url, defaults to NATS_URL")
	cmd.Flags().StringVar(&subject, "subject", "", "subject to watch, defaults to ARGGPT_NATS_SUBJECT")
	return cmd
}
