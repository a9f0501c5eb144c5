// Command arggpt answers a prompt by letting a chat model call the example
// functions.
//
//	arggpt run "what color is the sky at night?"
//	arggpt functions
//	arggpt schema
//	arggpt watch
//
// Settings come from an optional YAML file (--config), a .env file and the
// environment. See internal/config for the variables.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/casualjim/arggpt/examples/functions"
	"github.com/casualjim/arggpt/tool"
	"github.com/spf13/cobra"
)

var osExit = os.Exit

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(functions.Registry()).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		osExit(1)
	}
}

type rootOptions struct {
	cfgFile  string
	model    string
	provider string
	debug    bool

	functions *tool.Registry
}

func newRootCmd(registry *tool.Registry) *cobra.Command {
	o := &rootOptions{functions: registry}

	cmd := &cobra.Command{
		Use:   "arggpt",
		Short: "Answer prompts with a chat model that can call Go functions",
		Long: `arggpt sends a prompt to a chat model together with the schemas of a set of
Go functions. The functions the model asks for are executed and their results
fed back until the model is done, then the conversation is summarized.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&o.cfgFile, "config", "", "config file (YAML)")
	cmd.PersistentFlags().StringVar(&o.model, "model", "", "model name, overrides the configuration")
	cmd.PersistentFlags().StringVar(&o.provider, "provider", "", "provider kind (openai, groq, compat), overrides the configuration")
	cmd.PersistentFlags().BoolVar(&o.debug, "debug", false, "dump events and messages to stderr")

	cmd.AddCommand(
		newRunCmd(o),
		newReplCmd(o),
		newFunctionsCmd(o),
		newSchemaCmd(o),
		newWatchCmd(),
	)
	return cmd
}
