package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	verbose bool
	answers string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "devkit",
		Short:         "devkit scaffolds a local web-application starter project",
		Long:          "devkit detects or installs local development dependencies, provisions a PostgreSQL database and generates the starter files for a web-application project.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand: enter the interactive menu.
			app, err := newApp(flags)
			if err != nil {
				return err
			}
			return runMenu(app)
		},
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&flags.answers, "answers", "", "Path to a YAML answers file preseeding prompts")

	cmd.AddCommand(newSetupCmd(flags))
	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
