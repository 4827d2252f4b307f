package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}
	ctx := newCommandContext(flags)

	rootCmd := &cobra.Command{
		Use:           "kev",
		Short:         "Layered environment variables",
		Long:          "kev resolves keys through the process environment and dotenv files, in order, and reports where every value came from.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringSliceVarP(&flags.sources, "source", "s", nil, "lookup chain entry (\"os\" or a dotenv path); repeat to replace the default chain")
	pf.BoolVar(&flags.noDiscover, "no-discover", false, "do not add project and monorepo .env files to the chain")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug|info|warn|error")
	pf.StringVar(&flags.logFormat, "log-format", "", "log format: console|json")
	pf.BoolVar(&flags.noColor, "no-color", false, "disable colorized output")

	rootCmd.AddCommand(newGetCommand(ctx))
	rootCmd.AddCommand(newSetCommand(ctx))
	rootCmd.AddCommand(newHasCommand(ctx))
	rootCmd.AddCommand(newKeysCommand(ctx))
	rootCmd.AddCommand(newDumpCommand(ctx))
	rootCmd.AddCommand(newExportCommand(ctx))
	rootCmd.AddCommand(newSourcesCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newCompletionCommand(rootCmd))

	return rootCmd
}
