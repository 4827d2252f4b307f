package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adriangalilea/go-utils/internal/config"
	"github.com/adriangalilea/go-utils/internal/files"
	"github.com/adriangalilea/go-utils/internal/project"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration helpers",
	}
	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))
	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var dir string
	var sources []string
	var noGitignore bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .kev.yml in the project root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(dir)
			if target == "" {
				target = project.FindProjectRoot(".")
			}
			if target == "" {
				target = "."
			}
			cfg := config.Sample()
			if len(sources) > 0 {
				cfg.Sources = sources
			}
			p, err := config.WriteLocal(target, cfg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Wrote", p)
			if noGitignore {
				return nil
			}
			added, err := files.EnsureIgnored(target, files.DefaultSecretIgnores()...)
			if err != nil {
				return fmt.Errorf("update .gitignore: %w", err)
			}
			if len(added) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Added to .gitignore:", strings.Join(added, " "))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "directory to write into (default: project root)")
	cmd.Flags().BoolVar(&noGitignore, "no-gitignore", false, "do not add dotenv files to .gitignore")
	cmd.Flags().StringSliceVar(&sources, "sources", nil, "sources to record instead of the sample chain")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.ensureStore(cmd); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			local := config.FindLocal(ctx.root)
			if local == "" {
				local = "(none)"
			}
			global := config.GlobalPath()
			if global == "" {
				global = "(none)"
			}
			fmt.Fprintf(out, "root:          %s\n", ctx.root)
			fmt.Fprintf(out, "local config:  %s\n", local)
			fmt.Fprintf(out, "global config: %s\n", filepath.Clean(global))
			fmt.Fprintf(out, "discover:      %t\n", ctx.cfg.DiscoverEnabled() && !ctx.flags.noDiscover)
			fmt.Fprintf(out, "mask keywords: %s\n", strings.Join(ctx.store.MaskKeywords(), ", "))
			return nil
		},
	}
}
