package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adriangalilea/go-utils/internal/audit"
	"github.com/adriangalilea/go-utils/internal/fsutil"
	"github.com/adriangalilea/go-utils/internal/kev"
	"github.com/adriangalilea/go-utils/internal/logging"
	"github.com/adriangalilea/go-utils/internal/report"
)

func newDumpCommand(ctx *commandContext) *cobra.Command {
	var asTable bool
	var reveal bool

	cmd := &cobra.Command{
		Use:   "dump [PATTERN...]",
		Short: "Print keys grouped by source",
		Long:  "Print every key matching the patterns (default \"*\"), grouped by the source holding it. Values of keys that look sensitive are masked unless --reveal is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.ensureStore(cmd)
			if err != nil {
				return err
			}
			patterns := args
			if len(patterns) == 0 {
				patterns = []string{"*"}
			}
			out := cmd.OutOrStdout()
			switch {
			case asTable:
				report.Table(out, s.All(patterns...), report.Options{
					NoColor:      ctx.noColor(),
					Reveal:       reveal,
					MaskKeywords: s.MaskKeywords(),
				})
				return nil
			case reveal:
				return s.DumpUnmasked(out, patterns...)
			default:
				return s.Dump(out, patterns...)
			}
		},
	}
	cmd.Flags().BoolVar(&asTable, "table", false, "render a table")
	cmd.Flags().BoolVar(&reveal, "reveal", false, "print sensitive values unmasked")
	return cmd
}

func newExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export PATH [PATTERN...]",
		Short: "Snapshot resolved keys into a file",
		Long:  "Resolve every bare key matching the patterns (default \"*\") through the source chain and write them to PATH as KEY=value lines annotated with their source.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.ensureStore(cmd)
			if err != nil {
				return err
			}
			path, patterns := args[0], args[1:]
			if len(patterns) == 0 {
				patterns = []string{"*"}
			}
			for _, p := range patterns {
				if strings.Contains(p, ":") {
					return fmt.Errorf("export takes bare patterns, got %q", p)
				}
				for _, k := range s.Keys(p) {
					s.Get(k)
				}
			}
			s.Export(path)
			logging.Success(ctx.logger, "exported keys", slog.String("path", path), slog.Int("keys", len(s.Entries())))
			return nil
		},
	}
}

func newSourcesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "Show the lookup chain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.ensureStore(cmd)
			if err != nil {
				return err
			}
			var rows []report.SourceRow
			for _, id := range s.Source.List() {
				rows = append(rows, sourceRow(s, id))
			}
			report.Sources(cmd.OutOrStdout(), rows, report.Options{NoColor: ctx.noColor()})
			return nil
		},
	}
}

func sourceRow(s *kev.Store, id string) report.SourceRow {
	if id == kev.SourceOS {
		return report.SourceRow{ID: id, Exists: true, Keys: len(s.Keys("os:*"))}
	}
	row := report.SourceRow{ID: id, Path: fsutil.Abs(id)}
	st, err := os.Stat(row.Path)
	if err != nil || st.IsDir() {
		return row
	}
	row.Exists = true
	row.Size = st.Size()
	row.Keys = len(s.Keys(id + ":*"))
	if fp, err := fsutil.Fingerprint(row.Path); err == nil {
		row.Fingerprint = fp
	}
	return row
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show keys written with kev set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.ensureStore(cmd); err != nil {
				return err
			}
			records, err := audit.NewAuditLog(ctx.root).LoadHistory()
			if err != nil {
				return err
			}
			if limit > 0 && len(records) > limit {
				records = records[:limit]
			}
			report.History(cmd.OutOrStdout(), records, report.Options{NoColor: ctx.noColor()})
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "show at most this many writes (0 = all)")
	return cmd
}
