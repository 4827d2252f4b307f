package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/adriangalilea/go-utils/internal/audit"
	"github.com/adriangalilea/go-utils/internal/fsutil"
	"github.com/adriangalilea/go-utils/internal/kev"
	"github.com/adriangalilea/go-utils/internal/logging"
)

func newGetCommand(ctx *commandContext) *cobra.Command {
	var def string
	var withSource bool
	var required bool

	cmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Print the value of a key",
		Long:  "Print the value of KEY. Bare keys walk the source chain; namespaced keys (os:KEY, path/.env:KEY) read one backend. Exits 1 when the key is not found.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.ensureStore(cmd)
			if err != nil {
				return err
			}
			if required {
				fmt.Fprintln(cmd.OutOrStdout(), s.MustGet(args[0]))
				return nil
			}
			v, src := s.GetWithSource(args[0], def)
			if v == "" {
				return exitError{code: 1}
			}
			if withSource {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", v, src)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
	cmd.Flags().StringVarP(&def, "default", "d", "", "value to print when the key is not found")
	cmd.Flags().BoolVar(&withSource, "with-source", false, "also print where the value came from")
	cmd.Flags().BoolVar(&required, "required", false, "fail with an error instead of exit status 1 when missing")
	return cmd
}

func newSetCommand(ctx *commandContext) *cobra.Command {
	var prompt bool

	cmd := &cobra.Command{
		Use:   "set KEY [VALUE]",
		Short: "Write a key to a dotenv file",
		Long: "Write KEY to a dotenv file, preserving every other line. A namespaced key (path/.env:KEY) names the file; " +
			"a bare key goes to the first file in the source chain.",
		Args: func(cmd *cobra.Command, args []string) error {
			if prompt {
				return cobra.ExactArgs(1)(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.ensureStore(cmd)
			if err != nil {
				return err
			}
			key := args[0]
			var value string
			if prompt {
				value, err = readSecret(cmd.InOrStdin(), cmd.ErrOrStderr(), key)
				if err != nil {
					return err
				}
			} else {
				value = args[1]
			}

			target, err := writeTarget(s, key)
			if err != nil {
				return err
			}
			previous := s.Get(target)
			s.Set(target, value)
			ns, bare := kev.ParseKey(target)
			file := fsutil.Abs(ns)
			logging.Success(ctx.logger, "wrote key", slog.String("key", bare), slog.String("file", file))

			rec := audit.NewWriteRecord(ctx.root, file, bare, previous, value)
			if err := audit.NewAuditLog(ctx.root).Record(rec); err != nil {
				ctx.logger.Warn("audit record not written", logging.Error(err))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&prompt, "prompt", false, "read the value from the terminal without echo")
	return cmd
}

// writeTarget maps a CLI key to the namespaced key Set persists: "os:" has no
// effect beyond this process and is refused, bare keys go to the first file
// source.
func writeTarget(s *kev.Store, key string) (string, error) {
	ns, bare := kev.ParseKey(key)
	if ns == kev.SourceOS {
		return "", errors.New("setting os:KEY from the command line would not outlive the process")
	}
	if ns != "" {
		return key, nil
	}
	for _, id := range s.Source.List() {
		if id != kev.SourceOS {
			return id + ":" + bare, nil
		}
	}
	return ".env:" + bare, nil
}

// readSecret reads one line without echo when in is a terminal.
func readSecret(in io.Reader, prompt io.Writer, key string) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprintf(prompt, "%s: ", key)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("read value: %w", err)
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read value: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("read value: empty input")
	}
	return line, nil
}

func newHasCommand(ctx *commandContext) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "has KEY",
		Short: "Report whether a key is set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.ensureStore(cmd)
			if err != nil {
				return err
			}
			ok := s.Has(args[0])
			if !quiet {
				fmt.Fprintln(cmd.OutOrStdout(), ok)
			}
			if !ok {
				return exitError{code: 1}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only set the exit status")
	return cmd
}

func newKeysCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "keys [PATTERN]",
		Short: "List keys matching a pattern",
		Long:  "List keys matching PATTERN (\"*\", \"PRE*\", \"*SUF\", \"PRE*SUF\"). A namespaced pattern such as os:AWS_* lists one backend.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.ensureStore(cmd)
			if err != nil {
				return err
			}
			pattern := ""
			if len(args) == 1 {
				pattern = args[0]
			}
			for _, k := range s.Keys(pattern) {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
	}
}
