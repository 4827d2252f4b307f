package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"

	"github.com/adriangalilea/go-utils/internal/config"
	"github.com/adriangalilea/go-utils/internal/kev"
	"github.com/adriangalilea/go-utils/internal/logging"
	"github.com/adriangalilea/go-utils/internal/project"
)

type globalFlags struct {
	sources    []string
	noDiscover bool
	logLevel   string
	logFormat  string
	noColor    bool
}

// commandContext builds the store once per invocation from flags, the merged
// config files and the working directory.
type commandContext struct {
	flags *globalFlags

	once     sync.Once
	store    *kev.Store
	cfg      config.FileConfig
	root     string
	logger   *slog.Logger
	setupErr error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureStore(cmd *cobra.Command) (*kev.Store, error) {
	c.once.Do(func() {
		c.setupErr = c.setup(cmd.ErrOrStderr())
	})
	return c.store, c.setupErr
}

func (c *commandContext) setup(stderr io.Writer) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("working directory: %w", err)
	}
	c.root = project.FindProjectRoot(cwd)
	if c.root == "" {
		c.root = cwd
	}

	cfg, err := config.Load(c.root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.cfg = cfg

	logger, err := logging.New(logging.Options{
		Level:   pickString(c.flags.logLevel, cfg.GetLogLevel(), "warn"),
		Format:  pickString(c.flags.logFormat, cfg.GetLogFormat(), "console"),
		Output:  stderr,
		NoColor: c.noColor(),
	})
	if err != nil {
		return err
	}
	c.logger = logger

	ids, err := c.sourceIDs(cwd)
	if err != nil {
		return err
	}
	c.store = kev.New(
		kev.WithSources(ids...),
		kev.WithLogger(logger),
		kev.WithMaskKeywords(cfg.MaskKeywords...),
	)
	logger.Debug("store ready", slog.String("root", c.root), slog.Any("sources", ids))
	return nil
}

// sourceIDs picks the lookup chain: --source flags, then configured sources,
// then discovery unless disabled.
func (c *commandContext) sourceIDs(cwd string) ([]string, error) {
	switch {
	case len(c.flags.sources) > 0:
		return c.flags.sources, nil
	case len(c.cfg.Sources) > 0:
		ids, err := c.cfg.ExpandSources(c.root)
		if err != nil {
			return nil, fmt.Errorf("expand sources: %w", err)
		}
		for i, id := range ids {
			if id != kev.SourceOS && !filepath.IsAbs(id) {
				ids[i] = filepath.Join(c.root, id)
			}
		}
		return ids, nil
	case c.flags.noDiscover || !c.cfg.DiscoverEnabled():
		return []string{kev.SourceOS, ".env"}, nil
	default:
		return kev.DefaultSources(cwd), nil
	}
}

func (c *commandContext) noColor() bool {
	return c.flags.noColor || c.cfg.NoColorEnabled() || os.Getenv("NO_COLOR") != ""
}

func pickString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
