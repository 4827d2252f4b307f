package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/adriangalilea/go-utils/internal/fsutil"
)

// LocalNames are the repo-local config file names, in lookup order.
var LocalNames = []string{".kev.yml", ".kev.yaml", "kev.yml", "kev.yaml"}

// ErrNotFound is returned by LoadLocal and LoadGlobal when no file exists.
var ErrNotFound = errors.New("config not found")

// FileConfig is the on-disk YAML configuration shape for kev.
type FileConfig struct {
	// Sources replaces the default lookup chain. Entries are "os", dotenv
	// paths or doublestar globs such as "apps/*/.env".
	Sources  []string `yaml:"sources,omitempty"`
	Discover *bool    `yaml:"discover,omitempty"`

	LogLevel  *string `yaml:"log_level,omitempty"`
	LogFormat *string `yaml:"log_format,omitempty"`
	NoColor   *bool   `yaml:"no_color,omitempty"`

	MaskKeywords []string `yaml:"mask_keywords,omitempty"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// FindLocal returns the first of LocalNames present in root, or "".
func FindLocal(root string) string {
	for _, name := range LocalNames {
		p := filepath.Join(root, name)
		if fsutil.Exists(p) {
			return p
		}
	}
	return ""
}

// LoadLocal loads the repo-local config file in root.
func LoadLocal(root string) (FileConfig, error) {
	p := FindLocal(root)
	if p == "" {
		return FileConfig{}, ErrNotFound
	}
	return LoadFile(p)
}

// GlobalPath returns $XDG_CONFIG_HOME/kev/config.yml, falling back to
// ~/.config/kev/config.yml. It is "" when neither base directory is known.
func GlobalPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return ""
	}
	return filepath.Join(base, "kev", "config.yml")
}

// LoadGlobal loads the user-wide config file.
func LoadGlobal() (FileConfig, error) {
	p := GlobalPath()
	if p == "" {
		return FileConfig{}, errors.New("no config dir")
	}
	if !fsutil.Exists(p) {
		return FileConfig{}, ErrNotFound
	}
	return LoadFile(p)
}

// Merge overlays local on global: every field set in local wins.
func Merge(local, global FileConfig) FileConfig {
	out := global
	if local.Sources != nil {
		out.Sources = local.Sources
	}
	if local.Discover != nil {
		out.Discover = local.Discover
	}
	if local.LogLevel != nil {
		out.LogLevel = local.LogLevel
	}
	if local.LogFormat != nil {
		out.LogFormat = local.LogFormat
	}
	if local.NoColor != nil {
		out.NoColor = local.NoColor
	}
	if local.MaskKeywords != nil {
		out.MaskKeywords = local.MaskKeywords
	}
	return out
}

// Load merges the local config found in root with the global one. Missing
// files are not an error; unreadable or malformed ones are.
func Load(root string) (FileConfig, error) {
	local, err := LoadLocal(root)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return FileConfig{}, err
	}
	global, err := LoadGlobal()
	if err != nil && !errors.Is(err, ErrNotFound) && GlobalPath() != "" {
		return FileConfig{}, err
	}
	return Merge(local, global), nil
}

// ExpandSources resolves glob entries of Sources against root. "os" and
// plain paths are kept verbatim; a glob that matches nothing contributes
// nothing.
func (fc FileConfig) ExpandSources(root string) ([]string, error) {
	var out []string
	for _, src := range fc.Sources {
		if src == "os" || !fsutil.HasGlobMeta(src) {
			out = append(out, src)
			continue
		}
		matches, err := fsutil.Glob(root, src)
		if err != nil {
			return nil, err
		}
		out = append(out, matches...)
	}
	return out, nil
}

// DiscoverEnabled reports whether project and monorepo .env files are added
// to the sources (default: true).
func (fc FileConfig) DiscoverEnabled() bool {
	if fc.Discover == nil {
		return true
	}
	return *fc.Discover
}

// GetLogLevel returns the configured level or "".
func (fc FileConfig) GetLogLevel() string {
	if fc.LogLevel == nil {
		return ""
	}
	return *fc.LogLevel
}

// GetLogFormat returns the configured format or "".
func (fc FileConfig) GetLogFormat() string {
	if fc.LogFormat == nil {
		return ""
	}
	return *fc.LogFormat
}

func (fc FileConfig) NoColorEnabled() bool {
	return fc.NoColor != nil && *fc.NoColor
}

// Sample is the config written by "kev config init".
func Sample() FileConfig {
	discover := true
	level := "info"
	return FileConfig{
		Sources:      []string{"os", ".env.local", ".env"},
		Discover:     &discover,
		LogLevel:     &level,
		MaskKeywords: []string{"key", "secret", "password", "token"},
	}
}

// WriteLocal writes cfg as .kev.yml in root and returns its path. An
// existing local config is left alone and reported as an error.
func WriteLocal(root string, cfg FileConfig) (string, error) {
	if existing := FindLocal(root); existing != "" {
		return "", fmt.Errorf("config already exists: %s", existing)
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	p := filepath.Join(root, LocalNames[0])
	if err := fsutil.WriteText(p, string(b)); err != nil {
		return "", err
	}
	return p, nil
}
