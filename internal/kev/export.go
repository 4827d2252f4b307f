package kev

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/adriangalilea/go-utils/internal/offensive"
)

// DefaultMaskKeywords mark a key as sensitive when contained in its name,
// case-insensitively.
var DefaultMaskKeywords = []string{"key", "secret", "password", "token"}

// Export writes every cached entry to path as "KEY=value  # from: source",
// in the order the entries were first cached, replacing the file.
func (s *Store) Export(path string) {
	entries := s.Entries()
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s=%s  # from: %s\n", e.Key, quoteValue(e.Value), e.Source)
	}
	offensive.Check(s.fs.WriteText(path, b.String()), "export "+path)
	s.logger.Debug("exported cache", slog.String("path", path), slog.Int("keys", len(entries)))
}

// Dump prints All(patterns...) to w, groups and keys sorted, masking the
// values of sensitive keys.
func (s *Store) Dump(w io.Writer, patterns ...string) error {
	return s.dump(w, true, patterns)
}

// DumpUnmasked is Dump with every value printed as stored.
func (s *Store) DumpUnmasked(w io.Writer, patterns ...string) error {
	return s.dump(w, false, patterns)
}

func (s *Store) dump(w io.Writer, mask bool, patterns []string) error {
	groups := s.All(patterns...)
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := fmt.Fprintf(w, "[%s]\n", name); err != nil {
			return err
		}
		group := groups[name]
		keys := make([]string, 0, len(group))
		for k := range group {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v := group[k]
			if mask && IsSensitive(k, s.maskKeywords...) {
				v = Mask(v)
			}
			if _, err := fmt.Fprintf(w, "  %s=%s\n", k, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// MaskKeywords returns the keywords this store masks in Dump.
func (s *Store) MaskKeywords() []string {
	return append([]string(nil), s.maskKeywords...)
}

// IsSensitive reports whether key contains one of keywords, ignoring case.
// With no keywords DefaultMaskKeywords apply.
func IsSensitive(key string, keywords ...string) bool {
	if len(keywords) == 0 {
		keywords = DefaultMaskKeywords
	}
	lower := strings.ToLower(key)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// Mask keeps the first four characters of v followed by "****". Values
// shorter than five characters are fully hidden.
func Mask(v string) string {
	r := []rune(v)
	if len(r) < 5 {
		return "****"
	}
	return string(r[:4]) + "****"
}
