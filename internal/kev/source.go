package kev

import (
	"slices"
	"strings"
	"sync"

	"github.com/adriangalilea/go-utils/internal/offensive"
)

// Provenance values recorded next to cached entries. File sources record
// their absolute path instead.
const (
	SourceOS      = "os"
	SourceDefault = "default"
	SourceSet     = "set"
	// SourceMemory names the cache group in All and Dump output.
	SourceMemory = "memory"
)

// SourceKind selects the backend of a Source.
type SourceKind int

const (
	KindOS SourceKind = iota + 1
	KindFile
)

func (k SourceKind) String() string {
	switch k {
	case KindOS:
		return "os"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// Source is one backend in the lookup chain: the process environment or a
// dotenv file.
type Source struct {
	Kind SourceKind
	Path string
}

// OS is the process-environment source.
func OS() Source { return Source{Kind: KindOS} }

// File is a dotenv file source. Relative paths resolve against the working
// directory at lookup time.
func File(path string) Source { return Source{Kind: KindFile, Path: path} }

// ID returns the identifier the source was parsed from.
func (s Source) ID() string {
	if s.Kind == KindOS {
		return SourceOS
	}
	return s.Path
}

// ParseSource maps an identifier to a Source: "os" is the environment and
// anything containing "." or "/" is a file. Other identifiers panic.
func ParseSource(id string) Source {
	switch {
	case id == SourceOS:
		return OS()
	case strings.ContainsAny(id, "./"):
		return File(id)
	default:
		offensive.Panic("unknown source %q: expected \"os\" or a file path", id)
		return Source{}
	}
}

// SourceList is the ordered lookup chain for bare keys. Earlier sources win.
// It is safe for concurrent use.
type SourceList struct {
	mu    sync.Mutex
	items []Source
}

func newSourceList(ids ...string) *SourceList {
	l := &SourceList{}
	l.Set(ids...)
	return l
}

// List returns the source identifiers in lookup order.
func (l *SourceList) List() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.items))
	for i, s := range l.items {
		out[i] = s.ID()
	}
	return out
}

// Len returns the number of sources.
func (l *SourceList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// Add appends sources (lowest priority).
func (l *SourceList) Add(ids ...string) {
	parsed := parseSources(ids)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, parsed...)
}

// Prepend inserts sources ahead of all others, keeping their given order.
func (l *SourceList) Prepend(ids ...string) {
	parsed := parseSources(ids)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(parsed, l.items...)
}

// Remove deletes every occurrence of id and reports whether any was found.
func (l *SourceList) Remove(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := len(l.items)
	l.items = slices.DeleteFunc(l.items, func(s Source) bool { return s.ID() == id })
	return len(l.items) != n
}

// Set replaces the whole list.
func (l *SourceList) Set(ids ...string) {
	parsed := parseSources(ids)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = parsed
}

func (l *SourceList) snapshot() []Source {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.items)
}

func parseSources(ids []string) []Source {
	out := make([]Source, 0, len(ids))
	for _, id := range ids {
		out = append(out, ParseSource(id))
	}
	return out
}
