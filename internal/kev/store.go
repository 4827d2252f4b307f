package kev

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/adriangalilea/go-utils/internal/logging"
	"github.com/adriangalilea/go-utils/internal/offensive"
	"github.com/adriangalilea/go-utils/internal/project"
)

// Entry is a cached resolution: the value and where it came from ("os", an
// absolute file path, "default" or "set").
type Entry struct {
	Value  string `json:"value"`
	Source string `json:"source"`
}

// KeyEntry is a cache entry together with its key.
type KeyEntry struct {
	Key string `json:"key"`
	Entry
}

// Store resolves keys through a cache and an ordered source list. It is safe
// for concurrent use; see the package doc for the sticky-cache semantics.
type Store struct {
	// Source is the lookup chain for bare keys and may be edited at any time.
	Source *SourceList

	mu           sync.Mutex
	cache        map[string]Entry
	order        []string
	env          Environ
	fs           FileSystem
	logger       *slog.Logger
	maskKeywords []string
}

// Option customizes a Store.
type Option func(*Store)

// WithSources replaces the initial source list.
func WithSources(ids ...string) Option {
	return func(s *Store) { s.Source.Set(ids...) }
}

// WithEnviron swaps the process-environment backend.
func WithEnviron(env Environ) Option {
	return func(s *Store) {
		if env != nil {
			s.env = env
		}
	}
}

// WithFileSystem swaps the file backend.
func WithFileSystem(fsys FileSystem) Option {
	return func(s *Store) {
		if fsys != nil {
			s.fs = fsys
		}
	}
}

// WithLogger sets the logger used for resolution tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logging.NewComponentLogger(logger, "kev")
		}
	}
}

// WithMaskKeywords replaces the key fragments that mark a value as sensitive
// in Dump output.
func WithMaskKeywords(words ...string) Option {
	return func(s *Store) {
		if len(words) > 0 {
			s.maskKeywords = slices.Clone(words)
		}
	}
}

// New returns a store whose sources are "os" then ".env".
func New(opts ...Option) *Store {
	s := &Store{
		Source:       newSourceList(SourceOS, ".env"),
		cache:        map[string]Entry{},
		env:          ProcessEnviron{},
		fs:           DiskFileSystem{},
		logger:       logging.NewNop(),
		maskKeywords: slices.Clone(DefaultMaskKeywords),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Discover returns a store seeded with DefaultSources for the working
// directory. Options run after seeding, so WithSources still wins.
func Discover(opts ...Option) *Store {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	seeded := append([]Option{WithSources(DefaultSources(cwd)...)}, opts...)
	return New(seeded...)
}

// DefaultSources returns "os", ".env", then the .env files of the enclosing
// project and monorepo roots, skipping files already listed.
func DefaultSources(cwd string) []string {
	ids := []string{SourceOS, ".env"}
	seen := map[string]bool{filepath.Join(cwd, ".env"): true}
	for _, root := range []string{project.FindProjectRoot(cwd), project.FindMonorepoRoot(cwd)} {
		if root == "" {
			continue
		}
		p := filepath.Join(root, ".env")
		if seen[p] {
			continue
		}
		seen[p] = true
		ids = append(ids, p)
	}
	return ids
}

// Get resolves key. Namespaced keys read their backend directly; bare keys
// go cache, then sources in order, then fallback. A fallback is cached with
// source "default"; a miss without fallback is not cached. The result is ""
// when nothing is found.
func (s *Store) Get(key string, fallback ...string) string {
	ns, bare := ParseKey(key)
	def, hasDef := firstNonEmpty(fallback)
	if ns != "" {
		if v := s.readSource(parseNamespace(ns), bare); v != "" {
			return v
		}
		return def
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	v, _ := s.resolve(bare, def, hasDef)
	return v
}

// MustGet is Get without fallback that panics when the key resolves to "".
func (s *Store) MustGet(key string) string {
	v := s.Get(key)
	if v == "" {
		offensive.Panic("required key not found: %s", key)
	}
	return v
}

// GetWithSource returns the value of key and its provenance. Namespaced
// reads report the namespace ("os" or the absolute file path) when the
// backend was consulted and "default" when the fallback was used.
func (s *Store) GetWithSource(key string, fallback ...string) (value, source string) {
	ns, bare := ParseKey(key)
	def, hasDef := firstNonEmpty(fallback)
	if ns != "" {
		src := parseNamespace(ns)
		if v := s.readSource(src, bare); v != "" {
			return v, s.provenance(src)
		}
		if hasDef {
			return def, SourceDefault
		}
		return "", s.provenance(src)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolve(bare, def, hasDef)
}

// SourceOf returns the provenance of a cached bare key, or "" if the key was
// never resolved or set.
func (s *Store) SourceOf(key string) string {
	_, bare := ParseKey(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache[bare].Source
}

// Set assigns key. Bare keys are cached with source "set" and override every
// source. "os:KEY" sets the process environment and "<file>:KEY" rewrites the
// dotenv file; neither touches the cache.
func (s *Store) Set(key, value string) {
	ns, bare := ParseKey(key)
	if ns == "" {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.store(bare, Entry{Value: value, Source: SourceSet})
		return
	}
	s.writeSource(parseNamespace(ns), bare, value)
}

// Has reports whether key is available without falling back to a default.
// For the environment an existing variable counts even when it is empty.
func (s *Store) Has(key string) bool {
	ns, bare := ParseKey(key)
	if ns != "" {
		return s.hasInSource(parseNamespace(ns), bare)
	}
	s.mu.Lock()
	if _, ok := s.cache[bare]; ok {
		s.mu.Unlock()
		return true
	}
	s.mu.Unlock()
	for _, src := range s.Source.snapshot() {
		if s.hasInSource(src, bare) {
			return true
		}
	}
	return false
}

// Entries returns the cache in insertion order.
func (s *Store) Entries() []KeyEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]KeyEntry, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, KeyEntry{Key: k, Entry: s.cache[k]})
	}
	return out
}

// resolve implements the bare-key chain. Callers hold s.mu.
func (s *Store) resolve(bare, def string, hasDef bool) (string, string) {
	if e, ok := s.cache[bare]; ok {
		return e.Value, e.Source
	}
	for _, src := range s.Source.snapshot() {
		v := s.readSource(src, bare)
		if v == "" {
			continue
		}
		prov := s.provenance(src)
		s.store(bare, Entry{Value: v, Source: prov})
		s.logger.Debug("resolved key", slog.String("key", bare), slog.String("source", prov))
		return v, prov
	}
	if hasDef {
		s.store(bare, Entry{Value: def, Source: SourceDefault})
		s.logger.Debug("using default", slog.String("key", bare))
		return def, SourceDefault
	}
	s.logger.Debug("key not found", slog.String("key", bare))
	return "", ""
}

// store writes a cache entry. Callers hold s.mu.
func (s *Store) store(bare string, e Entry) {
	if _, ok := s.cache[bare]; !ok {
		s.order = append(s.order, bare)
	}
	s.cache[bare] = e
}

// forget removes cache entries matching pattern. Callers hold s.mu.
func (s *Store) forget(pattern string) int {
	n := 0
	s.order = slices.DeleteFunc(s.order, func(k string) bool {
		if !MatchPattern(k, pattern) {
			return false
		}
		delete(s.cache, k)
		n++
		return true
	})
	return n
}

func (s *Store) readSource(src Source, bare string) string {
	switch src.Kind {
	case KindOS:
		v, _ := s.env.Lookup(bare)
		return v
	case KindFile:
		return ReadFileKey(s.fs, src.Path, bare)
	}
	offensive.Unreachable("source kind %d", src.Kind)
	return ""
}

func (s *Store) hasInSource(src Source, bare string) bool {
	if src.Kind == KindOS {
		_, ok := s.env.Lookup(bare)
		return ok
	}
	return s.readSource(src, bare) != ""
}

func (s *Store) writeSource(src Source, bare, value string) {
	switch src.Kind {
	case KindOS:
		offensive.Check(s.env.Set(bare, value), "set environment variable "+bare)
	case KindFile:
		offensive.Check(WriteFileKey(s.fs, src.Path, bare, value), "write "+src.Path)
	default:
		offensive.Unreachable("source kind %d", src.Kind)
	}
	s.logger.Debug("wrote key", slog.String("key", bare), slog.String("source", s.provenance(src)))
}

func (s *Store) provenance(src Source) string {
	if src.Kind == KindOS {
		return SourceOS
	}
	return s.fs.Abs(src.Path)
}

// sourcePairs lists the pairs of src whose keys match pattern.
func (s *Store) sourcePairs(src Source, pattern string) []Pair {
	if src.Kind == KindOS {
		return environPairs(s.env, pattern)
	}
	return ScanFile(s.fs, src.Path, pattern)
}

// parseNamespace maps a key namespace to its backend. Namespaces that are
// neither "os" nor path-like panic.
func parseNamespace(ns string) Source {
	return ParseSource(ns)
}

// firstNonEmpty treats an empty fallback like no fallback, since "" already
// means "not found".
func firstNonEmpty(fallback []string) (string, bool) {
	if len(fallback) == 0 || fallback[0] == "" {
		return "", false
	}
	return fallback[0], true
}
