package kev

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/adriangalilea/go-utils/internal/offensive"
)

// Keys lists keys matching pattern ("" means "*"). A bare pattern unions the
// cache and every source, first-seen order, without duplicates. A namespaced
// pattern ("os:API_*") lists that backend only and returns namespaced keys.
func (s *Store) Keys(pattern string) []string {
	if pattern == "" {
		pattern = "*"
	}
	ns, bare := ParseKey(pattern)
	if ns != "" {
		pairs := s.sourcePairs(parseNamespace(ns), bare)
		out := make([]string, 0, len(pairs))
		for _, p := range pairs {
			out = append(out, joinKey(ns, p.Key))
		}
		return out
	}

	seen := map[string]bool{}
	var out []string
	add := func(k string) {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}

	s.mu.Lock()
	for _, k := range s.order {
		if MatchPattern(k, bare) {
			add(k)
		}
	}
	s.mu.Unlock()

	for _, src := range s.Source.snapshot() {
		for _, p := range s.sourcePairs(src, bare) {
			add(p.Key)
		}
	}
	return out
}

// All groups values by where they live. Without patterns it returns the
// cache only, under "memory", each value annotated as "value [from: source]".
// With patterns, a namespaced pattern contributes a group named after its
// namespace and a bare pattern contributes the matching cache entries plus
// one group per source identifier. Empty groups are omitted.
func (s *Store) All(patterns ...string) map[string]map[string]string {
	out := map[string]map[string]string{}
	put := func(group, key, value string) {
		g, ok := out[group]
		if !ok {
			g = map[string]string{}
			out[group] = g
		}
		if _, exists := g[key]; !exists {
			g[key] = value
		}
	}

	if len(patterns) == 0 {
		for _, e := range s.Entries() {
			put(SourceMemory, e.Key, fmt.Sprintf("%s [from: %s]", e.Value, e.Source))
		}
		return out
	}

	for _, pattern := range patterns {
		ns, bare := ParseKey(pattern)
		if ns != "" {
			for _, p := range s.sourcePairs(parseNamespace(ns), bare) {
				put(ns, p.Key, p.Value)
			}
			continue
		}
		for _, e := range s.Entries() {
			if MatchPattern(e.Key, bare) {
				put(SourceMemory, e.Key, e.Value)
			}
		}
		for _, src := range s.Source.snapshot() {
			for _, p := range s.sourcePairs(src, bare) {
				put(src.ID(), p.Key, p.Value)
			}
		}
	}
	return out
}

// Clear drops cache entries matching any pattern, or the whole cache when no
// pattern is given. It never touches a backend: namespaced patterns panic,
// use ClearUnsafe for those.
func (s *Store) Clear(patterns ...string) {
	for _, p := range patterns {
		if strings.Contains(p, ":") {
			offensive.Panic("clear only works on the memory cache, got namespaced pattern %q (use ClearUnsafe)", p)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(patterns) == 0 {
		s.cache = map[string]Entry{}
		s.order = nil
		return
	}
	for _, p := range patterns {
		s.forget(p)
	}
}

// ClearUnsafe is Clear that also deletes from backends. "os:PATTERN" unsets
// matching environment variables, except "os:*" which always panics. File
// namespaces are not supported and panic.
func (s *Store) ClearUnsafe(patterns ...string) {
	if len(patterns) == 0 {
		s.Clear()
		return
	}
	for _, p := range patterns {
		ns, bare := ParseKey(p)
		if ns == "" {
			s.mu.Lock()
			s.forget(bare)
			s.mu.Unlock()
			continue
		}
		src := parseNamespace(ns)
		switch src.Kind {
		case KindOS:
			if bare == "*" {
				offensive.Panic("refusing to clear the whole process environment (%q)", p)
			}
			for _, pair := range environPairs(s.env, bare) {
				offensive.Check(s.env.Unset(pair.Key), "unset environment variable "+pair.Key)
				s.logger.Debug("unset key", slog.String("key", pair.Key), slog.String("source", SourceOS))
			}
		case KindFile:
			offensive.Panic("clearing file namespace %q not yet implemented", ns)
		}
	}
}

// Unset removes individual keys: bare keys from the cache, "os:KEY" from the
// process environment. File namespaces are not supported and panic.
func (s *Store) Unset(keys ...string) {
	for _, key := range keys {
		ns, bare := ParseKey(key)
		if ns == "" {
			s.mu.Lock()
			if _, ok := s.cache[bare]; ok {
				delete(s.cache, bare)
				s.order = removeString(s.order, bare)
			}
			s.mu.Unlock()
			continue
		}
		src := parseNamespace(ns)
		switch src.Kind {
		case KindOS:
			offensive.Check(s.env.Unset(bare), "unset environment variable "+bare)
		case KindFile:
			offensive.Panic("unset from file namespace %q not yet implemented", ns)
		}
	}
}

func removeString(list []string, v string) []string {
	for i, s := range list {
		if s == v {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
