package kev

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// mapEnviron is an in-memory Environ.
type mapEnviron struct {
	vars map[string]string
}

func newMapEnviron(kv ...string) *mapEnviron {
	e := &mapEnviron{vars: map[string]string{}}
	for i := 0; i+1 < len(kv); i += 2 {
		e.vars[kv[i]] = kv[i+1]
	}
	return e
}

func (e *mapEnviron) Lookup(key string) (string, bool) {
	v, ok := e.vars[key]
	return v, ok
}

func (e *mapEnviron) Set(key, value string) error {
	e.vars[key] = value
	return nil
}

func (e *mapEnviron) Unset(key string) error {
	delete(e.vars, key)
	return nil
}

func (e *mapEnviron) Environ() []string {
	keys := make([]string, 0, len(e.vars))
	for k := range e.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+e.vars[k])
	}
	return out
}

// countingFS records how often the disk is touched.
type countingFS struct {
	DiskFileSystem
	calls int
}

func (c *countingFS) Exists(path string) bool {
	c.calls++
	return c.DiskFileSystem.Exists(path)
}

func (c *countingFS) ReadText(path string) (string, error) {
	c.calls++
	return c.DiskFileSystem.ReadText(path)
}

// brokenFS fails every read and write of existing files.
type brokenFS struct {
	DiskFileSystem
}

func (brokenFS) Exists(string) bool { return true }

func (brokenFS) ReadText(path string) (string, error) {
	return "", errors.New("permission denied")
}

func (brokenFS) WriteText(path, content string) error {
	return errors.New("disk full")
}

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return p
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}
