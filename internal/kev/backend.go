package kev

import (
	"os"
	"strings"

	"github.com/adriangalilea/go-utils/internal/fsutil"
)

// Environ is the process-environment backend.
type Environ interface {
	Lookup(key string) (string, bool)
	Set(key, value string) error
	Unset(key string) error
	// Environ returns "KEY=value" entries.
	Environ() []string
}

// FileSystem is the file I/O the dotenv backend and Export need.
type FileSystem interface {
	Exists(path string) bool
	// ReadText fails when path exists but cannot be read.
	ReadText(path string) (string, error)
	WriteText(path, content string) error
	Abs(path string) string
}

// ProcessEnviron reads and writes the live process environment.
type ProcessEnviron struct{}

func (ProcessEnviron) Lookup(key string) (string, bool) { return os.LookupEnv(key) }

func (ProcessEnviron) Set(key, value string) error { return os.Setenv(key, value) }

func (ProcessEnviron) Unset(key string) error { return os.Unsetenv(key) }

func (ProcessEnviron) Environ() []string { return os.Environ() }

// DiskFileSystem is the real filesystem.
type DiskFileSystem struct{}

func (DiskFileSystem) Exists(path string) bool { return fsutil.Exists(path) }

func (DiskFileSystem) ReadText(path string) (string, error) { return fsutil.ReadText(path) }

func (DiskFileSystem) WriteText(path, content string) error { return fsutil.WriteText(path, content) }

func (DiskFileSystem) Abs(path string) string { return fsutil.Abs(path) }

// environPairs lists environment entries whose key matches pattern, in the
// order the environment reports them.
func environPairs(env Environ, pattern string) []Pair {
	var out []Pair
	for _, entry := range env.Environ() {
		k, v, ok := strings.Cut(entry, "=")
		// Windows keeps per-drive cwd entries like "=C:=C:\"
		if !ok || k == "" {
			continue
		}
		if MatchPattern(k, pattern) {
			out = append(out, Pair{Key: k, Value: v})
		}
	}
	return out
}
