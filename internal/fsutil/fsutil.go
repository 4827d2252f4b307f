// Package fsutil wraps the filesystem and path calls the rest of the module
// relies on: existence checks, whole-file text reads and rewrites, absolute
// paths, globbing and content fingerprints.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
	xxhash "github.com/cespare/xxhash/v2"
	"github.com/gofrs/flock"
)

// Exists reports whether path exists. Permission errors count as absent.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}

// ReadText returns the full content of path. A missing file is reported with
// an error satisfying errors.Is(err, fs.ErrNotExist).
func ReadText(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(b), nil
}

// WriteText replaces the content of path. The new content is written to a
// temporary sibling and renamed over the target while holding an advisory
// lock, so readers never observe a half-written file. Parent directories are
// created as needed and an existing file keeps its permissions.
func WriteText(path, content string) error {
	abs := Abs(path)
	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure dir %s: %w", dir, err)
	}

	lock := flock.New(LockPath(abs))
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", path, err)
	}
	defer func() { _ = lock.Unlock() }()

	mode := fs.FileMode(0o644)
	if st, err := os.Stat(abs); err == nil {
		mode = st.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(abs)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		cleanup()
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		cleanup()
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// LockPath returns the advisory lock file guarding rewrites of path. Locks
// live in the temp dir so project directories are not littered with them.
func LockPath(path string) string {
	return filepath.Join(os.TempDir(), "go-utils-"+FingerprintString(Abs(path))+".lock")
}

// Abs returns the absolute, cleaned form of path. It falls back to the
// cleaned relative path if the working directory cannot be determined.
func Abs(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

// HasGlobMeta reports whether pattern contains glob metacharacters.
func HasGlobMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// Glob returns the sorted paths matching a doublestar pattern ("**" crosses
// directories). Relative patterns resolve against root; an empty root means
// the working directory.
func Glob(root, pattern string) ([]string, error) {
	if filepath.IsAbs(pattern) {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		sort.Strings(matches)
		return matches, nil
	}
	if root == "" {
		root = "."
	}
	clean := strings.TrimPrefix(filepath.ToSlash(pattern), "./")
	matches, err := doublestar.Glob(os.DirFS(root), clean)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, filepath.Join(root, filepath.FromSlash(m)))
	}
	sort.Strings(out)
	return out, nil
}

// Fingerprint returns the xxhash of the file content as 16 hex digits.
func Fingerprint(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("fingerprint %s: %w", path, err)
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(b)), nil
}

// FingerprintString is Fingerprint for in-memory content.
func FingerprintString(s string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(s))
}
