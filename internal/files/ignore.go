// Package files edits project housekeeping files.
package files

import (
	"path/filepath"
	"strings"

	"github.com/adriangalilea/go-utils/internal/fsutil"
)

// EnsureIgnored makes sure every pattern has its own line in the .gitignore
// at repoRoot and returns the patterns it had to add. The file is created if
// missing; existing lines are kept verbatim. Idempotent.
func EnsureIgnored(repoRoot string, patterns ...string) ([]string, error) {
	path := filepath.Join(repoRoot, ".gitignore")
	content := ""
	if fsutil.Exists(path) {
		c, err := fsutil.ReadText(path)
		if err != nil {
			return nil, err
		}
		content = c
	}

	existing := map[string]bool{}
	for _, line := range strings.Split(content, "\n") {
		existing[strings.TrimSpace(line)] = true
	}

	var added []string
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" || existing[p] {
			continue
		}
		existing[p] = true
		added = append(added, p)
	}
	if len(added) == 0 {
		return nil, nil
	}

	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += strings.Join(added, "\n") + "\n"
	if err := fsutil.WriteText(path, content); err != nil {
		return nil, err
	}
	return added, nil
}

// DefaultSecretIgnores returns the dotenv patterns that should never be
// committed.
func DefaultSecretIgnores() []string {
	return []string{
		".env",
		".env.local",
		".env.*.local",
	}
}
