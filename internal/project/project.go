// Package project locates project, monorepo and git roots by walking parent
// directories from a starting point.
package project

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/adriangalilea/go-utils/internal/fsutil"
)

// projectMarkers identify the root of a single project.
var projectMarkers = []string{
	"go.mod",
	"package.json",
	"Cargo.toml",
	"pyproject.toml",
	"deno.json",
	"deno.jsonc",
}

// FindProjectRoot returns the nearest ancestor of start (inclusive) holding a
// project manifest. Without a manifest it falls back to the enclosing git
// worktree, and returns "" when neither exists up to the filesystem root.
func FindProjectRoot(start string) string {
	if root := walkUp(start, hasProjectMarker); root != "" {
		return root
	}
	return GitRoot(start)
}

// FindMonorepoRoot returns the nearest ancestor of start (inclusive) that
// declares a workspace, or "" if none does.
func FindMonorepoRoot(start string) string {
	return walkUp(start, IsMonorepoRoot)
}

// GitRoot returns the top of the git worktree containing start, or "".
func GitRoot(start string) string {
	dir, err := validateStart(start)
	if err != nil {
		return ""
	}
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}
	wt, err := repo.Worktree()
	if err != nil {
		// bare repository
		return ""
	}
	return wt.Filesystem.Root()
}

// IsMonorepoRoot reports whether dir declares a workspace of several packages.
func IsMonorepoRoot(dir string) bool {
	for _, name := range []string{"go.work", "lerna.json", "nx.json", "turbo.json"} {
		if fsutil.Exists(filepath.Join(dir, name)) {
			return true
		}
	}
	return pnpmWorkspace(dir) || npmWorkspaces(dir) || cargoWorkspace(dir)
}

func hasProjectMarker(dir string) bool {
	for _, name := range projectMarkers {
		if fsutil.Exists(filepath.Join(dir, name)) {
			return true
		}
	}
	return false
}

// walkUp applies match to start and each parent and returns the first hit.
func walkUp(start string, match func(dir string) bool) string {
	dir, err := validateStart(start)
	if err != nil {
		return ""
	}
	for {
		if match(dir) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func validateStart(start string) (string, error) {
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		start = wd
	}
	if strings.ContainsRune(start, 0) {
		return "", os.ErrInvalid
	}
	abs := fsutil.Abs(start)
	if !fsutil.IsDir(abs) {
		return "", os.ErrNotExist
	}
	return abs, nil
}

func pnpmWorkspace(dir string) bool {
	b, err := os.ReadFile(filepath.Join(dir, "pnpm-workspace.yaml"))
	if err != nil {
		return false
	}
	var ws struct {
		Packages []string `yaml:"packages"`
	}
	if err := yaml.Unmarshal(b, &ws); err != nil {
		return false
	}
	return len(ws.Packages) > 0
}

// npmWorkspaces accepts both the array form and the {"packages": [...]} form.
func npmWorkspaces(dir string) bool {
	b, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil || !gjson.ValidBytes(b) {
		return false
	}
	ws := gjson.GetBytes(b, "workspaces")
	if ws.IsArray() {
		return len(ws.Array()) > 0
	}
	return len(ws.Get("packages").Array()) > 0
}

func cargoWorkspace(dir string) bool {
	b, err := os.ReadFile(filepath.Join(dir, "Cargo.toml"))
	if err != nil {
		return false
	}
	var manifest struct {
		Workspace *struct {
			Members []string `toml:"members"`
		} `toml:"workspace"`
	}
	if err := toml.Unmarshal(b, &manifest); err != nil {
		return false
	}
	return manifest.Workspace != nil
}
