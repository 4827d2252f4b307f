package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

func mkdir(t *testing.T, parts ...string) string {
	t.Helper()
	p := filepath.Join(parts...)
	require.NoError(t, os.MkdirAll(p, 0o755))
	return p
}

func TestFindProjectRoot_NearestManifest(t *testing.T) {
	root := t.TempDir()
	writeTemp(t, root, "go.mod", "module example.com/x\n")
	deep := mkdir(t, root, "cmd", "app", "nested")

	assert.Equal(t, root, FindProjectRoot(deep))
	assert.Equal(t, root, FindProjectRoot(root))
}

func TestFindProjectRoot_InnerManifestWins(t *testing.T) {
	root := t.TempDir()
	writeTemp(t, root, "package.json", `{"name":"outer"}`)
	inner := mkdir(t, root, "packages", "web")
	writeTemp(t, inner, "package.json", `{"name":"web"}`)
	src := mkdir(t, inner, "src")

	assert.Equal(t, inner, FindProjectRoot(src))
}

func TestFindProjectRoot_FallsBackToGit(t *testing.T) {
	root := t.TempDir()
	_, err := git.PlainInit(root, false)
	require.NoError(t, err)
	sub := mkdir(t, root, "docs")

	assert.Equal(t, root, FindProjectRoot(sub))
	assert.Equal(t, root, GitRoot(sub))
}

func TestGitRoot_NotARepo(t *testing.T) {
	// t.TempDir is normally outside any repository; skip if the host puts it in one.
	dir := t.TempDir()
	if GitRoot(dir) != "" {
		t.Skip("temp dir lives inside a git worktree")
	}
	assert.Equal(t, "", GitRoot(filepath.Join(dir, "missing")))
}

func TestFindMonorepoRoot_Markers(t *testing.T) {
	cases := map[string]struct {
		name string
		body string
		want bool
	}{
		"go.work":             {"go.work", "go 1.25\nuse ./a\n", true},
		"turbo":               {"turbo.json", "{}", true},
		"pnpm with packages":  {"pnpm-workspace.yaml", "packages:\n  - 'apps/*'\n", true},
		"pnpm empty":          {"pnpm-workspace.yaml", "packages: []\n", false},
		"npm array":           {"package.json", `{"workspaces":["packages/*"]}`, true},
		"npm object":          {"package.json", `{"workspaces":{"packages":["apps/*"]}}`, true},
		"npm no workspaces":   {"package.json", `{"name":"single"}`, false},
		"npm invalid json":    {"package.json", `{"workspaces":`, false},
		"cargo workspace":     {"Cargo.toml", "[workspace]\nmembers = [\"crates/*\"]\n", true},
		"cargo single crate":  {"Cargo.toml", "[package]\nname = \"x\"\n", false},
		"cargo invalid toml":  {"Cargo.toml", "[workspace\n", false},
	}
	for label, tc := range cases {
		t.Run(label, func(t *testing.T) {
			root := t.TempDir()
			writeTemp(t, root, tc.name, tc.body)
			assert.Equal(t, tc.want, IsMonorepoRoot(root))
		})
	}
}

func TestFindMonorepoRoot_WalksUp(t *testing.T) {
	root := t.TempDir()
	writeTemp(t, root, "pnpm-workspace.yaml", "packages:\n  - 'apps/*'\n")
	app := mkdir(t, root, "apps", "web")
	writeTemp(t, app, "package.json", `{"name":"web"}`)

	assert.Equal(t, root, FindMonorepoRoot(app))
	assert.Equal(t, app, FindProjectRoot(app))
}

func TestFindMonorepoRoot_None(t *testing.T) {
	dir := t.TempDir()
	if FindMonorepoRoot(dir) != "" {
		t.Skip("temp dir lives inside a workspace")
	}
	assert.Equal(t, "", FindMonorepoRoot(filepath.Join(dir, "missing")))
}
