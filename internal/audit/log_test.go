package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLog_RecordAndHistory(t *testing.T) {
	root := t.TempDir()
	log := NewAuditLog(root)
	assert.Equal(t, filepath.Join(root, ".kev_audit.jsonl"), log.Path())

	history, err := log.LoadHistory()
	require.NoError(t, err)
	assert.Empty(t, history)

	first := NewWriteRecord(root, "/app/.env", "PORT", "", "8080")
	second := NewWriteRecord(root, "/app/.env", "PORT", "8080", "9090")
	require.NoError(t, log.Record(first))
	require.NoError(t, log.Record(second))

	history, err = log.LoadHistory()
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.True(t, history[0].Changed(), "newest first")
	assert.True(t, history[1].Created())
	assert.Equal(t, history[1].Current, history[0].Previous)
	assert.NotEmpty(t, history[0].ID)

	raw, err := os.ReadFile(log.Path())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "9090", "values are fingerprinted")
	assert.Equal(t, 2, strings.Count(string(raw), "\n"))

	st, err := os.Stat(log.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), st.Mode().Perm())
}

func TestNewAuditLog_PrefersGitDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	assert.Equal(t, filepath.Join(root, ".git", "kev_audit.jsonl"), NewAuditLog(root).Path())
}

func TestWriteRecord_SameValue(t *testing.T) {
	rec := NewWriteRecord("/r", "/r/.env", "K", "v", "v")
	assert.False(t, rec.Created())
	assert.False(t, rec.Changed())
}
