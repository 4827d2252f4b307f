package kev

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func bulkStore(t *testing.T) (*Store, *mapEnviron, string) {
	t.Helper()
	f := writeTemp(t, t.TempDir(), ".env", "API_B=file-b\nAPI_A=file-a\nDB_URL=pg\n")
	env := newMapEnviron("API_A", "os-a", "HOME", "/home/kev")
	return New(WithSources("os", f), WithEnviron(env)), env, f
}

func TestKeys(t *testing.T) {
	s, _, f := bulkStore(t)
	s.Set("API_C", "c")

	assert.Equal(t, []string{"API_C", "API_A", "API_B"}, s.Keys("API_*"))
	assert.Equal(t, []string{"API_C", "API_A", "HOME", "API_B", "DB_URL"}, s.Keys(""))
	assert.Equal(t, []string{"os:API_A"}, s.Keys("os:API_*"))
	assert.Equal(t, []string{f + ":API_B", f + ":API_A"}, s.Keys(f+":API_*"))
	assert.Empty(t, s.Keys("NOTHING_*"))
}

func TestAll_CacheOnly(t *testing.T) {
	s, _, _ := bulkStore(t)
	s.Get("API_A")
	s.Set("X", "1")

	assert.Equal(t, map[string]map[string]string{
		SourceMemory: {
			"API_A": "os-a [from: os]",
			"X":      "1 [from: set]",
		},
	}, s.All())
}

func TestAll_Patterns(t *testing.T) {
	s, _, f := bulkStore(t)
	s.Set("API_C", "c")

	assert.Equal(t, map[string]map[string]string{
		SourceMemory: {"API_C": "c"},
		SourceOS:     {"API_A": "os-a"},
		f:            {"API_B": "file-b", "API_A": "file-a"},
	}, s.All("API_*"))

	assert.Equal(t, map[string]map[string]string{
		SourceOS: {"HOME": "/home/kev"},
	}, s.All("os:HOME"))

	assert.Equal(t, map[string]map[string]string{
		f:        {"DB_URL": "pg"},
		SourceOS: {"API_A": "os-a"},
	}, s.All(f+":DB_*", "os:API_*"))

	assert.Empty(t, s.All("NOTHING_*"))
}

func TestClear(t *testing.T) {
	s, env, _ := bulkStore(t)
	s.Set("API_X", "1")
	s.Set("API_Y", "2")
	s.Set("OTHER", "3")

	s.Clear("API_*")
	assert.Equal(t, []KeyEntry{{Key: "OTHER", Entry: Entry{Value: "3", Source: SourceSet}}}, s.Entries())

	s.Clear()
	assert.Empty(t, s.Entries())
	assert.Equal(t, "os-a", env.vars["API_A"], "clear never touches backends")
}

func TestClear_NamespacedPatternPanics(t *testing.T) {
	s, _, _ := bulkStore(t)
	assert.PanicsWithError(t,
		`clear only works on the memory cache, got namespaced pattern "os:*" (use ClearUnsafe)`,
		func() { s.Clear("os:*") })
}

func TestClearUnsafe(t *testing.T) {
	s, env, _ := bulkStore(t)
	env.vars["TMP_ONE"] = "1"
	env.vars["TMP_TWO"] = "2"
	s.Set("CACHED", "x")

	s.ClearUnsafe("os:TMP_*")
	assert.NotContains(t, env.vars, "TMP_ONE")
	assert.NotContains(t, env.vars, "TMP_TWO")
	assert.Contains(t, env.vars, "HOME")
	assert.Len(t, s.Entries(), 1)

	s.ClearUnsafe("CACHED")
	assert.Empty(t, s.Entries())

	s.Set("AGAIN", "y")
	s.ClearUnsafe()
	assert.Empty(t, s.Entries())
}

func TestClearUnsafe_Refusals(t *testing.T) {
	s, env, f := bulkStore(t)

	assert.PanicsWithError(t, `refusing to clear the whole process environment ("os:*")`, func() {
		s.ClearUnsafe("os:*")
	})
	assert.Contains(t, env.vars, "HOME")

	assert.PanicsWithError(t, `clearing file namespace ".env" not yet implemented`, func() {
		s.ClearUnsafe(".env:*")
	})
	assert.Panics(t, func() { s.ClearUnsafe(f + ":API_*") })
	assert.Equal(t, "file-b", s.Get(f+":API_B"))
}

func TestUnset(t *testing.T) {
	s, env, _ := bulkStore(t)
	s.Set("A", "1")
	s.Set("B", "2")

	s.Unset("A", "os:HOME", "NEVER_CACHED")
	assert.Equal(t, []KeyEntry{{Key: "B", Entry: Entry{Value: "2", Source: SourceSet}}}, s.Entries())
	assert.NotContains(t, env.vars, "HOME")

	assert.PanicsWithError(t, `unset from file namespace ".env" not yet implemented`, func() {
		s.Unset(".env:KEY")
	})
}

func TestUnset_ReResolves(t *testing.T) {
	s, _, _ := bulkStore(t)
	s.Set("API_A", "overridden")
	assert.Equal(t, "overridden", s.Get("API_A"))

	s.Unset("API_A")
	v, src := s.GetWithSource("API_A")
	assert.Equal(t, "os-a", v)
	assert.Equal(t, SourceOS, src)
}
