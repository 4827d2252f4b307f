package kev

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypedGetters(t *testing.T) {
	env := newMapEnviron(
		"PORT", "8080",
		"NEG", " -3 ",
		"RATIO", "0.75",
		"DEBUG", "Yes",
		"QUIET", "off",
		"BAD_INT", "eighty",
		"BAD_FLOAT", "1.2.3",
		"BAD_BOOL", "maybe",
	)
	s := New(WithSources("os"), WithEnviron(env))

	assert.Equal(t, 8080, s.Int("PORT", 0))
	assert.Equal(t, -3, s.Int("NEG", 0))
	assert.Equal(t, 42, s.Int("UNSET_INT", 42))
	assert.InDelta(t, 0.75, s.Float("RATIO", 0), 1e-9)
	assert.InDelta(t, 1.5, s.Float("UNSET_FLOAT", 1.5), 1e-9)
	assert.True(t, s.Bool("DEBUG", false))
	assert.False(t, s.Bool("QUIET", true))
	assert.True(t, s.Bool("UNSET_BOOL", true))

	assert.PanicsWithError(t, `invalid int for BAD_INT: "eighty"`, func() { s.Int("BAD_INT", 0) })
	assert.PanicsWithError(t, `invalid float for BAD_FLOAT: "1.2.3"`, func() { s.Float("BAD_FLOAT", 0) })
	assert.PanicsWithError(t, `invalid bool for BAD_BOOL: "maybe"`, func() { s.Bool("BAD_BOOL", false) })
}

func TestBool_AcceptedSpellings(t *testing.T) {
	for raw, want := range map[string]bool{
		"true": true, "TRUE": true, "1": true, "yes": true, "On": true,
		"false": false, "False": false, "0": false, "no": false, "OFF": false,
	} {
		s := New(WithSources("os"), WithEnviron(newMapEnviron("FLAG", raw)))
		assert.Equal(t, want, s.Bool("FLAG", !want), raw)
	}
}
