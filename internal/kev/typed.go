package kev

import (
	"strconv"
	"strings"

	"github.com/adriangalilea/go-utils/internal/offensive"
)

// Int resolves key as an integer, returning def when it resolves to "".
// A value that is not an integer panics.
func (s *Store) Int(key string, def int) int {
	raw := strings.TrimSpace(s.Get(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		offensive.Panic("invalid int for %s: %q", key, raw)
	}
	return n
}

// Float resolves key as a float64, returning def when it resolves to "".
func (s *Store) Float(key string, def float64) float64 {
	raw := strings.TrimSpace(s.Get(key))
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		offensive.Panic("invalid float for %s: %q", key, raw)
	}
	return f
}

// Bool resolves key as a boolean, returning def when it resolves to "".
// Accepted (any case): true/1/yes/on and false/0/no/off.
func (s *Store) Bool(key string, def bool) bool {
	raw := strings.TrimSpace(s.Get(key))
	if raw == "" {
		return def
	}
	switch strings.ToLower(raw) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	}
	offensive.Panic("invalid bool for %s: %q", key, raw)
	return false
}
