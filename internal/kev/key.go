package kev

import (
	"strings"

	"github.com/adriangalilea/go-utils/internal/offensive"
)

// ParseKey splits key into its namespace and bare key. A key without a colon
// has an empty namespace. Malformed keys panic.
func ParseKey(key string) (namespace, bare string) {
	if strings.HasPrefix(key, ":") {
		offensive.Panic("invalid key format - starts with colon: %q", key)
	}
	if strings.Contains(key, "::") {
		offensive.Panic("invalid key format - double colon: %q", key)
	}
	ns, rest, found := strings.Cut(key, ":")
	if !found {
		return "", key
	}
	if ns == "" || rest == "" {
		offensive.Panic("invalid key format - empty namespace or key: %q", key)
	}
	return ns, rest
}

func joinKey(namespace, bare string) string {
	if namespace == "" {
		return bare
	}
	return namespace + ":" + bare
}
