package kev

import (
	"strings"
)

// Pair is one key/value found in a backend.
type Pair struct {
	Key   string
	Value string
}

// ReadFileKey returns the value of the first line assigning key in the dotenv
// file at path. Missing or unreadable files read as "".
func ReadFileKey(fsys FileSystem, path, key string) string {
	lines, ok := readLines(fsys, path)
	if !ok {
		return ""
	}
	for _, line := range lines {
		if k, v, ok := parseLine(line); ok && k == key {
			return v
		}
	}
	return ""
}

// ScanFile returns every key in the dotenv file at path matching pattern,
// in file order. Repeated keys keep their first value, mirroring ReadFileKey.
func ScanFile(fsys FileSystem, path, pattern string) []Pair {
	lines, ok := readLines(fsys, path)
	if !ok {
		return nil
	}
	seen := map[string]bool{}
	var out []Pair
	for _, line := range lines {
		k, v, ok := parseLine(line)
		if !ok || seen[k] || !MatchPattern(k, pattern) {
			continue
		}
		seen[k] = true
		out = append(out, Pair{Key: k, Value: v})
	}
	return out
}

// WriteFileKey assigns key in the dotenv file at path. Every existing
// assignment of key is rewritten in place; all other lines, comments and
// blank lines included, are kept verbatim. Without an existing assignment the
// key is appended. A missing file is created holding just the new line.
func WriteFileKey(fsys FileSystem, path, key, value string) error {
	assignment := key + "=" + quoteValue(value)

	var lines []string
	if fsys.Exists(path) {
		content, err := fsys.ReadText(path)
		if err != nil {
			return err
		}
		lines = splitLines(content)
	}

	found := false
	for i, line := range lines {
		if k, _, ok := parseLine(line); ok && k == key {
			lines[i] = assignment
			found = true
		}
	}
	if !found {
		lines = append(lines, assignment)
	}
	return fsys.WriteText(path, strings.Join(lines, "\n")+"\n")
}

func readLines(fsys FileSystem, path string) ([]string, bool) {
	if !fsys.Exists(path) {
		return nil, false
	}
	content, err := fsys.ReadText(path)
	if err != nil {
		return nil, false
	}
	return splitLines(content), true
}

func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}

// parseLine returns the key and unquoted value of a data line. Blank lines,
// comments and lines without "=" are not data.
func parseLine(raw string) (key, value string, ok bool) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	k, v, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	k = strings.TrimSpace(k)
	if k == "" {
		return "", "", false
	}
	return k, unquote(strings.TrimSpace(v)), true
}

func unquote(v string) string {
	if len(v) >= 2 {
		first, last := v[0], v[len(v)-1]
		if first == last && (first == '"' || first == '\'') {
			return v[1 : len(v)-1]
		}
	}
	return v
}

// quoteValue wraps values containing whitespace in quotes. Double quotes are
// used unless the value itself contains one.
func quoteValue(v string) string {
	if !strings.ContainsAny(v, " \t\r\n\v\f") {
		return v
	}
	if strings.Contains(v, `"`) && !strings.Contains(v, "'") {
		return "'" + v + "'"
	}
	return `"` + v + `"`
}
