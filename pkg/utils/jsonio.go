package utils

import (
	"encoding/json"
	"io"
)

// MarshalEntries pretty-prints cache entries (Store.Entries) as JSON for
// humans or pipelines.
func MarshalEntries(w io.Writer, entries []KeyEntry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// UnmarshalEntries decodes entries JSON.
func UnmarshalEntries(r io.Reader) ([]KeyEntry, error) {
	var entries []KeyEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, err
	}
	return entries, nil
}
