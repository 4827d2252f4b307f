package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adriangalilea/go-utils/internal/fsutil"
)

// WriteRecord describes one key written to a dotenv file. Values are never
// stored, only their fingerprints.
type WriteRecord struct {
	Timestamp time.Time `json:"timestamp"`
	ID        string    `json:"id"`
	Root      string    `json:"root"`
	Key       string    `json:"key"`
	File      string    `json:"file"`
	// Previous is the fingerprint of the value before the write, "" if the
	// key was not set.
	Previous string `json:"previous,omitempty"`
	Current  string `json:"current"`
}

// Created reports whether the write introduced the key.
func (r WriteRecord) Created() bool { return r.Previous == "" }

// Changed reports whether the write altered an existing value.
func (r WriteRecord) Changed() bool { return r.Previous != "" && r.Previous != r.Current }

type AuditLog struct {
	logPath string
}

// NewAuditLog keeps the journal inside .git when root is a checkout so it is
// never committed by accident.
func NewAuditLog(root string) *AuditLog {
	gitDir := filepath.Join(root, ".git")
	logPath := filepath.Join(root, ".kev_audit.jsonl")
	if fsutil.IsDir(gitDir) {
		logPath = filepath.Join(gitDir, "kev_audit.jsonl")
	}
	return &AuditLog{logPath: logPath}
}

func (a *AuditLog) Path() string { return a.logPath }

// LoadHistory returns the records newest first. A missing journal is empty.
func (a *AuditLog) LoadHistory() ([]WriteRecord, error) {
	f, err := os.Open(a.logPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var records []WriteRecord
	decoder := json.NewDecoder(f)
	for decoder.More() {
		var record WriteRecord
		if err := decoder.Decode(&record); err != nil {
			break
		}
		records = append(records, record)
	}

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

func (a *AuditLog) Record(record WriteRecord) error {
	if record.ID == "" {
		record.ID = fmt.Sprintf("write_%d", record.Timestamp.UnixNano())
	}

	// owner-only: key names and file paths can be sensitive
	f, err := os.OpenFile(a.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(record); err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}
	return nil
}

// NewWriteRecord fingerprints previous and current. An empty previous value
// means the key did not exist.
func NewWriteRecord(root, file, key, previous, current string) WriteRecord {
	rec := WriteRecord{
		Timestamp: time.Now(),
		Root:      root,
		Key:       key,
		File:      file,
		Current:   fsutil.FingerprintString(current),
	}
	if previous != "" {
		rec.Previous = fsutil.FingerprintString(previous)
	}
	return rec
}
