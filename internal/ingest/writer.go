package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteBooks writes records to path as an indented JSON array that LoadFiles
// can read. The file is replaced atomically.
func WriteBooks(path string, records []BookRecord) error {
	if records == nil {
		records = []BookRecord{}
	}
	return writeJSONFile(path, records)
}

// WriteUsers is the users.json counterpart of WriteBooks.
func WriteUsers(path string, records []UserRecord) error {
	if records == nil {
		records = []UserRecord{}
	}
	return writeJSONFile(path, records)
}

func writeJSONFile(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".ingest-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(append(b, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
