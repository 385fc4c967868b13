package storage

import (
	"encoding/json"
	"errors"
	"os"
)

// ReadJSON reads path into v. A missing file returns os.ErrNotExist
// unwrapped so callers can fail open to an empty structure.
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// WriteJSON atomically writes v to path as indented JSON.
func WriteJSON(path string, v any) error {
	writer, err := NewAtomicWriter(path)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		writer.Abort()
		return err
	}

	return writer.Commit()
}

// IsNotExist reports whether err indicates a missing file.
func IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
