package app

import (
	"errors"
	"os"

	"github.com/dshills/mentions/internal/engine/buffer"
)

// LoadDocument reads path into a document. A missing file yields an empty
// document so new files can be created by saving.
func LoadDocument(path string) (buffer.Document, error) {
	if path == "" {
		return buffer.NewDocument(""), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return buffer.NewDocument(""), nil
	}
	if err != nil {
		return buffer.Document{}, &FileError{Op: "open", Path: path, Err: err}
	}
	return buffer.NewDocument(string(data)), nil
}

// SaveDocument writes doc to path with mention leaves written as their
// labels.
func SaveDocument(path string, doc buffer.Document) error {
	if path == "" {
		return ErrNoFilePath
	}
	if err := os.WriteFile(path, []byte(doc.DisplayText()), 0o644); err != nil {
		return &FileError{Op: "save", Path: path, Err: err}
	}
	return nil
}
