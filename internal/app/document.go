package app

import (
	"errors"
	"io/fs"
	"os"

	"github.com/dshills/scribe/internal/editor"
)

// OpenDocument reads path into a document. A path that does not exist
// yet opens as an empty document that will be created on save. An empty
// path opens an unnamed scratch document.
func OpenDocument(path string, maxUndo int) (*editor.Document, error) {
	opts := []editor.DocumentOption{editor.WithMaxUndo(maxUndo)}
	if path == "" {
		return editor.NewDocument("", opts...), nil
	}
	opts = append(opts, editor.WithPath(path))

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return editor.NewDocument("", opts...), nil
	}
	if err != nil {
		return nil, &FileError{Op: "open", Path: path, Err: err}
	}
	return editor.NewDocument(string(data), opts...), nil
}

// SaveDocument writes doc to its path with its original line endings and
// marks it saved.
func SaveDocument(doc *editor.Document) error {
	if doc.Path == "" {
		return ErrNoFilePath
	}
	if err := os.WriteFile(doc.Path, []byte(doc.SaveText()), 0o644); err != nil {
		return &FileError{Op: "save", Path: doc.Path, Err: err}
	}
	doc.MarkSaved()
	return nil
}
