// Package store keeps the bot's configuration in whole-file JSON documents.
// Every change rewrites the file in full; the last writer wins.
package store

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/goccy/go-json"
)

// Document is a JSON file holding a single value of type T.
type Document[T any] struct {
	path     string
	defaults func() T
	mu       sync.Mutex
}

// NewDocument binds a document to path. defaults supplies the value used
// while the file does not exist.
func NewDocument[T any](path string, defaults func() T) *Document[T] {
	return &Document[T]{path: path, defaults: defaults}
}

// Path returns the file backing the document.
func (d *Document[T]) Path() string {
	return d.path
}

// Load reads the file. A missing file yields the default value.
func (d *Document[T]) Load() (T, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	v := d.defaults()
	raw, err := os.ReadFile(d.path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return v, nil
	}
	if err != nil {
		return v, fmt.Errorf("read %s: %w", d.path, err)
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return d.defaults(), fmt.Errorf("decode %s: %w", d.path, err)
	}
	return v, nil
}

// Save rewrites the whole file with two-space indented JSON.
func (d *Document[T]) Save(v T) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", d.path, err)
	}
	if err := os.WriteFile(d.path, raw, 0644); err != nil {
		return fmt.Errorf("write %s: %w", d.path, err)
	}
	return nil
}
