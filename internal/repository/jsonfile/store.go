// Package jsonfile implements the repository interfaces on top of flat JSON
// files. Each collection lives in a single file under the data directory;
// writes go through a temp-file-then-rename so readers never observe a
// partially written file.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// store serializes access to one JSON file holding a value of type T.
type store[T any] struct {
	path string
	mu   sync.RWMutex
}

func newStore[T any](dataDir, filename string) *store[T] {
	return &store[T]{path: filepath.Join(dataDir, filename)}
}

// read loads the file contents. A missing file yields the zero value.
func (s *store[T]) read() (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var v T
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return v, nil
		}
		return v, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return v, nil
}

// write persists v atomically: marshal, write to a temp file in the same
// directory, then rename over the target.
func (s *store[T]) write(v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(v)
}

func (s *store[T]) writeLocked(v T) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", s.path, err)
	}
	return nil
}

// update applies fn to the current contents under the write lock and
// persists the result. fn returning an error aborts without writing.
func (s *store[T]) update(fn func(T) (T, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var v T
	data, err := os.ReadFile(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("decode %s: %w", s.path, err)
		}
	}

	next, err := fn(v)
	if err != nil {
		return err
	}
	return s.writeLocked(next)
}
