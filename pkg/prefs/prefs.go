// Package prefs persists per-command preferences as JSON files.
//
// Each named preference set lives in its own file, <dir>/<Name>_data.json.
// A file is always written whole through a temp file and rename, so readers
// never see a partial write. Concurrent writers are last-writer-wins.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/matzehuels/artkit/pkg/errors"
)

const suffix = "_data.json"

// Store reads and writes preference files in one directory.
type Store struct {
	mu  sync.RWMutex
	dir string
}

// DefaultDir returns $XDG_CONFIG_HOME/artkit/prefs, falling back to
// ~/.config/artkit/prefs.
func DefaultDir() (string, error) {
	if x := os.Getenv("XDG_CONFIG_HOME"); x != "" {
		return filepath.Join(x, "artkit", "prefs"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "get home dir")
	}
	return filepath.Join(home, ".config", "artkit", "prefs"), nil
}

// NewStore opens a store in dir, creating it when missing. An empty dir
// selects DefaultDir.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create prefs dir")
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory holding the preference files.
func (s *Store) Dir() string { return s.dir }

// Path returns the file backing name.
func (s *Store) Path(name string) (string, error) {
	if err := errors.ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name+suffix), nil
}

// Load decodes the preference set name into v. It reports false, leaving v
// untouched, when no file exists.
func (s *Store) Load(name string, v any) (bool, error) {
	path, err := s.Path(name)
	if err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse %s", path)
	}
	return true, nil
}

// Save replaces the preference set name with v.
func (s *Store) Save(name string, v any) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshal %s", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, "."+name+"-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}

// Delete removes the preference set name. Deleting a missing set is not an
// error.
func (s *Store) Delete(name string) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "remove %s", path)
	}
	return nil
}

// List returns the names of all stored preference sets, sorted.
func (s *Store) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read prefs dir")
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), suffix) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), suffix))
	}
	sort.Strings(names)
	return names, nil
}
