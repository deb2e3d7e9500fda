package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/nibzard/focuslist/internal/appdir"
)

// CorruptSuffix is appended to a session file that could not be read back
// when it is moved aside.
const CorruptSuffix = ".corrupt"

// File is a Storage backed by one JSON object per session on disk.
//
// Every write rewrites the whole file through a temp file and rename, so a
// crash never leaves a half-written session behind.
type File struct {
	mu     sync.Mutex
	id     string
	path   string
	items  map[string]string
	closed bool

	backup    string
	recovered error
}

// Open opens (or creates lazily) the storage for sessionID under stateDir.
//
// A file that cannot be parsed, or that holds non-string values, does not
// fail Open: the original is moved to <path>.corrupt, the readable string
// values are kept and Recovered reports what happened.
func Open(stateDir, sessionID string) (*File, error) {
	if err := ValidateID(sessionID); err != nil {
		return nil, err
	}
	path := appdir.SessionFile(stateDir, sessionID)
	f := &File{
		id:    sessionID,
		path:  path,
		items: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}

	items, dropped, err := decodeItems(data)
	if err == nil && len(dropped) > 0 {
		err = fmt.Errorf("non-string values for keys: %s", strings.Join(dropped, ", "))
	}
	if err == nil {
		f.items = items
		return f, nil
	}

	f.backup = path + CorruptSuffix
	f.recovered = err
	if err := os.Rename(path, f.backup); err != nil {
		return nil, fmt.Errorf("move corrupt session file aside: %w", err)
	}
	if len(items) > 0 {
		f.items = items
		if err := f.flush(); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Inspect reads the session file for sessionID without changing it. It
// returns the string values, the keys whose value is not a string, and an
// error if the file cannot be parsed. A missing file yields no items.
func Inspect(stateDir, sessionID string) (map[string]string, []string, error) {
	if err := ValidateID(sessionID); err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(appdir.SessionFile(stateDir, sessionID))
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil, nil
		}
		return nil, nil, fmt.Errorf("read session file: %w", err)
	}
	return decodeItems(data)
}

// decodeItems parses a session file. Keys whose value is not a JSON string
// are left out of items and returned sorted in dropped.
func decodeItems(data []byte) (map[string]string, []string, error) {
	items := make(map[string]string)
	if len(bytes.TrimSpace(data)) == 0 {
		return items, nil, nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return items, nil, fmt.Errorf("parse session file: %w", err)
	}
	var dropped []string
	for key, value := range raw {
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			dropped = append(dropped, key)
			continue
		}
		items[key] = s
	}
	sort.Strings(dropped)
	return items, dropped, nil
}

// Recovered reports whether Open had to move an unreadable session file
// aside, returning the backup path and the reason.
func (f *File) Recovered() (string, error) {
	return f.backup, f.recovered
}

// ID returns the session id.
func (f *File) ID() string {
	return f.id
}

// Path returns the session file path.
func (f *File) Path() string {
	return f.path
}

// GetItem implements Storage.
func (f *File) GetItem(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return "", false, ErrClosed
	}
	v, ok := f.items[key]
	return v, ok, nil
}

// SetItem implements Storage.
func (f *File) SetItem(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	prev, had := f.items[key]
	f.items[key] = value
	if err := f.flush(); err != nil {
		if had {
			f.items[key] = prev
		} else {
			delete(f.items, key)
		}
		return err
	}
	return nil
}

// RemoveItem implements Storage.
func (f *File) RemoveItem(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	if _, ok := f.items[key]; !ok {
		return nil
	}
	delete(f.items, key)
	return f.flush()
}

// Keys implements Storage.
func (f *File) Keys() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil, ErrClosed
	}
	return sortedKeys(f.items), nil
}

// Clear implements Storage.
func (f *File) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	f.items = make(map[string]string)
	return f.flush()
}

// End discards the session: the file is deleted and further calls fail
// with ErrClosed.
func (f *File) End() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.items = nil
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

func (f *File) flush() error {
	data, err := json.MarshalIndent(f.items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+f.id+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close session file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}
