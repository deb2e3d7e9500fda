package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nibzard/focuslist/internal/appdir"
)

// NewID returns a fresh random session id.
func NewID() string {
	return uuid.NewString()
}

// ResolveID picks the session id to use. An explicit id wins; otherwise the
// id is derived from the launching shell so that restarting the application
// from the same terminal resumes the same session.
func ResolveID(explicit string) string {
	if id := strings.TrimSpace(explicit); id != "" {
		return id
	}
	return fmt.Sprintf("shell-%d", os.Getppid())
}

// ValidateID rejects ids that cannot be used as a file name.
func ValidateID(id string) error {
	if id == "" {
		return fmt.Errorf("session id is empty")
	}
	if len(id) > 128 {
		return fmt.Errorf("session id %q is too long", id)
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		valid := (c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '.' || c == '_' || c == '-'
		if !valid {
			return fmt.Errorf("session id %q contains invalid character %q", id, c)
		}
	}
	if strings.HasPrefix(id, ".") {
		return fmt.Errorf("session id %q must not start with a dot", id)
	}
	return nil
}

// Info describes a session file on disk.
type Info struct {
	ID      string
	Path    string
	ModTime time.Time
	Size    int64
}

// List returns the sessions under stateDir, most recently used first.
func List(stateDir string) ([]Info, error) {
	dir := appdir.SessionsPath(stateDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read sessions dir: %w", err)
	}

	var sessions []Info
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !appdir.IsSessionFile(name) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		sessions = append(sessions, Info{
			ID:      strings.TrimSuffix(name, filepath.Ext(name)),
			Path:    filepath.Join(dir, name),
			ModTime: info.ModTime(),
			Size:    info.Size(),
		})
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].ModTime.After(sessions[j].ModTime)
	})
	return sessions, nil
}

// Prune deletes session files not touched within ttl, except keep.
// It returns the ids that were removed. A non-positive ttl disables pruning.
func Prune(stateDir string, ttl time.Duration, keep string, now time.Time) ([]string, error) {
	if ttl <= 0 {
		return nil, nil
	}
	sessions, err := List(stateDir)
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, s := range sessions {
		if s.ID == keep || now.Sub(s.ModTime) < ttl {
			continue
		}
		if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) {
			return removed, fmt.Errorf("remove stale session %s: %w", s.ID, err)
		}
		removed = append(removed, s.ID)
	}
	return removed, nil
}
