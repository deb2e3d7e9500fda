package todo

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/focuslist/internal/logging"
	"github.com/nibzard/focuslist/internal/session"
)

// Store owns the task list and keeps the session snapshot in sync.
//
// Every operation rewrites the full snapshot, including removes, toggles
// and edits whose target id is absent. If the write fails the in-memory
// change is kept and the error is returned.
type Store struct {
	mu       sync.Mutex
	storage  session.Storage
	key      string
	maxChars int
	now      func() time.Time
	logger   *log.Logger
	tasks    []Task
	lastID   int64
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithKey sets the session key used for the snapshot.
func WithKey(key string) StoreOption {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithMaxChars sets the maximum task text length.
func WithMaxChars(n int) StoreOption {
	return func(s *Store) {
		if n > 0 {
			s.maxChars = n
		}
	}
}

// WithClock sets the clock ids are derived from.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger for hydration warnings and mutations.
func WithLogger(logger *log.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a Store and hydrates it from storage.
// A missing or malformed snapshot yields an empty list.
func NewStore(storage session.Storage, opts ...StoreOption) *Store {
	s := &Store{
		storage:  storage,
		key:      DefaultKey,
		maxChars: DefaultMaxChars,
		now:      time.Now,
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.hydrate()
	return s
}

func (s *Store) hydrate() {
	raw, ok, err := s.storage.GetItem(s.key)
	if err != nil {
		s.logger.Warn("reading task snapshot failed, starting empty", "key", s.key, "err", err)
		return
	}
	if !ok {
		s.logger.Debug("no task snapshot", "key", s.key)
		return
	}
	tasks, err := ParseSnapshot([]byte(raw))
	if err != nil {
		s.logger.Warn("discarding malformed task snapshot", "key", s.key, "err", err)
		return
	}
	s.tasks = tasks[:0]
	for _, t := range tasks {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
		text, err := ValidateText(t.Text, s.maxChars)
		if err != nil {
			s.logger.Warn("dropping invalid stored task", "id", t.ID, "err", err)
			continue
		}
		t.Text = text
		s.tasks = append(s.tasks, t)
	}
	s.logger.Debug("hydrated tasks", "key", s.key, "count", len(s.tasks))
}

// MaxChars returns the maximum task text length.
func (s *Store) MaxChars() int {
	return s.maxChars
}

// Tasks returns a copy of the tasks in insertion order.
func (s *Store) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Get returns the task with id.
func (s *Store) Get(id int64) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.tasks[i], true
	}
	return Task{}, false
}

// Add appends a new pending task.
func (s *Store) Add(text string) (Task, error) {
	trimmed, err := ValidateText(text, s.maxChars)
	if err != nil {
		return Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task := Task{ID: s.nextIDLocked(), Text: trimmed}
	s.tasks = append(s.tasks, task)
	s.logger.Debug("task added", "id", task.ID)
	return task, s.persistLocked()
}

// Remove deletes the task with id. It reports whether the task existed.
func (s *Store) Remove(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	kept := s.tasks[:0:0]
	for _, t := range s.tasks {
		if t.ID == id {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept
	if found {
		s.logger.Debug("task removed", "id", id)
	}
	return found, s.persistLocked()
}

// Toggle flips the done flag of the task with id and returns the updated
// task.
func (s *Store) Toggle(id int64) (Task, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return Task{}, false, s.persistLocked()
	}
	s.tasks[i].IsDone = !s.tasks[i].IsDone
	task := s.tasks[i]
	s.logger.Debug("task toggled", "id", id, "done", task.IsDone)
	return task, true, s.persistLocked()
}

// Edit replaces the text of the task with id.
func (s *Store) Edit(id int64, text string) (Task, bool, error) {
	trimmed, err := ValidateText(text, s.maxChars)
	if err != nil {
		return Task{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return Task{}, false, s.persistLocked()
	}
	s.tasks[i].Text = trimmed
	task := s.tasks[i]
	s.logger.Debug("task edited", "id", id)
	return task, true, s.persistLocked()
}

func (s *Store) indexLocked(id int64) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// nextIDLocked derives an id from the clock, bumped past every id handed
// out so far.
func (s *Store) nextIDLocked() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) persistLocked() error {
	data, err := MarshalSnapshot(s.tasks)
	if err != nil {
		return err
	}
	if err := s.storage.SetItem(s.key, string(data)); err != nil {
		s.logger.Error("persisting tasks failed", "key", s.key, "err", err)
		return fmt.Errorf("persist tasks: %w", err)
	}
	return nil
}
