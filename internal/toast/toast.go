// Package toast keeps the list of transient notifications.
package toast

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// DefaultDuration is how long a toast stays visible.
const DefaultDuration = 3 * time.Second

// Type is the category of a toast.
type Type string

const (
	TypeSuccess Type = "success"
	TypeInfo    Type = "info"
	TypeError   Type = "error"
)

// ParseType parses a toast type name. An empty string means TypeSuccess.
func ParseType(s string) (Type, error) {
	switch Type(strings.ToLower(strings.TrimSpace(s))) {
	case "", TypeSuccess:
		return TypeSuccess, nil
	case TypeInfo:
		return TypeInfo, nil
	case TypeError:
		return TypeError, nil
	default:
		return "", fmt.Errorf("invalid toast type %q, must be one of: success, info, error", s)
	}
}

// Expiry selects which toast an expiry timer removes.
type Expiry string

const (
	// ExpireOwn removes exactly the toast the timer was started for.
	ExpireOwn Expiry = "own"
	// ExpireFront removes whatever toast is at the front of the list when
	// the timer fires. Under rapid successive toasts this can dismiss a
	// different entry than the one that started the timer.
	ExpireFront Expiry = "front"
)

// ParseExpiry parses an expiry policy name. An empty string means ExpireOwn.
func ParseExpiry(s string) (Expiry, error) {
	switch Expiry(strings.ToLower(strings.TrimSpace(s))) {
	case "", ExpireOwn:
		return ExpireOwn, nil
	case ExpireFront, "fifo":
		return ExpireFront, nil
	default:
		return "", fmt.Errorf("invalid toast expiry %q, must be one of: own, front", s)
	}
}

// Toast is a single notification.
type Toast struct {
	ID      uint64
	Message string
	Type    Type
}

// Scheduler runs fire once after d. There is no cancellation.
type Scheduler interface {
	Schedule(d time.Duration, fire func())
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(d time.Duration, fire func())

// Schedule implements Scheduler.
func (f SchedulerFunc) Schedule(d time.Duration, fire func()) {
	f(d, fire)
}

// Timers schedules on real timers. fire runs on its own goroutine.
var Timers Scheduler = SchedulerFunc(func(d time.Duration, fire func()) {
	time.AfterFunc(d, fire)
})

// Option configures a Service.
type Option func(*Service)

// WithDuration sets how long each toast stays visible.
func WithDuration(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.duration = d
		}
	}
}

// WithExpiry sets the expiry policy.
func WithExpiry(e Expiry) Option {
	return func(s *Service) {
		if e != "" {
			s.expiry = e
		}
	}
}

// WithScheduler sets the scheduler used for expiry timers.
func WithScheduler(sched Scheduler) Option {
	return func(s *Service) {
		if sched != nil {
			s.sched = sched
		}
	}
}

// Service holds the ordered list of visible toasts.
type Service struct {
	mu       sync.Mutex
	toasts   []Toast
	nextID   uint64
	duration time.Duration
	expiry   Expiry
	sched    Scheduler
}

// New creates a Service.
func New(opts ...Option) *Service {
	s := &Service{
		duration: DefaultDuration,
		expiry:   ExpireOwn,
		sched:    Timers,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetScheduler replaces the scheduler for toasts added from now on.
func (s *Service) SetScheduler(sched Scheduler) {
	if sched == nil {
		return
	}
	s.mu.Lock()
	s.sched = sched
	s.mu.Unlock()
}

// Duration returns how long each toast stays visible.
func (s *Service) Duration() time.Duration {
	return s.duration
}

// Add appends a toast and schedules its expiry. An empty type means
// TypeSuccess.
func (s *Service) Add(message string, typ Type) Toast {
	if typ == "" {
		typ = TypeSuccess
	}

	s.mu.Lock()
	s.nextID++
	t := Toast{ID: s.nextID, Message: message, Type: typ}
	s.toasts = append(s.toasts, t)
	sched := s.sched
	s.mu.Unlock()

	id := t.ID
	sched.Schedule(s.duration, func() { s.expire(id) })
	return t
}

// Success adds a success toast.
func (s *Service) Success(message string) Toast { return s.Add(message, TypeSuccess) }

// Info adds an info toast.
func (s *Service) Info(message string) Toast { return s.Add(message, TypeInfo) }

// Error adds an error toast.
func (s *Service) Error(message string) Toast { return s.Add(message, TypeError) }

// Toasts returns a copy of the visible toasts, oldest first.
func (s *Service) Toasts() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Toast, len(s.toasts))
	copy(out, s.toasts)
	return out
}

// Len returns the number of visible toasts.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.toasts)
}

// Dismiss removes the toast with id. It reports whether it was visible.
func (s *Service) Dismiss(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(id)
}

func (s *Service) expire(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.expiry == ExpireFront {
		if len(s.toasts) > 0 {
			s.toasts = s.toasts[1:]
		}
		return
	}
	s.removeLocked(id)
}

func (s *Service) removeLocked(id uint64) bool {
	for i := range s.toasts {
		if s.toasts[i].ID == id {
			s.toasts = append(s.toasts[:i:i], s.toasts[i+1:]...)
			return true
		}
	}
	return false
}
