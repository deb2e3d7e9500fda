package ui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// toastTimerMsg delivers an expired toast timer to the event loop.
type toastTimerMsg struct {
	fire func()
}

// teaScheduler turns toast timers into tea.Tick commands so that expiry
// runs inside Update instead of on a timer goroutine.
type teaScheduler struct {
	mu      sync.Mutex
	pending []tea.Cmd
}

// Schedule implements toast.Scheduler.
func (s *teaScheduler) Schedule(d time.Duration, fire func()) {
	cmd := tea.Tick(d, func(time.Time) tea.Msg {
		return toastTimerMsg{fire: fire}
	})
	s.mu.Lock()
	s.pending = append(s.pending, cmd)
	s.mu.Unlock()
}

// drain returns the timers scheduled since the last call as one command.
func (s *teaScheduler) drain() tea.Cmd {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}
