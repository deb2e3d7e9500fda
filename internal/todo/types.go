package todo

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultMaxChars is the maximum task text length in characters.
const DefaultMaxChars = 100

// DefaultKey is the session key the task snapshot is stored under.
const DefaultKey = "tasks"

var (
	// ErrEmptyText is returned when task text is blank after trimming.
	ErrEmptyText = errors.New("task text is empty")
	// ErrTextTooLong is returned when task text exceeds the maximum length.
	ErrTextTooLong = errors.New("task text is too long")
)

// Task is a single to-do item.
type Task struct {
	ID     int64  `json:"id"`
	Text   string `json:"text"`
	IsDone bool   `json:"isDone"`
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // Location of the offending value
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidateText trims text and checks it against maxChars.
// It returns the trimmed text. A non-positive maxChars uses DefaultMaxChars.
func ValidateText(text string, maxChars int) (string, error) {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", &ValidationError{Path: "text", Err: ErrEmptyText}
	}
	if n := utf8.RuneCountInString(trimmed); n > maxChars {
		return "", &ValidationError{
			Path: "text",
			Err:  fmt.Errorf("%w: %d characters, max %d", ErrTextTooLong, n, maxChars),
		}
	}
	return trimmed, nil
}
