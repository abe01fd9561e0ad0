package task

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidStatus is returned when a status name or menu choice is not recognised.
var ErrInvalidStatus = errors.New("invalid task status")

// Status represents the task lifecycle state.
type Status int

const (
	StatusPending Status = iota
	StatusInProgress
	StatusCompleted
)

// Statuses lists every status in menu order.
func Statuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusCompleted}
}

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusInProgress:
		return "in_progress"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	return s >= StatusPending && s <= StatusCompleted
}

// ParseStatus converts a wire name such as "in_progress" into a Status.
func ParseStatus(name string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pending":
		return StatusPending, nil
	case "in_progress":
		return StatusInProgress, nil
	case "completed":
		return StatusCompleted, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, name)
	}
}

// StatusFromChoice maps the console choices "1".."3" onto statuses.
func StatusFromChoice(choice string) (Status, error) {
	switch strings.TrimSpace(choice) {
	case "1":
		return StatusPending, nil
	case "2":
		return StatusInProgress, nil
	case "3":
		return StatusCompleted, nil
	default:
		return 0, fmt.Errorf("%w: choice %q", ErrInvalidStatus, choice)
	}
}

// MarshalText encodes the status by its wire name.
func (s Status) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStatus, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a wire name.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
