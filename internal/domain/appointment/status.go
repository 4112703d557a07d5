package appointment

import (
	"strings"

	"github.com/tireshop/backoffice/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// transitions lists the outgoing moves of every known status. Terminal
// statuses have none.
var transitions = map[Status][]Status{
	StatusScheduled:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  nil,
	StatusCancelled:  nil,
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func (s Status) IsTerminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", httperr.ErrInvalidTransition
	}
	return s, nil
}

// InitialStatus is the status every new appointment is created with.
func InitialStatus() Status {
	return StatusScheduled
}

// ActiveStatuses are the statuses that can still conflict with other appointments.
func ActiveStatuses() []Status {
	return []Status{StatusScheduled, StatusInProgress}
}

// ===============================
// Validations
// ===============================

// Transition validates a status change. Requesting the current status is a
// no-op success, including for terminal statuses.
func Transition(current, requested Status) (Status, error) {
	if !current.Valid() || !requested.Valid() {
		return current, httperr.ErrInvalidTransition
	}
	if current == requested {
		return current, nil
	}
	for _, next := range transitions[current] {
		if next == requested {
			return requested, nil
		}
	}
	return current, httperr.ErrInvalidTransition
}

// CanReschedule reports whether date, time or duration may still be edited.
func CanReschedule(current Status) error {
	if current == StatusCompleted {
		return httperr.ErrRescheduleCompleted
	}
	return nil
}
