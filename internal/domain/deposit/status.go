package deposit

import (
	"strings"

	"github.com/tireshop/backoffice/internal/httperr"
)

type Status string

const (
	StatusActive       Status = "active"
	StatusDueForPickup Status = "due_for_pickup"
	StatusOverdue      Status = "overdue"
	StatusReserved     Status = "reserved"
	StatusReleased     Status = "released"
)

var known = map[Status]bool{
	StatusActive:       true,
	StatusDueForPickup: true,
	StatusOverdue:      true,
	StatusReserved:     true,
	StatusReleased:     true,
}

func (s Status) Valid() bool { return known[s] }

func (s Status) IsTerminal() bool { return s == StatusReleased }

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", httperr.ErrInvalidTransition
	}
	return s, nil
}

func InitialStatus(reserved bool) Status {
	if reserved {
		return StatusReserved
	}
	return StatusActive
}

// OpenStatuses are all statuses of deposits still held by the shop.
func OpenStatuses() []Status {
	return []Status{StatusActive, StatusDueForPickup, StatusOverdue, StatusReserved}
}

// DerivableStatuses are the stored statuses that Derive may change.
func DerivableStatuses() []Status {
	return []Status{StatusActive, StatusDueForPickup}
}

// ChangeStatus validates a manual status change. Any open status may be set
// on an open deposit; releasing requires Release.
func ChangeStatus(current, requested Status) (Status, error) {
	if current == StatusReleased {
		return current, httperr.ErrAlreadyReleased
	}
	if !current.Valid() || !requested.Valid() || requested == StatusReleased {
		return current, httperr.ErrInvalidTransition
	}
	return requested, nil
}

// StoredStatusesFor returns the stored statuses a row may carry while its
// effective status is one of effective.
func StoredStatusesFor(effective []Status) []Status {
	want := map[Status]bool{}
	for _, s := range effective {
		switch s {
		case StatusActive, StatusDueForPickup:
			want[StatusActive] = true
			want[StatusDueForPickup] = true
		case StatusOverdue:
			want[StatusActive] = true
			want[StatusDueForPickup] = true
			want[StatusOverdue] = true
		default:
			want[s] = true
		}
	}

	var out []Status
	for _, s := range []Status{StatusActive, StatusDueForPickup, StatusOverdue, StatusReserved, StatusReleased} {
		if want[s] {
			out = append(out, s)
		}
	}
	return out
}
