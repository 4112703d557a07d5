package deposit

import (
	"strings"
	"time"

	"github.com/tireshop/backoffice/internal/domain/schedule"
	"github.com/tireshop/backoffice/internal/httperr"
)

type ReleaseMeta struct {
	Date   time.Time
	Person string
	Notes  string
}

type ReleaseOutcome struct {
	Status Status
	Meta   ReleaseMeta
	// FutureDated is set when the release date lies after today. The release
	// is still valid; callers should ask for confirmation.
	FutureDated bool
}

// Release hands a deposit back to its owner. Released is terminal.
func Release(current Status, meta ReleaseMeta, today time.Time) (ReleaseOutcome, error) {
	if current == StatusReleased {
		return ReleaseOutcome{Status: current}, httperr.ErrAlreadyReleased
	}
	if !current.Valid() {
		return ReleaseOutcome{Status: current}, httperr.ErrInvalidTransition
	}

	meta.Person = strings.TrimSpace(meta.Person)
	if meta.Person == "" {
		return ReleaseOutcome{Status: current}, httperr.ErrMissingReleasePerson
	}
	meta.Date = schedule.DateOf(meta.Date)

	return ReleaseOutcome{
		Status:      StatusReleased,
		Meta:        meta,
		FutureDated: meta.Date.After(schedule.DateOf(today)),
	}, nil
}
