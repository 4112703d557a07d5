package notify

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Event is a message for shop staff about something the back office did.
type Event struct {
	ID       string    `json:"id"`
	Kind     string    `json:"kind"`
	Level    Level     `json:"level"`
	Entity   string    `json:"entity"`
	EntityID uint      `json:"entity_id"`
	Message  string    `json:"message"`
	At       time.Time `json:"at"`
}

// NewEvent fills in the id and timestamp of an event.
func NewEvent(kind string, level Level, entity string, entityID uint, message string, at time.Time) Event {
	return Event{
		ID:       uuid.NewString(),
		Kind:     kind,
		Level:    level,
		Entity:   entity,
		EntityID: entityID,
		Message:  message,
		At:       at,
	}
}

type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// Multi delivers every event to all of its notifiers.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, ev Event) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type Nop struct{}

func (Nop) Notify(context.Context, Event) error { return nil }
