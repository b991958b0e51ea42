package timer

import (
	"time"

	"github.com/coolguy173/focus-app1/internal/domain"
)

// State represents the current battle phase.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StateDone    State = "done"
)

// EventType defines the type of engine event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventTick        EventType = "tick"
	EventOutcome     EventType = "outcome"
)

// Event represents an engine update for observers. Outcome is set only on
// EventOutcome and carries the result to report.
type Event struct {
	Type             EventType
	State            State
	SecondsRemaining int
	Danger           bool
	Outcome          domain.Outcome
	At               time.Time
}
