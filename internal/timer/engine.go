package timer

import (
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/coolguy173/focus-app1/internal/domain"
)

const (
	// SessionSeconds is the length of one focus battle.
	SessionSeconds = 1500

	// DangerSeconds is the threshold below which the countdown is flagged
	// as running out.
	DangerSeconds = 60
)

// Session is the state of the current battle.
type Session struct {
	State            State
	SecondsRemaining int

	// Locked is set once an outcome has been claimed for this session and
	// stays set until Reset. It guarantees at most one report per battle.
	Locked bool
}

// Engine drives the countdown. All state transitions happen under the mutex;
// observers receive events on their subscription channels.
type Engine struct {
	mu      sync.Mutex
	clock   clockwork.Clock
	session Session
	events  []chan Event
	stopCh  chan struct{}
	started bool
}

func NewEngine(clock clockwork.Clock) *Engine {
	return &Engine{
		clock: clock,
		session: Session{
			State:            StateIdle,
			SecondsRemaining: SessionSeconds,
		},
		stopCh: make(chan struct{}),
	}
}

// Subscribe registers a new observer channel. Events are dropped for slow
// observers rather than blocking the tick loop.
func (e *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	e.mu.Lock()
	e.events = append(e.events, ch)
	e.mu.Unlock()
	return ch
}

// Run launches the one-second tick loop and blocks until Stop.
func (e *Engine) Run() {
	e.mu.Lock()
	if e.started {
		e.mu.Unlock()
		return
	}
	e.started = true
	e.mu.Unlock()

	ticker := e.clock.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-e.stopCh:
			return
		case <-ticker.Chan():
			e.tick()
		}
	}
}

// Stop terminates the tick loop and closes observer channels.
func (e *Engine) Stop() {
	e.mu.Lock()
	select {
	case <-e.stopCh:
		e.mu.Unlock()
		return
	default:
	}
	close(e.stopCh)
	events := e.events
	e.events = nil
	e.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Session returns a snapshot of the current session.
func (e *Engine) Session() Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session
}

// Start begins a battle. Calling Start while a battle is already running or
// finished is a no-op.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.session.State != StateIdle {
		e.mu.Unlock()
		return
	}
	e.session.State = StateRunning
	e.session.SecondsRemaining = SessionSeconds
	e.session.Locked = false
	snapshot := e.session
	e.emitLocked(Event{
		Type:             EventStateChange,
		State:            snapshot.State,
		SecondsRemaining: snapshot.SecondsRemaining,
		At:               e.clock.Now(),
	})
	e.mu.Unlock()
}

// Abandon gives up the running battle. It claims the session's single
// outcome as a loss and finishes the session; Reset is the only way back to
// idle, same as after a natural completion. Returns false when no battle is
// running or the outcome is already claimed.
func (e *Engine) Abandon() bool {
	e.mu.Lock()
	if e.session.State != StateRunning || e.session.Locked {
		e.mu.Unlock()
		return false
	}
	e.session.Locked = true
	e.session.State = StateDone
	now := e.clock.Now()
	e.emitLocked(Event{
		Type:             EventStateChange,
		State:            StateDone,
		SecondsRemaining: e.session.SecondsRemaining,
		At:               now,
	})
	e.emitLocked(Event{
		Type:    EventOutcome,
		State:   StateDone,
		Outcome: domain.OutcomeLoss,
		At:      now,
	})
	e.mu.Unlock()
	return true
}

// Interrupt claims the outcome of a running battle as a loss without
// transitioning state, for shutdown paths where the event loop may already
// be gone. Returns true when the caller should dispatch the loss.
func (e *Engine) Interrupt() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session.State != StateRunning || e.session.Locked {
		return false
	}
	e.session.Locked = true
	return true
}

// Reset re-arms a finished battle back to idle. Only valid from done.
func (e *Engine) Reset() {
	e.mu.Lock()
	if e.session.State != StateDone {
		e.mu.Unlock()
		return
	}
	e.session.State = StateIdle
	e.session.SecondsRemaining = SessionSeconds
	e.session.Locked = false
	e.emitLocked(Event{
		Type:             EventStateChange,
		State:            StateIdle,
		SecondsRemaining: SessionSeconds,
		At:               e.clock.Now(),
	})
	e.mu.Unlock()
}

func (e *Engine) tick() {
	e.mu.Lock()
	if e.session.State != StateRunning {
		e.mu.Unlock()
		return
	}

	e.session.SecondsRemaining--
	now := e.clock.Now()

	if e.session.SecondsRemaining > 0 {
		e.emitLocked(Event{
			Type:             EventTick,
			State:            StateRunning,
			SecondsRemaining: e.session.SecondsRemaining,
			Danger:           e.session.SecondsRemaining <= DangerSeconds,
			At:               now,
		})
		e.mu.Unlock()
		return
	}

	e.session.SecondsRemaining = 0
	e.session.State = StateDone
	e.session.Locked = true
	e.emitLocked(Event{
		Type:             EventStateChange,
		State:            StateDone,
		SecondsRemaining: 0,
		At:               now,
	})
	e.emitLocked(Event{
		Type:    EventOutcome,
		State:   StateDone,
		Outcome: domain.OutcomeWin,
		At:      now,
	})
	e.mu.Unlock()
}

func (e *Engine) emitLocked(event Event) {
	for _, ch := range e.events {
		select {
		case ch <- event:
		default:
		}
	}
}

// FormatClock renders a second count as zero-padded mm:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Percent returns the share of the battle still remaining, 0 to 100.
func Percent(secondsRemaining int) float64 {
	if secondsRemaining <= 0 {
		return 0
	}
	if secondsRemaining >= SessionSeconds {
		return 100
	}
	return float64(secondsRemaining) / float64(SessionSeconds) * 100
}
