// Package timer implements the focus battle countdown engine.
//
// A session runs 25 minutes; completing it is a win, abandoning or quitting
// is a loss. The engine is a mutex-guarded state machine driven by a clock
// ticker and fans events out to subscribers.
package timer
