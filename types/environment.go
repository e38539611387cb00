package types

import "errors"

var (
	// ErrInvalidState signals an operation invoked on a terminated episode,
	// such as React after the episode has ended.
	ErrInvalidState = errors.New("episode has ended")
	// ErrInvalidArgument signals malformed construction parameters or an
	// operation called with arguments that violate its contract.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Environment is the state machine agents interact with. Implementations own
// their episode state; a single episode progresses at a time per instance and
// instances are not safe for concurrent use.
type Environment interface {
	// StartNewEpisode re-initializes the internal state and clears any
	// termination flag.
	StartNewEpisode()
	// Observation of the current state.
	// Returns the Terminal sentinel once the episode has ended.
	Observation() *State
	// Actions available from the current state, in deterministic order.
	// Empty iff the episode has ended.
	Actions() []Action
	// Step function: applies the action and returns the scalar reward.
	// Calling React after the episode has ended is a programming error and
	// fails with ErrInvalidState.
	React(Action) (float64, error)
	// Done reports whether the episode has ended.
	Done() bool
}
