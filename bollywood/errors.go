package bollywood

import "errors"

var (
	// ErrEngineStopping is returned when the engine no longer accepts new actors.
	ErrEngineStopping = errors.New("bollywood: engine is stopping")
	// ErrNameTaken is returned by SpawnNamed when the name is already registered.
	ErrNameTaken = errors.New("bollywood: actor name already registered")
	// ErrInvalidName is returned by SpawnNamed for an empty name.
	ErrInvalidName = errors.New("bollywood: invalid actor name")
	// ErrActorNotFound is returned when a PID does not resolve to a live actor.
	ErrActorNotFound = errors.New("bollywood: actor not found")
	// ErrMailboxFull is returned when a message cannot be enqueued.
	ErrMailboxFull = errors.New("bollywood: mailbox full")
	// ErrAskTimeout is returned when no reply arrives before the Ask deadline.
	ErrAskTimeout = errors.New("bollywood: ask timed out")
	// ErrShutdownTimeout is returned for every actor that did not stop in time.
	ErrShutdownTimeout = errors.New("bollywood: actor did not stop before shutdown deadline")
)
