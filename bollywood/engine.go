package bollywood

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Engine manages the lifecycle and message dispatching for actors.
type Engine struct {
	pidCounter  atomic.Uint64
	actors      map[string]*process
	mu          sync.RWMutex // Protects the actors map
	futures     map[string]chan futureResponse
	futuresMu   sync.Mutex
	stopping    atomic.Bool // Indicates if the engine is shutting down
	logger      *zap.Logger
	mailboxSize int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used by the engine and handed to actors.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMailboxSize sets the capacity of every mailbox created by the engine.
func WithMailboxSize(size int) Option {
	return func(e *Engine) {
		if size > 0 {
			e.mailboxSize = size
		}
	}
}

// NewEngine creates a new actor engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		actors:      make(map[string]*process),
		futures:     make(map[string]chan futureResponse),
		logger:      zap.NewNop(),
		mailboxSize: defaultMailboxSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// nextPID generates a unique process ID.
func (e *Engine) nextPID() *PID {
	return NewPID(fmt.Sprintf("actor-%d", e.pidCounter.Inc()))
}

// Spawn creates and starts a new actor based on the provided Props.
// It returns the PID of the newly created actor, or nil if the engine is stopping.
func (e *Engine) Spawn(props *Props) *PID {
	pid := e.nextPID()
	if err := e.spawn(pid, props); err != nil {
		e.logger.Warn("spawn failed", zap.String("pid", pid.ID), zap.Error(err))
		return nil
	}
	return pid
}

// SpawnNamed creates and starts a new actor registered under name.
// Other actors may hold NewPID(name) before the actor exists; messages sent
// to it before registration are dropped.
func (e *Engine) SpawnNamed(name string, props *Props) (*PID, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	pid := NewPID(name)
	if err := e.spawn(pid, props); err != nil {
		return nil, err
	}
	return pid, nil
}

func (e *Engine) spawn(pid *PID, props *Props) error {
	if e.stopping.Load() {
		return ErrEngineStopping
	}

	e.mu.Lock()
	if _, exists := e.actors[pid.ID]; exists {
		e.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNameTaken, pid.ID)
	}
	proc := newProcess(e, pid, props, e.mailboxSize)
	e.actors[pid.ID] = proc
	e.mu.Unlock()

	// Started is queued before the loop runs so it is always the first message.
	proc.sendMessage(&messageEnvelope{Message: Started{}})
	actorsSpawned.Inc()
	go proc.run()

	e.logger.Debug("actor spawned", zap.String("pid", pid.ID))
	return nil
}

func (e *Engine) lookup(pid *PID) (*process, bool) {
	if pid == nil {
		return nil, false
	}
	e.mu.RLock()
	proc, ok := e.actors[pid.ID]
	e.mu.RUnlock()
	return proc, ok
}

// Send delivers a message to the actor identified by the PID.
// Delivery is fire-and-forget: undeliverable messages are dropped and counted.
func (e *Engine) Send(pid *PID, message interface{}, sender *PID) {
	if e.stopping.Load() && !isSystemMessage(message) {
		messagesDropped.WithLabelValues(dropReasonStopping).Inc()
		return
	}

	proc, ok := e.lookup(pid)
	if !ok {
		messagesDropped.WithLabelValues(dropReasonNotFound).Inc()
		e.logger.Debug("actor not found, dropping message",
			zap.Stringer("pid", pid),
			zap.String("type", fmt.Sprintf("%T", message)))
		return
	}
	proc.sendMessage(&messageEnvelope{Sender: sender, Message: message})
}

// Ask sends message to pid and waits up to timeout for the actor to Reply.
func (e *Engine) Ask(pid *PID, message interface{}, timeout time.Duration) (interface{}, error) {
	proc, ok := e.lookup(pid)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrActorNotFound, pid)
	}

	requestID := uuid.NewString()
	replyCh := make(chan futureResponse, 1)
	e.futuresMu.Lock()
	e.futures[requestID] = replyCh
	e.futuresMu.Unlock()
	defer func() {
		e.futuresMu.Lock()
		delete(e.futures, requestID)
		e.futuresMu.Unlock()
	}()

	if reason := proc.sendMessage(&messageEnvelope{Message: message, RequestID: requestID}); reason != "" {
		if reason == dropReasonFull {
			return nil, fmt.Errorf("%w: %s", ErrMailboxFull, pid)
		}
		return nil, fmt.Errorf("%w: %s (%s)", ErrActorNotFound, pid, reason)
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case resp := <-replyCh:
		return resp.Result, resp.Err
	case <-timer.C:
		return nil, fmt.Errorf("%w after %s: %s", ErrAskTimeout, timeout, pid)
	}
}

// replyFuture completes a pending Ask. Late replies are discarded.
func (e *Engine) replyFuture(requestID string, message interface{}) {
	e.futuresMu.Lock()
	replyCh, ok := e.futures[requestID]
	e.futuresMu.Unlock()
	if !ok {
		return
	}
	select {
	case replyCh <- futureResponse{Result: message}:
	default:
	}
}

// Alive reports whether pid is registered with a running process.
func (e *Engine) Alive(pid *PID) bool {
	_, ok := e.lookup(pid)
	return ok
}

// Stop requests an actor to stop processing messages and shut down.
// The actor receives Stopping and then Stopped from its own goroutine.
func (e *Engine) Stop(pid *PID) error {
	proc, ok := e.lookup(pid)
	if !ok {
		return fmt.Errorf("%w: %s", ErrActorNotFound, pid)
	}
	proc.stop()
	return nil
}

// Done returns a channel closed once the actor has fully exited. For an
// unknown PID the returned channel is already closed.
func (e *Engine) Done(pid *PID) <-chan struct{} {
	proc, ok := e.lookup(pid)
	if !ok {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return proc.done
}

// remove removes an actor process from the engine's tracking.
func (e *Engine) remove(proc *process) {
	e.mu.Lock()
	if current, ok := e.actors[proc.pid.ID]; ok && current == proc {
		delete(e.actors, proc.pid.ID)
	}
	e.mu.Unlock()
	e.logger.Debug("actor removed", zap.String("pid", proc.pid.ID))
}

// Shutdown stops all actors and waits up to timeout for them to terminate.
func (e *Engine) Shutdown(timeout time.Duration) error {
	if !e.stopping.CompareAndSwap(false, true) {
		return ErrEngineStopping
	}

	e.mu.RLock()
	procs := make([]*process, 0, len(e.actors))
	for _, proc := range e.actors {
		procs = append(procs, proc)
	}
	e.mu.RUnlock()

	e.logger.Debug("engine shutdown initiated", zap.Int("actors", len(procs)))
	for _, proc := range procs {
		proc.stop()
	}

	var err error
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	expired := false
	for _, proc := range procs {
		if !expired {
			select {
			case <-proc.done:
				continue
			case <-timer.C:
				expired = true
			}
		}
		select {
		case <-proc.done:
		default:
			err = multierr.Append(err, fmt.Errorf("%w: %s", ErrShutdownTimeout, proc.pid))
		}
	}

	if err != nil {
		e.logger.Warn("engine shutdown timed out", zap.Error(err))
		e.mu.Lock()
		e.actors = make(map[string]*process)
		e.mu.Unlock()
		return err
	}
	e.logger.Debug("engine shutdown complete")
	return nil
}
