package bollywood

import (
	"fmt"
	"runtime/debug"
	"sync"

	"go.uber.org/atomic"
	"go.uber.org/zap"
)

const defaultMailboxSize = 1024

// process represents the running instance of an actor, including its state and mailbox.
type process struct {
	engine   *Engine
	pid      *PID
	actor    Actor
	mailbox  *mailbox
	props    *Props
	logger   *zap.Logger
	stopCh   chan struct{} // Signal to stop the run loop
	stopOnce sync.Once
	done     chan struct{} // Closed once the goroutine has exited and the PID is unregistered
	stopped  atomic.Bool
}

func newProcess(engine *Engine, pid *PID, props *Props, mailboxSize int) *process {
	return &process{
		engine:  engine,
		pid:     pid,
		props:   props,
		mailbox: newMailbox(mailboxSize),
		logger:  engine.logger.With(zap.String("pid", pid.ID)),
		stopCh:  make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// sendMessage enqueues an envelope. It returns the drop reason, or "" on success.
func (p *process) sendMessage(envelope *messageEnvelope) string {
	if p.stopped.Load() && !isSystemMessage(envelope.Message) {
		messagesDropped.WithLabelValues(dropReasonStopping).Inc()
		return dropReasonStopping
	}

	if reason := p.mailbox.push(envelope); reason != "" {
		messagesDropped.WithLabelValues(reason).Inc()
		p.logger.Warn("dropping message",
			zap.String("reason", reason),
			zap.String("type", fmt.Sprintf("%T", envelope.Message)))
		return reason
	}
	messagesDelivered.Inc()
	return ""
}

// stop signals the run loop to exit. Safe to call more than once.
func (p *process) stop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
}

// run is the main loop for the actor process.
func (p *process) run() {
	// Cleanup: final Stopped message, unregister, then signal done.
	defer func() {
		p.stopped.Store(true)
		p.mailbox.close()
		if p.actor != nil {
			p.invokeReceive(&messageEnvelope{Message: Stopped{}})
		}
		p.engine.remove(p)
		actorsStopped.Inc()
		close(p.done)
	}()

	// Producer panics.
	defer func() {
		if r := recover(); r != nil {
			actorPanics.Inc()
			p.logger.Error("actor panicked outside Receive",
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
			p.actor = nil
		}
	}()

	p.actor = p.props.Produce()
	if p.actor == nil {
		panic(fmt.Sprintf("actor %s producer returned nil actor", p.pid.ID))
	}

	for {
		select {
		case <-p.stopCh:
			if p.stopped.CompareAndSwap(false, true) {
				p.invokeReceive(&messageEnvelope{Message: Stopping{}})
			}
			return

		case envelope := <-p.mailbox.receive():
			if p.stopped.Load() && !isSystemMessage(envelope.Message) {
				continue
			}
			p.invokeReceive(envelope)
		}
	}
}

// invokeReceive calls the actor's Receive method within a protected context.
func (p *process) invokeReceive(envelope *messageEnvelope) {
	ctx := &context{
		engine:    p.engine,
		self:      p.pid,
		sender:    envelope.Sender,
		message:   envelope.Message,
		requestID: envelope.RequestID,
		logger:    p.logger,
	}

	defer func() {
		if r := recover(); r != nil {
			actorPanics.Inc()
			p.logger.Error("actor panicked during Receive",
				zap.String("type", fmt.Sprintf("%T", envelope.Message)),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
		}
	}()
	p.actor.Receive(ctx)
}
