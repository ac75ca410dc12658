package bollywood

import "go.uber.org/atomic"

// mailbox is the bounded queue feeding a single process.
// The channel is never closed; closing only stops further pushes, so
// concurrent senders can never panic on a closed channel.
type mailbox struct {
	envelopes chan *messageEnvelope
	open      atomic.Bool
}

func newMailbox(size int) *mailbox {
	if size <= 0 {
		size = defaultMailboxSize
	}
	m := &mailbox{
		envelopes: make(chan *messageEnvelope, size),
	}
	m.open.Store(true)
	return m
}

// push enqueues without blocking. It returns the drop reason, or "" on success.
func (m *mailbox) push(envelope *messageEnvelope) string {
	if !m.open.Load() {
		return dropReasonClosed
	}
	select {
	case m.envelopes <- envelope:
		return ""
	default:
		return dropReasonFull
	}
}

func (m *mailbox) receive() <-chan *messageEnvelope { return m.envelopes }

func (m *mailbox) close() { m.open.Store(false) }

func (m *mailbox) len() int { return len(m.envelopes) }
