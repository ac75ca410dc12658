package bollywood

// --- System Messages ---

// Started is sent to an actor before any other message.
type Started struct{}

// Stopping is sent to an actor to signal it should prepare to stop.
// No more user messages will be delivered after Stopping.
type Stopping struct{}

// Stopped is sent to an actor just before its goroutine exits.
// This is the final message an actor will receive.
type Stopped struct{}

func isSystemMessage(message interface{}) bool {
	switch message.(type) {
	case Started, Stopping, Stopped:
		return true
	}
	return false
}

// --- Message Envelope ---

// messageEnvelope wraps a message with sender information.
// RequestID is only set for messages sent via Ask.
type messageEnvelope struct {
	Sender    *PID
	Message   interface{}
	RequestID string
}

// futureResponse is used internally to pass Ask results back.
type futureResponse struct {
	Result interface{}
	Err    error
}
