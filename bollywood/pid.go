package bollywood

// PID (Process ID) represents a unique reference to an actor instance.
// A PID is only a handle: it is resolved through the Engine's registry on
// every delivery and never points at the actor's state.
type PID struct {
	ID string
}

// NewPID returns a handle for the actor registered (or to be registered) under id.
func NewPID(id string) *PID {
	return &PID{ID: id}
}

// String returns the string representation of the PID.
func (pid *PID) String() string {
	if pid == nil {
		return "<nil>"
	}
	return pid.ID
}

// Equals reports whether both handles address the same actor.
func (pid *PID) Equals(other *PID) bool {
	if pid == nil || other == nil {
		return pid == other
	}
	return pid.ID == other.ID
}
