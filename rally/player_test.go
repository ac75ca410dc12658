package rally

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole(t *testing.T) {
	assert.Equal(t, "initiator", RoleInitiator.String())
	assert.Equal(t, "responder", RoleResponder.String())
	assert.Equal(t, "Role(7)", Role(7).String())
	assert.Equal(t, "sent", RoleInitiator.Verb())
	assert.Equal(t, "received", RoleResponder.Verb())
}

func TestPlayer_StampUntilLimit(t *testing.T) {
	p := NewPlayer("Initiator", RoleInitiator, 2)
	assert.True(t, p.Active())

	text, ok := p.Stamp("Hello")
	assert.True(t, ok)
	assert.Equal(t, "Hello 1", text)

	text, ok = p.Stamp(text)
	assert.True(t, ok)
	assert.Equal(t, "Hello 1 2", text)
	assert.False(t, p.Active())

	_, ok = p.Stamp(text)
	assert.False(t, ok, "stamping at the limit is a silent no-op")
	assert.Equal(t, 2, p.Counter, "counter never exceeds the limit")
}

func TestPlayer_ZeroLimit(t *testing.T) {
	p := NewPlayer("Initiator", RoleInitiator, 0)
	assert.False(t, p.Active())
	_, ok := p.Stamp("Hello")
	assert.False(t, ok)
	assert.Equal(t, 0, p.Counter)
}

func TestPlayer_Observe(t *testing.T) {
	p := NewPlayer("Responder", RoleResponder, 3)

	assert.NoError(t, p.Observe(1))
	assert.Equal(t, 1, p.Counter)

	assert.ErrorIs(t, p.Observe(1), ErrOutOfSequence, "duplicate hop")
	assert.ErrorIs(t, p.Observe(3), ErrOutOfSequence, "skipped hop")
	assert.Equal(t, 1, p.Counter, "rejected hops leave the counter alone")

	p.Counter = 3
	assert.ErrorIs(t, p.Observe(4), ErrOutOfSequence, "hops past the limit")
}

func TestPlayer_Line(t *testing.T) {
	assert.Equal(t, "Initiator sent message: Hello 1",
		NewPlayer("Initiator", RoleInitiator, 1).Line("Hello 1"))
	assert.Equal(t, "Responder received message: Hello 1 2",
		NewPlayer("Responder", RoleResponder, 1).Line("Hello 1 2"))
}
