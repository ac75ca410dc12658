// File: rally/player.go
package rally

import (
	"fmt"
	"strconv"
)

// Role decides who opens the rally and which verb a player's lines use.
type Role int

const (
	RoleInitiator Role = iota
	RoleResponder
)

func (r Role) String() string {
	switch r {
	case RoleInitiator:
		return "initiator"
	case RoleResponder:
		return "responder"
	}
	return "Role(" + strconv.Itoa(int(r)) + ")"
}

// Verb is the word used in a player's output lines.
func (r Role) Verb() string {
	if r == RoleInitiator {
		return "sent"
	}
	return "received"
}

// Player is the state owned by a single PlayerActor.
// Counter only ever moves up by one and stays within [0, Limit].
type Player struct {
	Name    string `json:"name"`
	Role    Role   `json:"role"`
	Counter int    `json:"counter"`
	Limit   int    `json:"limit"`
}

// NewPlayer returns a player with a zero counter.
func NewPlayer(name string, role Role, limit int) *Player {
	return &Player{
		Name:  name,
		Role:  role,
		Limit: limit,
	}
}

// Active reports whether the player still takes part in the rally.
func (p *Player) Active() bool {
	return p.Counter < p.Limit
}

// Stamp claims the next hop and returns text with the new counter appended.
// It returns false once the limit has been reached.
func (p *Player) Stamp(text string) (string, bool) {
	if !p.Active() {
		return "", false
	}
	p.Counter++
	return text + " " + strconv.Itoa(p.Counter), true
}

// Observe records the hop number carried by an incoming volley.
func (p *Player) Observe(count int) error {
	if count != p.Counter+1 || count > p.Limit {
		return fmt.Errorf("%w: %s expected %d, got %d", ErrOutOfSequence, p.Name, p.Counter+1, count)
	}
	p.Counter = count
	return nil
}

// Line formats the observable output for a stamped message.
func (p *Player) Line(text string) string {
	return p.Name + " " + p.Role.Verb() + " message: " + text
}
