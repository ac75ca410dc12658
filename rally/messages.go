// File: rally/messages.go
package rally

// --- Rally Messages (Player <-> Player) ---

// Volley is the message bounced between the two players.
// Count is the hop number of the last suffix appended to Text.
type Volley struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

// --- Match Messages (Match -> Player) ---

// Kickoff tells a player the pair is wired. Only the initiator reacts by
// sending the opening message.
type Kickoff struct{}

// Outcome is reported once by each player when it stops.
type Outcome struct {
	Name    string `json:"name"`
	Counter int    `json:"counter"`
}

// --- Queries (Ask) ---

// GetCounterRequest asks a player for its current state.
type GetCounterRequest struct{}

// CounterResponse answers GetCounterRequest.
type CounterResponse struct {
	Name    string `json:"name"`
	Counter int    `json:"counter"`
	Stopped bool   `json:"stopped"`
}
