// File: rally/player_actor.go
package rally

import (
	"fmt"

	"github.com/lguibr/pingpong/bollywood"
	"github.com/lguibr/pingpong/utils"
	"go.uber.org/zap"
)

// PlayerActor implements the bollywood.Actor interface for one side of the rally.
// All reads and writes of state happen on the actor's own goroutine.
type PlayerActor struct {
	state      *Player
	peer       *bollywood.PID // Registry handle of the other player
	opening    string
	transcript *Transcript
	outcomes   chan<- Outcome
	kickedOff  bool
	reported   bool
}

// NewPlayerActorProducer creates a bollywood.Producer for PlayerActor.
// outcomes must have room for one value per player, it is never closed here.
func NewPlayerActorProducer(initialState Player, peer *bollywood.PID, cfg utils.Config, transcript *Transcript, outcomes chan<- Outcome) bollywood.Producer {
	if transcript == nil {
		transcript = NewTranscript(nil)
	}
	return func() bollywood.Actor {
		actorState := initialState
		return &PlayerActor{
			state:      &actorState,
			peer:       peer,
			opening:    cfg.OpeningMessage,
			transcript: transcript,
			outcomes:   outcomes,
		}
	}
}

// Receive handles incoming messages for the PlayerActor.
func (a *PlayerActor) Receive(ctx bollywood.Context) {
	switch msg := ctx.Message().(type) {
	case bollywood.Started:
		ctx.Logger().Debug("player started",
			zap.String("player", a.state.Name),
			zap.Stringer("role", a.state.Role),
			zap.Stringer("peer", a.peer),
			zap.Int("limit", a.state.Limit))

	case Kickoff:
		if a.kickedOff {
			ctx.Logger().Warn("ignoring repeated kickoff", zap.String("player", a.state.Name))
			return
		}
		a.kickedOff = true
		if a.state.Role == RoleInitiator {
			a.send(ctx, a.opening)
		}
		a.reportIfStopped(ctx)

	case Volley:
		a.receive(ctx, msg)

	case GetCounterRequest:
		ctx.Reply(CounterResponse{
			Name:    a.state.Name,
			Counter: a.state.Counter,
			Stopped: !a.state.Active(),
		})

	case bollywood.Stopping, bollywood.Stopped:
		ctx.Logger().Debug("player stopping",
			zap.String("player", a.state.Name),
			zap.Int("counter", a.state.Counter),
			zap.String("phase", fmt.Sprintf("%T", msg)))

	default:
		ctx.Logger().Warn("player received unknown message",
			zap.String("player", a.state.Name),
			zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

// send stamps the next hop onto text and hands the volley to the peer.
// At the limit it does nothing.
func (a *PlayerActor) send(ctx bollywood.Context, text string) {
	outgoing, ok := a.state.Stamp(text)
	if !ok {
		return
	}
	a.transcript.Record(a.state.Line(outgoing))
	ctx.Logger().Debug("volley",
		zap.String("player", a.state.Name),
		zap.Int("count", a.state.Counter))
	ctx.Send(a.peer, Volley{Text: outgoing, Count: a.state.Counter})
}

// receive takes the peer's volley and, while below the limit, answers it.
func (a *PlayerActor) receive(ctx bollywood.Context, volley Volley) {
	if !a.state.Active() {
		ctx.Logger().Debug("dropping volley at limit",
			zap.String("player", a.state.Name),
			zap.Int("count", volley.Count))
		return
	}
	if err := a.state.Observe(volley.Count); err != nil {
		ctx.Logger().Warn("dropping volley", zap.Stringer("sender", ctx.Sender()), zap.Error(err))
		return
	}
	a.send(ctx, volley.Text)
	a.reportIfStopped(ctx)
}

// reportIfStopped publishes the player's Outcome the first time it is STOPPED.
func (a *PlayerActor) reportIfStopped(ctx bollywood.Context) {
	if a.reported || a.state.Active() {
		return
	}
	a.reported = true
	ctx.Logger().Debug("player stopped", zap.String("player", a.state.Name), zap.Int("counter", a.state.Counter))
	if a.outcomes == nil {
		return
	}
	select {
	case a.outcomes <- Outcome{Name: a.state.Name, Counter: a.state.Counter}:
	default:
		ctx.Logger().Warn("outcome channel full", zap.String("player", a.state.Name))
	}
}
