// File: rally/match.go
package rally

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lguibr/pingpong/bollywood"
	"github.com/lguibr/pingpong/utils"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Result summarizes a finished (or aborted) match.
type Result struct {
	MatchID  string         `json:"matchId"`
	Lines    []string       `json:"lines"`
	Counters map[string]int `json:"counters"` // Final counter per player name
}

// FinalMessage returns the text carried by the last hop, or "" if nothing was exchanged.
func (r Result) FinalMessage() string {
	if len(r.Lines) == 0 {
		return ""
	}
	last := r.Lines[len(r.Lines)-1]
	if i := strings.Index(last, " message: "); i >= 0 {
		return last[i+len(" message: "):]
	}
	return last
}

// Match wires two PlayerActors on an engine and plays one rally between them.
type Match struct {
	id     string
	engine *bollywood.Engine
	cfg    utils.Config
	out    io.Writer
	logger *zap.Logger
}

// NewMatch prepares a match. Lines are written to out as they are produced.
func NewMatch(engine *bollywood.Engine, cfg utils.Config, out io.Writer, logger *zap.Logger) *Match {
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.NewString()
	return &Match{
		id:     id,
		engine: engine,
		cfg:    cfg,
		out:    out,
		logger: logger.With(zap.String("match", id)),
	}
}

// ID returns the match identifier used in logs.
func (m *Match) ID() string { return m.id }

type seat struct {
	name string
	role Role
	peer string
}

// Play spawns both players, kicks the rally off and blocks until both players
// have stopped or ctx is done. The players are stopped before Play returns.
func (m *Match) Play(ctx context.Context) (Result, error) {
	result := Result{MatchID: m.id, Counters: make(map[string]int, 2)}
	if err := m.cfg.Validate(); err != nil {
		return result, err
	}

	transcript := NewTranscript(m.out)
	outcomes := make(chan Outcome, 2)
	seats := []seat{
		{name: m.cfg.InitiatorName, role: RoleInitiator, peer: m.cfg.ResponderName},
		{name: m.cfg.ResponderName, role: RoleResponder, peer: m.cfg.InitiatorName},
	}

	// Both players exist before either is kicked off.
	pids := make([]*bollywood.PID, 0, len(seats))
	for _, s := range seats {
		player := NewPlayer(s.name, s.role, m.cfg.MessageLimit)
		producer := NewPlayerActorProducer(*player, bollywood.NewPID(s.peer), m.cfg, transcript, outcomes)
		pid, err := m.engine.SpawnNamed(s.name, bollywood.NewProps(producer))
		if err != nil {
			return result, multierr.Append(fmt.Errorf("spawn %s: %w", s.name, err), m.stop(pids))
		}
		pids = append(pids, pid)
	}

	m.logger.Info("match started",
		zap.String("initiator", m.cfg.InitiatorName),
		zap.String("responder", m.cfg.ResponderName),
		zap.Int("limit", m.cfg.MessageLimit))
	for _, pid := range pids {
		m.engine.Send(pid, Kickoff{}, nil)
	}

	var err error
wait:
	for len(result.Counters) < len(seats) {
		select {
		case outcome := <-outcomes:
			result.Counters[outcome.Name] = outcome.Counter
		case <-ctx.Done():
			err = fmt.Errorf("%w: %w", ErrMatchAborted, ctx.Err())
			break wait
		}
	}

	err = multierr.Append(err, m.stop(pids))
	result.Lines = transcript.Lines()
	if werr := transcript.Err(); werr != nil {
		err = multierr.Append(err, fmt.Errorf("write transcript: %w", werr))
	}

	m.logger.Info("match finished",
		zap.Int("hops", len(result.Lines)),
		zap.Any("counters", result.Counters),
		zap.Error(err))
	return result, err
}

// stop stops the given players and waits for them to leave the registry so
// the names can be reused by another match.
func (m *Match) stop(pids []*bollywood.PID) error {
	var err error
	done := make([]<-chan struct{}, 0, len(pids))
	for _, pid := range pids {
		done = append(done, m.engine.Done(pid))
		err = multierr.Append(err, m.engine.Stop(pid))
	}

	timer := time.NewTimer(m.cfg.ShutdownTimeout)
	defer timer.Stop()
	for i, ch := range done {
		select {
		case <-ch:
		case <-timer.C:
			return multierr.Append(err, fmt.Errorf("%w: %s", bollywood.ErrShutdownTimeout, pids[i]))
		}
	}
	return err
}
