package rally

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/lguibr/pingpong/bollywood"
	"github.com/lguibr/pingpong/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *bollywood.Engine {
	t.Helper()
	engine := bollywood.NewEngine()
	t.Cleanup(func() { assert.NoError(t, engine.Shutdown(time.Second)) })
	return engine
}

func configWithLimit(limit int) utils.Config {
	cfg := utils.DefaultConfig()
	cfg.MessageLimit = limit
	return cfg
}

// expectedLines builds the transcript of a rally with the default names.
func expectedLines(limit int) []string {
	lines := make([]string, 0, limit)
	text := "Hello"
	for k := 1; k <= limit; k++ {
		text += " " + strconv.Itoa(k)
		if k%2 == 1 {
			lines = append(lines, "Initiator sent message: "+text)
		} else {
			lines = append(lines, "Responder received message: "+text)
		}
	}
	return lines
}

func TestMatch_ReferenceRally(t *testing.T) {
	engine := newTestEngine(t)
	var out bytes.Buffer

	result, err := NewMatch(engine, utils.DefaultConfig(), &out, nil).Play(context.Background())
	require.NoError(t, err)

	assert.Equal(t, expectedLines(10), result.Lines)
	assert.Len(t, result.Lines, 10)
	assert.Equal(t, "Hello 1 2 3 4 5 6 7 8 9 10", result.FinalMessage())
	assert.True(t, strings.HasSuffix(result.Lines[9], " 10"))
	assert.Equal(t, map[string]int{"Initiator": 10, "Responder": 10}, result.Counters)
	assert.Equal(t, strings.Join(expectedLines(10), "\n")+"\n", out.String(), "stdout order matches hop order")
	assert.NotEmpty(t, result.MatchID)
}

func TestMatch_Boundaries(t *testing.T) {
	testCases := []struct {
		limit int
		lines []string
	}{
		{0, nil},
		{1, []string{"Initiator sent message: Hello 1"}},
		{2, []string{"Initiator sent message: Hello 1", "Responder received message: Hello 1 2"}},
		{3, expectedLines(3)},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("limit=%d", tc.limit), func(t *testing.T) {
			engine := newTestEngine(t)

			result, err := NewMatch(engine, configWithLimit(tc.limit), nil, nil).Play(context.Background())
			require.NoError(t, err)

			assert.Len(t, result.Lines, tc.limit)
			if tc.lines == nil {
				assert.Empty(t, result.Lines)
				assert.Equal(t, "", result.FinalMessage())
			} else {
				assert.Equal(t, tc.lines, result.Lines)
			}
			assert.Equal(t, tc.limit, result.Counters["Initiator"])
			assert.Equal(t, tc.limit, result.Counters["Responder"])
		})
	}
}

func TestMatch_RepeatedRunsAreIdentical(t *testing.T) {
	engine := newTestEngine(t)
	cfg := utils.DefaultConfig()

	for i := 0; i < 50; i++ {
		result, err := NewMatch(engine, cfg, nil, nil).Play(context.Background())
		require.NoError(t, err, "run %d", i)
		require.Equal(t, expectedLines(10), result.Lines, "run %d", i)
		require.Equal(t, map[string]int{"Initiator": 10, "Responder": 10}, result.Counters, "run %d", i)
	}
	assert.False(t, engine.Alive(bollywood.NewPID("Initiator")), "players leave the registry after a match")
}

func TestMatch_ConcurrentMatchesOnSeparateNames(t *testing.T) {
	engine := newTestEngine(t)

	type run struct {
		result Result
		err    error
	}
	runs := make(chan run, 4)
	for i := 0; i < cap(runs); i++ {
		cfg := configWithLimit(25)
		cfg.InitiatorName = fmt.Sprintf("Ping-%d", i)
		cfg.ResponderName = fmt.Sprintf("Pong-%d", i)
		go func() {
			result, err := NewMatch(engine, cfg, nil, nil).Play(context.Background())
			runs <- run{result, err}
		}()
	}

	for i := 0; i < cap(runs); i++ {
		r := <-runs
		require.NoError(t, r.err)
		assert.Len(t, r.result.Lines, 25)
		for name, counter := range r.result.Counters {
			assert.Equal(t, 25, counter, name)
		}
	}
}

func TestMatch_CustomNames(t *testing.T) {
	engine := newTestEngine(t)
	cfg := configWithLimit(2)
	cfg.InitiatorName = "Ping"
	cfg.ResponderName = "Pong"
	cfg.OpeningMessage = "Hi"

	result, err := NewMatch(engine, cfg, nil, nil).Play(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Ping sent message: Hi 1", "Pong received message: Hi 1 2"}, result.Lines)
}

func TestMatch_InvalidConfig(t *testing.T) {
	engine := newTestEngine(t)
	cfg := utils.DefaultConfig()
	cfg.ResponderName = cfg.InitiatorName

	_, err := NewMatch(engine, cfg, nil, nil).Play(context.Background())
	assert.ErrorIs(t, err, utils.ErrInvalidConfig)

	cfg = configWithLimit(-1)
	_, err = NewMatch(engine, cfg, nil, nil).Play(context.Background())
	assert.ErrorIs(t, err, utils.ErrInvalidConfig)
}

func TestMatch_NameTaken(t *testing.T) {
	engine := newTestEngine(t)
	_, err := engine.SpawnNamed("Responder", bollywood.NewProps(func() bollywood.Actor { return &mockPeer{volleys: make(chan Volley, 1)} }))
	require.NoError(t, err)

	_, err = NewMatch(engine, utils.DefaultConfig(), nil, nil).Play(context.Background())
	assert.ErrorIs(t, err, bollywood.ErrNameTaken)
	assert.False(t, engine.Alive(bollywood.NewPID("Initiator")), "the already spawned player is stopped")
}

func TestMatch_Aborted(t *testing.T) {
	engine := newTestEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewMatch(engine, configWithLimit(1_000_000), nil, nil).Play(ctx)
	assert.ErrorIs(t, err, ErrMatchAborted)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, len(result.Lines), 1_000_000)
	assert.False(t, engine.Alive(bollywood.NewPID("Initiator")))
	assert.False(t, engine.Alive(bollywood.NewPID("Responder")))
}

func TestMatch_StoppedEngine(t *testing.T) {
	engine := bollywood.NewEngine()
	require.NoError(t, engine.Shutdown(time.Second))

	_, err := NewMatch(engine, utils.DefaultConfig(), nil, nil).Play(context.Background())
	assert.ErrorIs(t, err, bollywood.ErrEngineStopping)
}
