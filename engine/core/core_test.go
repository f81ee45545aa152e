package core

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LogLevelDebug},
		{"INFO", LogLevelInfo},
		{"", LogLevelInfo},
		{" warning ", LogLevelWarn},
		{"error", LogLevelError},
		{"fatal", LogLevelFatal},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLogLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLogLevel("verbose")
	assert.ErrorIs(t, err, ErrUnknownLogLevel)
	assert.Equal(t, "warn", LogLevelWarn.String())
}

func TestLogLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	t.Cleanup(func() {
		SetLogOutput(nopWriter{})
		SetLogLevel(LogLevelInfo)
	})

	SetLogLevel(LogLevelWarn)
	LogInfo("hidden %d", 1)
	LogWarn("shown %d", 2)

	assert.NotContains(t, buf.String(), "hidden 1")
	assert.Contains(t, buf.String(), "shown 2")
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestEventBus_FireStopsWhenHandled(t *testing.T) {
	bus := NewEventBus(8)
	var calls []string

	first := func(ctx EventContext, listener interface{}) bool {
		calls = append(calls, listener.(string))
		return false
	}
	second := func(ctx EventContext, listener interface{}) bool {
		calls = append(calls, listener.(string))
		return true
	}

	require.True(t, bus.Register(EVENT_CODE_KEY_PRESSED, "a", first))
	require.True(t, bus.Register(EVENT_CODE_KEY_PRESSED, "b", second))
	require.True(t, bus.Register(EVENT_CODE_KEY_PRESSED, "c", first))
	assert.False(t, bus.Register(EVENT_CODE_KEY_PRESSED, "a", first), "duplicate listener")
	assert.False(t, bus.Register(EVENT_CODE_KEY_PRESSED, "d", nil))

	assert.True(t, bus.Fire(EventContext{Type: EVENT_CODE_KEY_PRESSED}))
	assert.Equal(t, []string{"a", "b"}, calls)

	assert.False(t, bus.Fire(EventContext{Type: EVENT_CODE_RESIZED}))

	assert.True(t, bus.Unregister(EVENT_CODE_KEY_PRESSED, "b"))
	assert.False(t, bus.Unregister(EVENT_CODE_KEY_PRESSED, "b"))

	calls = nil
	assert.False(t, bus.Fire(EventContext{Type: EVENT_CODE_KEY_PRESSED}))
	assert.Equal(t, []string{"a", "c"}, calls)
}

func TestEventBus_PostAndDispatch(t *testing.T) {
	bus := NewEventBus(2)
	var seen []EventCode
	record := func(ctx EventContext, _ interface{}) bool {
		seen = append(seen, ctx.Type)
		if ctx.Type == EVENT_CODE_KEY_PRESSED {
			// Posted during dispatch, delivered on the next one.
			_ = bus.Post(EventContext{Type: EVENT_CODE_APPLICATION_QUIT})
		}
		return false
	}
	bus.Register(EVENT_CODE_KEY_PRESSED, nil, record)
	bus.Register(EVENT_CODE_APPLICATION_QUIT, nil, record)

	require.NoError(t, bus.Post(EventContext{Type: EVENT_CODE_KEY_PRESSED}))
	require.NoError(t, bus.Post(EventContext{Type: EVENT_CODE_KEY_PRESSED}))
	assert.Error(t, bus.Post(EventContext{Type: EVENT_CODE_KEY_PRESSED}))
	assert.Empty(t, seen)

	assert.Equal(t, 2, bus.Dispatch())
	assert.Equal(t, []EventCode{EVENT_CODE_KEY_PRESSED, EVENT_CODE_KEY_PRESSED}, seen)
	assert.Equal(t, 2, bus.Pending())

	assert.Equal(t, 2, bus.Dispatch())
	assert.Equal(t, 0, bus.Pending())

	bus.Shutdown()
	assert.False(t, bus.Fire(EventContext{Type: EVENT_CODE_APPLICATION_QUIT}))
}

func TestInputState(t *testing.T) {
	bus := NewEventBus(16)
	input := NewInputState(bus)

	require.NoError(t, input.ProcessKey(KEY_W, true))
	require.NoError(t, input.ProcessKey(KEY_W, true))
	assert.True(t, input.IsKeyDown(KEY_W))
	assert.True(t, input.WasKeyUp(KEY_W))
	assert.Equal(t, 1, bus.Pending(), "repeated press is not an event")

	input.Update()
	assert.True(t, input.WasKeyDown(KEY_W))

	require.NoError(t, input.ProcessKey(KEY_W, false))
	assert.True(t, input.IsKeyUp(KEY_W))

	require.NoError(t, input.ProcessMouseMove(10, 20))
	require.NoError(t, input.ProcessButton(BUTTON_LEFT, true))
	assert.Error(t, input.ProcessButton(BUTTON_MAX_BUTTONS, true))
	assert.True(t, input.IsButtonDown(BUTTON_LEFT))
	assert.False(t, input.WasButtonDown(BUTTON_LEFT))

	x, y := input.MousePosition()
	assert.Equal(t, int32(10), x)
	assert.Equal(t, int32(20), y)
	px, py := input.PreviousMousePosition()
	assert.Zero(t, px)
	assert.Zero(t, py)

	var moves []*MouseEvent
	bus.Register(EVENT_CODE_MOUSE_MOVED, nil, func(ctx EventContext, _ interface{}) bool {
		moves = append(moves, ctx.Data.(*MouseEvent))
		return true
	})
	assert.Equal(t, 4, bus.Dispatch())
	require.Len(t, moves, 1)
	assert.Equal(t, uint16(20), moves[0].PosY)

	detached := NewInputState(nil)
	assert.NoError(t, detached.ProcessMouseWheel(1))
}

func TestClock(t *testing.T) {
	now := time.Unix(100, 0)
	clock := NewClockWithSource(func() time.Time { return now })

	clock.Update()
	assert.Zero(t, clock.Elapsed(), "not started")

	clock.Start()
	now = now.Add(1500 * time.Millisecond)
	clock.Update()
	assert.InDelta(t, 1.5, clock.Elapsed(), 1e-9)

	clock.Stop()
	now = now.Add(time.Second)
	clock.Update()
	assert.InDelta(t, 1.5, clock.Elapsed(), 1e-9)
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	for i := 0; i < 4; i++ {
		m.Update(0.25)
	}
	assert.Equal(t, 4.0, m.FPS())

	for i := 4; i < int(AVG_COUNT); i++ {
		m.Update(0.25)
	}
	fps, avg := m.Frame()
	assert.Equal(t, 4.0, fps)
	assert.InDelta(t, 250.0, avg, 1e-9)
	assert.InDelta(t, 250.0, m.FrameTime(), 1e-9)
}
