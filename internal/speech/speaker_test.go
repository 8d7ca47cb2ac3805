package speech

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// blockingEngine records spoken texts and blocks each utterance until released
// or cancelled.
type blockingEngine struct {
	mu        sync.Mutex
	spoken    []string
	cancelled []string
	started   chan string
	release   chan struct{}
}

func newBlockingEngine() *blockingEngine {
	return &blockingEngine{
		started: make(chan string, 16),
		release: make(chan struct{}),
	}
}

func (e *blockingEngine) Say(ctx context.Context, text string) error {
	e.started <- text
	select {
	case <-e.release:
		e.mu.Lock()
		e.spoken = append(e.spoken, text)
		e.mu.Unlock()
		return nil
	case <-ctx.Done():
		e.mu.Lock()
		e.cancelled = append(e.cancelled, text)
		e.mu.Unlock()
		return ctx.Err()
	}
}

type instantEngine struct {
	mu     sync.Mutex
	spoken []string
	err    error
}

func (e *instantEngine) Say(_ context.Context, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	e.spoken = append(e.spoken, text)
	return nil
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("utterance did not finish")
	}
}

func TestSpeakerUnavailable(t *testing.T) {
	t.Parallel()

	s := NewSpeaker(nil, nil)
	assert.False(t, s.Available())

	_, err := s.Speak(context.Background(), "hello")
	require.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, s.Speaking())
	s.Cancel()
}

func TestSpeakerSpeaksTextsInOrder(t *testing.T) {
	t.Parallel()

	engine := &instantEngine{}
	s := NewSpeaker(engine, zap.NewNop())

	done, err := s.Speak(context.Background(), "What is HTML?", "  ", "Tip: mention semantics")
	require.NoError(t, err)
	waitDone(t, done)

	assert.Equal(t, []string{"What is HTML?", "Tip: mention semantics"}, engine.spoken)
	assert.False(t, s.Speaking())
}

func TestSpeakerCancelsInFlightUtterance(t *testing.T) {
	t.Parallel()

	engine := newBlockingEngine()
	s := NewSpeaker(engine, zap.NewNop())

	first, err := s.Speak(context.Background(), "first question")
	require.NoError(t, err)
	assert.Equal(t, "first question", <-engine.started)
	assert.True(t, s.Speaking())

	second, err := s.Speak(context.Background(), "second question")
	require.NoError(t, err)

	// The first utterance must be finished before the second one starts.
	waitDone(t, first)
	assert.Equal(t, "second question", <-engine.started)

	close(engine.release)
	waitDone(t, second)

	engine.mu.Lock()
	defer engine.mu.Unlock()
	assert.Equal(t, []string{"first question"}, engine.cancelled)
	assert.Equal(t, []string{"second question"}, engine.spoken)
}

func TestSpeakerCancelStopsRemainingTexts(t *testing.T) {
	t.Parallel()

	engine := newBlockingEngine()
	s := NewSpeaker(engine, zap.NewNop())

	done, err := s.Speak(context.Background(), "question", "Tip: be concise")
	require.NoError(t, err)
	<-engine.started

	s.Cancel()
	waitDone(t, done)
	assert.False(t, s.Speaking())

	engine.mu.Lock()
	defer engine.mu.Unlock()
	assert.Equal(t, []string{"question"}, engine.cancelled)
	assert.Empty(t, engine.spoken)
	assert.Empty(t, engine.started)
}

func TestSpeakerLogsEngineFailure(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.WarnLevel)
	engine := &instantEngine{err: errors.New("no audio device")}
	s := NewSpeaker(engine, zap.New(core))

	done, err := s.Speak(context.Background(), "question")
	require.NoError(t, err)
	waitDone(t, done)

	require.Equal(t, 1, logs.FilterMessage("speech synthesis failed").Len())
}

func TestNewCommandEngineMissingBinary(t *testing.T) {
	t.Parallel()

	_, err := NewCommandEngine([]string{"jobcoach-no-such-tts-binary"}, "en-US", 1)
	require.ErrorIs(t, err, ErrUnavailable)

	_, err = NewCommandEngine(nil, "en-US", 1)
	require.ErrorIs(t, err, ErrUnavailable)
}
