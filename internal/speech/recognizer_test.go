package speech

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubCapturer struct {
	transcript string
	err        error
	during     func()
}

func (c *stubCapturer) Capture(context.Context) (string, error) {
	if c.during != nil {
		c.during()
	}
	return c.transcript, c.err
}

func listening(r *Recognizer) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listening
}

func TestRecognizerListen(t *testing.T) {
	t.Parallel()

	r := NewRecognizer(nil, nil)
	capturer := &stubCapturer{transcript: "semantic markup"}
	capturer.during = func() {
		assert.True(t, listening(r))
		_, err := r.Listen(context.Background())
		assert.ErrorIs(t, err, ErrCapture)
	}
	r.capturer = capturer

	got, err := r.Listen(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "semantic markup", got)
	assert.False(t, listening(r))
}

func TestRecognizerErrorResetsListening(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.WarnLevel)
	r := NewRecognizer(&stubCapturer{err: errors.New("microphone busy")}, zap.New(core))

	_, err := r.Listen(context.Background())
	require.ErrorIs(t, err, ErrCapture)
	assert.False(t, listening(r))
	assert.Equal(t, 1, logs.FilterMessage("speech recognition error").Len())

	// Retry is allowed after a failure.
	r.capturer = &stubCapturer{transcript: "retry"}
	got, err := r.Listen(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "retry", got)
}

func TestRecognizerUnavailable(t *testing.T) {
	t.Parallel()

	r := NewRecognizer(nil, zap.NewNop())
	assert.False(t, r.Available())

	_, err := r.Listen(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestAppendTranscript(t *testing.T) {
	t.Parallel()

	tests := []struct {
		current, transcript, want string
	}{
		{"", "hello", "hello"},
		{"typed text ", "", "typed text"},
		{"typed", " spoken ", "typed spoken"},
		{"", "", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, AppendTranscript(tt.current, tt.transcript))
	}
}

func TestCommandPlaceholders(t *testing.T) {
	t.Parallel()

	cmd := &command{path: "/bin/echo", args: []string{"-v", "en-US"}}
	run := cmd.build(context.Background(), "hello there")
	assert.Equal(t, []string{"/bin/echo", "-v", "en-US", "hello there"}, run.Args)

	cmd = &command{path: "/bin/echo", args: []string{"--text={text}", "-q"}}
	run = cmd.build(context.Background(), "hi")
	assert.Equal(t, []string{"/bin/echo", "--text=hi", "-q"}, run.Args)
}
